package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrMovieNotFound      = errors.New("movie not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrRatingNotFound     = errors.New("rating not found")
	ErrTitleTaken         = errors.New("movie title already in use")
	ErrNotOwner           = errors.New("rating belongs to another user")
)

// FieldErrors carries per-field validation messages. Handlers surface it as
// a 400 with the field map in the body.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsFieldErrors unwraps err into FieldErrors if it is one.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
