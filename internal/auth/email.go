package auth

import "strings"

// NormalizeEmail lowercases the domain part of an email address. The local
// part keeps its case as registered; lookups normalize the probe the same
// way, so comparison is case-insensitive where it matters.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
