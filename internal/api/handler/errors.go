package handler

import (
	"errors"
	"net/http"

	"moviehub/internal/api/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to HTTP status codes and a structured
// JSON body. Nothing here is fatal to the process.
func respondError(c *gin.Context, err error) {
	if fe, ok := service.AsFieldErrors(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fe})
		return
	}

	switch {
	case errors.Is(err, service.ErrEmailInUse),
		errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrMovieNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrRatingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrTitleTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parsePagination reads page/page_size query params with sane bounds.
func parsePagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p, err := atoiQuery(c, "page"); err == nil && p > 0 {
		page = p
	}
	if ps, err := atoiQuery(c, "page_size"); err == nil && ps > 0 && ps <= 100 {
		pageSize = ps
	}
	return page, pageSize
}
