package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"moviehub/internal/api/dto"
	"moviehub/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MovieHandler struct {
	svc       service.MovieService
	mediaRoot string
}

func NewMovieHandler(svc service.MovieService, mediaRoot string) *MovieHandler {
	return &MovieHandler{svc: svc, mediaRoot: mediaRoot}
}

// RegisterRoutes registers the catalog routes; mutation requires staff.
func (h *MovieHandler) RegisterRoutes(rg *gin.RouterGroup, staffMW gin.HandlerFunc) {
	movies := rg.Group("/movies")
	{
		movies.GET("", h.List)
		movies.GET("/:movie_id", h.Get)

		movies.POST("", staffMW, h.Create)
		movies.PUT("/:movie_id", staffMW, h.Update)
		movies.PATCH("/:movie_id", staffMW, h.Patch)
		movies.DELETE("/:movie_id", staffMW, h.Delete)
		movies.POST("/:movie_id/upload-image", staffMW, h.UploadImage)
	}
}

// List returns the catalog; ratings appear as ids
// GET /api/movies?page=1&page_size=20
func (h *MovieHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	list, total, err := h.svc.GetAll(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.MovieResponse, 0, len(list))
	for i := range list {
		resp = append(resp, *dto.FromModelToMovieResponse(&list[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"data": resp,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// Get returns one movie with its ratings expanded
// GET /api/movies/:movie_id
func (h *MovieHandler) Get(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}

	movie, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	average, err := h.svc.AverageRating(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToMovieDetailResponse(movie, average))
}

// Create adds a movie to the catalog
// POST /api/movies
func (h *MovieHandler) Create(c *gin.Context) {
	var req dto.CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	movie, err := h.svc.Create(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToMovieResponse(movie))
}

// Update replaces title and description
// PUT /api/movies/:movie_id
func (h *MovieHandler) Update(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}

	var req dto.UpdateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	movie, err := h.svc.Update(c.Request.Context(), id, req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToMovieResponse(movie))
}

// Patch partially updates a movie
// PATCH /api/movies/:movie_id
func (h *MovieHandler) Patch(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}

	var req dto.PatchMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	movie, err := h.svc.Patch(c.Request.Context(), id, req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToMovieResponse(movie))
}

// Delete removes a movie; its ratings cascade with it
// DELETE /api/movies/:movie_id
func (h *MovieHandler) Delete(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage stores a poster for the movie
// POST /api/movies/:movie_id/upload-image (multipart field "poster")
func (h *MovieHandler) UploadImage(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}

	// check existence before touching the filesystem
	if _, err := h.svc.GetByID(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	file, err := c.FormFile("poster")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "poster file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedPosterExt(ext) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image format"})
		return
	}

	// uploads/YYYY/MM/DD/<uuid><ext> under the media root
	now := time.Now()
	relDir := filepath.Join("uploads", fmt.Sprintf("%04d/%02d/%02d", now.Year(), now.Month(), now.Day()))
	if err := os.MkdirAll(filepath.Join(h.mediaRoot, relDir), 0o755); err != nil {
		respondError(c, err)
		return
	}

	relPath := filepath.Join(relDir, uuid.New().String()+ext)
	if err := c.SaveUploadedFile(file, filepath.Join(h.mediaRoot, relPath)); err != nil {
		respondError(c, err)
		return
	}

	movie, err := h.svc.SetPoster(c.Request.Context(), id, relPath)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToMovieResponse(movie))
}

func allowedPosterExt(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	}
	return false
}

func movieID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("movie_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie ID"})
		return 0, false
	}
	return id, true
}
