package handler

import (
	"net/http"
	"strconv"

	"moviehub/internal/api/dto"
	"moviehub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// RegisterRoutes registers rating-related routes
func (h *RatingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ratings := rg.Group("/ratings")
	{
		ratings.GET("", h.List)
		ratings.POST("", h.CreateOrUpdate)
		ratings.GET("/:rating_id", h.Get)
		ratings.DELETE("/:rating_id", h.Delete)
	}
}

// CreateOrUpdate records the caller's rating for a movie. Re-rating the
// same movie updates the existing rating rather than creating a second one.
// POST /api/ratings
func (h *RatingHandler) CreateOrUpdate(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.ratingService.Rate(c.Request.Context(), req.Movie, userID.(string), req.Stars)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToRatingResponse(rating))
}

// Get retrieves a single rating
// GET /api/ratings/:rating_id
func (h *RatingHandler) Get(c *gin.Context) {
	id, ok := ratingID(c)
	if !ok {
		return
	}

	rating, err := h.ratingService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToRatingResponse(rating))
}

// List retrieves ratings with pagination
// GET /api/ratings?page=1&page_size=20
func (h *RatingHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	ratings, total, err := h.ratingService.GetAll(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.RatingResponse, 0, len(ratings))
	for i := range ratings {
		resp = append(resp, *dto.FromModelToRatingResponse(&ratings[i]))
	}

	c.JSON(http.StatusOK, dto.NewPaginatedRatingResponse(resp, int(total), page, pageSize))
}

// Delete removes a rating; only the owner or staff may do so
// DELETE /api/ratings/:rating_id
func (h *RatingHandler) Delete(c *gin.Context) {
	id, ok := ratingID(c)
	if !ok {
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	isStaff, _ := c.Get("isStaff")
	staff, _ := isStaff.(bool)

	if err := h.ratingService.Delete(c.Request.Context(), id, userID.(string), staff); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func ratingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("rating_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rating ID"})
		return 0, false
	}
	return id, true
}
