package dto

import (
	"moviehub/internal/api/models"
)

// CreateRatingRequest for rating a movie; a repeat submission by the same
// user updates the existing rating
type CreateRatingRequest struct {
	Stars int   `json:"stars" binding:"required,min=1,max=5"`
	Movie int64 `json:"movie" binding:"required"`
}

// RatingResponse mirrors the stored rating; movie and user are ids
type RatingResponse struct {
	ID    int64  `json:"id"`
	Stars int    `json:"stars"`
	Movie int64  `json:"movie"`
	User  string `json:"user"`
}

// FromModelToRatingResponse converts a Rating model to RatingResponse DTO
func FromModelToRatingResponse(rating *models.Rating) *RatingResponse {
	return &RatingResponse{
		ID:    rating.ID,
		Stars: rating.Stars,
		Movie: rating.MovieID,
		User:  rating.UserID,
	}
}

// PaginatedRatingResponse for returning paginated ratings
type PaginatedRatingResponse struct {
	Data       []RatingResponse `json:"data"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

// NewPaginatedRatingResponse creates a paginated rating response
func NewPaginatedRatingResponse(data []RatingResponse, total, page, pageSize int) *PaginatedRatingResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedRatingResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
