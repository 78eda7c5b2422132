package dto

import (
	"moviehub/internal/api/models"
)

// CreateMovieRequest: payload for creating a movie
type CreateMovieRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// UpdateMovieRequest: full replacement (PUT)
type UpdateMovieRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// PatchMovieRequest: partial update (PATCH)
type PatchMovieRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// MovieResponse: list representation; ratings are referenced by id
type MovieResponse struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Ratings       []int64  `json:"ratings"`
	Poster        *string  `json:"poster"`
	AverageRating *float64 `json:"average_rating"`
}

// MovieDetailResponse: detail representation; ratings are expanded
type MovieDetailResponse struct {
	ID            int64            `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Ratings       []RatingResponse `json:"ratings"`
	Poster        *string          `json:"poster"`
	AverageRating *float64         `json:"average_rating"`
}

// FromModelToMovieResponse converts a Movie model to the list DTO. The
// average comes from the preloaded ratings, nil when there are none.
func FromModelToMovieResponse(m *models.Movie) *MovieResponse {
	ids := make([]int64, 0, len(m.Ratings))
	for _, r := range m.Ratings {
		ids = append(ids, r.ID)
	}

	return &MovieResponse{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Ratings:       ids,
		Poster:        m.Poster,
		AverageRating: averageStars(m.Ratings),
	}
}

// FromModelToMovieDetailResponse converts a Movie model to the detail DTO
func FromModelToMovieDetailResponse(m *models.Movie, average *float64) *MovieDetailResponse {
	ratings := make([]RatingResponse, 0, len(m.Ratings))
	for i := range m.Ratings {
		ratings = append(ratings, *FromModelToRatingResponse(&m.Ratings[i]))
	}

	return &MovieDetailResponse{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Ratings:       ratings,
		Poster:        m.Poster,
		AverageRating: average,
	}
}

func averageStars(ratings []models.Rating) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Stars
	}
	avg := float64(sum) / float64(len(ratings))
	return &avg
}
