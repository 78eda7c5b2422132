package service

import (
	"context"
	"errors"
	"strings"

	"moviehub/internal/api/models"
	"moviehub/internal/api/repository"

	"gorm.io/gorm"
)

type MovieService interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Movie, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
	Create(ctx context.Context, title, description string) (*models.Movie, error)
	Update(ctx context.Context, id int64, title, description string) (*models.Movie, error)
	Patch(ctx context.Context, id int64, title, description *string) (*models.Movie, error)
	Delete(ctx context.Context, id int64) error
	SetPoster(ctx context.Context, id int64, path string) (*models.Movie, error)
	AverageRating(ctx context.Context, id int64) (*float64, error)
}

type movieService struct {
	movieRepo  repository.MovieRepository
	ratingRepo repository.RatingRepository
}

func NewMovieService(movieRepo repository.MovieRepository, ratingRepo repository.RatingRepository) MovieService {
	return &movieService{
		movieRepo:  movieRepo,
		ratingRepo: ratingRepo,
	}
}

func (s *movieService) GetAll(ctx context.Context, page, pageSize int) ([]models.Movie, int64, error) {
	return s.movieRepo.GetAll(ctx, page, pageSize)
}

func (s *movieService) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	movie, err := s.movieRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return movie, nil
}

func (s *movieService) Create(ctx context.Context, title, description string) (*models.Movie, error) {
	if err := validateMovie(title, description); err != nil {
		return nil, err
	}

	movie := &models.Movie{
		Title:       title,
		Description: description,
	}

	if err := s.movieRepo.Create(ctx, movie); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrTitleTaken
		}
		return nil, err
	}
	return movie, nil
}

// Update replaces title and description (PUT semantics). Only the scalar
// columns are written; the ratings hanging off a loaded movie must never
// reach the UPDATE.
func (s *movieService) Update(ctx context.Context, id int64, title, description string) (*models.Movie, error) {
	if err := validateMovie(title, description); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"title":       title,
		"description": description,
	}
	if err := s.movieRepo.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		if repository.IsUniqueViolation(err) {
			return nil, ErrTitleTaken
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Patch applies a partial update (PATCH semantics).
func (s *movieService) Patch(ctx context.Context, id int64, title, description *string) (*models.Movie, error) {
	fields := map[string]interface{}{}
	if title != nil {
		if strings.TrimSpace(*title) == "" {
			return nil, FieldErrors{"title": "title is required"}
		}
		fields["title"] = *title
	}
	if description != nil {
		fields["description"] = *description
	}

	if len(fields) > 0 {
		if err := s.movieRepo.UpdateFields(ctx, id, fields); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMovieNotFound
			}
			if repository.IsUniqueViolation(err) {
				return nil, ErrTitleTaken
			}
			return nil, err
		}
	}

	return s.GetByID(ctx, id)
}

func (s *movieService) Delete(ctx context.Context, id int64) error {
	if err := s.movieRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMovieNotFound
		}
		return err
	}
	return nil
}

// SetPoster records the stored poster path for a movie as a single-column
// update.
func (s *movieService) SetPoster(ctx context.Context, id int64, path string) (*models.Movie, error) {
	if err := s.movieRepo.UpdateFields(ctx, id, map[string]interface{}{"poster": path}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// AverageRating returns the mean of the movie's stars, or nil when the movie
// has no ratings.
func (s *movieService) AverageRating(ctx context.Context, id int64) (*float64, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.ratingRepo.Average(ctx, id)
}

func validateMovie(title, description string) error {
	fe := FieldErrors{}

	if strings.TrimSpace(title) == "" {
		fe["title"] = "title is required"
	} else if len(title) > 100 {
		fe["title"] = "title must be at most 100 characters"
	}

	if len(description) > 500 {
		fe["description"] = "description must be at most 500 characters"
	}

	if len(fe) > 0 {
		return fe
	}
	return nil
}
