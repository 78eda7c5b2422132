package service

import (
	"context"
	"errors"

	"moviehub/internal/api/models"
	"moviehub/internal/api/repository"

	"gorm.io/gorm"
)

type RatingService interface {
	Rate(ctx context.Context, movieID int64, userID string, stars int) (*models.Rating, error)
	GetByID(ctx context.Context, id int64) (*models.Rating, error)
	GetAll(ctx context.Context, page, pageSize int) ([]models.Rating, int64, error)
	Delete(ctx context.Context, id int64, requesterID string, isStaff bool) error
	Average(ctx context.Context, movieID int64) (*float64, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	movieRepo  repository.MovieRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, movieRepo repository.MovieRepository) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		movieRepo:  movieRepo,
	}
}

// Rate records the user's rating for a movie. A second rating by the same
// user for the same movie updates the existing row; the storage-layer upsert
// keeps that true under concurrent writers.
func (s *ratingService) Rate(ctx context.Context, movieID int64, userID string, stars int) (*models.Rating, error) {
	if stars < 1 || stars > 5 {
		return nil, FieldErrors{"stars": "stars must be between 1 and 5"}
	}

	if _, err := s.movieRepo.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	rating := &models.Rating{
		MovieID: movieID,
		UserID:  userID,
		Stars:   stars,
	}

	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		// a missing user surfaces as a foreign key violation
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrUserNotFound
		}
		if repository.IsCheckViolation(err) {
			return nil, FieldErrors{"stars": "stars must be between 1 and 5"}
		}
		return nil, err
	}

	// reload so the update path carries the row's real id and timestamps
	return s.ratingRepo.GetByUserAndMovie(ctx, userID, movieID)
}

func (s *ratingService) GetByID(ctx context.Context, id int64) (*models.Rating, error) {
	rating, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	return rating, nil
}

func (s *ratingService) GetAll(ctx context.Context, page, pageSize int) ([]models.Rating, int64, error) {
	return s.ratingRepo.GetAll(ctx, page, pageSize)
}

// Delete removes a rating. Only the rating's owner or staff may delete it.
func (s *ratingService) Delete(ctx context.Context, id int64, requesterID string, isStaff bool) error {
	rating, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if rating.UserID != requesterID && !isStaff {
		return ErrNotOwner
	}

	if err := s.ratingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRatingNotFound
		}
		return err
	}
	return nil
}

func (s *ratingService) Average(ctx context.Context, movieID int64) (*float64, error) {
	if _, err := s.movieRepo.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return s.ratingRepo.Average(ctx, movieID)
}
