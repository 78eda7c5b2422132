package repository

import (
	"context"
	"database/sql"

	"moviehub/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	Upsert(ctx context.Context, rating *models.Rating) error
	GetByID(ctx context.Context, id int64) (*models.Rating, error)
	GetByUserAndMovie(ctx context.Context, userID string, movieID int64) (*models.Rating, error)
	GetAll(ctx context.Context, page, pageSize int) ([]models.Rating, int64, error)
	Delete(ctx context.Context, id int64) error
	Average(ctx context.Context, movieID int64) (*float64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert inserts the rating, or updates the existing row's stars when one
// already exists for (movie_id, user_id). A single INSERT ... ON CONFLICT
// statement keeps the one-rating-per-user-per-movie invariant intact even
// when two first ratings race across processes.
func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "movie_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"stars", "updated_at"}),
	}).Create(rating).Error
}

func (r *ratingRepository) GetByID(ctx context.Context, id int64) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).First(&rating, id).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// GetByUserAndMovie retrieves a user's rating for a specific movie
func (r *ratingRepository) GetByUserAndMovie(ctx context.Context, userID string, movieID int64) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// GetAll retrieves ratings with pagination
func (r *ratingRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Rating, int64, error) {
	var ratings []models.Rating
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Rating{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&ratings).Error; err != nil {
		return nil, 0, err
	}

	return ratings, total, nil
}

func (r *ratingRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Rating{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Average computes the arithmetic mean of stars for a movie. The pointer is
// nil when the movie has no ratings; zero would read as a rated-but-poor
// movie.
func (r *ratingRepository) Average(ctx context.Context, movieID int64) (*float64, error) {
	row := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("AVG(stars)").
		Where("movie_id = ?", movieID).
		Row()

	var avg sql.NullFloat64
	if err := row.Scan(&avg); err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}
