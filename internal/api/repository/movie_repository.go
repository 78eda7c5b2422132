package repository

import (
	"context"
	"fmt"

	"moviehub/internal/api/models"

	"gorm.io/gorm"
)

type MovieRepository interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Movie, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
	Create(ctx context.Context, m *models.Movie) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

type movieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

func (r *movieRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Movie, int64, error) {
	var list []models.Movie
	var total int64

	// Count total records
	if err := r.db.WithContext(ctx).Model(&models.Movie{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize

	// Ratings are preloaded so the list view can emit rating IDs
	if err := r.db.WithContext(ctx).
		Preload("Ratings").
		Order("id asc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *movieRepository) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).Preload("Ratings").Preload("Ratings.User").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *movieRepository) Create(ctx context.Context, m *models.Movie) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		// leave constraint classification to the service
		return err
	}
	return nil
}

// UpdateFields writes exactly the given columns. Callers never persist a
// movie struct whole, so rows preloaded into its associations cannot be
// re-created by an update.
func (r *movieRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Movie{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the movie; dependent ratings go with it via the
// ON DELETE CASCADE constraint, atomically with the parent delete.
func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Movie{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete movie: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
