package repository

import (
	"context"

	"moviehub/internal/api/models"

	"gorm.io/gorm"
)

// TokenRepository handles database operations for auth tokens
type TokenRepository interface {
	Create(ctx context.Context, token *models.AuthToken) error
	FindByKey(ctx context.Context, key string) (*models.AuthToken, error)
	FindByUserID(ctx context.Context, userID string) (*models.AuthToken, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

// tokenRepository is the GORM implementation of TokenRepository
type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new instance of TokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.AuthToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// FindByKey looks up the token by its opaque key string
func (r *tokenRepository) FindByKey(ctx context.Context, key string) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// FindByUserID returns the user's active token, if any. The unique index on
// user_id guarantees at most one row.
func (r *tokenRepository) FindByUserID(ctx context.Context, userID string) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// DeleteByUserID revokes the user's token; the next issuance mints a new key
func (r *tokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error
}
