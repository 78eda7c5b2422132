package service

import (
	"context"
	"errors"
	"log/slog"

	"moviehub/internal/api/models"
	"moviehub/internal/api/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService issues and validates the opaque bearer tokens. A user holds at
// most one active token; repeated logins return the same key until the token
// is revoked.
type AuthService interface {
	IssueToken(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, key string) (*models.User, error)
	RevokeToken(ctx context.Context, userID string) error
}

type authService struct {
	users     UserService
	tokenRepo repository.TokenRepository
	cache     *repository.TokenCache // nil disables caching
	logger    *slog.Logger
}

func NewAuthService(users UserService, tokenRepo repository.TokenRepository, cache *repository.TokenCache, logger *slog.Logger) AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		users:     users,
		tokenRepo: tokenRepo,
		cache:     cache,
		logger:    logger,
	}
}

// IssueToken verifies the credentials and returns the user's token, creating
// one on first login.
func (s *authService) IssueToken(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.VerifyCredentials(ctx, email, password)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokenRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
		token = &models.AuthToken{
			ID:     uuid.New().String(),
			UserID: user.ID,
			Key:    uuid.New().String(),
		}
		if err := s.tokenRepo.Create(ctx, token); err != nil {
			// concurrent first login: the unique index on user_id means the
			// other writer won, reuse its token
			if repository.IsUniqueViolation(err) {
				token, err = s.tokenRepo.FindByUserID(ctx, user.ID)
				if err != nil {
					return "", err
				}
			} else {
				return "", err
			}
		}
	}

	s.cacheSet(ctx, token.Key, user.ID)

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("last_login_update_failed", "user_id", user.ID, "error", err)
	}

	return token.Key, nil
}

// Authenticate resolves a token key to its user. Lookup is Redis-first with
// a Postgres fallback that re-warms the cache.
func (s *authService) Authenticate(ctx context.Context, key string) (*models.User, error) {
	if key == "" {
		return nil, ErrInvalidToken
	}

	if s.cache != nil {
		if userID, err := s.cache.Get(ctx, key); err == nil {
			return s.activeUser(ctx, userID)
		}
		// cache miss or Redis down, fall through to Postgres
	}

	token, err := s.tokenRepo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	s.cacheSet(ctx, token.Key, token.UserID)

	return s.activeUser(ctx, token.UserID)
}

// RevokeToken deletes the user's token and evicts it from the cache. The
// next IssueToken call mints a fresh key.
func (s *authService) RevokeToken(ctx context.Context, userID string) error {
	token, err := s.tokenRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if err := s.tokenRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, token.Key); err != nil {
			s.logger.Warn("token_cache_evict_failed", "error", err)
		}
	}

	return nil
}

func (s *authService) activeUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func (s *authService) cacheSet(ctx context.Context, key, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, userID); err != nil {
		// cache is best-effort; Postgres remains the source of truth
		s.logger.Warn("token_cache_write_failed", "error", err)
	}
}
