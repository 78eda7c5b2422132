package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"moviehub/internal/api/models"
	"moviehub/internal/api/repository"
	"moviehub/internal/auth"

	"gorm.io/gorm"
)

// Passwords shorter than this are rejected on create and update.
const MinPasswordLength = 5

type UserService interface {
	Create(ctx context.Context, email, password, name string) (*models.User, error)
	CreateSuperuser(ctx context.Context, email, password string) (*models.User, error)
	CreateWithRoles(ctx context.Context, email, password, name string, staff, superuser bool) (*models.User, error)
	VerifyCredentials(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, name, password *string) (*models.User, error)
	TouchLastLogin(ctx context.Context, id string) error
	List(ctx context.Context, page, pageSize int) ([]models.User, int64, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Create registers a regular user. The email is normalized before the
// uniqueness check and storage; the credential is stored only as a bcrypt
// hash.
func (s *userService) Create(ctx context.Context, email, password, name string) (*models.User, error) {
	return s.create(ctx, email, password, name, false, false)
}

// CreateSuperuser registers a user with staff and superuser flags set.
func (s *userService) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	return s.create(ctx, email, password, "", true, true)
}

// CreateWithRoles provisions a user with explicit role flags. Used by the
// admin surface; a superuser is always staff as well.
func (s *userService) CreateWithRoles(ctx context.Context, email, password, name string, staff, superuser bool) (*models.User, error) {
	if superuser {
		staff = true
	}
	return s.create(ctx, email, password, name, staff, superuser)
}

func (s *userService) create(ctx context.Context, email, password, name string, staff, superuser bool) (*models.User, error) {
	if err := validateNewUser(email, password); err != nil {
		return nil, err
	}

	email = auth.NormalizeEmail(email)

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:       email,
		Name:        name,
		Password:    hashed,
		IsActive:    true,
		IsStaff:     staff,
		IsSuperuser: superuser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// unique index on email is the source of truth for duplicates
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}

	return user, nil
}

// VerifyCredentials returns the user when the email exists, the account is
// active, and the password matches the stored hash. It returns (nil, nil)
// for any credential mismatch, never revealing which part was wrong.
func (s *userService) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, auth.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// dummy compare so unknown emails take as long as known ones
			auth.VerifyPassword(auth.DummyHash, password)
			return nil, nil
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, nil
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return nil, nil
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a partial update of name and/or password for the
// owning user.
func (s *userService) UpdateProfile(ctx context.Context, id string, name, password *string) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		user.Name = *name
	}
	if password != nil {
		if len(*password) < MinPasswordLength {
			return nil, FieldErrors{"password": "password must be at least 5 characters"}
		}
		hashed, err := auth.HashPassword(*password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// TouchLastLogin records a successful token issuance.
func (s *userService) TouchLastLogin(ctx context.Context, id string) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now()
	user.LastLogin = &now
	return s.userRepo.Update(ctx, user)
}

func (s *userService) List(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, page, pageSize)
}

func validateNewUser(email, password string) error {
	fe := FieldErrors{}

	if strings.TrimSpace(email) == "" {
		fe["email"] = "email is required"
	} else if !strings.Contains(email, "@") {
		fe["email"] = "enter a valid email address"
	}

	if len(password) < MinPasswordLength {
		fe["password"] = "password must be at least 5 characters"
	}

	if len(fe) > 0 {
		return fe
	}
	return nil
}
