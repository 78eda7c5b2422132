package dto

import (
	"time"

	"moviehub/internal/api/models"
)

// Data Transfer Objects for user accounts and authentication

// CreateUserRequest: payload for user registration
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

// TokenRequest: payload for obtaining an auth token
type TokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse: the opaque bearer token
type TokenResponse struct {
	Token string `json:"token"`
}

// UpdateMeRequest: partial profile update for the authenticated user
type UpdateMeRequest struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UserResponse: user representation without the credential
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

// MeResponse: the authenticated user's own profile
type MeResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// FromModelToUserResponse converts a User model to UserResponse DTO
func FromModelToUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		IsActive:  user.IsActive,
		IsStaff:   user.IsStaff,
		CreatedAt: user.CreatedAt,
	}
}

// FromModelToMeResponse converts a User model to MeResponse DTO
func FromModelToMeResponse(user *models.User) *MeResponse {
	return &MeResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

// AdminCreateUserRequest: administrative provisioning with role flags
type AdminCreateUserRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Name        string `json:"name"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}
