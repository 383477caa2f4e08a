package http

import (
	"time"

	"github.com/nimblecal/meeting-booking-backend/internal/user"
)

// UserResponse is the shape of user data returned in API responses.
type UserResponse struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	DisplayName    *string    `json:"display_name"`
	CreatedAt      time.Time  `json:"created_at"`
	LastLoginAt    *time.Time `json:"last_login_at"`
	IsActive       bool       `json:"is_active"`
	CalendarLinked bool       `json:"calendar_linked"`
}

// NewUserResponse converts domain user.User to UserResponse used by the API.
// Token material never leaves the server.
func NewUserResponse(u *user.User) UserResponse {
	createdAt := u.CreatedAt
	var lastLoginAt *time.Time
	if u.LastLoginAt != nil {
		ll := *u.LastLoginAt
		lastLoginAt = &ll
	}

	return UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		DisplayName:    u.DisplayName,
		CreatedAt:      createdAt,
		LastLoginAt:    lastLoginAt,
		IsActive:       u.IsActive,
		CalendarLinked: u.HasCalendarToken(),
	}
}

// RegisterRequest defines the payload for user registration.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required"`
}

// Validate performs custom validation for RegisterRequest.
func (r *RegisterRequest) Validate() error {
	return nil
}

// LoginRequest defines the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Validate performs custom validation for LoginRequest.
func (r *LoginRequest) Validate() error {
	return nil
}

// LinkCalendarRequest carries the OAuth credential set obtained from the
// Google consent flow.
type LinkCalendarRequest struct {
	Provider     string    `json:"provider" binding:"required,oneof=google"`
	ProviderUID  string    `json:"provider_uid" binding:"required"`
	AccessToken  string    `json:"access_token" binding:"required"`
	RefreshToken string    `json:"refresh_token"`
	Expiry       time.Time `json:"expiry" binding:"required"`
}

// Validate performs custom validation for LinkCalendarRequest.
func (r *LinkCalendarRequest) Validate() error {
	return nil
}

// LoginResponse returns the token and user info.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// MeResponse returns the current user info.
type MeResponse struct {
	User UserResponse `json:"user"`
}
