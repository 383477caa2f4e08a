package user

import (
	"errors"
	"time"

	"github.com/nimblecal/meeting-booking-backend/internal/calendar"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrNoCalendarToken    = errors.New("user has no linked calendar account")
)

// User represents a user in the system. The OAuth columns hold the Google
// credentials obtained when the user linked their calendar account.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	Provider     *string
	ProviderUID  *string
	AccessToken  *string
	RefreshToken *string
	TokenExpiry  *time.Time
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
}

// HasCalendarToken reports whether the user has linked a calendar account.
func (u *User) HasCalendarToken() bool {
	return u.AccessToken != nil && *u.AccessToken != ""
}

// CalendarToken returns the user's stored OAuth token in the shape the
// calendar client expects. Zero-valued when no account is linked.
func (u *User) CalendarToken() calendar.UserToken {
	var t calendar.UserToken
	if u.AccessToken != nil {
		t.AccessToken = *u.AccessToken
	}
	if u.RefreshToken != nil {
		t.RefreshToken = *u.RefreshToken
	}
	if u.TokenExpiry != nil {
		t.Expiry = *u.TokenExpiry
	}
	return t
}

// OAuthTokens is the credential set stored after an OAuth exchange.
type OAuthTokens struct {
	Provider     string
	ProviderUID  string
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}
