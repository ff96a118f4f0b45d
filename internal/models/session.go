package models

import "time"

// Session is the pair of tokens owned by the token store.
type Session struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
}

// LoginRequest is the body of POST /api/v1/authentication/login.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IPAddress string `json:"ipAddress"`
	UserAgent string `json:"userAgent"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	UserID       string     `json:"userId"`
	Email        string     `json:"email"`
	FullName     string     `json:"fullName"`
}

// Session extracts the token pair from the login response.
func (r LoginResponse) Session() Session {
	return Session{AccessToken: r.AccessToken, RefreshToken: r.RefreshToken, ExpiresAt: r.ExpiresAt}
}

// RefreshRequest is the body of POST /api/v1/authentication/refresh and logout.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// RefreshResponse carries the rotated tokens. RefreshToken may be empty when
// the backend does not rotate it.
type RefreshResponse struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
}

// RegisterRequest creates a self-service account.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
}

// ChangePasswordRequest updates the current user's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,nefield=CurrentPassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}
