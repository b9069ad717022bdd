package dto

import "fichaje_backend/internal/models"

type RegisterRequest struct {
	Name       string  `json:"name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=6"`
	HourlyRate float64 `json:"hourly_rate" validate:"gte=0"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is shared by register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UpdateProfileRequest patches the profile. One optional slot per mutable
// field; absent fields stay untouched. PhotoURL accepts an empty string to
// clear the photo, Name is only applied when non-empty.
type UpdateProfileRequest struct {
	Name       *string  `json:"name"`
	Email      *string  `json:"email" validate:"omitempty,email"`
	Password   *string  `json:"password" validate:"omitempty,min=6"`
	HourlyRate *float64 `json:"hourly_rate" validate:"omitempty,gte=0"`
	PhotoURL   *string  `json:"photo_url"`
}

type UpdateProfileResponse struct {
	User            *models.User `json:"user"`
	Token           string       `json:"token,omitempty"`
	PasswordChanged bool         `json:"password_changed"`
	EmailChanged    bool         `json:"email_changed"`
}
