package apperrors

import (
	"net/http"
)

// Predefined errors for the fichaje domain. Services return these directly;
// handlers map them to HTTP responses via HandleError.

// --- Auth & users ---

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrUserNotFound = New(
	CodeNotFound,
	"auth",
	"User not found",
	http.StatusNotFound,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrStaleToken rejects tokens issued before the user's last password change.
var ErrStaleToken = New(
	CodeInvalidToken,
	"auth",
	"Token no longer valid, please log in again",
	http.StatusUnauthorized,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)

// --- Fichajes ---

var ErrSessionAlreadyOpen = New(
	CodeConflict,
	"fichaje",
	"An open session already exists, clock out first",
	http.StatusConflict,
)

var ErrSessionNotFound = New(
	CodeNotFound,
	"fichaje",
	"Session not found",
	http.StatusNotFound,
)

// ErrSessionAlreadyClosed guards the only legal transition, open to closed.
var ErrSessionAlreadyClosed = New(
	CodeInvalidOperation,
	"fichaje",
	"Session is already clocked out",
	http.StatusConflict,
)

// --- Password recovery ---

var ErrRecoveryRateLimited = New(
	CodeRateLimited,
	"recovery",
	"A recovery code was already issued today, try again tomorrow",
	http.StatusTooManyRequests,
)

var ErrRecoveryCodeInvalid = New(
	CodeValidationFailed,
	"recovery",
	"Invalid recovery code",
	http.StatusBadRequest,
)

var ErrRecoveryCodeExpired = New(
	CodeValidationFailed,
	"recovery",
	"Recovery code has expired",
	http.StatusBadRequest,
)

// ErrEmailDelivery surfaces a failed dispatch; there is no retry.
func ErrEmailDelivery(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "recovery", "Failed to send recovery email", http.StatusInternalServerError)
}
