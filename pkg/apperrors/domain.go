package apperrors

import (
	"net/http"
)

// Predefined domain errors. Each one carries the HTTP status the boundary
// answers with, so services never talk in status codes directly.

// --- Auth & users ---

// ErrEmailAlreadyExists - signup with a registered email. 400, not 409:
// the API treats it as a plain validation failure of the signup payload.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already registered",
	http.StatusBadRequest,
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

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

var ErrInvalidTheme = New(
	CodeValidationFailed,
	"user",
	"Invalid theme. Allowed values: LIGHT or DARK",
	http.StatusBadRequest,
)

// --- Movies ---

var ErrMovieNotFound = New(
	CodeNotFound,
	"movie",
	"Movie not found",
	http.StatusNotFound,
)

// ErrMovieAccessDenied - draft or private movie requested by a non-owner.
var ErrMovieAccessDenied = New(
	CodeForbidden,
	"movie",
	"You do not have access to this movie",
	http.StatusForbidden,
)

// ErrNotMovieOwner - mutation attempted by a user who does not own the row.
var ErrNotMovieOwner = New(
	CodeForbidden,
	"movie",
	"Only the owner can modify this movie",
	http.StatusForbidden,
)

// --- Password reset ---

var ErrResetCodeNotFound = New(
	CodeNotFound,
	"password_reset",
	"No active reset code for this email",
	http.StatusNotFound,
)

var ErrResetCodeMismatch = New(
	CodeForbidden,
	"password_reset",
	"Invalid reset code",
	http.StatusForbidden,
)

var ErrResetCodeExpired = New(
	CodeGone,
	"password_reset",
	"Reset code has expired",
	http.StatusGone,
)

// ErrResetCodeInvalid - no unused record matches email+code on consume.
var ErrResetCodeInvalid = New(
	CodeValidationFailed,
	"password_reset",
	"Reset code is invalid or already used",
	http.StatusBadRequest,
)
