package errors

import (
	stderrors "errors"
	"net/http"
)

// Authentication-specific error types
const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeSessionInvalid     ErrorType = "session_invalid"
	ErrorTypeRateLimited        ErrorType = "rate_limited"
)

// AuthError wraps an AppError raised at the login/session boundary.
type AuthError struct {
	*AppError
	// SecurityEvent marks failures worth tracking for brute force detection
	SecurityEvent bool
}

func (e *AuthError) Error() string {
	return e.AppError.Error()
}

func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewInvalidCredentialsError does not reveal whether the email or the password was wrong.
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidCredentials,
			Message: "invalid email or password",
			Code:    http.StatusUnauthorized,
		},
		SecurityEvent: true,
	}
}

func NewSessionInvalidError(details ...string) *AuthError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeSessionInvalid,
			Message: "session is missing or expired",
			Code:    http.StatusUnauthorized,
			Details: detail,
		},
	}
}

func NewRateLimitedError() *AppError {
	return &AppError{
		Type:    ErrorTypeRateLimited,
		Message: "too many attempts, please try again later",
		Code:    http.StatusTooManyRequests,
	}
}

func IsInvalidCredentialsError(err error) bool {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr.Type == ErrorTypeInvalidCredentials
	}
	return false
}
