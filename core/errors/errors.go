package errors

import "fmt"

type ErrorCode string

const (
	// Generic codes
	ErrInternalServer             ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrInvalidInput               ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData         ErrorCode = "INVALID_REQUEST_DATA"
	ErrNotFound                   ErrorCode = "NOT_FOUND"
	ErrAlreadyExists              ErrorCode = "ALREADY_EXISTS"
	ErrUnauthorized               ErrorCode = "UNAUTHORIZED"
	ErrForbidden                  ErrorCode = "FORBIDDEN"
	ErrTokenExpired               ErrorCode = "TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "MISSING_AUTHORIZATION_HEADER"

	// Booking domain codes
	ErrSlotsUnavailable       ErrorCode = "SLOTS_UNAVAILABLE"
	ErrInvalidStateTransition ErrorCode = "INVALID_STATE_TRANSITION"
	ErrQuotaExceeded          ErrorCode = "QUOTA_EXCEEDED"
	ErrSubscriptionInactive   ErrorCode = "SUBSCRIPTION_INACTIVE"
)

// AppError is the service-layer error type; controllers translate the code
// into an HTTP status, the message is user-facing.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
	Details any       `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewAppErrorWithDetails attaches a payload the caller can act on, e.g. the
// conflicting slot ids or the exhausted quota dimension.
func NewAppErrorWithDetails(code ErrorCode, message string, err error, details any) *AppError {
	return &AppError{Code: code, Message: message, Err: err, Details: details}
}
