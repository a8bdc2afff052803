package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
// Details carries machine-readable context (e.g. required/available amounts)
// so callers can react programmatically instead of parsing messages.
type AppError struct {
	Code       string            `json:"error_code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	HTTPStatus int               `json:"-"`
	Err        error             `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Ledger (LED) ----

func ErrInvalidIdentity() *AppError {
	return New("LED_001", "Invalid account identity", http.StatusBadRequest)
}

func ErrZeroAmount() *AppError {
	return New("LED_002", "Amount must be greater than zero", http.StatusBadRequest)
}

func ErrOverflow() *AppError {
	return New("LED_003", "Balance or total supply overflow", http.StatusUnprocessableEntity)
}

// ErrInsufficientBalance reports a redemption exceeding the available balance.
// Required and available are decimal token amounts.
func ErrInsufficientBalance(required, available string) *AppError {
	e := New("LED_004", "Insufficient token balance", http.StatusPaymentRequired)
	e.Details = map[string]string{
		"required":  required,
		"available": available,
	}
	return e
}

// ErrArityMismatch reports a batch whose identity and amount sequences differ
// in length.
func ErrArityMismatch(identities, amounts int) *AppError {
	e := New("LED_005", "Batch identities and amounts differ in length", http.StatusBadRequest)
	e.Details = map[string]string{
		"identities": fmt.Sprintf("%d", identities),
		"amounts":    fmt.Sprintf("%d", amounts),
	}
	return e
}

// ---- Roles (ROLE) ----

func ErrAlreadyHasRole(role string) *AppError {
	e := New("ROLE_001", fmt.Sprintf("Identity already holds the %s role", role), http.StatusConflict)
	e.Details = map[string]string{"role": role}
	return e
}

func ErrRoleNotHeld(role string) *AppError {
	e := New("ROLE_002", fmt.Sprintf("Identity does not hold the %s role", role), http.StatusNotFound)
	e.Details = map[string]string{"role": role}
	return e
}

// ---- Program gates (PRG) ----

func ErrUnauthorized() *AppError {
	return New("PRG_001", "Caller lacks the required role", http.StatusForbidden)
}

func ErrSystemPaused() *AppError {
	return New("PRG_002", "Program is paused", http.StatusLocked)
}

// ---- Accounts & Authentication (ACC) ----

func ErrInvalidCredentials() *AppError {
	return New("ACC_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrUsernameExists() *AppError {
	return New("ACC_002", "Username already exists", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("ACC_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrNotFound(entity string) *AppError {
	return New("ACC_004", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("LED_000", message, http.StatusBadRequest)
}
