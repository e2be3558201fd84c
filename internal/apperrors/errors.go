package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
// Storage adapters return it for unique constraint violations.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the request conflicts with the current state of a resource.
var ErrConflict = errors.New("conflict")

// ErrInternal indicates an unexpected failure.
var ErrInternal = errors.New("internal error")

// Validation class.
var (
	ErrAllocationExceedsOutstanding = fmt.Errorf("%w: allocation exceeds outstanding amount", ErrValidation)
	ErrAlreadyFullyPaid             = fmt.Errorf("%w: document is already fully paid", ErrValidation)
)

// Conflict class.
var (
	ErrAlreadyPosted       = fmt.Errorf("%w: document already posted", ErrConflict)
	ErrAlreadyReversed     = fmt.Errorf("%w: entry already reversed", ErrConflict)
	ErrIdempotencyConflict = fmt.Errorf("%w: idempotency key reused with a different request", ErrConflict)
	ErrPeriodLocked        = fmt.Errorf("%w: period is locked", ErrConflict)
	ErrInvalidTransition   = fmt.Errorf("%w: invalid state transition", ErrConflict)
)

// ErrInvariant marks violations of ledger invariants. These are bugs, never user errors.
var ErrInvariant = errors.New("ledger invariant violated")

// Invariant class.
var (
	ErrLedgerImbalance    = fmt.Errorf("%w: debits and credits do not balance", ErrInvariant)
	ErrInvariantViolation = fmt.Errorf("%w: duplicate active entry for source", ErrInvariant)
)

// AppError carries an HTTP-ish status code alongside a message and the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError. A nil err is allowed.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError wraps ErrNotFound with the entity name and id.
func NewNotFoundError(entity, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, entity, id)
}

// NewValidationError wraps ErrValidation with a formatted message.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NewConflictError wraps ErrConflict with a formatted message.
func NewConflictError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// HTTPStatus maps an error to the HTTP status of its class.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvariant):
		return http.StatusInternalServerError
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
