package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

const (
	ErrCodeSystemError      = "system_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeAlreadyExists    = "already_exists"
	ErrCodeConflict         = "conflict"
	ErrCodeValidation       = "validation_error"
	ErrCodeInvalidOperation = "invalid_operation"
	ErrCodePermissionDenied = "permission_denied"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeTooManyRequests  = "too_many_requests"
	ErrCodeDatabase         = "database_error"
)

// Sentinel kinds. Builders mark errors with one of these; the HTTP layer
// turns the kind into a status code.
var (
	ErrNotFound         = kind(ErrCodeNotFound, "resource not found", http.StatusNotFound)
	ErrAlreadyExists    = kind(ErrCodeAlreadyExists, "resource already exists", http.StatusConflict)
	ErrConflict         = kind(ErrCodeConflict, "conflicting concurrent update", http.StatusConflict)
	ErrValidation       = kind(ErrCodeValidation, "validation error", http.StatusBadRequest)
	ErrInvalidOperation = kind(ErrCodeInvalidOperation, "invalid operation", http.StatusBadRequest)
	ErrPermissionDenied = kind(ErrCodePermissionDenied, "permission denied", http.StatusForbidden)
	ErrUnauthorized     = kind(ErrCodeUnauthorized, "unauthorized", http.StatusUnauthorized)
	ErrTooManyRequests  = kind(ErrCodeTooManyRequests, "too many requests", http.StatusTooManyRequests)
	ErrDatabase         = kind(ErrCodeDatabase, "database error", http.StatusInternalServerError)
	ErrSystem           = kind(ErrCodeSystemError, "system error", http.StatusInternalServerError)

	// ordered so the first match wins in HTTPStatusFromErr
	kinds = []*InternalError{
		ErrValidation,
		ErrInvalidOperation,
		ErrNotFound,
		ErrAlreadyExists,
		ErrConflict,
		ErrPermissionDenied,
		ErrUnauthorized,
		ErrTooManyRequests,
		ErrDatabase,
		ErrSystem,
	}
)

// InternalError is an error kind with its HTTP status
type InternalError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func kind(code, message string, status int) *InternalError {
	return &InternalError{Code: code, Message: message, Status: status}
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is compares kinds by code so a copied kind still matches its sentinel
func (e *InternalError) Is(target error) bool {
	if t, ok := target.(*InternalError); ok {
		return e.Code == t.Code
	}
	return target != nil && errors.Is(e.Err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func IsNotFound(err error) bool         { return errors.Is(err, ErrNotFound) }
func IsAlreadyExists(err error) bool    { return errors.Is(err, ErrAlreadyExists) }
func IsValidation(err error) bool       { return errors.Is(err, ErrValidation) }
func IsInvalidOperation(err error) bool { return errors.Is(err, ErrInvalidOperation) }
func IsPermissionDenied(err error) bool { return errors.Is(err, ErrPermissionDenied) }
func IsUnauthorized(err error) bool     { return errors.Is(err, ErrUnauthorized) }

// IsConflict reports a lost race: a consumed-twice assignment or a
// duplicate insert of the same natural key.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrAlreadyExists)
}

// HTTPStatusFromErr maps the kind err is marked with to a status code
func HTTPStatusFromErr(err error) int {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k.Status
		}
	}
	return http.StatusInternalServerError
}
