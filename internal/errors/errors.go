// Package errors provides the application error type for the khata API.
// Every service-layer error is an *AppError so that handlers can return a
// consistent envelope without leaking internal details to clients.
package errors

import (
	stderrors "errors"
	"net/http"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Retryable  bool   `json:"retryable,omitempty"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches two AppErrors by code, so a wrapped or re-messaged error still
// matches its sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Retryable:  sentinel.Retryable,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Retryable:  sentinel.Retryable,
		Internal:   sentinel.Internal,
	}
}

// As returns err as an *AppError when it is one.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Authentication & authorization errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrForbidden    = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput        = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound            = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer      = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrConcurrencyConflict = &AppError{Code: "CONCURRENCY_CONFLICT", Message: "The records are being modified by another request, please retry", StatusCode: http.StatusConflict, Retryable: true}
)

// Company and contact errors.
var (
	ErrCompanyNotFound = &AppError{Code: "COMPANY_NOT_FOUND", Message: "Company not found", StatusCode: http.StatusNotFound}
	ErrContactNotFound = &AppError{Code: "CONTACT_NOT_FOUND", Message: "Contact not found", StatusCode: http.StatusNotFound}
)

// Bank account errors.
var (
	ErrBankAccountNotFound = &AppError{Code: "BANK_ACCOUNT_NOT_FOUND", Message: "Bank account not found", StatusCode: http.StatusNotFound}
	ErrTransferNotFound    = &AppError{Code: "TRANSFER_NOT_FOUND", Message: "Transfer not found", StatusCode: http.StatusNotFound}
	ErrInsufficientBalance = &AppError{Code: "INSUFFICIENT_BALANCE", Message: "Insufficient bank account balance", StatusCode: http.StatusBadRequest}
	ErrSameAccountTransfer = &AppError{Code: "SAME_ACCOUNT_TRANSFER", Message: "Cannot transfer to the same account", StatusCode: http.StatusBadRequest}
)

// Settlement errors.
var (
	ErrTransactionNotFound          = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidAdjustmentType        = &AppError{Code: "INVALID_ADJUSTMENT_TYPE", Message: "Unsupported adjustment type", StatusCode: http.StatusBadRequest}
	ErrInvalidAllocation            = &AppError{Code: "INVALID_ALLOCATION", Message: "Invalid payment allocation", StatusCode: http.StatusBadRequest}
	ErrAllocationExceedsOutstanding = &AppError{Code: "ALLOCATION_EXCEEDS_OUTSTANDING", Message: "Allocated amount exceeds the outstanding amount", StatusCode: http.StatusBadRequest}
)

// Payment errors.
var (
	ErrPaymentNotFound = &AppError{Code: "PAYMENT_NOT_FOUND", Message: "Payment not found", StatusCode: http.StatusNotFound}
	ErrPaymentDeleted  = &AppError{Code: "PAYMENT_DELETED", Message: "Payment has been deleted", StatusCode: http.StatusConflict}
)
