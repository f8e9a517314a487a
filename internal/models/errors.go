package models

import (
	"errors"
	"fmt"
)

// ErrorCode is the value carried in the errorCode field of every API envelope
type ErrorCode string

// Error codes returned by the customer API
const (
	CodeSuccess             ErrorCode = "SUCCESS"
	CodeDuplicateEmail      ErrorCode = "DUPLICATE_EMAIL"
	CodeDuplicatePhone      ErrorCode = "DUPLICATE_PHONE"
	CodeDuplicateAddress    ErrorCode = "DUPLICATE_ADDRESS"
	CodeInternalServerError ErrorCode = "INTERNAL_SERVER_ERROR"
	CodeDataIntegrityError  ErrorCode = "DATA_INTEGRITY_ERROR"
	CodeDeleteError         ErrorCode = "DELETE_ERROR"
	CodeAddressNotFound     ErrorCode = "ADDRESS_NOT_FOUND"
	CodeCustomerNotFound    ErrorCode = "CUSTOMER_NOT_FOUND"
	CodeValidationError     ErrorCode = "VALIDATION_ERROR"
)

// IsSuccess reports whether the code denotes a successful operation.
// An empty code is treated as success because list endpoints omit it.
func (c ErrorCode) IsSuccess() bool {
	return c == "" || c == CodeSuccess
}

// Common error types
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrConflict      = errors.New("operation conflicts with current state")
)

// AppError represents an application-level error with context
type AppError struct {
	Code    ErrorCode
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

// NewAppError creates an AppError with the given code and message
func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// ErrInvalidInput creates a validation error
func ErrInvalidInput(message string) error {
	return &AppError{
		Code:    CodeValidationError,
		Message: message,
	}
}

// ErrCustomerNotFound creates a not found error for a customer
func ErrCustomerNotFound(id int64) error {
	return &AppError{
		Code:    CodeCustomerNotFound,
		Message: fmt.Sprintf("Customer not found with ID: %d", id),
		Err:     ErrNotFound,
	}
}

// ErrAddressNotFound creates a not found error for an address
func ErrAddressNotFound(id int64) error {
	return &AppError{
		Code:    CodeAddressNotFound,
		Message: fmt.Sprintf("Address not found with ID: %d", id),
		Err:     ErrNotFound,
	}
}

// ErrDuplicate creates a conflict error for a unique constraint violation
func ErrDuplicate(code ErrorCode, message string) error {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     ErrAlreadyExists,
	}
}

// CodeOf extracts the error code from err, or INTERNAL_SERVER_ERROR when err
// carries none
func CodeOf(err error) ErrorCode {
	if err == nil {
		return CodeSuccess
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternalServerError
}
