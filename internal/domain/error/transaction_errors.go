// Package error defines domain-specific errors for the zFinance application.
package error

import (
	"errors"
	"fmt"
)

// Transaction domain errors.
var (
	// ErrValidation is returned when user input is missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrTransactionNotFound is returned when a transaction is not found in the collection.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrStorage is returned when the persistence medium rejects a read or a write.
	ErrStorage = errors.New("storage error")

	// ErrCorruptData is returned when stored content exists but cannot be decoded.
	ErrCorruptData = errors.New("corrupt stored data")

	// ErrInvalidImportMode is returned when an import is requested with an unknown mode.
	ErrInvalidImportMode = errors.New("invalid import mode")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010001"
	ErrCodeMissingDescription       TransactionErrorCode = "TXN-010002"
	ErrCodeMissingCategory          TransactionErrorCode = "TXN-010003"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidTransactionStatus TransactionErrorCode = "TXN-010005"
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010006"
	ErrCodeInvalidFilter            TransactionErrorCode = "TXN-010007"
	ErrCodeInvalidSort              TransactionErrorCode = "TXN-010008"
	ErrCodeInvalidImportData        TransactionErrorCode = "TXN-010009"
	ErrCodeEmptyTransactionIDs      TransactionErrorCode = "TXN-010010"

	// Lookup errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-020001"

	// Storage errors (03XXXX)
	ErrCodeStorageUnavailable TransactionErrorCode = "TXN-030001"
	ErrCodeStorageWriteFailed TransactionErrorCode = "TXN-030002"
	ErrCodeStorageCorrupt     TransactionErrorCode = "TXN-030003"

	// Request errors (04XXXX)
	ErrCodeMalformedRequest TransactionErrorCode = "TXN-040001"
	ErrCodeRateLimited      TransactionErrorCode = "TXN-040002"

	// Programming errors (09XXXX)
	ErrCodeInvalidImportMode TransactionErrorCode = "TXN-090001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewValidationError reports a user-correctable problem with a single field.
func NewValidationError(code TransactionErrorCode, field, message string) *TransactionError {
	return &TransactionError{
		Code:    code,
		Field:   field,
		Message: message,
		Err:     ErrValidation,
	}
}

// NewNotFoundError reports an id absent from the collection.
func NewNotFoundError(id string) *TransactionError {
	return &TransactionError{
		Code:    ErrCodeTransactionNotFound,
		Field:   "id",
		Message: fmt.Sprintf("transaction not found: %s", id),
		Err:     ErrTransactionNotFound,
	}
}

// NewStorageError reports a rejected read or write. The cause is kept for errors.As.
func NewStorageError(code TransactionErrorCode, message string, cause error) *TransactionError {
	err := ErrStorage
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrStorage, cause)
	}
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WrapStorageError turns a store failure into a storage error. Errors that already
// carry a transaction error code are returned unchanged.
func WrapStorageError(code TransactionErrorCode, message string, err error) error {
	var txnErr *TransactionError
	if errors.As(err, &txnErr) {
		return err
	}
	return NewStorageError(code, message, err)
}

// NewCorruptDataError reports stored content that is present but undecodable.
// It is not retryable: reading again returns the same bytes.
func NewCorruptDataError(message string, cause error) *TransactionError {
	err := ErrCorruptData
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrCorruptData, cause)
	}
	return &TransactionError{
		Code:    ErrCodeStorageCorrupt,
		Message: message,
		Err:     err,
	}
}

// NewInvalidModeError reports an import called with an unrecognized mode.
func NewInvalidModeError(mode string) *TransactionError {
	return &TransactionError{
		Code:    ErrCodeInvalidImportMode,
		Field:   "mode",
		Message: fmt.Sprintf("unknown import mode %q", mode),
		Err:     ErrInvalidImportMode,
	}
}

// IsRetryable reports whether the caller may retry the failed operation as is.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStorage)
}
