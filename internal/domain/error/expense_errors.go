// Package error defines domain-specific errors for the Expense Tracker application.
package error

import "errors"

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense is not found or not owned
	// by the requesting user.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrInvalidAmount is returned when the expense amount is not positive.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrCategoryNotOwned is returned when the referenced category does not
	// exist or belongs to another user.
	ErrCategoryNotOwned = errors.New("category does not belong to user")

	// ErrDescriptionTooLong is returned when the description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount        ExpenseErrorCode = "EXP-010001"
	ErrCodeDescriptionTooLong   ExpenseErrorCode = "EXP-010002"
	ErrCodeMissingExpenseFields ExpenseErrorCode = "EXP-010003"

	// Reference errors (02XXXX)
	ErrCodeExpenseNotFound  ExpenseErrorCode = "EXP-020001"
	ErrCodeCategoryNotOwned ExpenseErrorCode = "EXP-020002"
)

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
