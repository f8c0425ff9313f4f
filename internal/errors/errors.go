package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with code, message, and metadata
type Error struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the target error is of the same type
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// WithMeta adds metadata to the error
func (e *Error) WithMeta(key string, value interface{}) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]interface{})
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with a formatted message
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error, preserving its code if it's an Error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Code:    existingErr.Code,
			Message: message,
			Cause:   err,
			Meta:    existingErr.Meta,
		}
	}

	return &Error{
		Code:    CodeInternal,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with a formatted message
func Wrapf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	return &Error{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Constructor functions for common error types

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a not found error with formatted message
func NotFoundf(format string, args ...interface{}) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates an invalid argument error with formatted message
func InvalidArgumentf(format string, args ...interface{}) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// AlreadyExists creates an already exists error
func AlreadyExists(message string) *Error {
	return New(CodeAlreadyExists, message)
}

// AlreadyExistsf creates an already exists error with formatted message
func AlreadyExistsf(format string, args ...interface{}) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// Internal creates an internal error
func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// Internalf creates an internal error with formatted message
func Internalf(format string, args ...interface{}) *Error {
	return Newf(CodeInternal, format, args...)
}

// FailedPrecondition creates a failed precondition error
func FailedPrecondition(message string) *Error {
	return New(CodeFailedPrecondition, message)
}

// FailedPreconditionf creates a failed precondition error with formatted message
func FailedPreconditionf(format string, args ...interface{}) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}

// OutOfRange creates an out of range error
func OutOfRange(message string) *Error {
	return New(CodeOutOfRange, message)
}

// OutOfRangef creates an out of range error with formatted message
func OutOfRangef(format string, args ...interface{}) *Error {
	return Newf(CodeOutOfRange, format, args...)
}

// Constructor functions for game rule errors

// WrongClassf creates a wrong class error with formatted message
func WrongClassf(format string, args ...interface{}) *Error {
	return Newf(CodeWrongClass, format, args...)
}

// LevelTooLowf creates a level requirement error with formatted message
func LevelTooLowf(format string, args ...interface{}) *Error {
	return Newf(CodeLevelTooLow, format, args...)
}

// MissingPrerequisitef creates a missing prerequisite error with formatted message
func MissingPrerequisitef(format string, args ...interface{}) *Error {
	return Newf(CodeMissingPrerequisite, format, args...)
}

// AlreadyLearnedf creates an already learned error with formatted message
func AlreadyLearnedf(format string, args ...interface{}) *Error {
	return Newf(CodeAlreadyLearned, format, args...)
}

// InsufficientPointsf creates an insufficient skill points error with formatted message
func InsufficientPointsf(format string, args ...interface{}) *Error {
	return Newf(CodeInsufficientPoints, format, args...)
}

// AlreadyAssignedf creates an already assigned error with formatted message
func AlreadyAssignedf(format string, args ...interface{}) *Error {
	return Newf(CodeAlreadyAssigned, format, args...)
}

// OnCooldownf creates an on cooldown error with formatted message
func OnCooldownf(format string, args ...interface{}) *Error {
	return Newf(CodeOnCooldown, format, args...)
}

// NotUsablef creates a not usable error with formatted message
func NotUsablef(format string, args ...interface{}) *Error {
	return Newf(CodeNotUsable, format, args...)
}

// InsufficientGoldf creates an insufficient gold error with formatted message
func InsufficientGoldf(format string, args ...interface{}) *Error {
	return Newf(CodeInsufficientGold, format, args...)
}

// OutOfStockf creates an out of stock error with formatted message
func OutOfStockf(format string, args ...interface{}) *Error {
	return Newf(CodeOutOfStock, format, args...)
}
