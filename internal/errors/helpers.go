package errors

import (
	"errors"
)

// As is a wrapper around errors.As that works with our Error type
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode extracts the error code from an error
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}

	return CodeInternal
}

// GetMessage extracts the user-friendly message from an error
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}

	return err.Error()
}

// IsRecoverable reports whether the caller can render the error and
// re-prompt without corrupting engine state.
func IsRecoverable(err error) bool {
	return GetCode(err).Recoverable()
}

// Type checking helpers

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return GetCode(err) == CodeAlreadyExists
}

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool {
	return GetCode(err) == CodeInternal
}

// IsFailedPrecondition checks if an error is a failed precondition error
func IsFailedPrecondition(err error) bool {
	return GetCode(err) == CodeFailedPrecondition
}

// IsWrongClass checks if an error is a wrong class error
func IsWrongClass(err error) bool {
	return GetCode(err) == CodeWrongClass
}

// IsLevelTooLow checks if an error is a level requirement error
func IsLevelTooLow(err error) bool {
	return GetCode(err) == CodeLevelTooLow
}

// IsMissingPrerequisite checks if an error is a missing prerequisite error
func IsMissingPrerequisite(err error) bool {
	return GetCode(err) == CodeMissingPrerequisite
}

// IsAlreadyLearned checks if an error is an already learned error
func IsAlreadyLearned(err error) bool {
	return GetCode(err) == CodeAlreadyLearned
}

// IsAlreadyAssigned checks if an error is an already assigned error
func IsAlreadyAssigned(err error) bool {
	return GetCode(err) == CodeAlreadyAssigned
}

// IsOnCooldown checks if an error is an on cooldown error
func IsOnCooldown(err error) bool {
	return GetCode(err) == CodeOnCooldown
}

// IsInsufficientPoints checks if an error is an insufficient skill points error
func IsInsufficientPoints(err error) bool {
	return GetCode(err) == CodeInsufficientPoints
}

// IsNotUsable checks if an error is a not usable error
func IsNotUsable(err error) bool {
	return GetCode(err) == CodeNotUsable
}

// IsInsufficientGold checks if an error is an insufficient gold error
func IsInsufficientGold(err error) bool {
	return GetCode(err) == CodeInsufficientGold
}

// IsOutOfStock checks if an error is an out of stock error
func IsOutOfStock(err error) bool {
	return GetCode(err) == CodeOutOfStock
}
