package errors

// Code represents an error code
type Code string

// General error codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeOutOfRange         Code = "OUT_OF_RANGE"
	CodeInternal           Code = "INTERNAL"
	CodeDataLoss           Code = "DATA_LOSS"
)

// Game rule error codes. Every rule-engine refusal carries one of these so
// the caller can react to the exact reason instead of matching messages.
const (
	// Skill tree
	CodeWrongClass          Code = "WRONG_CLASS"
	CodeLevelTooLow         Code = "LEVEL_TOO_LOW"
	CodeMissingPrerequisite Code = "MISSING_PREREQUISITE"
	CodeAlreadyLearned      Code = "ALREADY_LEARNED"
	CodeInsufficientPoints  Code = "INSUFFICIENT_POINTS"

	// Class assignment
	CodeAlreadyAssigned Code = "ALREADY_ASSIGNED"

	// Combat
	CodeOnCooldown Code = "ON_COOLDOWN"
	CodeNotUsable  Code = "NOT_USABLE"

	// Economy
	CodeInsufficientGold Code = "INSUFFICIENT_GOLD"
	CodeOutOfStock       Code = "OUT_OF_STOCK"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Recoverable reports whether an error with this code is a player-input
// failure the caller can render and re-prompt on, as opposed to a broken
// invariant or a storage fault.
func (c Code) Recoverable() bool {
	switch c {
	case CodeInternal, CodeDataLoss, CodeFailedPrecondition:
		return false
	default:
		return true
	}
}
