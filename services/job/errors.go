package job

import (
	"errors"
	"fmt"
)

// Error codes for rejected engine operations. Nothing here is fatal; every
// failure is returned to the caller.
const (
	CodeValidation        = "validation_error"
	CodeInvalidTransition = "invalid_transition"
	CodeNotOwner          = "not_owner"
	CodeNotEligible       = "not_eligible"
	CodeNotValidated      = "not_validated"
	CodeAlreadyAccepted   = "already_accepted"
	CodeOutOfRange        = "out_of_range"
	CodeStaleWrite        = "stale_write"
	CodeNotFound          = "not_found"
)

// Error is a rejected operation with a stable machine-readable code.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, format string, args ...interface{}) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrCode extracts the engine error code, or "" for foreign errors.
func ErrCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsAlreadyAccepted reports whether another provider won the acceptance
// race. Callers should retry against a different job, not this one.
func IsAlreadyAccepted(err error) bool {
	return ErrCode(err) == CodeAlreadyAccepted
}
