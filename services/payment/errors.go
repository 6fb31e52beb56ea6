package payment

import (
	"errors"
	"fmt"
)

const (
	CodeValidation  = "validation_error"
	CodeNotFound    = "not_found"
	CodeNotEligible = "not_eligible"
	CodeStaleWrite  = "stale_write"
)

// Error is a rejected payment-boundary operation with a stable code.
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

// ErrCode extracts the payment error code, or "" for foreign errors.
func ErrCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
