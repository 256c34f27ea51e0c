package purchaseorder

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks bad or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden marks a role that may not perform the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound marks a purchase order that does not exist or is not visible to the caller.
	ErrNotFound = errors.New("purchase order not found")
	// ErrOrderNumberExhausted is returned when no free order number was found.
	ErrOrderNumberExhausted = errors.New("could not allocate a unique order number")
)

// Error carries a client-facing message and unwraps to one of the sentinels above.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

func validationf(format string, args ...interface{}) error {
	return &Error{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func forbidden(msg string) error {
	return &Error{kind: ErrForbidden, msg: msg}
}
