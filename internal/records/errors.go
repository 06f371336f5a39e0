package records

import (
	"errors"
	"fmt"
)

// Error kinds shared by every layer of the control plane. Callers classify
// failures with errors.Is against these values.
var (
	ErrConfigurationMissing = errors.New("configuration not found")
	ErrUnknownZone          = errors.New("zone not available")
	ErrInvalidRecord        = errors.New("invalid record")
	ErrNotFound             = errors.New("not found")
	ErrInvalidCredential    = errors.New("invalid credential")
	ErrConflict             = errors.New("conflict")
)

// Error carries a user-facing message on top of one of the error kinds.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }

// Errorf builds an *Error of the given kind.
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Invalid is shorthand for an ErrInvalidRecord with a message.
func Invalid(format string, args ...any) error {
	return Errorf(ErrInvalidRecord, format, args...)
}
