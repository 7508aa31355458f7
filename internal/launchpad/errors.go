package launchpad

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownDialect is returned for a dialect name that has no decode table.
	ErrUnknownDialect = errors.New("unknown dialect")

	// ErrUnknownPolicy is returned for a policy name other than fail-fast or degrade.
	ErrUnknownPolicy = errors.New("unknown failure policy")

	// ErrInvalidMessage means the bytes are not something this dialect sends.
	ErrInvalidMessage = errors.New("invalid message")

	// ErrMalformedSysEx means a sysex reply was recognised by its header but
	// its length, terminator or payload is wrong.
	ErrMalformedSysEx = errors.New("malformed sysex")
)

// DecodeError describes a buffer the decoder refused.
type DecodeError struct {
	Dialect Dialect
	Data    []byte
	Reason  string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v: %s (% X)", e.Dialect, e.Err, e.Reason, e.Data)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// invalidf builds an ErrInvalidMessage failure; the dialect and data are
// filled in by the decoder.
func invalidf(format string, args ...any) *DecodeError {
	return &DecodeError{Err: ErrInvalidMessage, Reason: fmt.Sprintf(format, args...)}
}

func malformedf(format string, args ...any) *DecodeError {
	return &DecodeError{Err: ErrMalformedSysEx, Reason: fmt.Sprintf(format, args...)}
}
