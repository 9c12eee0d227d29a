package fetch

import (
	"errors"
	"fmt"
)

// Kind classifies why a fetch failed.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindTransport
	KindData
)

const UnknownMessage = "unknown error"

// ErrSkip returned by a validator drops the submission without touching state.
var ErrSkip = errors.New("fetch: submission skipped")

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindData:
		return "data"
	default:
		return "unknown"
	}
}

// Error carries the user-facing message for a failed fetch. Err keeps the
// underlying cause for logs and is never shown to the user.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Transport(msg string, err error) error {
	return &Error{Kind: KindTransport, Message: msg, Err: err}
}

func Data(msg string, err error) error {
	return &Error{Kind: KindData, Message: msg, Err: err}
}

// KindOf reports the kind of err, KindUnknown when it is not an *Error.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// Message converts err into the single string shown to the user.
func Message(err error) string {
	var fe *Error
	if errors.As(err, &fe) && fe.Message != "" {
		return fe.Message
	}
	return UnknownMessage
}
