package primitives

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the category of an Error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvalidLifecycle indicates an operation on an instance that was not started.
	KindInvalidLifecycle
	// KindInvalidPayload indicates an event payload that does not match the event's shape.
	KindInvalidPayload
	// KindMissingNormalizer indicates a prop builder category with no normalizer entry.
	KindMissingNormalizer
	// KindInvalidSpec indicates a malformed machine spec or instance options.
	KindInvalidSpec
)

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrInvalidLifecycle  = errors.New("invalid lifecycle")
	ErrInvalidPayload    = errors.New("invalid payload")
	ErrMissingNormalizer = errors.New("missing normalizer")
	ErrInvalidSpec       = errors.New("invalid machine spec")
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidLifecycle:
		return "lifecycle"
	case KindInvalidPayload:
		return "payload"
	case KindMissingNormalizer:
		return "normalizer"
	case KindInvalidSpec:
		return "spec"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindInvalidLifecycle:
		return ErrInvalidLifecycle
	case KindInvalidPayload:
		return ErrInvalidPayload
	case KindMissingNormalizer:
		return ErrMissingNormalizer
	case KindInvalidSpec:
		return ErrInvalidSpec
	default:
		return nil
	}
}

// Error is the structured error returned by machines, connect functions and normalizers.
type Error struct {
	// Op is the operation that failed (e.g. "checkbox.send").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
}

// NewError builds an *Error from a format string.
func NewError(op string, kind ErrorKind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s [%s]", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}
