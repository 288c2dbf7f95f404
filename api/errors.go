package api

import "fmt"

// Kind classifies the recoverable errors the store and its collaborators
// raise (spec §7). Kind is deliberately not a Go error type by itself: it is
// carried inside Error so callers can branch on it without string matching.
type Kind byte

const (
	// KindInvalidArgument signals an out-of-range enum or reservedID > nextID.
	KindInvalidArgument Kind = iota
	// KindAlreadyExists signals a duplicate label or a duplicate registry cell.
	KindAlreadyExists
	// KindNotFound signals an absent label, lid, or registry cell.
	KindNotFound
	// KindOutOfRange signals lid >= maxElements or an empty batch slot.
	KindOutOfRange
	// KindResourceExhausted signals no free lid and no room to grow nextID.
	KindResourceExhausted
	// KindUnavailable signals an allocator failure or a missing kernel.
	KindUnavailable
	// KindFailedPrecondition signals a lifecycle violation (e.g. registering
	// after finish_build, or using an uninitialized manager).
	KindFailedPrecondition
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindAlreadyExists:
		return "already_exists"
	case KindNotFound:
		return "not_found"
	case KindOutOfRange:
		return "out_of_range"
	case KindResourceExhausted:
		return "resource_exhausted"
	case KindUnavailable:
		return "unavailable"
	case KindFailedPrecondition:
		return "failed_precondition"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every recoverable failure in this
// module. It follows the shape of *os.PathError: an operation name, a
// diagnostic detail (the offending label or lid), and an optional wrapped
// cause.
type Error struct {
	Op     string
	Kind   Kind
	Detail string
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%s): %v", e.Op, e.Detail, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Op, e.Detail, e.Kind)
}

// Unwrap allows errors.Is/errors.As to see through to the wrapped cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether this error carries the given Kind, allowing callers to
// write `var e *api.Error; errors.As(err, &e) && e.Is(api.KindNotFound)` or
// simply compare e.Kind directly.
func (e *Error) Is(k Kind) bool { return e.Kind == k }

// NewError builds an *Error with no wrapped cause.
func NewError(op string, kind Kind, detail string) *Error {
	return &Error{Op: op, Kind: kind, Detail: detail}
}

// WrapError builds an *Error wrapping cause.
func WrapError(op string, kind Kind, detail string, cause error) *Error {
	return &Error{Op: op, Kind: kind, Detail: detail, Err: cause}
}
