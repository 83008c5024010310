package booking

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrorKind classifies booking failures for the transport layer.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindBadRequest
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is a caller-facing booking failure. Message is returned to clients
// verbatim.
type Error struct {
	Kind    ErrorKind
	Message string
	// State is the validation step that rejected the request, if any.
	State BookingState
}

func (e *Error) Error() string {
	if e.State != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.State, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches on kind and message so wrapped copies compare equal to the
// package sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

var (
	ErrUserNotFound   = newError(KindNotFound, "User not found")
	ErrUserExists     = newError(KindBadRequest, "User already exists")
	ErrInvalidDate    = newError(KindBadRequest, "Invalid date format. Use YYYY-MM-DD.")
	ErrDayUnavailable = newError(KindBadRequest, "User not available on that day")
	ErrDateBlocked    = newError(KindBadRequest, "User unavailable on this date")
	ErrInvalidSlot    = newError(KindBadRequest, "Invalid time slot")
	ErrSlotBooked     = newError(KindConflict, "Time slot already booked")

	// ErrAppointmentIDNotFound is the weekday lookup's wording for a missing user.
	ErrAppointmentIDNotFound = newError(KindNotFound, "Appointment Id not found")
)

// invalidInput builds a BadRequest error with a custom message.
func invalidInput(format string, args ...interface{}) *Error {
	return newError(KindBadRequest, fmt.Sprintf(format, args...))
}

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
