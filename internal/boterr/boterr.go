// Package boterr defines the error taxonomy shared by command handlers
// and the dispatch layer. Handlers return these typed errors instead of
// raising across the dispatch boundary; dispatch turns them into
// user-visible replies.
package boterr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// InvalidArgument means the user supplied bad command arguments.
	// The message carries a usage hint.
	InvalidArgument Kind = iota + 1
	// NotFound means a product, order or store lookup came back empty.
	NotFound
	// Forbidden means a role check failed. The user gets a generic
	// denial that never reveals which check failed.
	Forbidden
	// RateLimited means the user tripped a throughput or command limit.
	RateLimited
	// TransportFailure means an outbound send failed. Not surfaced to
	// the user directly; the payload goes to the retry queue.
	TransportFailure
	// Unexpected covers anything a handler did not anticipate. The
	// user gets a generic message, never internals.
	Unexpected
	// OutOfRange means an index argument fell outside the valid range.
	OutOfRange
	// InvalidQuantity means a quantity was non-numeric or below one.
	InvalidQuantity
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid_argument"
	case NotFound:
		return "not_found"
	case Forbidden:
		return "forbidden"
	case RateLimited:
		return "rate_limited"
	case TransportFailure:
		return "transport_failure"
	case OutOfRange:
		return "out_of_range"
	case InvalidQuantity:
		return "invalid_quantity"
	default:
		return "unexpected"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the Kind carried by err, or Unexpected when err is
// not a taxonomy error.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return Unexpected
}

// UserMessage is the text shown to the user for err. Forbidden and
// Unexpected deliberately hide detail.
func UserMessage(err error) string {
	var be *Error
	if !errors.As(err, &be) {
		return "Something went wrong. Please try again."
	}
	switch be.Kind {
	case Forbidden:
		return "You are not allowed to do that."
	case Unexpected:
		return "Something went wrong. Please try again."
	case RateLimited:
		if be.Message != "" {
			return be.Message
		}
		return "You're going too fast. Please slow down."
	default:
		return be.Message
	}
}
