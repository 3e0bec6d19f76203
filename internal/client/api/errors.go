package api

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies a failed API call. Store operations and views react to
// the kind, not to raw status codes: e.g. Unauthenticated redirects to
// login while Validation surfaces inline field errors.
type Kind int

const (
	// KindUnknown covers anything not classifiable below. Never silent:
	// it still carries a user-presentable message.
	KindUnknown Kind = iota
	// KindUnauthenticated means the operation needs a principal and none
	// was accepted (local short-circuit or remote 401).
	KindUnauthenticated
	// KindForbidden means the principal lacks rights (remote 403),
	// e.g. editing another user's journal.
	KindForbidden
	// KindNotFound means the referenced entity does not exist remotely.
	KindNotFound
	// KindValidation means the remote rejected the payload shape/content.
	KindValidation
	// KindTimeout means the call exceeded its time budget.
	KindTimeout
	// KindNetwork means a transport-level failure before any response.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Error is the normalized failure returned by every client operation.
// Status is the HTTP status when one was received, 0 otherwise.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	if e.Status != 0 {
		return fmt.Sprintf("api: %s: %s (status %d)", e.Kind, msg, e.Status)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, msg)
}

// Is lets errors.Is match two api errors by kind, so callers can use
// sentinel values like &api.Error{Kind: api.KindNotFound}.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// ErrUnauthenticated is the local short-circuit error used by stores when
// an operation requires a principal and none is present.
var ErrUnauthenticated = &Error{Kind: KindUnauthenticated, Message: "you must be logged in"}

// KindOf extracts the kind from any error chain; non-api errors are Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}

// classifyStatus maps a non-2xx HTTP status plus server message to an Error.
func classifyStatus(status int, message string) *Error {
	kind := KindUnknown
	switch status {
	case 401:
		kind = KindUnauthenticated
	case 403:
		kind = KindForbidden
	case 404:
		kind = KindNotFound
	case 400, 422:
		kind = KindValidation
	}
	return &Error{Kind: kind, Status: status, Message: message}
}

// classifyTransport maps a transport failure (no HTTP response) to an Error,
// distinguishing exceeded deadlines from other network faults.
func classifyTransport(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: "request timed out"}
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return &Error{Kind: KindTimeout, Message: "request timed out"}
	}
	return &Error{Kind: KindNetwork, Message: err.Error()}
}
