// Package notify is the fire-and-forget user-feedback channel. Stores post
// short-lived success/failure messages here; the consuming UI drains and
// displays them. Posting never blocks and never fails.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity distinguishes informational/success messages from errors.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "info"
}

// Notification is a single user-facing message.
type Notification struct {
	ID       string
	Severity Severity
	Message  string
	At       time.Time
}

// DefaultCapacity bounds the number of undelivered notifications kept.
const DefaultCapacity = 64

// Hub is a bounded in-order buffer of notifications. When full, the oldest
// undelivered message is dropped so a slow or absent consumer can never
// block a store operation.
type Hub struct {
	mu  sync.Mutex
	buf []Notification
	cap int
}

// NewHub returns a hub holding at most capacity undelivered messages.
// capacity <= 0 means DefaultCapacity.
func NewHub(capacity int) *Hub {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Hub{cap: capacity}
}

// Info posts an informational/success message.
func (h *Hub) Info(msg string) {
	h.post(SeverityInfo, msg)
}

// Error posts a failure message.
func (h *Hub) Error(msg string) {
	h.post(SeverityError, msg)
}

func (h *Hub) post(sev Severity, msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.buf) >= h.cap {
		h.buf = h.buf[1:]
	}
	h.buf = append(h.buf, Notification{
		ID:       uuid.NewString(),
		Severity: sev,
		Message:  msg,
		At:       time.Now(),
	})
}

// Drain returns all pending notifications in posted order and clears the
// buffer.
func (h *Hub) Drain() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.buf
	h.buf = nil
	return out
}

// Pending reports the number of undelivered notifications.
func (h *Hub) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.buf)
}
