// Package notify keeps the list of transient user notifications.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind is the severity of a notification.
type Kind int

const (
	Info Kind = iota
	Success
	Warning
	Error
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// DefaultDuration returns how long a notification of kind stays visible.
func DefaultDuration(kind Kind) time.Duration {
	switch kind {
	case Success:
		return 4 * time.Second
	case Error:
		return 7 * time.Second
	default:
		return 5 * time.Second
	}
}

// Notification is one visible message.
type Notification struct {
	ID       string
	Kind     Kind
	Message  string
	Duration time.Duration
	Created  time.Time
}

// Sink receives user-facing notices from the data layer.
type Sink interface {
	Notify(kind Kind, message string)
}

// Discard is a Sink that drops every notice.
var Discard Sink = discard{}

type discard struct{}

func (discard) Notify(Kind, string) {}

// Option customizes a Center.
type Option func(*Center)

// WithTimer replaces time.AfterFunc; the returned function cancels the timer.
func WithTimer(after func(d time.Duration, fn func()) (stop func() bool)) Option {
	return func(c *Center) { c.after = after }
}

// WithListener registers fn to receive the list after every change.
func WithListener(fn func([]Notification)) Option {
	return func(c *Center) { c.listener = fn }
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Center) { c.now = now }
}

// Center holds visible notifications and expires them after their duration.
type Center struct {
	mu       sync.Mutex
	items    []Notification
	timers   map[string]func() bool
	after    func(time.Duration, func()) func() bool
	listener func([]Notification)
	now      func() time.Time
}

var _ Sink = (*Center)(nil)

// New creates an empty Center.
func New(opts ...Option) *Center {
	c := &Center{
		timers: make(map[string]func() bool),
		after: func(d time.Duration, fn func()) func() bool {
			return time.AfterFunc(d, fn).Stop
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify shows message with the default duration for kind.
func (c *Center) Notify(kind Kind, message string) {
	c.Show(kind, message, DefaultDuration(kind))
}

// Show adds a notification. A message already visible with the same kind is
// not repeated; the bool reports whether a new notification was added. A
// non-positive duration keeps the notification until removed.
func (c *Center) Show(kind Kind, message string, d time.Duration) (string, bool) {
	c.mu.Lock()
	for _, n := range c.items {
		if n.Kind == kind && n.Message == message {
			c.mu.Unlock()
			return n.ID, false
		}
	}
	n := Notification{
		ID:       uuid.NewString(),
		Kind:     kind,
		Message:  message,
		Duration: d,
		Created:  c.now(),
	}
	c.items = append(c.items, n)
	if d > 0 {
		id := n.ID
		c.timers[id] = c.after(d, func() { c.Remove(id) })
	}
	snapshot := c.listLocked()
	c.mu.Unlock()

	c.emit(snapshot)
	return n.ID, true
}

func (c *Center) Success(message string) string { id, _ := c.Show(Success, message, DefaultDuration(Success)); return id }
func (c *Center) Error(message string) string   { id, _ := c.Show(Error, message, DefaultDuration(Error)); return id }
func (c *Center) Warning(message string) string { id, _ := c.Show(Warning, message, DefaultDuration(Warning)); return id }
func (c *Center) Info(message string) string    { id, _ := c.Show(Info, message, DefaultDuration(Info)); return id }

// Remove dismisses the notification with id.
func (c *Center) Remove(id string) bool {
	c.mu.Lock()
	if stop, ok := c.timers[id]; ok {
		stop()
		delete(c.timers, id)
	}
	index := -1
	for i, n := range c.items {
		if n.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		c.mu.Unlock()
		return false
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	snapshot := c.listLocked()
	c.mu.Unlock()

	c.emit(snapshot)
	return true
}

// Clear dismisses everything and cancels pending timers.
func (c *Center) Clear() {
	c.mu.Lock()
	for id, stop := range c.timers {
		stop()
		delete(c.timers, id)
	}
	c.items = nil
	c.mu.Unlock()

	c.emit(nil)
}

// List returns the visible notifications, oldest first.
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listLocked()
}

func (c *Center) listLocked() []Notification {
	if len(c.items) == 0 {
		return nil
	}
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Center) emit(items []Notification) {
	if c.listener != nil {
		c.listener(items)
	}
}
