// Package apierr defines the closed set of failure kinds produced at the
// data-access boundary. Downstream code switches on Kind instead of inspecting
// transport-specific error shapes.
package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindTimeout
	KindClient
	KindServer
	KindCancelled
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	case KindCancelled:
		return "cancelled"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by the data-access layer.
type Error struct {
	Kind   Kind
	Op     string
	Status int // HTTP status when Kind is KindClient or KindServer
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error of the given kind.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// FromStatus builds a Client or Server error from an HTTP status code. It
// returns nil for non-error statuses.
func FromStatus(op string, status int) *Error {
	switch {
	case status >= 500:
		return &Error{Kind: KindServer, Op: op, Status: status, Err: errors.New(http.StatusText(status))}
	case status >= 400:
		return &Error{Kind: KindClient, Op: op, Status: status, Err: errors.New(http.StatusText(status))}
	default:
		return nil
	}
}

// NotFound builds a 404-equivalent client error.
func NotFound(op string) *Error {
	return &Error{Kind: KindClient, Op: op, Status: http.StatusNotFound, Err: errors.New("not found")}
}

// Classify converts an arbitrary transport error into an *Error. Errors that
// are already typed pass through unchanged.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return err
	}

	var (
		netErr    net.Error
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.Is(err, context.Canceled):
		return New(KindCancelled, op, err)
	case errors.Is(err, context.DeadlineExceeded):
		return New(KindTimeout, op, err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return New(KindTimeout, op, err)
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return New(KindDecode, op, err)
	default:
		return New(KindNetwork, op, err)
	}
}

// KindOf reports the Kind of err, or KindUnknown when err carries none.
func KindOf(err error) Kind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	if errors.Is(err, context.Canceled) {
		return KindCancelled
	}
	return KindUnknown
}

// StatusOf returns the HTTP status carried by err, or zero.
func StatusOf(err error) int {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Status
	}
	return 0
}

func IsCancelled(err error) bool { return KindOf(err) == KindCancelled }
func IsTimeout(err error) bool   { return KindOf(err) == KindTimeout }
func IsNetwork(err error) bool   { return KindOf(err) == KindNetwork }
func IsClient(err error) bool    { return KindOf(err) == KindClient }
func IsServer(err error) bool    { return KindOf(err) == KindServer }
func IsNotFound(err error) bool  { return IsClient(err) && StatusOf(err) == http.StatusNotFound }

// Retryable reports whether err is a transient failure worth retrying.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindNetwork, KindTimeout, KindServer:
		return true
	default:
		return false
	}
}

// ShouldLog reports whether err deserves an error-level log entry. Cancelled
// requests and 404s are expected in normal use.
func ShouldLog(err error) bool {
	if err == nil {
		return false
	}
	return !IsCancelled(err) && !IsNotFound(err)
}
