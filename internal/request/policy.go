// Package request coordinates keyed network operations: one in-flight
// operation per key with latest-wins supersession, and a bounded retry loop
// with exponential backoff for transient failures.
package request

import (
	"time"

	"github.com/five82/atlas/internal/apierr"
)

const (
	DefaultAttempts  = 3
	DefaultBaseDelay = time.Second
)

// Policy bounds the retry loop. Attempts counts retries after the first
// invocation, so Attempts=3 allows up to four calls. BaseDelay doubles after
// each retry.
type Policy struct {
	Attempts  int
	BaseDelay time.Duration
}

// DefaultPolicy returns the standard policy (3 retries, 1s base delay).
func DefaultPolicy() Policy {
	return Policy{Attempts: DefaultAttempts, BaseDelay: DefaultBaseDelay}
}

// Reduced returns a lighter policy for volatile queries: two retries at half
// the base delay.
func (p Policy) Reduced() Policy {
	return Policy{Attempts: 2, BaseDelay: p.BaseDelay / 2}
}

func (p Policy) normalize() Policy {
	if p.Attempts < 0 {
		p.Attempts = 0
	}
	if p.BaseDelay < 0 {
		p.BaseDelay = 0
	}
	return p
}

// Class is the retry classification of a failure.
type Class int

const (
	// ClassTransient failures (network, timeout, 5xx) are retried.
	ClassTransient Class = iota
	// ClassPermanent failures (4xx, undecodable payloads) are returned as-is.
	ClassPermanent
	// ClassCancelled failures are returned as-is and never retried.
	ClassCancelled
)

func (c Class) String() string {
	switch c {
	case ClassPermanent:
		return "permanent"
	case ClassCancelled:
		return "cancelled"
	default:
		return "transient"
	}
}

// Classify maps err onto a retry class. Errors without a recognised kind are
// treated as transient.
func Classify(err error) Class {
	switch apierr.KindOf(err) {
	case apierr.KindCancelled:
		return ClassCancelled
	case apierr.KindClient, apierr.KindDecode:
		return ClassPermanent
	default:
		return ClassTransient
	}
}
