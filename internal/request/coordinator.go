package request

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/five82/atlas/internal/apierr"
)

var (
	// ErrSuperseded is the cancellation cause given to an operation replaced
	// by a newer one under the same key.
	ErrSuperseded = errors.New("superseded by newer request")
	// ErrCancelledAll is the cancellation cause used by CancelAll.
	ErrCancelledAll = errors.New("all requests cancelled")
)

// Observer receives coordinator events. Implementations must be safe for
// concurrent use.
type Observer interface {
	RequestRetried(key string, attempt int, delay time.Duration)
	RequestSuperseded(key string)
	RequestFinished(key string, err error)
}

// Stats describes the in-flight registry.
type Stats struct {
	Pending int
	Keys    []string
}

type handle struct {
	id     uint64
	cancel context.CancelCauseFunc
}

// Coordinator tracks one in-flight operation per key and runs operations
// under a retry policy. Starting an operation under a key that is already
// in flight cancels the earlier one first.
type Coordinator struct {
	mu       sync.Mutex
	inflight map[string]*handle
	seq      uint64

	sleep    func(ctx context.Context, d time.Duration) error
	observer Observer
	logger   *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithSleep overrides the backoff wait. The function must return early with
// the context error when ctx is done.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Coordinator) { c.sleep = sleep }
}

// WithObserver attaches an event observer.
func WithObserver(obs Observer) Option {
	return func(c *Coordinator) { c.observer = obs }
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCoordinator returns an empty coordinator.
func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{
		inflight: make(map[string]*handle),
		sleep:    sleepContext,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute runs op under key with the given retry policy.
//
// A previous operation still registered under key is cancelled (cause
// ErrSuperseded) before op is first invoked. The context passed to op is
// cancelled when the operation is superseded, when CancelAll is called, or
// when ctx ends. If the operation was superseded, Execute reports a cancelled
// error even when op itself returned successfully.
func (c *Coordinator) Execute(ctx context.Context, key string, policy Policy, op func(context.Context) error) error {
	opCtx, h := c.register(ctx, key)
	defer c.release(key, h)

	err := c.run(opCtx, key, policy, op)
	if err == nil && opCtx.Err() != nil {
		err = apierr.New(apierr.KindCancelled, key, context.Cause(opCtx))
	}
	if c.observer != nil {
		c.observer.RequestFinished(key, err)
	}
	return err
}

// Do is the value-returning form of Execute.
func Do[T any](ctx context.Context, c *Coordinator, key string, policy Policy, op func(context.Context) (T, error)) (T, error) {
	var out T
	err := c.Execute(ctx, key, policy, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (c *Coordinator) run(ctx context.Context, key string, policy Policy, op func(context.Context) error) error {
	policy = policy.normalize()
	delay := policy.BaseDelay
	remaining := policy.Attempts

	for attempt := 1; ; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				return apierr.New(apierr.KindTimeout, key, err)
			}
			return apierr.New(apierr.KindCancelled, key, err)
		}

		switch Classify(err) {
		case ClassCancelled, ClassPermanent:
			return err
		}
		if remaining <= 0 {
			return err
		}

		c.logger.Debug("retrying request",
			slog.String("key", key),
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()),
		)
		if c.observer != nil {
			c.observer.RequestRetried(key, attempt, delay)
		}
		if serr := c.sleep(ctx, delay); serr != nil {
			if errors.Is(serr, context.DeadlineExceeded) {
				return apierr.New(apierr.KindTimeout, key, serr)
			}
			return apierr.New(apierr.KindCancelled, key, serr)
		}
		delay *= 2
		remaining--
	}
}

func (c *Coordinator) register(parent context.Context, key string) (context.Context, *handle) {
	ctx, cancel := context.WithCancelCause(parent)

	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.inflight[key]; ok {
		prev.cancel(ErrSuperseded)
		if c.observer != nil {
			c.observer.RequestSuperseded(key)
		}
	}
	c.seq++
	h := &handle{id: c.seq, cancel: cancel}
	c.inflight[key] = h
	return ctx, h
}

// release removes h unless a newer handle has replaced it.
func (c *Coordinator) release(key string, h *handle) {
	c.mu.Lock()
	if cur, ok := c.inflight[key]; ok && cur.id == h.id {
		delete(c.inflight, key)
	}
	c.mu.Unlock()
	h.cancel(nil)
}

// Cancel aborts the operation registered under key, if any.
func (c *Coordinator) Cancel(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.inflight[key]
	if !ok {
		return false
	}
	h.cancel(ErrCancelledAll)
	delete(c.inflight, key)
	return true
}

// CancelAll aborts every registered operation and empties the registry.
func (c *Coordinator) CancelAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, h := range c.inflight {
		h.cancel(ErrCancelledAll)
		delete(c.inflight, key)
	}
}

// IsPending reports whether an operation is registered under key.
func (c *Coordinator) IsPending(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inflight[key]
	return ok
}

// InFlight returns the registered keys, sorted.
func (c *Coordinator) InFlight() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.inflight))
	for k := range c.inflight {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return Stats{Pending: len(keys), Keys: keys}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
