// Package prefs binds typed user preferences to durable key-value storage.
//
// A Binding reads its key once at creation, falls back to a default when the
// key is absent or undecodable, persists synchronously on Set, and re-reads
// itself when another handle on the same storage changes the key.
package prefs

import (
	"fmt"
	"sync"

	"github.com/five82/atlas/internal/kv"
)

// Storage keys shared by the application's bindings.
const (
	KeyTheme      = "theme"
	KeyLocale     = "locale"
	KeyFavorites  = "country-favorites"
	KeyComparison = "country-comparison"
)

// Option customizes a Binding.
type Option[T any] func(*Binding[T])

// WithCodec replaces the default JSON codec.
func WithCodec[T any](codec Codec[T]) Option[T] {
	return func(b *Binding[T]) { b.codec = codec }
}

// OnError registers a callback for read, decode and write failures.
func OnError[T any](fn func(error)) Option[T] {
	return func(b *Binding[T]) { b.onError = fn }
}

// OnChange registers a callback invoked after an external change has been
// applied to the binding.
func OnChange[T any](fn func(T)) Option[T] {
	return func(b *Binding[T]) { b.onChange = fn }
}

// Binding is one typed value bound to one storage key.
type Binding[T any] struct {
	store    kv.Storage
	key      string
	def      T
	codec    Codec[T]
	onError  func(error)
	onChange func(T)

	mu          sync.RWMutex
	value       T
	err         error
	unsubscribe func()
}

// Bind creates a binding for key and loads its current value.
func Bind[T any](store kv.Storage, key string, def T, opts ...Option[T]) *Binding[T] {
	b := &Binding[T]{
		store: store,
		key:   key,
		def:   def,
		codec: JSON[T](),
		value: def,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.Refresh()
	b.unsubscribe = store.Subscribe(key, b.external)
	return b
}

// Key returns the storage key.
func (b *Binding[T]) Key() string { return b.key }

// Value returns the current in-memory value.
func (b *Binding[T]) Value() T {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

// Err returns the most recent read or write failure, if any.
func (b *Binding[T]) Err() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.err
}

// Set updates the value and persists it. The in-memory value is updated even
// when persisting fails; the failure is returned and reported to OnError.
func (b *Binding[T]) Set(v T) error {
	b.mu.Lock()
	b.value = v
	err := b.persistLocked(v)
	b.err = err
	b.mu.Unlock()

	if err != nil {
		b.report(err)
	}
	return err
}

// Update applies fn to the current value and persists the result.
func (b *Binding[T]) Update(fn func(T) T) error {
	_, err := b.Modify(func(v T) (T, bool) { return fn(v), true })
	return err
}

// Modify runs fn on the current value under the binding's lock. The result
// is stored and persisted only when fn reports a change, so a rejected
// mutation writes nothing. fn must not retain or mutate its argument.
func (b *Binding[T]) Modify(fn func(T) (T, bool)) (bool, error) {
	b.mu.Lock()
	next, changed := fn(b.value)
	if !changed {
		b.mu.Unlock()
		return false, nil
	}
	b.value = next
	err := b.persistLocked(next)
	b.err = err
	b.mu.Unlock()

	if err != nil {
		b.report(err)
	}
	return true, err
}

// Clear removes the stored entry and resets the value to the default.
func (b *Binding[T]) Clear() error {
	b.mu.Lock()
	b.value = b.def
	var err error
	if rmErr := b.store.Remove(b.key); rmErr != nil {
		err = fmt.Errorf("remove %q: %w", b.key, rmErr)
	}
	b.err = err
	b.mu.Unlock()

	if err != nil {
		b.report(err)
	}
	return err
}

// Refresh re-reads the stored value. Absent keys yield the default; decode
// failures yield the default and are reported once per failed read.
func (b *Binding[T]) Refresh() {
	raw, ok, err := b.store.Get(b.key)
	next := b.def
	switch {
	case err != nil:
		err = fmt.Errorf("read %q: %w", b.key, err)
	case ok:
		decoded, decErr := b.codec.Decode(raw)
		if decErr != nil {
			err = fmt.Errorf("decode %q: %w", b.key, decErr)
		} else {
			next = decoded
		}
	}

	b.mu.Lock()
	b.value = next
	b.err = err
	b.mu.Unlock()

	if err != nil {
		b.report(err)
	}
}

// Close stops listening for external changes.
func (b *Binding[T]) Close() {
	if b.unsubscribe != nil {
		b.unsubscribe()
	}
}

func (b *Binding[T]) persistLocked(v T) error {
	encoded, err := b.codec.Encode(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", b.key, err)
	}
	if err := b.store.Set(b.key, encoded); err != nil {
		return fmt.Errorf("write %q: %w", b.key, err)
	}
	return nil
}

// external handles a change written through another storage handle.
func (b *Binding[T]) external(c kv.Change) {
	if c.Present {
		b.mu.RLock()
		current, err := b.codec.Encode(b.value)
		b.mu.RUnlock()
		if err == nil && current == c.Value {
			return
		}
	}
	b.Refresh()
	if b.onChange != nil {
		b.onChange(b.Value())
	}
}

func (b *Binding[T]) report(err error) {
	if b.onError != nil {
		b.onError(err)
	}
}
