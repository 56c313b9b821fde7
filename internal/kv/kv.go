// Package kv provides the durable string key-value storage that backs user
// preferences. A Storage is one handle onto a shared backend; writes made
// through one handle are announced to subscribers on every other handle,
// mirroring how a second window observes another window's writes.
package kv

import (
	"errors"
	"sync"
)

// ErrClosed is returned by operations on a closed handle.
var ErrClosed = errors.New("kv: storage closed")

// Storage is a handle onto a durable key-value backend.
type Storage interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	// Subscribe registers fn for changes to key made through other handles.
	// The returned function removes the subscription.
	Subscribe(key string, fn func(Change)) func()
}

// Change describes an external write. Present is false when the key was
// removed.
type Change struct {
	Key     string
	Value   string
	Present bool
}

type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[string]map[int]func(Change)
}

func (s *subscribers) add(key string, fn func(Change)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = make(map[string]map[int]func(Change))
	}
	if s.fns[key] == nil {
		s.fns[key] = make(map[int]func(Change))
	}
	s.next++
	id := s.next
	s.fns[key][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.fns[key], id)
			if len(s.fns[key]) == 0 {
				delete(s.fns, key)
			}
		})
	}
}

// notify runs the callbacks for c.Key outside the lock so callbacks may read
// or write storage.
func (s *subscribers) notify(c Change) {
	s.mu.Lock()
	fns := make([]func(Change), 0, len(s.fns[c.Key]))
	for _, fn := range s.fns[c.Key] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}

func (s *subscribers) clear() {
	s.mu.Lock()
	s.fns = nil
	s.mu.Unlock()
}
