package kv

import "sync"

// MemoryBackend is an in-process store shared by any number of Memory
// handles.
type MemoryBackend struct {
	mu      sync.Mutex
	data    map[string]string
	handles map[*Memory]struct{}
}

// NewMemoryBackend creates an empty backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		data:    make(map[string]string),
		handles: make(map[*Memory]struct{}),
	}
}

// Open returns a new handle onto the backend.
func (b *MemoryBackend) Open() *Memory {
	m := &Memory{backend: b}
	b.mu.Lock()
	b.handles[m] = struct{}{}
	b.mu.Unlock()
	return m
}

// broadcast delivers c to every handle except origin.
func (b *MemoryBackend) broadcast(origin *Memory, c Change) {
	b.mu.Lock()
	targets := make([]*Memory, 0, len(b.handles))
	for h := range b.handles {
		if h != origin {
			targets = append(targets, h)
		}
	}
	b.mu.Unlock()
	for _, h := range targets {
		h.subs.notify(c)
	}
}

// Memory is one handle onto a MemoryBackend.
type Memory struct {
	backend *MemoryBackend
	subs    subscribers

	mu     sync.Mutex
	closed bool
}

// NewMemory returns a handle onto a fresh private backend.
func NewMemory() *Memory {
	return NewMemoryBackend().Open()
}

var _ Storage = (*Memory)(nil)

func (m *Memory) Get(key string) (string, bool, error) {
	if m.isClosed() {
		return "", false, ErrClosed
	}
	m.backend.mu.Lock()
	defer m.backend.mu.Unlock()
	v, ok := m.backend.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	if m.isClosed() {
		return ErrClosed
	}
	m.backend.mu.Lock()
	m.backend.data[key] = value
	m.backend.mu.Unlock()
	m.backend.broadcast(m, Change{Key: key, Value: value, Present: true})
	return nil
}

func (m *Memory) Remove(key string) error {
	if m.isClosed() {
		return ErrClosed
	}
	m.backend.mu.Lock()
	_, existed := m.backend.data[key]
	delete(m.backend.data, key)
	m.backend.mu.Unlock()
	if existed {
		m.backend.broadcast(m, Change{Key: key})
	}
	return nil
}

func (m *Memory) Subscribe(key string, fn func(Change)) func() {
	return m.subs.add(key, fn)
}

// Close detaches the handle; its subscribers stop receiving changes.
func (m *Memory) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.backend.mu.Lock()
	delete(m.backend.handles, m)
	m.backend.mu.Unlock()
	m.subs.clear()
	return nil
}

func (m *Memory) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
