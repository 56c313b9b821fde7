package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const (
	defaultSQLiteTimeout = 5 * time.Second
	memoryPath           = ":memory:"
)

// SQLiteOptions configure a SQLite handle.
type SQLiteOptions struct {
	// Path of the database file. Empty or ":memory:" opens a private
	// in-memory database.
	Path string
	// PollInterval controls how often the handle looks for writes made by
	// other handles or processes. Zero disables the background watcher;
	// Poll can still be called directly.
	PollInterval time.Duration
	Timeout      time.Duration
	Logger       *slog.Logger
}

// SQLite is a Storage handle backed by a SQLite file. Every write bumps a
// monotonically increasing revision so other handles can discover changes by
// polling.
type SQLite struct {
	db      *sql.DB
	subs    subscribers
	logger  *slog.Logger
	timeout time.Duration

	mu      sync.Mutex
	lastRev int64
	own     map[int64]struct{}
	closed  bool

	stop chan struct{}
	done chan struct{}
}

var _ Storage = (*SQLite)(nil)

// OpenSQLite opens (or creates) the database at opts.Path.
func OpenSQLite(opts SQLiteOptions) (*SQLite, error) {
	path := opts.Path
	if path == "" {
		path = memoryPath
	}
	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// A single connection keeps ":memory:" databases coherent and serializes
	// writers within the process.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		deleted    INTEGER NOT NULL DEFAULT 0,
		rev        INTEGER NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS kv_store_rev ON kv_store(rev);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultSQLiteTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &SQLite{
		db:      db,
		logger:  logger,
		timeout: timeout,
		own:     make(map[int64]struct{}),
	}
	if err := db.QueryRow("SELECT COALESCE(MAX(rev), 0) FROM kv_store").Scan(&s.lastRev); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("read revision: %w", err)
	}

	if opts.PollInterval > 0 {
		s.stop = make(chan struct{})
		s.done = make(chan struct{})
		go s.watch(opts.PollInterval)
	}
	return s, nil
}

func (s *SQLite) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", false, ErrClosed
	}

	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM kv_store WHERE key = ? AND deleted = 0", key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLite) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	var rev int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO kv_store (key, value, deleted, rev, updated_at)
		VALUES (?, ?, 0, (SELECT COALESCE(MAX(rev), 0) + 1 FROM kv_store), ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			deleted = 0,
			rev = excluded.rev,
			updated_at = excluded.updated_at
		RETURNING rev`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	).Scan(&rev)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	s.own[rev] = struct{}{}
	return nil
}

// Remove marks key deleted. The tombstone row carries a new revision so
// watchers on other handles observe the removal.
func (s *SQLite) Remove(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	var rev int64
	err := s.db.QueryRowContext(ctx, `
		UPDATE kv_store SET
			value = '',
			deleted = 1,
			rev = (SELECT COALESCE(MAX(rev), 0) + 1 FROM kv_store),
			updated_at = ?
		WHERE key = ? AND deleted = 0
		RETURNING rev`,
		time.Now().UTC().Format(time.RFC3339), key,
	).Scan(&rev)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	s.own[rev] = struct{}{}
	return nil
}

func (s *SQLite) Subscribe(key string, fn func(Change)) func() {
	return s.subs.add(key, fn)
}

// Poll reads revisions newer than the last one seen and notifies
// subscribers about those not written through this handle.
func (s *SQLite) Poll(ctx context.Context) error {
	changes, err := s.collect(ctx)
	if err != nil {
		return err
	}
	for _, c := range changes {
		s.subs.notify(c)
	}
	return nil
}

func (s *SQLite) collect(ctx context.Context) ([]Change, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT key, value, deleted, rev FROM kv_store WHERE rev > ? ORDER BY rev", s.lastRev)
	if err != nil {
		return nil, fmt.Errorf("poll: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var changes []Change
	for rows.Next() {
		var (
			key, value string
			deleted    bool
			rev        int64
		)
		if err := rows.Scan(&key, &value, &deleted, &rev); err != nil {
			return nil, fmt.Errorf("poll scan: %w", err)
		}
		s.lastRev = rev
		if _, mine := s.own[rev]; mine {
			continue
		}
		changes = append(changes, Change{Key: key, Value: value, Present: !deleted})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("poll rows: %w", err)
	}
	for rev := range s.own {
		if rev <= s.lastRev {
			delete(s.own, rev)
		}
	}
	return changes, nil
}

func (s *SQLite) watch(interval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if err := s.Poll(context.Background()); err != nil && !errors.Is(err, ErrClosed) {
				s.logger.Warn("storage poll failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Close stops the watcher and closes the database.
func (s *SQLite) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	if s.stop != nil {
		close(s.stop)
		<-s.done
	}
	s.subs.clear()
	return s.db.Close()
}
