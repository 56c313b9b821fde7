// Package favorites manages the user's favorite countries and the capped
// comparison set. Both are persisted as JSON lists of country codes.
package favorites

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/five82/atlas/internal/i18n"
	"github.com/five82/atlas/internal/kv"
	"github.com/five82/atlas/internal/notify"
	"github.com/five82/atlas/internal/prefs"
)

const (
	DefaultMaxFavorites  = 100
	DefaultMaxComparison = 4
)

var (
	// ErrLimitReached is returned when adding would exceed the cap.
	ErrLimitReached = errors.New("limit reached")
	// ErrDuplicate is returned when the code is already in the set.
	ErrDuplicate = errors.New("already present")
)

// Options configure a Favorites or Comparison set.
type Options struct {
	// Max caps the set size. Zero selects the package default.
	Max  int
	Sink notify.Sink
	// Locale selects the language of notices.
	Locale func() language.Tag
	// Label renders a code for notices; defaults to the code itself.
	Label  func(code string) string
	Logger *slog.Logger
}

type codeSet struct {
	binding *prefs.Binding[[]string]
	max     int
	sink    notify.Sink
	locale  func() language.Tag
	label   func(string) string
}

func newCodeSet(store kv.Storage, key, errKey string, def int, opts Options) codeSet {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := codeSet{
		max:    opts.Max,
		sink:   opts.Sink,
		locale: opts.Locale,
		label:  opts.Label,
	}
	if s.max <= 0 {
		s.max = def
	}
	if s.sink == nil {
		s.sink = notify.Discard
	}
	if s.locale == nil {
		s.locale = i18n.Default
	}
	if s.label == nil {
		s.label = func(code string) string { return code }
	}
	s.binding = prefs.Bind(store, key, []string{}, prefs.OnError[[]string](func(err error) {
		logger.Warn("preference storage error", slog.String("key", key), slog.String("error", err.Error()))
		s.notify(notify.Warning, errKey)
	}))
	return s
}

func (s codeSet) list() []string {
	return slices.Clone(s.binding.Value())
}

func (s codeSet) contains(code string) bool {
	return slices.Contains(s.binding.Value(), normalize(code))
}

func (s codeSet) notify(kind notify.Kind, key string, args ...any) {
	s.sink.Notify(kind, i18n.T(s.locale(), key, args...))
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func without(list []string, code string) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		if c != code {
			out = append(out, c)
		}
	}
	return out
}

// Favorites is the persisted list of favorite country codes.
type Favorites struct {
	codeSet
}

// NewFavorites loads the favorites list from store.
func NewFavorites(store kv.Storage, opts Options) *Favorites {
	return &Favorites{codeSet: newCodeSet(store, prefs.KeyFavorites, i18n.FavoritesStorage, DefaultMaxFavorites, opts)}
}

func (f *Favorites) List() []string            { return f.list() }
func (f *Favorites) Contains(code string) bool { return f.contains(code) }
func (f *Favorites) Count() int                { return len(f.binding.Value()) }
func (f *Favorites) Max() int                  { return f.max }
func (f *Favorites) Close()                    { f.binding.Close() }

// Toggle adds code when absent and removes it when present. It reports
// whether code is a favorite afterwards. Adding beyond the cap returns
// ErrLimitReached and leaves the list unchanged.
func (f *Favorites) Toggle(code string) (bool, error) {
	code = normalize(code)
	if code == "" {
		return false, nil
	}
	var added, limited bool
	_, err := f.binding.Modify(func(current []string) ([]string, bool) {
		if slices.Contains(current, code) {
			return without(current, code), true
		}
		if len(current) >= f.max {
			limited = true
			return current, false
		}
		added = true
		return append(slices.Clone(current), code), true
	})
	switch {
	case limited:
		f.notify(notify.Warning, i18n.FavoritesLimit, f.max)
		return false, ErrLimitReached
	case err != nil:
		return added, err
	case added:
		f.notify(notify.Success, i18n.FavoriteAdded, f.label(code))
	default:
		f.notify(notify.Info, i18n.FavoriteRemoved, f.label(code))
	}
	return added, nil
}

// Clear removes every favorite.
func (f *Favorites) Clear() error {
	_, err := f.binding.Modify(func(current []string) ([]string, bool) {
		return []string{}, len(current) > 0
	})
	return err
}

// Comparison is the small persisted set of countries shown side by side.
type Comparison struct {
	codeSet
}

// NewComparison loads the comparison set from store.
func NewComparison(store kv.Storage, opts Options) *Comparison {
	return &Comparison{codeSet: newCodeSet(store, prefs.KeyComparison, i18n.ComparisonStorage, DefaultMaxComparison, opts)}
}

func (c *Comparison) List() []string            { return c.list() }
func (c *Comparison) Contains(code string) bool { return c.contains(code) }
func (c *Comparison) Count() int                { return len(c.binding.Value()) }
func (c *Comparison) Max() int                  { return c.max }
func (c *Comparison) Full() bool                { return c.Count() >= c.max }
func (c *Comparison) Close()                    { c.binding.Close() }

// Add appends code. A full set returns ErrLimitReached, checked first, and
// a code already present returns ErrDuplicate; neither changes the set.
func (c *Comparison) Add(code string) error {
	code = normalize(code)
	var rejected error
	_, err := c.binding.Modify(func(current []string) ([]string, bool) {
		switch {
		case len(current) >= c.max:
			rejected = ErrLimitReached
		case slices.Contains(current, code):
			rejected = ErrDuplicate
		default:
			return append(slices.Clone(current), code), true
		}
		return current, false
	})
	switch {
	case errors.Is(rejected, ErrLimitReached):
		c.notify(notify.Warning, i18n.ComparisonLimit, c.max)
		return rejected
	case errors.Is(rejected, ErrDuplicate):
		c.notify(notify.Info, i18n.ComparisonDuplicate, c.label(code))
		return rejected
	case err != nil:
		return err
	}
	c.notify(notify.Success, i18n.ComparisonAdded, c.label(code))
	return nil
}

// Remove deletes code and reports whether it was present.
func (c *Comparison) Remove(code string) (bool, error) {
	code = normalize(code)
	removed, err := c.binding.Modify(func(current []string) ([]string, bool) {
		if !slices.Contains(current, code) {
			return current, false
		}
		return without(current, code), true
	})
	if err != nil || !removed {
		return removed, err
	}
	c.notify(notify.Info, i18n.ComparisonRemoved, c.label(code))
	return true, nil
}

// Toggle removes code when present and adds it otherwise.
func (c *Comparison) Toggle(code string) (bool, error) {
	if c.Contains(code) {
		_, err := c.Remove(code)
		return false, err
	}
	if err := c.Add(code); err != nil {
		return false, err
	}
	return true, nil
}

// Clear empties the set. An already-empty set is left untouched: nothing is
// written and no notice is sent. The bool reports whether anything was
// cleared.
func (c *Comparison) Clear() (bool, error) {
	cleared, err := c.binding.Modify(func(current []string) ([]string, bool) {
		return []string{}, len(current) > 0
	})
	if err != nil || !cleared {
		return cleared, err
	}
	c.notify(notify.Info, i18n.ComparisonCleared)
	return true, nil
}
