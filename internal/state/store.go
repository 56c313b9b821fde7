package state

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/five82/atlas/internal/apierr"
	"github.com/five82/atlas/internal/i18n"
	"github.com/five82/atlas/internal/notify"
	"github.com/five82/atlas/internal/restcountries"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Countries           []restcountries.Country
	Loading             bool
	Filters             Filters
	Sort                Sort
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the last refresh failed at the network level.
func (s Snapshot) IsOffline() bool {
	return s.LastError != nil && apierr.IsNetwork(s.LastError)
}

// RefreshObserver receives the outcome of every refresh.
type RefreshObserver interface {
	ObserveRefresh(err error)
}

// Options configure a Store.
type Options struct {
	Sink     notify.Sink
	Locale   func() language.Tag
	Logger   *slog.Logger
	Observer RefreshObserver
}

// Store holds the raw collection and derives the filtered, sorted and
// summarized views from it.
type Store struct {
	fetcher  restcountries.Fetcher
	sink     notify.Sink
	locale   func() language.Tag
	logger   *slog.Logger
	observer RefreshObserver

	mu          sync.RWMutex
	countries   []restcountries.Country
	pending     int
	filters     Filters
	sort        Sort
	lastUpdated time.Time
	lastErr     error
	failures    int
}

// NewStore creates an empty store that loads data through fetcher.
func NewStore(fetcher restcountries.Fetcher, opts Options) *Store {
	s := &Store{
		fetcher:  fetcher,
		sink:     opts.Sink,
		locale:   opts.Locale,
		logger:   opts.Logger,
		observer: opts.Observer,
		filters:  DefaultFilters(),
		sort:     DefaultSort(),
	}
	if s.sink == nil {
		s.sink = notify.Discard
	}
	if s.locale == nil {
		s.locale = i18n.Default
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Refresh reloads the whole collection. Success replaces the collection
// wholesale; failure keeps the previous collection and emits a localized
// notice. The loading flag is cleared on every exit path.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.pending++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.pending--
		s.mu.Unlock()
	}()

	countries, err := s.fetcher.FetchAll(ctx)
	if s.observer != nil {
		s.observer.ObserveRefresh(err)
	}
	tag := s.locale()

	if err != nil {
		if apierr.IsCancelled(err) {
			s.logger.Debug("refresh cancelled", slog.String("error", err.Error()))
			return
		}
		if apierr.ShouldLog(err) {
			s.logger.Error("refresh failed", slog.String("kind", apierr.KindOf(err).String()), slog.String("error", err.Error()))
		} else {
			s.logger.Info("refresh failed", slog.String("error", err.Error()))
		}
		s.mu.Lock()
		s.lastErr = err
		s.lastUpdated = time.Now()
		s.failures++
		s.mu.Unlock()
		s.sink.Notify(notify.Error, i18n.T(tag, RefreshFailureKey(err)))
		return
	}

	s.mu.Lock()
	s.countries = countries
	s.lastErr = nil
	s.lastUpdated = time.Now()
	s.failures = 0
	s.mu.Unlock()

	s.logger.Info("countries loaded", slog.Int("count", len(countries)))
	s.sink.Notify(notify.Success, i18n.T(tag, i18n.CountriesLoaded, len(countries)))
}

// RefreshFailureKey maps a refresh failure to its message key.
func RefreshFailureKey(err error) string {
	switch {
	case apierr.IsTimeout(err):
		return i18n.CountriesTimeout
	case apierr.IsNotFound(err):
		return i18n.CountriesNotFound
	case apierr.IsNetwork(err):
		return i18n.CountriesOffline
	case apierr.IsServer(err):
		return i18n.CountriesServerError
	default:
		return i18n.CountriesGenericError
	}
}

// Loading reports whether a refresh is in progress.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending > 0
}

// FilteredAndSorted returns the countries matching the active filters in
// the active order.
func (s *Store) FilteredAndSorted() []restcountries.Country {
	s.mu.RLock()
	filters := s.filters
	order := s.sort
	source := s.countries
	s.mu.RUnlock()

	tag := s.locale()
	code := i18n.Code(tag)
	out := make([]restcountries.Country, 0, len(source))
	for _, c := range source {
		if filters.Matches(c, code) {
			out = append(out, c)
		}
	}
	SortCountries(out, order, tag)
	return out
}

// Regions returns the distinct regions of the raw collection, sorted.
func (s *Store) Regions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, c := range s.countries {
		seen[c.Region] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for region := range seen {
		out = append(out, region)
	}
	sort.Strings(out)
	return out
}

// Statistics summarizes the raw collection, ignoring filters.
func (s *Store) Statistics() Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ComputeStatistics(s.countries)
}

// Filters returns the active filter criteria.
func (s *Store) Filters() Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// SetFilters merges p onto the active criteria.
func (s *Store) SetFilters(p FilterPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = s.filters.Apply(p)
}

// ResetFilters restores the default criteria.
func (s *Store) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = DefaultFilters()
}

// Sort returns the active sort.
func (s *Store) Sort() Sort {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sort
}

// SetSort changes the sort. Unknown values fall back to name/asc.
func (s *Store) SetSort(field SortField, dir Direction) {
	switch field {
	case SortByName, SortByPopulation, SortByArea:
	default:
		field = SortByName
	}
	if dir != Desc {
		dir = Asc
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = Sort{Field: field, Direction: dir}
}

// Country looks up a country by alpha-3 or alpha-2 code.
func (s *Store) Country(code string) (restcountries.Country, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.countries {
		if c.CCA3 == code || c.CCA2 == code {
			return c, true
		}
	}
	return restcountries.Country{}, false
}

// ByCodes returns the known countries for codes, in the order given.
func (s *Store) ByCodes(codes []string) []restcountries.Country {
	out := make([]restcountries.Country, 0, len(codes))
	for _, code := range codes {
		if c, ok := s.Country(code); ok {
			out = append(out, c)
		}
	}
	return out
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Countries:           cloneCountries(s.countries),
		Loading:             s.pending > 0,
		Filters:             s.filters,
		Sort:                s.sort,
		LastUpdated:         s.lastUpdated,
		ConsecutiveFailures: s.failures,
	}
	if s.lastErr != nil {
		snap.LastError = fmt.Errorf("%w", s.lastErr)
	}
	return snap
}

func cloneCountries(items []restcountries.Country) []restcountries.Country {
	if len(items) == 0 {
		return nil
	}
	dup := make([]restcountries.Country, len(items))
	copy(dup, items)
	return dup
}
