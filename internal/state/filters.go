package state

import (
	"math"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/five82/atlas/internal/restcountries"
)

// SortField selects the sort key.
type SortField string

const (
	SortByName       SortField = "name"
	SortByPopulation SortField = "population"
	SortByArea       SortField = "area"
)

// Next cycles name → population → area → name.
func (f SortField) Next() SortField {
	switch f {
	case SortByName:
		return SortByPopulation
	case SortByPopulation:
		return SortByArea
	default:
		return SortByName
	}
}

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort is the active ordering.
type Sort struct {
	Field     SortField
	Direction Direction
}

// DefaultSort sorts by name ascending.
func DefaultSort() Sort {
	return Sort{Field: SortByName, Direction: Asc}
}

// Filters are the criteria applied to the raw collection. Empty strings
// disable the corresponding filter; the population range is always applied.
type Filters struct {
	Search        string
	Region        string
	Language      string
	Currency      string
	MinPopulation float64
	MaxPopulation float64
}

// DefaultFilters returns criteria that match every country.
func DefaultFilters() Filters {
	return Filters{MaxPopulation: math.Inf(1)}
}

// IsDefault reports whether f matches everything.
func (f Filters) IsDefault() bool {
	return f == DefaultFilters()
}

// FilterPatch is a partial update; nil fields keep their current value.
type FilterPatch struct {
	Search        *string
	Region        *string
	Language      *string
	Currency      *string
	MinPopulation *float64
	MaxPopulation *float64
}

// Apply merges p onto f.
func (f Filters) Apply(p FilterPatch) Filters {
	if p.Search != nil {
		f.Search = *p.Search
	}
	if p.Region != nil {
		f.Region = *p.Region
	}
	if p.Language != nil {
		f.Language = *p.Language
	}
	if p.Currency != nil {
		f.Currency = *p.Currency
	}
	if p.MinPopulation != nil {
		f.MinPopulation = *p.MinPopulation
	}
	if p.MaxPopulation != nil {
		f.MaxPopulation = *p.MaxPopulation
	}
	return f
}

// Matches reports whether c passes every active filter. locale selects the
// translated name that search also considers.
func (f Filters) Matches(c restcountries.Country, locale string) bool {
	if f.Search != "" {
		search := strings.ToLower(f.Search)
		matched := strings.Contains(strings.ToLower(c.Name.Common), search) ||
			strings.Contains(strings.ToLower(c.DisplayName(locale)), search) ||
			slices.ContainsFunc(c.Capital, func(capital string) bool {
				return strings.Contains(strings.ToLower(capital), search)
			})
		if !matched {
			return false
		}
	}
	if f.Region != "" && c.Region != f.Region {
		return false
	}
	pop := float64(c.Population)
	if pop < f.MinPopulation || pop > f.MaxPopulation {
		return false
	}
	if f.Language != "" && !containsFold(c.LanguageNames(), f.Language) {
		return false
	}
	if f.Currency != "" && !containsFold(c.CurrencyNames(), f.Currency) {
		return false
	}
	return true
}

func containsFold(values []string, needle string) bool {
	needle = strings.ToLower(needle)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

// SortCountries stable-sorts items in place. Names use collation rules for
// tag.
func SortCountries(items []restcountries.Country, s Sort, tag language.Tag) {
	var cmp func(a, b restcountries.Country) int
	switch s.Field {
	case SortByPopulation:
		cmp = func(a, b restcountries.Country) int { return compareNumbers(float64(a.Population), float64(b.Population)) }
	case SortByArea:
		cmp = func(a, b restcountries.Country) int { return compareNumbers(a.Area, b.Area) }
	default:
		collator := collate.New(tag)
		cmp = func(a, b restcountries.Country) int { return collator.CompareString(a.Name.Common, b.Name.Common) }
	}
	if s.Direction == Desc {
		asc := cmp
		cmp = func(a, b restcountries.Country) int { return -asc(a, b) }
	}
	slices.SortStableFunc(items, cmp)
}

func compareNumbers(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
