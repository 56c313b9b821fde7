package state

import (
	"context"
	"errors"
	"math"
	"testing"

	"golang.org/x/text/language"

	"github.com/five82/atlas/internal/apierr"
	"github.com/five82/atlas/internal/notify"
	"github.com/five82/atlas/internal/restcountries"
)

func sampleCountries() []restcountries.Country {
	return []restcountries.Country{
		{
			Name:       restcountries.Name{Common: "United States"},
			CCA2:       "US",
			CCA3:       "USA",
			Capital:    []string{"Washington, D.C."},
			Region:     "Americas",
			Population: 331002651,
			Area:       9372610,
			Languages:  map[string]string{"eng": "English"},
			Currencies: map[string]restcountries.Currency{"USD": {Name: "United States dollar", Symbol: "$"}},
		},
		{
			Name:       restcountries.Name{Common: "Canada"},
			CCA2:       "CA",
			CCA3:       "CAN",
			Capital:    []string{"Ottawa"},
			Region:     "Americas",
			Population: 37742154,
			Area:       9984670,
			Languages:  map[string]string{"eng": "English", "fra": "French"},
			Currencies: map[string]restcountries.Currency{"CAD": {Name: "Canadian dollar", Symbol: "$"}},
		},
		{
			Name:       restcountries.Name{Common: "Mexico"},
			CCA2:       "MX",
			CCA3:       "MEX",
			Capital:    []string{"Mexico City"},
			Region:     "Americas",
			Population: 128932753,
			Area:       1964375,
			Languages:  map[string]string{"spa": "Spanish"},
			Currencies: map[string]restcountries.Currency{"MXN": {Name: "Mexican peso", Symbol: "$"}},
		},
		{
			Name:       restcountries.Name{Common: "France"},
			CCA2:       "FR",
			CCA3:       "FRA",
			Capital:    []string{"Paris"},
			Region:     "Europe",
			Population: 67391582,
			Area:       551695,
			Languages:  map[string]string{"fra": "French"},
			Currencies: map[string]restcountries.Currency{"EUR": {Name: "Euro", Symbol: "€"}},
		},
	}
}

type fakeFetcher struct {
	countries []restcountries.Country
	err       error
	calls     int
	during    func()
}

func (f *fakeFetcher) FetchAll(ctx context.Context) ([]restcountries.Country, error) {
	f.calls++
	if f.during != nil {
		f.during()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.countries, nil
}

func (f *fakeFetcher) FetchByCode(context.Context, string) (restcountries.Country, error) {
	return restcountries.Country{}, errors.New("not implemented")
}

func (f *fakeFetcher) FetchByRegion(context.Context, string) ([]restcountries.Country, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeFetcher) SearchByName(context.Context, string) ([]restcountries.Country, error) {
	return nil, errors.New("not implemented")
}

type recordingSink struct {
	kinds    []notify.Kind
	messages []string
}

func (r *recordingSink) Notify(kind notify.Kind, message string) {
	r.kinds = append(r.kinds, kind)
	r.messages = append(r.messages, message)
}

type refreshCounter struct{ outcomes []error }

func (r *refreshCounter) ObserveRefresh(err error) { r.outcomes = append(r.outcomes, err) }

func loadedStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(&fakeFetcher{countries: sampleCountries()}, Options{
		Locale: func() language.Tag { return language.English },
	})
	s.Refresh(context.Background())
	if got := len(s.Snapshot().Countries); got != 4 {
		t.Fatalf("loaded %d countries, want 4", got)
	}
	return s
}

func codes(items []restcountries.Country) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.CCA3
	}
	return out
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int)
	for _, v := range a {
		seen[v]++
	}
	for _, v := range b {
		seen[v]--
		if seen[v] < 0 {
			return false
		}
	}
	return true
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestFilteredAndSorted_Filters(t *testing.T) {
	tests := []struct {
		name  string
		patch FilterPatch
		want  []string
	}{
		{"search by name", FilterPatch{Search: strPtr("mexico")}, []string{"MEX"}},
		{"search by capital", FilterPatch{Search: strPtr("OTTAWA")}, []string{"CAN"}},
		{"region", FilterPatch{Region: strPtr("Europe")}, []string{"FRA"}},
		{"population range", FilterPatch{MinPopulation: floatPtr(1e8), MaxPopulation: floatPtr(4e8)}, []string{"USA", "MEX"}},
		{"language", FilterPatch{Language: strPtr("French")}, []string{"CAN", "FRA"}},
		{"region and language", FilterPatch{Region: strPtr("Americas"), Language: strPtr("English")}, []string{"USA", "CAN"}},
		{"currency", FilterPatch{Currency: strPtr("dollar")}, []string{"USA", "CAN"}},
		{"no match", FilterPatch{Search: strPtr("atlantis")}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadedStore(t)
			s.SetFilters(tt.patch)
			if got := codes(s.FilteredAndSorted()); !sameSet(got, tt.want) {
				t.Fatalf("codes = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetFilters_MergesAndReset(t *testing.T) {
	s := loadedStore(t)
	s.SetFilters(FilterPatch{Region: strPtr("Americas")})
	s.SetFilters(FilterPatch{Language: strPtr("English")})

	f := s.Filters()
	if f.Region != "Americas" || f.Language != "English" || !math.IsInf(f.MaxPopulation, 1) {
		t.Fatalf("filters = %+v", f)
	}

	s.ResetFilters()
	if !s.Filters().IsDefault() {
		t.Fatalf("ResetFilters left %+v", s.Filters())
	}
	if got := len(s.FilteredAndSorted()); got != 4 {
		t.Fatalf("default filters matched %d, want 4", got)
	}
}

func TestFilteredAndSorted_Sorting(t *testing.T) {
	s := loadedStore(t)

	s.SetSort(SortByPopulation, Asc)
	if got := codes(s.FilteredAndSorted()); !equal(got, []string{"CAN", "FRA", "MEX", "USA"}) {
		t.Fatalf("population asc = %v", got)
	}

	s.SetSort(SortByName, Desc)
	var names []string
	for _, c := range s.FilteredAndSorted() {
		names = append(names, c.Name.Common)
	}
	if !equal(names, []string{"United States", "Mexico", "France", "Canada"}) {
		t.Fatalf("name desc = %v", names)
	}

	s.SetSort(SortByArea, Desc)
	if got := codes(s.FilteredAndSorted()); !equal(got, []string{"CAN", "USA", "MEX", "FRA"}) {
		t.Fatalf("area desc = %v", got)
	}

	s.SetSort("bogus", "sideways")
	if s.Sort() != DefaultSort() {
		t.Fatalf("invalid sort = %+v, want default", s.Sort())
	}
}

func TestSortCountries_StableForEqualKeys(t *testing.T) {
	items := []restcountries.Country{
		{CCA3: "AAA", Population: 5},
		{CCA3: "BBB", Population: 1},
		{CCA3: "CCC", Population: 5},
	}
	SortCountries(items, Sort{Field: SortByPopulation, Direction: Desc}, language.English)
	if got := codes(items); !equal(got, []string{"AAA", "CCC", "BBB"}) {
		t.Fatalf("order = %v", got)
	}
}

func TestSortCountries_LocaleAwareNames(t *testing.T) {
	items := []restcountries.Country{
		{CCA3: "ZZZ", Name: restcountries.Name{Common: "zeta"}},
		{CCA3: "ALA", Name: restcountries.Name{Common: "Åland Islands"}},
		{CCA3: "ALB", Name: restcountries.Name{Common: "albania"}},
	}
	SortCountries(items, DefaultSort(), language.English)
	if got := codes(items); !equal(got, []string{"ALA", "ALB", "ZZZ"}) {
		t.Fatalf("order = %v", got)
	}
}

func TestStatistics(t *testing.T) {
	s := loadedStore(t)
	s.SetFilters(FilterPatch{Region: strPtr("Europe")})

	stats := s.Statistics()
	want := int64(331002651 + 37742154 + 128932753 + 67391582)
	if stats.TotalCountries != 4 || stats.TotalPopulation != want {
		t.Fatalf("totals = %d/%d, want 4/%d (filters ignored)", stats.TotalCountries, stats.TotalPopulation, want)
	}
	if !stats.HasAverage || stats.AveragePopulation != float64(want)/4 {
		t.Fatalf("average = %v", stats.AveragePopulation)
	}
	if stats.Largest.CCA3 != "CAN" || stats.Smallest.CCA3 != "FRA" {
		t.Fatalf("area extremes = %s/%s", stats.Largest.CCA3, stats.Smallest.CCA3)
	}
	if stats.MostPopulated.CCA3 != "USA" || stats.LeastPopulated.CCA3 != "CAN" {
		t.Fatalf("population extremes = %s/%s", stats.MostPopulated.CCA3, stats.LeastPopulated.CCA3)
	}
	if len(stats.RegionDistribution) != 2 || stats.RegionDistribution["Americas"] != 3 || stats.RegionDistribution["Europe"] != 1 {
		t.Fatalf("regions = %v", stats.RegionDistribution)
	}
	if stats.PopulationByRegion["Europe"] != 67391582 {
		t.Fatalf("population by region = %v", stats.PopulationByRegion)
	}
}

func TestStatistics_Empty(t *testing.T) {
	stats := ComputeStatistics(nil)
	if stats.TotalCountries != 0 || stats.HasAverage || stats.AveragePopulation != 0 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.Largest != nil || stats.Smallest != nil || stats.MostPopulated != nil || stats.LeastPopulated != nil {
		t.Fatal("extremes should be nil for an empty collection")
	}
	if stats.RegionDistribution == nil || len(stats.RegionDistribution) != 0 {
		t.Fatalf("RegionDistribution = %v", stats.RegionDistribution)
	}
}

func TestRegionsAndLookup(t *testing.T) {
	s := loadedStore(t)
	if got := s.Regions(); !equal(got, []string{"Americas", "Europe"}) {
		t.Fatalf("Regions = %v", got)
	}
	if c, ok := s.Country("fr"); !ok || c.CCA3 != "FRA" {
		t.Fatalf("Country(fr) = %v, %v", c.CCA3, ok)
	}
	if got := codes(s.ByCodes([]string{"MEX", "XXX", "usa"})); !equal(got, []string{"MEX", "USA"}) {
		t.Fatalf("ByCodes = %v", got)
	}
}

func TestRefresh_SuccessNotifiesAndClearsLoading(t *testing.T) {
	sink := &recordingSink{}
	observer := &refreshCounter{}
	var s *Store
	fetcher := &fakeFetcher{countries: sampleCountries()}
	fetcher.during = func() {
		if !s.Loading() {
			t.Error("Loading should be true during fetch")
		}
	}
	s = NewStore(fetcher, Options{Sink: sink, Observer: observer})

	s.Refresh(context.Background())

	if s.Loading() {
		t.Fatal("Loading should be cleared")
	}
	if len(sink.messages) != 1 || sink.kinds[0] != notify.Success || sink.messages[0] != "4 países cargados correctamente" {
		t.Fatalf("notices = %v", sink.messages)
	}
	if len(observer.outcomes) != 1 || observer.outcomes[0] != nil {
		t.Fatalf("observer = %v", observer.outcomes)
	}
}

func TestRefresh_FailureKeepsCollection(t *testing.T) {
	sink := &recordingSink{}
	fetcher := &fakeFetcher{err: apierr.FromStatus("/region/Asia", 503)}
	s := NewStore(fetcher, Options{Sink: sink, Locale: func() language.Tag { return language.English }})

	s.Refresh(context.Background())
	snap := s.Snapshot()
	if len(snap.Countries) != 0 || snap.Loading || snap.LastError == nil || snap.ConsecutiveFailures != 1 {
		t.Fatalf("first failure snapshot = %+v", snap)
	}
	if sink.kinds[0] != notify.Error || sink.messages[0] != "The server is unavailable. Try again later." {
		t.Fatalf("notice = %v %q", sink.kinds[0], sink.messages[0])
	}

	fetcher.err = nil
	fetcher.countries = sampleCountries()
	s.Refresh(context.Background())

	fetcher.err = apierr.New(apierr.KindNetwork, "op", errors.New("dial"))
	s.Refresh(context.Background())
	snap = s.Snapshot()
	if len(snap.Countries) != 4 {
		t.Fatalf("later failure dropped the collection: %d", len(snap.Countries))
	}
	if !snap.IsOffline() {
		t.Fatal("network failure should mark offline")
	}
}

func TestRefresh_CancelledIsSilent(t *testing.T) {
	sink := &recordingSink{}
	s := NewStore(&fakeFetcher{err: apierr.New(apierr.KindCancelled, "op", context.Canceled)}, Options{Sink: sink})

	s.Refresh(context.Background())
	if len(sink.messages) != 0 {
		t.Fatalf("cancelled refresh notified %v", sink.messages)
	}
	if s.Snapshot().LastError != nil || s.Loading() {
		t.Fatal("cancelled refresh should leave state untouched")
	}
}

func TestRefreshFailureKey(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{apierr.New(apierr.KindTimeout, "op", context.DeadlineExceeded), "countries.error.timeout"},
		{apierr.NotFound("op"), "countries.error.not_found"},
		{apierr.New(apierr.KindNetwork, "op", errors.New("dial")), "countries.error.offline"},
		{apierr.FromStatus("op", 500), "countries.error.server"},
		{apierr.FromStatus("op", 400), "countries.error.generic"},
		{errors.New("odd"), "countries.error.generic"},
	}
	for _, tt := range tests {
		if got := RefreshFailureKey(tt.err); got != tt.want {
			t.Fatalf("RefreshFailureKey(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestSnapshot_Clones(t *testing.T) {
	s := loadedStore(t)
	snap := s.Snapshot()
	snap.Countries[0].CCA3 = "XXX"
	if s.Snapshot().Countries[0].CCA3 == "XXX" {
		t.Fatal("Snapshot should clone the collection")
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
