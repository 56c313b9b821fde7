package favorites

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/five82/atlas/internal/kv"
	"github.com/five82/atlas/internal/notify"
	"github.com/five82/atlas/internal/prefs"
)

type recordingSink struct {
	notices []string
	kinds   []notify.Kind
}

func (r *recordingSink) Notify(kind notify.Kind, message string) {
	r.kinds = append(r.kinds, kind)
	r.notices = append(r.notices, message)
}

type countingStorage struct {
	kv.Storage
	writes int
}

func (c *countingStorage) Set(key, value string) error {
	c.writes++
	return c.Storage.Set(key, value)
}

func englishOptions(max int, sink notify.Sink) Options {
	return Options{Max: max, Sink: sink, Locale: func() language.Tag { return language.English }}
}

func TestFavorites_ToggleTwiceReturnsToAbsence(t *testing.T) {
	store := kv.NewMemory()
	sink := &recordingSink{}
	f := NewFavorites(store, englishOptions(0, sink))

	added, err := f.Toggle("fra")
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, f.Contains("FRA"))

	raw, ok, _ := store.Get(prefs.KeyFavorites)
	require.True(t, ok)
	assert.Equal(t, `["FRA"]`, raw, "toggle persists immediately")

	added, err = f.Toggle("FRA")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, f.List())
	assert.Equal(t, []string{"FRA added to favorites", "FRA removed from favorites"}, sink.notices)
	assert.Equal(t, DefaultMaxFavorites, f.Max())
}

func TestFavorites_LimitRejectsWithoutChange(t *testing.T) {
	store := kv.NewMemory()
	sink := &recordingSink{}
	f := NewFavorites(store, englishOptions(2, sink))

	_, err := f.Toggle("USA")
	require.NoError(t, err)
	_, err = f.Toggle("CAN")
	require.NoError(t, err)

	added, err := f.Toggle("MEX")
	assert.ErrorIs(t, err, ErrLimitReached)
	assert.False(t, added)
	assert.Equal(t, []string{"USA", "CAN"}, f.List())
	assert.Equal(t, notify.Warning, sink.kinds[len(sink.kinds)-1])
	assert.Equal(t, "At most 2 favorites allowed", sink.notices[len(sink.notices)-1])
}

func TestFavorites_LoadsPersistedList(t *testing.T) {
	store := kv.NewMemory()
	require.NoError(t, store.Set(prefs.KeyFavorites, `["JPN","BRA"]`))

	f := NewFavorites(store, Options{})
	assert.Equal(t, 2, f.Count())
	assert.True(t, f.Contains("bra"))

	require.NoError(t, f.Clear())
	assert.Zero(t, f.Count())
}

func TestComparison_DuplicateAndLimitAreDistinct(t *testing.T) {
	sink := &recordingSink{}
	c := NewComparison(kv.NewMemory(), englishOptions(0, sink))
	assert.Equal(t, DefaultMaxComparison, c.Max())

	for _, code := range []string{"USA", "CAN", "MEX"} {
		require.NoError(t, c.Add(code))
	}
	err := c.Add("usa")
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.False(t, errors.Is(err, ErrLimitReached))

	require.NoError(t, c.Add("FRA"))
	assert.True(t, c.Full())

	err = c.Add("DEU")
	assert.ErrorIs(t, err, ErrLimitReached)
	assert.False(t, errors.Is(err, ErrDuplicate))
	assert.Equal(t, []string{"USA", "CAN", "MEX", "FRA"}, c.List())

	removed, err := c.Remove("CAN")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = c.Remove("CAN")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 3, c.Count())
}

func TestComparison_ClearOnEmptyDoesNothing(t *testing.T) {
	store := &countingStorage{Storage: kv.NewMemory()}
	sink := &recordingSink{}
	c := NewComparison(store, englishOptions(0, sink))

	cleared, err := c.Clear()
	require.NoError(t, err)
	assert.False(t, cleared)
	assert.Zero(t, store.writes)
	assert.Empty(t, sink.notices)

	require.NoError(t, c.Add("USA"))
	cleared, err = c.Clear()
	require.NoError(t, err)
	assert.True(t, cleared)
	assert.Equal(t, 2, store.writes)
	assert.Equal(t, "Comparison cleared", sink.notices[len(sink.notices)-1])
}

func TestComparison_Toggle(t *testing.T) {
	c := NewComparison(kv.NewMemory(), Options{Max: 1})

	in, err := c.Toggle("USA")
	require.NoError(t, err)
	assert.True(t, in)

	in, err = c.Toggle("CAN")
	assert.ErrorIs(t, err, ErrLimitReached)
	assert.False(t, in)

	in, err = c.Toggle("USA")
	require.NoError(t, err)
	assert.False(t, in)
}

func TestFavorites_LabelUsedInNotices(t *testing.T) {
	sink := &recordingSink{}
	f := NewFavorites(kv.NewMemory(), Options{
		Sink:   sink,
		Locale: func() language.Tag { return language.Spanish },
		Label:  func(code string) string { return "Francia" },
	})
	_, err := f.Toggle("FRA")
	require.NoError(t, err)
	assert.Equal(t, []string{"Francia agregado a favoritos"}, sink.notices)
}

func TestComparison_FullSetReportsLimitBeforeDuplicate(t *testing.T) {
	sink := &recordingSink{}
	c := NewComparison(kv.NewMemory(), englishOptions(2, sink))
	require.NoError(t, c.Add("USA"))
	require.NoError(t, c.Add("CAN"))

	err := c.Add("USA")
	assert.ErrorIs(t, err, ErrLimitReached)
	assert.False(t, errors.Is(err, ErrDuplicate))
	assert.Equal(t, notify.Warning, sink.kinds[len(sink.kinds)-1])
	assert.Equal(t, "At most 2 countries can be compared", sink.notices[len(sink.notices)-1])
}

type failingStorage struct {
	kv.Storage
}

func (failingStorage) Set(string, string) error { return errors.New("disk full") }

func TestFavorites_StorageFailureNotifies(t *testing.T) {
	sink := &recordingSink{}
	f := NewFavorites(failingStorage{kv.NewMemory()}, englishOptions(0, sink))

	_, err := f.Toggle("FRA")
	require.Error(t, err)
	assert.Equal(t, []string{"Could not load or save favorites"}, sink.notices)
	assert.Equal(t, []notify.Kind{notify.Warning}, sink.kinds)
}

func TestComparison_UndecodableStoredValueNotifies(t *testing.T) {
	store := kv.NewMemory()
	require.NoError(t, store.Set(prefs.KeyComparison, "{not json"))
	sink := &recordingSink{}
	c := NewComparison(store, Options{Sink: sink, Locale: func() language.Tag { return language.Spanish }})

	assert.Empty(t, c.List())
	assert.Equal(t, []string{"Error al cargar/guardar comparación"}, sink.notices)
}

func TestFavorites_ToggleKeepsExternalChanges(t *testing.T) {
	backend := kv.NewMemoryBackend()
	f := NewFavorites(backend.Open(), englishOptions(0, nil))
	other := backend.Open()

	_, err := f.Toggle("USA")
	require.NoError(t, err)
	require.NoError(t, other.Set(prefs.KeyFavorites, `["USA","CAN"]`))

	_, err = f.Toggle("MEX")
	require.NoError(t, err)
	assert.Equal(t, []string{"USA", "CAN", "MEX"}, f.List())

	raw, _, err := other.Get(prefs.KeyFavorites)
	require.NoError(t, err)
	assert.Equal(t, `["USA","CAN","MEX"]`, raw)
}
