package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/five82/atlas/internal/apierr"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want language.Tag
		ok   bool
	}{
		{"es", language.Spanish, true},
		{"en", language.English, true},
		{"en-GB", language.English, true},
		{"es_MX.UTF-8", language.Spanish, true},
		{"C", language.Spanish, false},
		{"", language.Spanish, false},
		{"not a tag!", language.Spanish, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestMatch_FirstSupportedWins(t *testing.T) {
	assert.Equal(t, language.English, Match("", "C", "en_US.UTF-8", "es"))
	assert.Equal(t, language.Spanish, Match())
	assert.Equal(t, "en", Code(language.English))
	assert.Equal(t, "es", Code(Default()))
}

func TestT_LocalizesMessages(t *testing.T) {
	assert.Equal(t, "3 countries loaded successfully", T(language.English, CountriesLoaded, 3))
	assert.Equal(t, "3 países cargados correctamente", T(language.Spanish, CountriesLoaded, 3))
	assert.Equal(t, "FRA agregado a favoritos", T(language.Spanish, FavoriteAdded, "FRA"))
}

func TestErrorMessage(t *testing.T) {
	assert.Empty(t, ErrorMessage(language.English, nil))
	assert.Equal(t, "Too many requests. Please wait a moment.",
		ErrorMessage(language.English, apierr.FromStatus("op", 429)))
	assert.Equal(t, "Resource not found.", ErrorMessage(language.English, apierr.NotFound("op")))
	assert.Equal(t, "Request error.", ErrorMessage(language.English, apierr.FromStatus("op", 418)))
	assert.Equal(t, "Error del servidor. Intenta más tarde.",
		ErrorMessage(language.Spanish, apierr.FromStatus("op", 503)))
	assert.Equal(t, ErrCancelled, ErrorKey(context.Canceled))
	assert.Equal(t, ErrUnknown, ErrorKey(assert.AnError))
}
