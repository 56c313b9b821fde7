// Package i18n resolves the UI language and prints localized messages.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	supported = []language.Tag{language.Spanish, language.English}
	matcher   = language.NewMatcher(supported)
)

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Default returns the default language tag.
func Default() language.Tag {
	return language.Spanish
}

// Parse maps value ("en", "es-MX", "en_US.UTF-8") to a supported tag. The bool
// is false when value names no supported language.
func Parse(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if base, _, ok := strings.Cut(value, "."); ok {
		value = base
	}
	value = strings.ReplaceAll(value, "_", "-")
	if value == "" || value == "C" || value == "POSIX" {
		return Default(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return Default(), false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return Default(), false
	}
	return supported[index], true
}

// Match returns the first supported tag named by values, or the default.
func Match(values ...string) language.Tag {
	for _, v := range values {
		if tag, ok := Parse(v); ok {
			return tag
		}
	}
	return Default()
}

// Code returns the short code ("es", "en") stored in preferences.
func Code(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(messages))
}

// T formats the message for key in tag.
func T(tag language.Tag, key string, args ...any) string {
	return Printer(tag).Sprintf(key, args...)
}
