package theme

import (
	"golang.org/x/text/language"

	"github.com/five82/atlas/internal/i18n"
	"github.com/five82/atlas/internal/kv"
	"github.com/five82/atlas/internal/prefs"
)

// Locale is the persisted UI language.
type Locale struct {
	def     language.Tag
	binding *prefs.Binding[string]
}

// NewLocale loads the stored language, falling back to def.
func NewLocale(store kv.Storage, def language.Tag, onChange func(language.Tag)) *Locale {
	l := &Locale{def: def}
	opts := []prefs.Option[string]{prefs.WithCodec(prefs.String())}
	if onChange != nil {
		opts = append(opts, prefs.OnChange(func(string) { onChange(l.Tag()) }))
	}
	l.binding = prefs.Bind(store, prefs.KeyLocale, i18n.Code(def), opts...)
	return l
}

// Tag returns the current language. Unsupported stored values yield the
// default.
func (l *Locale) Tag() language.Tag {
	if tag, ok := i18n.Parse(l.binding.Value()); ok {
		return tag
	}
	return l.def
}

// Code returns the short language code.
func (l *Locale) Code() string { return i18n.Code(l.Tag()) }

// Set stores tag.
func (l *Locale) Set(tag language.Tag) error {
	return l.binding.Set(i18n.Code(tag))
}

// Toggle switches to the next supported language.
func (l *Locale) Toggle() (language.Tag, error) {
	supported := i18n.Supported()
	current := l.Tag()
	next := supported[0]
	for i, tag := range supported {
		if tag == current {
			next = supported[(i+1)%len(supported)]
			break
		}
	}
	return next, l.Set(next)
}

// Close stops following external changes.
func (l *Locale) Close() { l.binding.Close() }
