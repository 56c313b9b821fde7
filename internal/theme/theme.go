// Package theme persists the light/dark theme and UI language choices.
package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/atlas/internal/kv"
	"github.com/five82/atlas/internal/prefs"
)

// Mode is the color scheme.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

func modeFor(dark bool) Mode {
	if dark {
		return Dark
	}
	return Light
}

func parseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case Light, Dark:
		return Mode(s), true
	}
	return "", false
}

// SystemPreference reports the environment's preferred scheme.
type SystemPreference interface {
	Dark() bool
}

// TerminalPreference asks the terminal for its background color. The answer
// is detected once per process and cached by lipgloss.
type TerminalPreference struct{}

func (TerminalPreference) Dark() bool { return lipgloss.HasDarkBackground() }

// StaticPreference is a fixed preference.
type StaticPreference bool

func (p StaticPreference) Dark() bool { return bool(p) }

// Theme follows the system preference until the user picks a mode. Once a
// mode is stored it wins over the system until the override is cleared.
type Theme struct {
	store   kv.Storage
	binding *prefs.Binding[string]

	system SystemPreference

	mu         sync.Mutex
	systemDark bool
	override   bool
	onChange   func(Mode)
}

// NewTheme loads the stored override, if any. onChange, when non-nil, is
// called whenever the effective mode changes because of a system or external
// change.
func NewTheme(store kv.Storage, system SystemPreference, onChange func(Mode)) *Theme {
	if system == nil {
		system = StaticPreference(false)
	}
	t := &Theme{
		store:      store,
		system:     system,
		systemDark: system.Dark(),
		onChange:   onChange,
	}
	t.binding = prefs.Bind(store, prefs.KeyTheme, string(modeFor(t.systemDark)),
		prefs.WithCodec(prefs.String()),
		prefs.OnChange(func(string) { t.external() }),
	)
	t.override = t.stored()
	return t
}

// Mode returns the effective mode.
func (t *Theme) Mode() Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.modeLocked()
}

func (t *Theme) modeLocked() Mode {
	if t.override {
		if m, ok := parseMode(t.binding.Value()); ok {
			return m
		}
	}
	return modeFor(t.systemDark)
}

// IsDark reports whether the effective mode is Dark.
func (t *Theme) IsDark() bool { return t.Mode() == Dark }

// HasOverride reports whether the user picked a mode explicitly.
func (t *Theme) HasOverride() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.override
}

// Set stores m as the user's explicit choice.
func (t *Theme) Set(m Mode) error {
	if _, ok := parseMode(string(m)); !ok {
		m = Light
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.override = true
	return t.binding.Set(string(m))
}

// Toggle flips the effective mode and stores the result.
func (t *Theme) Toggle() (Mode, error) {
	next := Dark
	if t.IsDark() {
		next = Light
	}
	return next, t.Set(next)
}

// ClearOverride forgets the explicit choice and follows the system again.
func (t *Theme) ClearOverride() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.override = false
	return t.binding.Clear()
}

// SystemChanged records a new system preference. It only affects the
// effective mode while no override is stored.
func (t *Theme) SystemChanged(dark bool) {
	t.mu.Lock()
	before := t.modeLocked()
	t.systemDark = dark
	after := t.modeLocked()
	t.mu.Unlock()

	if before != after && t.onChange != nil {
		t.onChange(after)
	}
}

// Resync asks the system preference again and applies the answer through
// SystemChanged. It may block while the preference is queried, so callers
// on a UI loop run it off that loop. It returns the effective mode.
func (t *Theme) Resync() Mode {
	t.SystemChanged(t.system.Dark())
	return t.Mode()
}

// Close stops following external changes.
func (t *Theme) Close() { t.binding.Close() }

func (t *Theme) external() {
	t.mu.Lock()
	before := t.modeLocked()
	t.override = t.stored()
	after := t.modeLocked()
	t.mu.Unlock()

	if before != after && t.onChange != nil {
		t.onChange(after)
	}
}

func (t *Theme) stored() bool {
	raw, ok, err := t.store.Get(prefs.KeyTheme)
	if err != nil || !ok {
		return false
	}
	_, valid := parseMode(raw)
	return valid
}
