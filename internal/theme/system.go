package theme

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// desktopQueryTimeout bounds one desktop setting lookup.
const desktopQueryTimeout = 2 * time.Second

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) (string, error)

func execRunner(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return string(out), err
}

// DesktopPreference reads the desktop's color-scheme setting each time Dark
// is called, so a change made in the OS settings is picked up while the
// program runs. When the desktop has no answer, Fallback decides.
//
// Linux desktops are asked through gsettings, macOS through defaults.
type DesktopPreference struct {
	Fallback SystemPreference
	// GOOS defaults to runtime.GOOS.
	GOOS string
	// Run defaults to os/exec.
	Run Runner
}

func (p DesktopPreference) Dark() bool {
	if dark, ok := p.query(); ok {
		return dark
	}
	if p.Fallback != nil {
		return p.Fallback.Dark()
	}
	return false
}

func (p DesktopPreference) query() (dark, ok bool) {
	run := p.Run
	if run == nil {
		run = execRunner
	}
	goos := p.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	ctx, cancel := context.WithTimeout(context.Background(), desktopQueryTimeout)
	defer cancel()

	switch goos {
	case "darwin":
		// The key only exists while dark mode is on.
		out, err := run(ctx, "defaults", "read", "-g", "AppleInterfaceStyle")
		if err != nil {
			return false, ctx.Err() == nil
		}
		return strings.EqualFold(strings.TrimSpace(out), "dark"), true
	case "linux", "freebsd", "openbsd", "netbsd":
		out, err := run(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme")
		if err != nil {
			return false, false
		}
		switch strings.Trim(strings.TrimSpace(out), "'") {
		case "prefer-dark":
			return true, true
		case "prefer-light", "default":
			return false, true
		}
	}
	return false, false
}
