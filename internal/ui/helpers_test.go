package ui

import (
	"testing"
	"time"

	"golang.org/x/text/language"
)

func TestHumanizeDuration(t *testing.T) {
	cases := []struct {
		name string
		in   int64 // seconds
		want string
	}{
		{"negative", -5, "now"},
		{"subsecond", 0, "now"},
		{"seconds", 12, "12s"},
		{"minutes", 61, "1m"},
		{"hours_only", 2*60*60 + 10, "2h"},
		{"hours_minutes", 2*60*60 + 3*60, "2h 3m"},
		{"days", 24 * 60 * 60, "1d"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := humanizeDuration(timeSeconds(tc.in))
			if got != tc.want {
				t.Fatalf("humanizeDuration(%d) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("France", 10); got != "France" {
		t.Fatalf("truncate short = %q, want France", got)
	}
	if got := truncate("United Kingdom", 6); got != "Unite…" {
		t.Fatalf("truncate = %q, want Unite…", got)
	}
	if got := truncate("Åland Islands", 1); got != "…" {
		t.Fatalf("truncate limit 1 = %q, want …", got)
	}
	if got := truncate("x", 0); got != "" {
		t.Fatalf("truncate limit 0 = %q, want empty", got)
	}
}

func TestFormatInt_GroupsByLocale(t *testing.T) {
	if got := formatInt(language.English, 1234567); got != "1,234,567" {
		t.Fatalf("formatInt(en) = %q, want 1,234,567", got)
	}
	if got := formatInt(language.Spanish, 1234567); got != "1.234.567" {
		t.Fatalf("formatInt(es) = %q, want 1.234.567", got)
	}
}

func TestFormatCompact(t *testing.T) {
	cases := map[float64]string{
		999:           "999",
		1500:          "1.5K",
		38_000_000:    "38.0M",
		7_900_000_000: "7.9B",
	}
	for in, want := range cases {
		if got := formatCompact(in); got != want {
			t.Fatalf("formatCompact(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestJoinSorted(t *testing.T) {
	if got := joinSorted(nil); got != "-" {
		t.Fatalf("joinSorted(nil) = %q, want -", got)
	}
	if got := joinSorted([]string{"Spanish", " ", "English"}); got != "English, Spanish" {
		t.Fatalf("joinSorted = %q", got)
	}
}

func timeSeconds(sec int64) time.Duration {
	return time.Duration(sec) * time.Second
}
