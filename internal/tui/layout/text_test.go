package layout

import (
	"strings"
	"testing"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no ANSI", "docs", "docs"},
		{"bold", "\x1b[1mdocs\x1b[0m", "docs"},
		{"teal foreground", "\x1b[38;2;95;135;135mlink\x1b[0m", "link"},
		{"empty", "", ""},
		{"only ANSI", "\x1b[1m\x1b[0m", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.input); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVisibleLength(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"example.com", 11},
		{"\x1b[1mexample\x1b[0m", 7},
		{"Open ↗", 6},
		{"", 0},
	}

	for _, tt := range tests {
		if got := VisibleLength(tt.input); got != tt.want {
			t.Errorf("VisibleLength(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestTruncateText(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"fits", "Docs", 10, "Docs", false},
		{"exact", "Docs", 4, "Docs", false},
		{"cut", "https://example.com/long", 12, "https://e...", true},
		{"only ellipsis room", "Docs page", 3, "...", true},
		{"narrower than ellipsis", "Docs page", 2, "..", true},
		{"zero width", "Docs", 0, "", true},
		{"zero width empty", "", 0, "", false},
		{"runes", "über-lange Überschrift", 8, "über-...", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.text, tt.maxWidth, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateText(%q, %d) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestTruncateWithSuffix(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		text      string
		suffix    string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"fits", "Docs", " ↗", 10, "Docs ↗", false},
		{"keeps marker", "Documentation", " ↗", 10, "Docum... ↗", true},
		{"no marker", "Documentation", "", 8, "Docum...", true},
		{"marker too wide", "Docs", " ↗", 2, "..", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateWithSuffix(tt.text, tt.suffix, tt.maxWidth, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateWithSuffix(%q, %q, %d) = (%q, %v), want (%q, %v)",
					tt.text, tt.suffix, tt.maxWidth, got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestTruncateANSIAware(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name     string
		input    string
		maxWidth int
	}{
		{"plain", "github.com/charmbracelet", 10},
		{"styled", "\x1b[1mgithub.com/charmbracelet\x1b[0m", 10},
		{"highlight in middle", "git\x1b[1mhub\x1b[0m.com/charm", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateANSIAware(tt.input, tt.maxWidth, cfg)
			if n := VisibleLength(got); n != tt.maxWidth {
				t.Errorf("visible length = %d, want %d (got %q)", n, tt.maxWidth, got)
			}
			if !strings.HasSuffix(got, "...\x1b[0m") {
				t.Errorf("expected ellipsis and reset suffix, got %q", got)
			}
		})
	}
}

func TestTruncateANSIAware_NoCut(t *testing.T) {
	cfg := DefaultConfig().Text

	in := "\x1b[1mshort\x1b[0m"
	if got := TruncateANSIAware(in, 10, cfg); got != in {
		t.Errorf("expected input unchanged, got %q", got)
	}
	if got := TruncateANSIAware(in, 0, cfg); got != "" {
		t.Errorf("expected empty for zero width, got %q", got)
	}
}
