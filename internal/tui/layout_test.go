package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"

	"editdesk-cli/internal/render"
)

func TestNormalizePane(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		in     string
		width  int
		height int
		lines  int
	}{
		{"pads short", "a\nb", 5, 4, 4},
		{"cuts tall", "1\n2\n3\n4", 3, 2, 2},
		{"truncates wide", strings.Repeat("x", 20), 6, 1, 1},
		{"ansi aware", "\x1b[1mbold\x1b[0m", 8, 1, 1},
		{"height zero keeps lines", "a\nb\nc", 2, 0, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizePane(tc.in, tc.width, tc.height)
			lines := strings.Split(got, "\n")
			if len(lines) != tc.lines {
				t.Fatalf("expected %d lines, got %d: %q", tc.lines, len(lines), got)
			}
			for i, ln := range lines {
				if w := xansi.StringWidth(ln); w != tc.width {
					t.Fatalf("line %d: expected width %d, got %d (%q)", i, tc.width, w, ln)
				}
			}
		})
	}
}

func TestNormalizePane_TruncationMarker(t *testing.T) {
	t.Parallel()
	got := normalizePane("abcdefgh", 4, 1)
	if got != "abc…" {
		t.Fatalf("got %q", got)
	}
}

func TestGlyphPreference(t *testing.T) {
	defer setGlyphs(glyphSetUnicode)

	t.Setenv("EDITDESK_TUI_GLYPHS", "")
	applyGlyphPreference("ascii")
	if rowGlyphs() != render.ASCIIGlyphs || glyphHourglass() != "..." {
		t.Fatalf("expected ascii from config")
	}

	t.Setenv("EDITDESK_TUI_GLYPHS", "unicode")
	applyGlyphPreference("ascii")
	if rowGlyphs() != render.UnicodeGlyphs {
		t.Fatalf("expected env to win over config")
	}

	applyGlyphPreference("bogus")
	if rowGlyphs() != render.UnicodeGlyphs {
		t.Fatalf("unknown values must not change the set")
	}
}
