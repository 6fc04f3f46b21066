package tui

import (
	"os"
	"strings"
	"sync"

	"editdesk-cli/internal/render"
)

// Some fonts render the checkbox and star glyphs poorly; the ASCII set is the fallback.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference reads EDITDESK_TUI_GLYPHS, falling back to the configured value.
// Unknown values are ignored.
func applyGlyphPreference(configured string) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("EDITDESK_TUI_GLYPHS")))
	if v == "" {
		v = strings.ToLower(strings.TrimSpace(configured))
	}
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

// rowGlyphs is the glyph set for task and page-fee rows.
func rowGlyphs() render.Glyphs {
	if glyphs() == glyphSetASCII {
		return render.ASCIIGlyphs
	}
	return render.UnicodeGlyphs
}

func glyphCursor() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "▸"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

func glyphHourglass() string {
	if glyphs() == glyphSetASCII {
		return "..."
	}
	return "⏳"
}
