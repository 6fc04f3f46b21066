// Package markup renders assistant replies. Replies are markdown; the terminal gets
// glamour output and exports get sanitized HTML.
package markup

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	renderersMu sync.Mutex
	// Keyed by style + width. WithAutoStyle can block on terminal queries, so a fixed
	// style is picked up front and the renderer is reused.
	renderers = map[string]*glamour.TermRenderer{}
)

// Terminal renders md for a terminal of the given width. style is "light" or "dark";
// anything else is detected. On any renderer failure the source text is returned.
func Terminal(md string, width int, style string) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	style = normalizeStyle(style)
	key := style + ":" + strconv.Itoa(width)

	renderersMu.Lock()
	r := renderers[key]
	renderersMu.Unlock()

	if r == nil {
		cfg := styleConfig(style)
		zero := uint(0)
		cfg.Document.Margin = &zero
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(cfg),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		renderersMu.Lock()
		if existing := renderers[key]; existing != nil {
			r = existing
		} else {
			renderers[key] = rr
			r = rr
		}
		renderersMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

func styleConfig(style string) ansi.StyleConfig {
	if style == "light" {
		return styles.LightStyleConfig
	}
	return styles.DarkStyleConfig
}

func normalizeStyle(style string) string {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	case "notty", "ascii":
		return "dark"
	default:
		return DetectStyle()
	}
}

// DetectStyle guesses the terminal background without querying the terminal.
func DetectStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("EDITDESK_TUI_THEME"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	// COLORFGBG is often "fg;bg" (e.g. "15;0" => dark bg).
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			// xterm palette: 0-6 dark, 7-15 light.
			if bg >= 7 {
				return "light"
			}
			return "dark"
		}
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
