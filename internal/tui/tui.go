// Package tui is the interactive desk: a nav bar over six pages (home, to-do, page fees,
// scraping, notes, AI chat) driven by bubbletea.
package tui

import (
	"context"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"editdesk-cli/internal/gateway"
	"editdesk-cli/internal/logging"
	"editdesk-cli/internal/model"
	"editdesk-cli/internal/store"
)

// Backend is the server surface the desk uses. *gateway.Client satisfies it.
type Backend interface {
	Search(ctx context.Context, typ gateway.SearchType, value string) (gateway.SearchResult, error)
	ProcessReview(ctx context.Context, month string) (gateway.ReviewResult, error)
	PageFees(ctx context.Context, filter gateway.Filter) ([]model.PageFeeRow, error)
	UpdateStatus(ctx context.Context, manuscript, statusType string, checked bool) (string, error)
	StartScraping(ctx context.Context, year, issue string) (gateway.ScrapeResult, error)
	LoadNotes(ctx context.Context) (map[string]string, error)
	SaveNotes(ctx context.Context, notes map[string]string) (string, error)
	OpenFolder(ctx context.Context) (string, error)
	OpenProgramFolder(ctx context.Context) (string, error)
	Chat(ctx context.Context, message string) (string, error)
}

type Options struct {
	Config store.Config
	// Store is the data dir; it holds the TUI state, chat log, and log file.
	Store  store.Store
	KV     store.KV
	Client Backend
	// Page overrides Config.DefaultPage.
	Page string
	// Logger defaults to <dir>/editdesk.log.
	Logger *log.Logger
}

func Run(opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.Config.TUI.Theme)
	applyGlyphPreference(opts.Config.TUI.Glyphs)

	if opts.Logger == nil {
		level := "info"
		if opts.Config.LogLevel == "debug" {
			level = "debug"
		}
		l, closer, err := logging.OpenFile(filepath.Join(opts.Store.Dir, "editdesk.log"), level)
		if err != nil {
			return err
		}
		defer closer.Close()
		opts.Logger = l
	}

	m := newAppModel(opts)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if fm, ok := final.(appModel); ok {
		fm.shutdown()
	} else {
		m.shutdown()
	}
	return err
}
