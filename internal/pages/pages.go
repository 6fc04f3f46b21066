// Package pages tracks which desk page is shown and which nav entry is highlighted.
package pages

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

var ErrUnknownPage = errors.New("unknown page")

const (
	Home     = "home"
	Todo     = "todo"
	PageFee  = "page-fee"
	Scraping = "scraping"
	Notes    = "notes"
	AIChat   = "ai-chat"
)

type Page struct {
	ID    string
	Label string
}

// Default is the desk's page set in nav order.
var Default = []Page{
	{ID: Home, Label: "Home"},
	{ID: Todo, Label: "To-do"},
	{ID: PageFee, Label: "Page fees"},
	{ID: Scraping, Label: "Scraping"},
	{ID: Notes, Label: "Notes"},
	{ID: AIChat, Label: "AI chat"},
}

// Switcher keeps two pieces of state: the page on screen and the highlighted nav entry.
// They only diverge after a switch to an unknown page: the nav highlight is cleared while
// the previous page stays on screen.
type Switcher struct {
	pages   []Page
	visible string
	active  string
	log     *log.Logger
}

type NavEntry struct {
	Page
	Active bool
}

// New activates defaultID. An unknown default leaves no page visible or active.
func New(pages []Page, defaultID string, logger *log.Logger) *Switcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Switcher{pages: pages, log: logger}
	_ = s.Switch(defaultID)
	return s
}

// Switch shows id and highlights its nav entry.
func (s *Switcher) Switch(id string) error {
	if !s.known(id) {
		s.active = ""
		s.log.Error("page not found", "page", id, "visible", s.visible)
		return ErrUnknownPage
	}
	s.visible = id
	s.active = id
	s.log.Debug("page switched", "page", id)
	return nil
}

// Cycle moves delta entries along the nav, wrapping at the ends.
func (s *Switcher) Cycle(delta int) {
	if len(s.pages) == 0 {
		return
	}
	i := s.index(s.visible)
	if i < 0 {
		i = 0
	} else {
		i = ((i+delta)%len(s.pages) + len(s.pages)) % len(s.pages)
	}
	_ = s.Switch(s.pages[i].ID)
}

// Visible returns the page on screen, or "" when none.
func (s *Switcher) Visible() string { return s.visible }

// Active returns the highlighted nav entry, or "" when none.
func (s *Switcher) Active() string { return s.active }

func (s *Switcher) IsVisible(id string) bool { return id != "" && s.visible == id }

func (s *Switcher) Nav() []NavEntry {
	out := make([]NavEntry, 0, len(s.pages))
	for _, p := range s.pages {
		out = append(out, NavEntry{Page: p, Active: p.ID == s.active})
	}
	return out
}

func (s *Switcher) Pages() []Page {
	return append([]Page(nil), s.pages...)
}

func (s *Switcher) known(id string) bool {
	_, ok := Lookup(s.pages, id)
	return ok
}

func (s *Switcher) index(id string) int {
	for i, p := range s.pages {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Lookup finds id in ps.
func Lookup(ps []Page, id string) (Page, bool) {
	for _, p := range ps {
		if p.ID == id {
			return p, true
		}
	}
	return Page{}, false
}
