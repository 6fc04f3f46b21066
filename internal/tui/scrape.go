package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"editdesk-cli/internal/gateway"
)

type scrapePage struct {
	year  textinput.Model
	issue textinput.Model
	focus int

	running bool
	result  *gateway.ScrapeResult
	err     string
}

func newScrapePage(now time.Time) scrapePage {
	year := textinput.New()
	year.Prompt = ""
	year.CharLimit = 4
	year.SetValue(strconv.Itoa(now.Year()))
	year.Focus()

	issue := textinput.New()
	issue.Prompt = ""
	issue.CharLimit = 3
	issue.SetValue(strconv.Itoa(int(now.Month())))

	return scrapePage{year: year, issue: issue}
}

func (m *appModel) updateScrape(msg tea.KeyMsg) tea.Cmd {
	s := &m.scrape
	switch {
	case key.Matches(msg, keyFocus), key.Matches(msg, keyBack):
		s.focus = 1 - s.focus
		if s.focus == 0 {
			s.issue.Blur()
			return s.year.Focus()
		}
		s.year.Blur()
		return s.issue.Focus()
	case key.Matches(msg, keySubmit):
		if s.running {
			return nil
		}
		s.running = true
		s.err = ""
		ctx, client := m.ctx, m.client
		year, issue := s.year.Value(), s.issue.Value()
		return tea.Batch(func() tea.Msg {
			res, err := client.StartScraping(ctx, year, issue)
			return scrapeDoneMsg{res: res, err: err}
		}, m.spin.Tick)
	}

	var cmd tea.Cmd
	if s.focus == 0 {
		s.year, cmd = s.year.Update(msg)
	} else {
		s.issue, cmd = s.issue.Update(msg)
	}
	return cmd
}

func (s *scrapePage) apply(msg scrapeDoneMsg) {
	s.running = false
	if msg.err != nil {
		s.result = nil
		s.err = "scraping failed: " + msg.err.Error()
		return
	}
	res := msg.res
	s.result = &res
}

func (s scrapePage) view(w int, spin string) string {
	var b strings.Builder
	b.WriteString(styleHeading().Render("Scraping"))
	b.WriteString("\n")
	b.WriteString(renderInputLine(w/2, "year ", s.year.View()))
	b.WriteString("\n")
	b.WriteString(renderInputLine(w/2, "issue", s.issue.View()))
	b.WriteString("\n\n")

	switch {
	case s.running:
		b.WriteString(spin + " scraping...")
	case s.err != "":
		b.WriteString(styleError().Render(s.err))
	case s.result != nil:
		r := s.result
		b.WriteString(styleSuccess().Render(fmt.Sprintf("%s issue %s: %d articles", r.Year, r.Issue, r.ArticlesCount)))
		for _, a := range r.Articles {
			b.WriteString("\n")
			b.WriteString(a.Title + "  " + styleMuted().Render(a.ImagePath))
		}
	}
	return b.String()
}
