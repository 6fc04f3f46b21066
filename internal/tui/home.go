package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"editdesk-cli/internal/gateway"
	"editdesk-cli/internal/render"
)

const folderMessageTTL = 2 * time.Second

type folderState int

const (
	folderIdle folderState = iota
	folderBusy
	folderDone
)

// folderControl is one open-folder button: disabled while the request runs, then showing
// the server's message for a moment.
type folderControl struct {
	label   string
	state   folderState
	message string
	seq     int
}

func (f *folderControl) start() bool {
	if f.state != folderIdle {
		return false
	}
	f.state = folderBusy
	return true
}

func (f *folderControl) succeed(msg string) int {
	f.seq++
	f.state = folderDone
	f.message = msg
	return f.seq
}

func (f *folderControl) fail() {
	f.seq++
	f.state = folderIdle
	f.message = ""
}

func (f *folderControl) reset(seq int) {
	if seq != f.seq || f.state != folderDone {
		return
	}
	f.state = folderIdle
	f.message = ""
}

func (f folderControl) view() string {
	switch f.state {
	case folderBusy:
		return styleMuted().Render(glyphHourglass() + " opening...")
	case folderDone:
		return styleSuccess().Render(f.message)
	default:
		return "[ " + f.label + " ]"
	}
}

type homePage struct {
	searchType gateway.SearchType
	search     textinput.Model
	month      textinput.Model
	// 0: search, 1: month
	focus int

	searching  bool
	showResult bool
	result     gateway.SearchResult
	resultErr  string

	reviewing bool
	review    string
	reviewErr bool

	folder  folderControl
	program folderControl
}

func newHomePage(savedType string) homePage {
	st, err := gateway.ParseSearchType(savedType)
	if err != nil {
		st = gateway.SearchEmployee
	}
	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = searchPlaceholder(st)
	search.Focus()

	month := textinput.New()
	month.Prompt = ""
	month.Placeholder = "YYYY-MM"
	month.CharLimit = 7
	month.SetValue(time.Now().Format("2006-01"))

	return homePage{
		searchType: st,
		search:     search,
		month:      month,
		folder:     folderControl{label: "open journal folder"},
		program:    folderControl{label: "open program folder"},
	}
}

func searchPlaceholder(st gateway.SearchType) string {
	switch st {
	case gateway.SearchEmployeeID:
		return "employee number"
	case gateway.SearchManuscript:
		return "manuscript number"
	default:
		return "employee name"
	}
}

func (h *homePage) folderFor(program bool) *folderControl {
	if program {
		return &h.program
	}
	return &h.folder
}

func (h *homePage) cycleSearchType() {
	i := 0
	for j, st := range gateway.SearchTypes {
		if st == h.searchType {
			i = j
		}
	}
	h.searchType = gateway.SearchTypes[(i+1)%len(gateway.SearchTypes)]
	h.search.Placeholder = searchPlaceholder(h.searchType)
}

func (h *homePage) setFocus(i int) {
	h.focus = i
	if i == 0 {
		h.search.Focus()
		h.month.Blur()
	} else {
		h.search.Blur()
		h.month.Focus()
	}
}

func (m *appModel) updateHome(msg tea.KeyMsg) tea.Cmd {
	h := &m.home
	switch {
	case key.Matches(msg, keyFocus), key.Matches(msg, keyBack):
		h.setFocus(1 - h.focus)
		return nil
	case key.Matches(msg, keySearchType):
		h.cycleSearchType()
		return nil
	case key.Matches(msg, keyClose):
		h.showResult = false
		return nil
	case key.Matches(msg, keyOpenFolder):
		return m.openFolder(false)
	case key.Matches(msg, keyProgramFolder):
		return m.openFolder(true)
	case key.Matches(msg, keySubmit):
		if h.focus == 0 {
			return m.startSearch()
		}
		return m.startReview()
	}

	var cmd tea.Cmd
	if h.focus == 0 {
		h.search, cmd = h.search.Update(msg)
	} else {
		h.month, cmd = h.month.Update(msg)
	}
	return cmd
}

func (m *appModel) startSearch() tea.Cmd {
	h := &m.home
	value := strings.TrimSpace(h.search.Value())
	h.showResult = true
	h.result = nil
	if value == "" {
		h.resultErr = "enter something to search for"
		return nil
	}
	h.resultErr = ""
	h.searching = true
	ctx, client, typ := m.ctx, m.client, h.searchType
	return tea.Batch(func() tea.Msg {
		res, err := client.Search(ctx, typ, value)
		return searchDoneMsg{res: res, err: err}
	}, m.spin.Tick)
}

func (h *homePage) applySearch(msg searchDoneMsg) {
	h.searching = false
	h.showResult = true
	if msg.err != nil {
		h.result = nil
		h.resultErr = "search failed: " + msg.err.Error()
		return
	}
	h.result = msg.res
	h.resultErr = ""
}

func (m *appModel) startReview() tea.Cmd {
	h := &m.home
	month := strings.TrimSpace(h.month.Value())
	if month == "" {
		h.review = "choose a month"
		h.reviewErr = true
		return nil
	}
	h.reviewing = true
	h.review = ""
	ctx, client := m.ctx, m.client
	return tea.Batch(func() tea.Msg {
		res, err := client.ProcessReview(ctx, month)
		return reviewDoneMsg{res: res, err: err}
	}, m.spin.Tick)
}

func (h *homePage) applyReview(msg reviewDoneMsg) {
	h.reviewing = false
	if msg.err != nil {
		h.review = "review failed: " + msg.err.Error()
		h.reviewErr = true
		return
	}
	h.reviewErr = false
	h.review = msg.res.Message
	if msg.res.File != "" {
		h.review += " (" + msg.res.File + ")"
	}
}

func (m *appModel) openFolder(program bool) tea.Cmd {
	if !m.home.folderFor(program).start() {
		return nil
	}
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		open := client.OpenFolder
		if program {
			open = client.OpenProgramFolder
		}
		msg, err := open(ctx)
		return folderDoneMsg{program: program, message: msg, err: err}
	}
}

func (m *appModel) applyFolder(msg folderDoneMsg) tea.Cmd {
	f := m.home.folderFor(msg.program)
	if msg.err != nil {
		f.fail()
		m.log.Warn("open folder failed", "program", msg.program, "err", msg.err)
		return m.setStatus("open folder failed: "+msg.err.Error(), true)
	}
	seq := f.succeed(msg.message)
	program := msg.program
	return tea.Tick(folderMessageTTL, func(time.Time) tea.Msg {
		return folderResetMsg{program: program, seq: seq}
	})
}

func (h homePage) view(w int, spin string) string {
	var b strings.Builder
	b.WriteString(styleHeading().Render("Search"))
	b.WriteString(styleMuted().Render(fmt.Sprintf("  by %s", h.searchType)))
	b.WriteString("\n")
	b.WriteString(renderInputLine(w, "query", h.search.View()))
	b.WriteString("\n")
	if h.showResult {
		b.WriteString(h.viewResult(spin))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(styleHeading().Render("Review fees"))
	b.WriteString("\n")
	b.WriteString(renderInputLine(w, "month", h.month.View()))
	b.WriteString("\n")
	switch {
	case h.reviewing:
		b.WriteString(spin + " processing...")
	case h.review != "" && h.reviewErr:
		b.WriteString(styleError().Render(h.review))
	case h.review != "":
		b.WriteString(styleSuccess().Render(h.review))
	}
	b.WriteString("\n\n")

	b.WriteString(styleHeading().Render("Folders"))
	b.WriteString("\n")
	b.WriteString(h.folder.view() + "  " + h.program.view())
	return b.String()
}

func (h homePage) viewResult(spin string) string {
	if h.searching {
		return spin + " searching..."
	}
	if h.resultErr != "" {
		return styleError().Render(h.resultErr)
	}
	var b strings.Builder
	switch r := h.result.(type) {
	case gateway.EmployeeResult:
		if len(r.Employees) == 0 {
			return styleMuted().Render(render.NoRecords)
		}
		for _, e := range r.Employees {
			fmt.Fprintf(&b, "%s  %s  %s\n", e.Name, styleMuted().Render(string(e.Number)), e.Department)
		}
	case gateway.ManuscriptResult:
		writeReviewRecords(&b, "Reviews", r.Review)
		writeReviewRecords(&b, "Re-reviews", r.ReReview)
	default:
		return styleError().Render("unknown result type")
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeReviewRecords(b *strings.Builder, title string, recs []gateway.ReviewRecord) {
	b.WriteString(styleHeading().Render(title))
	b.WriteString("\n")
	if len(recs) == 0 {
		b.WriteString(styleMuted().Render(render.NoRecords))
		b.WriteString("\n")
		return
	}
	for _, r := range recs {
		fmt.Fprintf(b, "%s  %s  %s\n", r.Manuscript, r.Reviewer, render.ManuscriptDate(string(r.ReturnedAt)))
	}
}
