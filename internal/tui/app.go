package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"editdesk-cli/internal/logging"
	"editdesk-cli/internal/pages"
	"editdesk-cli/internal/store"
)

const statusTTL = 4 * time.Second

type appModel struct {
	opts   Options
	client Backend
	log    *log.Logger
	ctx    context.Context
	state  *store.TUIState

	width  int
	height int

	nav  *pages.Switcher
	help help.Model
	spin spinner.Model

	status    string
	statusErr bool
	statusSeq int

	home   homePage
	todo   todoPage
	fee    feePage
	scrape scrapePage
	notes  notesPage
	chat   chatPage
}

func newAppModel(opts Options) appModel {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	st, err := opts.Store.LoadTUIState()
	if err != nil || st == nil {
		logger.Warn("tui state unreadable", "err", err)
		st = &store.TUIState{Version: 1}
	}

	m := appModel{
		opts:   opts,
		client: opts.Client,
		log:    logger,
		ctx:    context.Background(),
		state:  st,
		help:   help.New(),
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.nav = pages.New(pages.Default, startPage(opts, st), logger.WithPrefix("pages"))
	m.home = newHomePage(st.SearchType)
	m.todo = newTodoPage(opts.KV)
	m.fee = newFeePage(opts.Client, st.PageFeeFilter)
	m.scrape = newScrapePage(time.Now())
	m.notes = newNotesPage(opts, logger)
	m.chat = newChatPage(opts, logger)
	return m
}

// startPage picks --page, then the page open at last exit, then the configured default.
func startPage(opts Options, st *store.TUIState) string {
	if p := strings.TrimSpace(opts.Page); p != "" {
		return p
	}
	if _, ok := pages.Lookup(pages.Default, st.Page); ok {
		return st.Page
	}
	if p := strings.TrimSpace(opts.Config.DefaultPage); p != "" {
		return p
	}
	return pages.Home
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.notes.loadCmd(m.ctx), m.notes.waitSaved(), m.enterPage())
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, gkeys.Quit) {
			return m, tea.Quit
		}
		for i, b := range gkeys.Pages {
			if key.Matches(msg, b) && i < len(pages.Default) {
				return m, m.switchPage(pages.Default[i].ID)
			}
		}
		switch {
		case key.Matches(msg, gkeys.Next):
			m.nav.Cycle(1)
			return m, m.enterPage()
		case key.Matches(msg, gkeys.Prev):
			m.nav.Cycle(-1)
			return m, m.enterPage()
		}
		return m, m.updatePageKey(msg)

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case searchDoneMsg:
		m.home.applySearch(msg)
		return m, nil
	case reviewDoneMsg:
		m.home.applyReview(msg)
		return m, nil
	case folderDoneMsg:
		return m, m.applyFolder(msg)
	case folderResetMsg:
		m.home.folderFor(msg.program).reset(msg.seq)
		return m, nil

	case feeLoadedMsg:
		m.fee.applyLoaded(msg)
		return m, nil
	case feeUpdatedMsg:
		return m, m.applyFeeUpdate(msg)

	case scrapeDoneMsg:
		m.scrape.apply(msg)
		return m, nil

	case notesLoadedMsg:
		return m, m.applyNotesLoaded(msg)
	case notesSavedMsg:
		m.notes.applySaved(msg.err)
		return m, m.notes.waitSaved()
	case notesFlushedMsg:
		m.notes.applySaved(msg.err)
		if msg.err != nil {
			return m, m.setStatus("save notes failed: "+msg.err.Error(), true)
		}
		return m, m.setStatus("notes saved", false)

	case chatReplyMsg:
		m.chat.applyReply(msg, m.contentWidth())
		return m, nil
	}

	return m, m.updatePageOther(msg)
}

func (m *appModel) switchPage(id string) tea.Cmd {
	if err := m.nav.Switch(id); err != nil {
		return m.setStatus("page not found: "+id, true)
	}
	return m.enterPage()
}

// enterPage runs the visible page's on-show work.
func (m *appModel) enterPage() tea.Cmd {
	switch m.nav.Visible() {
	case pages.PageFee:
		if !m.fee.board.Loaded() && !m.fee.loading {
			return tea.Batch(m.fee.load(m.ctx, m.fee.filter), m.spin.Tick)
		}
	case pages.AIChat:
		m.chat.vp.GotoBottom()
	}
	return nil
}

func (m *appModel) updatePageKey(msg tea.KeyMsg) tea.Cmd {
	switch m.nav.Visible() {
	case pages.Home:
		return m.updateHome(msg)
	case pages.Todo:
		return m.updateTodo(msg)
	case pages.PageFee:
		return m.updateFee(msg)
	case pages.Scraping:
		return m.updateScrape(msg)
	case pages.Notes:
		return m.updateNotes(msg)
	case pages.AIChat:
		return m.updateChat(msg)
	}
	return nil
}

// updatePageOther forwards non-key messages (cursor blink) to the visible page's inputs.
func (m *appModel) updatePageOther(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.nav.Visible() {
	case pages.Home:
		m.home.search, cmd = m.home.search.Update(msg)
		var c2 tea.Cmd
		m.home.month, c2 = m.home.month.Update(msg)
		return tea.Batch(cmd, c2)
	case pages.Todo:
		if m.todo.editing {
			m.todo.edit, cmd = m.todo.edit.Update(msg)
		} else {
			m.todo.input, cmd = m.todo.input.Update(msg)
		}
	case pages.Scraping:
		m.scrape.year, cmd = m.scrape.year.Update(msg)
		var c2 tea.Cmd
		m.scrape.issue, c2 = m.scrape.issue.Update(msg)
		return tea.Batch(cmd, c2)
	case pages.Notes:
		m.notes.editor, cmd = m.notes.editor.Update(msg)
	case pages.AIChat:
		m.chat.input, cmd = m.chat.input.Update(msg)
	}
	return cmd
}

func (m *appModel) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return statusClearMsg{seq: seq} })
}

func (m appModel) busy() bool {
	return m.home.searching || m.home.reviewing || m.fee.loading || m.scrape.running || m.chat.pending > 0
}

func (m appModel) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m appModel) bodyHeight() int {
	h := m.height
	if h <= 0 {
		h = 24
	}
	// nav, rule, status, help
	h -= 4
	if h < 3 {
		h = 3
	}
	return h
}

func (m *appModel) resize() {
	w := m.contentWidth()
	m.help.Width = w
	m.home.search.Width = w / 2
	m.todo.input.Width = w - 12
	m.todo.edit.Width = w - 12
	m.notes.editor.SetWidth(w)
	m.notes.editor.SetHeight(max(3, m.bodyHeight()-4))
	m.chat.input.Width = w - 8
	m.chat.vp.Width = w
	m.chat.vp.Height = max(3, m.bodyHeight()-3)
	m.chat.refresh(w)
}

func (m appModel) View() string {
	w := m.contentWidth()

	var b strings.Builder
	b.WriteString(normalizePane(m.viewNav(), w, 1))
	b.WriteString("\n")
	b.WriteString(hrule(w))
	b.WriteString("\n")
	b.WriteString(normalizePane(m.viewBody(w), w, m.bodyHeight()))
	b.WriteString("\n")
	b.WriteString(normalizePane(m.viewStatus(), w, 1))
	b.WriteString("\n")
	b.WriteString(normalizePane(m.help.ShortHelpView(m.helpKeys()), w, 1))
	return b.String()
}

func (m appModel) viewNav() string {
	entries := m.nav.Nav()
	parts := make([]string, 0, len(entries))
	for i, e := range entries {
		label := "F" + string(rune('1'+i)) + " " + e.Label
		if e.Active {
			parts = append(parts, styleNavActive().Render(label))
		} else {
			parts = append(parts, styleNavInactive().Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m appModel) viewBody(w int) string {
	switch m.nav.Visible() {
	case pages.Home:
		return m.home.view(w, m.spin.View())
	case pages.Todo:
		return m.todo.view(w)
	case pages.PageFee:
		return m.fee.view(w, m.spin.View())
	case pages.Scraping:
		return m.scrape.view(w, m.spin.View())
	case pages.Notes:
		return m.notes.view(w)
	case pages.AIChat:
		return m.chat.view(w, m.spin.View())
	}
	return styleMuted().Render("No page selected. Press F1 for home.")
}

func (m appModel) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return styleError().Render(m.status)
	}
	return styleSuccess().Render(m.status)
}

func (m appModel) helpKeys() []key.Binding {
	var ks []key.Binding
	switch m.nav.Visible() {
	case pages.Home:
		ks = []key.Binding{keySubmit, keyFocus, keySearchType, keyClose, keyOpenFolder, keyProgramFolder}
	case pages.Todo:
		if m.todo.listFocus {
			ks = []key.Binding{keyUp, keyDown, keyToggleDone, keyStar, keyEdit, keyDelete, keyFocus}
		} else {
			ks = []key.Binding{keySubmit, keyFocus}
		}
	case pages.PageFee:
		ks = []key.Binding{keyUp, keyDown, keyRight, keyFeeToggle, keyFilter, keyReload}
	case pages.Scraping:
		ks = []key.Binding{keySubmit, keyFocus}
	case pages.Notes:
		ks = []key.Binding{keyNextNote, keySaveNow}
	case pages.AIChat:
		ks = []key.Binding{keySubmit, keyCopyReply, keyScrollUp}
	}
	return append(ks, gkeys.Next, gkeys.Quit)
}

// shutdown persists UI choices and pushes unsaved notes.
func (m appModel) shutdown() {
	st := m.state
	if st == nil {
		st = &store.TUIState{Version: 1}
	}
	if v := m.nav.Visible(); v != "" {
		st.Page = v
	}
	st.SearchType = string(m.home.searchType)
	st.PageFeeFilter = string(m.fee.filter)
	if err := m.opts.Store.SaveTUIState(st); err != nil {
		m.log.Warn("save tui state failed", "err", err)
	}
	if m.notes.syncer.Pending() {
		if err := m.notes.syncer.Flush(m.ctx); err != nil {
			m.log.Error("final notes save failed", "err", err)
		}
	}
}
