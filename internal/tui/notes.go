package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"editdesk-cli/internal/model"
	"editdesk-cli/internal/notes"
	"editdesk-cli/internal/store"
)

type notesPage struct {
	syncer *notes.Syncer
	saved  chan error
	editor textarea.Model
	index  int

	loaded  bool
	saveErr string
}

func newNotesPage(opts Options, logger *log.Logger) notesPage {
	saved := make(chan error, 1)
	var remote notes.Remote
	if opts.Client != nil {
		remote = opts.Client
	}
	syncer := notes.NewSyncer(notes.Options{
		Local:    store.NoteStore{KV: opts.KV},
		Remote:   remote,
		Debounce: opts.Config.NotesDebounce,
		Logger:   logger,
		OnSaved: func(err error) {
			// Only the latest outcome matters to the view.
			select {
			case <-saved:
			default:
			}
			select {
			case saved <- err:
			default:
			}
		},
	})

	editor := textarea.New()
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.Focus()

	p := notesPage{syncer: syncer, saved: saved, editor: editor}
	p.editor.SetValue(p.current())
	return p
}

func (p notesPage) note() model.NoteDef {
	return model.Notes[p.index]
}

func (p notesPage) current() string {
	v, _ := p.syncer.Get(p.note().ID)
	return v
}

func (p notesPage) loadCmd(ctx context.Context) tea.Cmd {
	s := p.syncer
	return func() tea.Msg {
		return notesLoadedMsg{err: s.Load(ctx)}
	}
}

func (p notesPage) waitSaved() tea.Cmd {
	ch := p.saved
	return func() tea.Msg {
		return notesSavedMsg{err: <-ch}
	}
}

func (p *notesPage) applySaved(err error) {
	if err != nil {
		p.saveErr = err.Error()
		return
	}
	p.saveErr = ""
}

func (m *appModel) applyNotesLoaded(msg notesLoadedMsg) tea.Cmd {
	m.notes.loaded = true
	m.notes.editor.SetValue(m.notes.current())
	if msg.err != nil {
		return m.setStatus("load notes failed: "+msg.err.Error(), true)
	}
	return nil
}

func (p *notesPage) selectNote(i int) {
	n := len(model.Notes)
	p.index = ((i % n) + n) % n
	p.editor.SetValue(p.current())
}

func (m *appModel) updateNotes(msg tea.KeyMsg) tea.Cmd {
	p := &m.notes
	switch {
	case key.Matches(msg, keyNextNote):
		p.selectNote(p.index + 1)
		return nil
	case key.Matches(msg, keyBack):
		p.selectNote(p.index - 1)
		return nil
	case key.Matches(msg, keySaveNow):
		s, ctx := p.syncer, m.ctx
		return func() tea.Msg { return notesFlushedMsg{err: s.Flush(ctx)} }
	}

	before := p.editor.Value()
	var cmd tea.Cmd
	p.editor, cmd = p.editor.Update(msg)
	if after := p.editor.Value(); after != before {
		if err := p.syncer.Set(p.note().ID, after); err != nil {
			return tea.Batch(cmd, m.setStatus("local note write failed: "+err.Error(), true))
		}
	}
	return cmd
}

func (p notesPage) view(w int) string {
	var tabs []string
	for i, n := range model.Notes {
		if i == p.index {
			tabs = append(tabs, styleNavActive().Render(n.Title))
		} else {
			tabs = append(tabs, styleNavInactive().Render(n.Title))
		}
	}

	var state string
	switch {
	case p.saveErr != "":
		state = styleError().Render("server save failed: " + p.saveErr)
	case p.syncer.Pending():
		state = styleMuted().Render("saving...")
	case !p.loaded:
		state = styleMuted().Render("loading server copy...")
	default:
		state = styleMuted().Render("saved")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().MaxWidth(w).Render(strings.Join(tabs, " ")))
	b.WriteString("\n")
	b.WriteString(state)
	b.WriteString("\n")
	b.WriteString(p.editor.View())
	return b.String()
}
