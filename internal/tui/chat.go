package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/reflow/wordwrap"

	"editdesk-cli/internal/chat"
	"editdesk-cli/internal/markup"
)

type chatPage struct {
	session *chat.Session
	input   textinput.Model
	vp      viewport.Model
	pending int
}

func newChatPage(opts Options, logger *log.Logger) chatPage {
	var rec chat.Recorder
	if opts.Store.Dir != "" {
		rec = opts.Store
	}
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "ask the assistant"
	input.Focus()

	return chatPage{
		session: chat.NewSession(opts.Client, rec, logger),
		input:   input,
		vp:      viewport.New(80, 16),
	}
}

func (m *appModel) updateChat(msg tea.KeyMsg) tea.Cmd {
	c := &m.chat
	switch {
	case key.Matches(msg, keySubmit):
		_, reply, ok := c.session.Send(m.ctx, c.input.Value())
		if !ok {
			return nil
		}
		c.input.SetValue("")
		c.pending++
		c.refresh(m.contentWidth())
		return tea.Batch(func() tea.Msg { return chatReplyMsg{bubble: <-reply} }, m.spin.Tick)
	case key.Matches(msg, keyCopyReply):
		last, ok := c.session.LastReply()
		if !ok {
			return m.setStatus("no assistant reply to copy", true)
		}
		if err := copyToClipboard(last.Text); err != nil {
			return m.setStatus("copy failed: "+err.Error(), true)
		}
		return m.setStatus("reply copied", false)
	case key.Matches(msg, keyScrollUp), key.Matches(msg, keyScrollDn):
		var cmd tea.Cmd
		c.vp, cmd = c.vp.Update(msg)
		return cmd
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *chatPage) applyReply(msg chatReplyMsg, w int) {
	if c.pending > 0 {
		c.pending--
	}
	c.refresh(w)
}

// refresh re-renders every bubble into the viewport and scrolls to the newest.
func (c *chatPage) refresh(w int) {
	bw := w - 4
	if bw < 20 {
		bw = 20
	}
	user := lipgloss.NewStyle().Background(colorUserBubble).Padding(0, 1)
	var b strings.Builder
	for _, bub := range c.session.Bubbles() {
		switch bub.Role {
		case chat.RoleUser:
			b.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Right, user.Render(wordwrap.String(bub.Text, bw-2))))
		case chat.RoleError:
			b.WriteString(styleError().Render(wordwrap.String(bub.Text, bw)))
		default:
			b.WriteString(markup.Terminal(bub.Text, bw, markdownStyle()))
		}
		b.WriteString("\n\n")
	}
	c.vp.SetContent(strings.TrimRight(b.String(), "\n"))
	c.vp.GotoBottom()
}

func (c chatPage) view(w int, spin string) string {
	var b strings.Builder
	b.WriteString(styleHeading().Render("AI chat"))
	b.WriteString("\n")
	if len(c.session.Bubbles()) == 0 {
		b.WriteString(styleMuted().Render("no messages yet"))
	} else {
		b.WriteString(c.vp.View())
	}
	b.WriteString("\n")
	if c.pending > 0 {
		b.WriteString(spin + " thinking...")
	}
	b.WriteString("\n")
	b.WriteString(renderInputLine(w, "you", c.input.View()))
	return b.String()
}
