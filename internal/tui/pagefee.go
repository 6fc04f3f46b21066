package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"editdesk-cli/internal/gateway"
	"editdesk-cli/internal/model"
	"editdesk-cli/internal/pagefee"
	"editdesk-cli/internal/render"
)

var feeColumns = []struct {
	title string
	width int
}{
	{model.StatusAccepted, 5},
	{model.StatusInvoiced, 5},
	{"稿件编号", 14},
	{"备注", 14},
	{"核销号", 10},
	{"财务备注", 12},
	{"税号", 20},
	{"发票抬头", 20},
	{"邮箱", 24},
}

type feePage struct {
	board   *pagefee.Board
	filter  gateway.Filter
	loading bool
	err     string
	cursor  int
	// col picks the checkbox: 0 accepted, 1 invoiced.
	col int
}

func newFeePage(client Backend, savedFilter string) feePage {
	f, err := gateway.ParseFilter(savedFilter)
	if err != nil {
		f = gateway.FilterAll
	}
	return feePage{board: pagefee.NewBoard(client), filter: f}
}

func (p *feePage) load(ctx context.Context, filter gateway.Filter) tea.Cmd {
	p.loading = true
	p.err = ""
	board := p.board
	return func() tea.Msg {
		_, err := board.Load(ctx, filter)
		return feeLoadedMsg{filter: filter, err: err}
	}
}

func (p *feePage) applyLoaded(msg feeLoadedMsg) {
	p.loading = false
	if msg.err != nil {
		p.err = "load failed: " + msg.err.Error()
		return
	}
	p.err = ""
	if n := len(p.board.Rows()); p.cursor >= n {
		p.cursor = max(0, n-1)
	}
}

func (p feePage) statusType() string {
	if p.col == 1 {
		return model.StatusInvoiced
	}
	return model.StatusAccepted
}

func (m *appModel) updateFee(msg tea.KeyMsg) tea.Cmd {
	p := &m.fee
	switch {
	case key.Matches(msg, keyUp):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keyDown):
		if p.cursor < len(p.board.Rows())-1 {
			p.cursor++
		}
	case key.Matches(msg, keyLeft), key.Matches(msg, keyRight), key.Matches(msg, keyFocus):
		p.col = 1 - p.col
	case key.Matches(msg, keyFilter):
		p.filter = nextFilter(p.filter)
		return tea.Batch(p.load(m.ctx, p.filter), m.spin.Tick)
	case key.Matches(msg, keyReload):
		return tea.Batch(p.load(m.ctx, p.filter), m.spin.Tick)
	case key.Matches(msg, keyFeeToggle):
		return m.toggleFee()
	}
	return nil
}

func nextFilter(f gateway.Filter) gateway.Filter {
	if f == gateway.FilterUnprocessed {
		return gateway.FilterAll
	}
	return gateway.FilterUnprocessed
}

// toggleFee flips the selected checkbox at once and sends the update; feeUpdatedMsg rolls
// it back if the server refuses.
func (m *appModel) toggleFee() tea.Cmd {
	p := &m.fee
	rows := p.board.Rows()
	if p.cursor < 0 || p.cursor >= len(rows) {
		return nil
	}
	manuscript := rows[p.cursor].Manuscript
	st := p.statusType()
	prev, err := p.board.Flip(manuscript, st)
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		msg, err := client.UpdateStatus(ctx, manuscript, st, !prev)
		return feeUpdatedMsg{manuscript: manuscript, statusType: st, prev: prev, message: msg, err: err}
	}
}

func (m *appModel) applyFeeUpdate(msg feeUpdatedMsg) tea.Cmd {
	if msg.err != nil {
		m.fee.board.Revert(msg.manuscript, msg.statusType, msg.prev)
		m.log.Warn("checkbox rolled back", "manuscript", msg.manuscript, "status", msg.statusType, "err", msg.err)
		return m.setStatus("update failed: "+msg.err.Error(), true)
	}
	if msg.message != "" {
		return m.setStatus(msg.message, false)
	}
	return nil
}

func feeCell(s string, w int) string {
	return lipgloss.NewStyle().Width(w).MaxWidth(w).Render(xansi.Truncate(s, w-1, "…"))
}

func (p feePage) view(w int, spin string) string {
	var b strings.Builder
	b.WriteString(styleHeading().Render("Page fees"))
	b.WriteString(styleMuted().Render("  filter: " + string(p.filter)))
	b.WriteString("\n")

	if p.loading {
		b.WriteString(spin + " loading...")
		return b.String()
	}
	if p.err != "" {
		b.WriteString(styleError().Render(p.err))
		return b.String()
	}
	rows := p.board.Rows()
	if len(rows) == 0 {
		b.WriteString(styleMuted().Render("no page-fee records found"))
		return b.String()
	}

	head := make([]string, 0, len(feeColumns))
	for _, c := range feeColumns {
		head = append(head, feeCell(c.title, c.width))
	}
	b.WriteString(styleMuted().Render(strings.Join(head, " ")))
	b.WriteString("\n")

	g := rowGlyphs()
	for i, r := range rows {
		cells := []string{
			feeCell(render.Checkbox(r.Accepted, g), feeColumns[0].width),
			feeCell(render.Checkbox(r.Invoiced, g), feeColumns[1].width),
			feeCell(r.Manuscript, feeColumns[2].width),
			feeCell(string(r.Remark), feeColumns[3].width),
			feeCell(string(r.WriteOffNo), feeColumns[4].width),
			feeCell(string(r.FinanceRemark), feeColumns[5].width),
			feeCell(string(r.TaxID), feeColumns[6].width),
			feeCell(string(r.InvoiceTitle), feeColumns[7].width),
			feeCell(string(r.Email), feeColumns[8].width),
		}
		if i == p.cursor {
			cells[p.col] = styleSelected().Render(cells[p.col])
		}
		b.WriteString(lipgloss.NewStyle().MaxWidth(w).Render(strings.Join(cells, " ")))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

