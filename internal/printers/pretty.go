// Package printers renders desk results for humans: tables via uitable, emphasis via color.
package printers

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"editdesk-cli/internal/chat"
	"editdesk-cli/internal/gateway"
	"editdesk-cli/internal/markup"
	"editdesk-cli/internal/model"
	"editdesk-cli/internal/render"
	"editdesk-cli/internal/store"
)

type PrettyPrint struct {
	W      io.Writer
	Glyphs render.Glyphs
	// Width wraps long free text; zero means 80.
	Width int
}

func New(w io.Writer) *PrettyPrint {
	return &PrettyPrint{W: w, Glyphs: render.UnicodeGlyphs, Width: 80}
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 80
	}
	return pp.Width
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.W, title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)
	_, _ = t.Fprint(pp.W, title)
	_, _ = c.Fprintf(pp.W, " - %d\n", count)
}

func (pp *PrettyPrint) none(msg string) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintf(pp.W, " %s\n", msg)
}

func (pp *PrettyPrint) table(tbl *uitable.Table) {
	_, _ = fmt.Fprintln(pp.W, tbl)
}

func (pp *PrettyPrint) Message(msg string) {
	_, _ = fmt.Fprintln(pp.W, msg)
}

func (pp *PrettyPrint) Tasks(tasks []model.Task) {
	rows := render.TaskRows(tasks, pp.Glyphs)
	pp.TitleWithCount("To-do", len(rows))
	if len(rows) == 0 {
		pp.none("no tasks")
		return
	}
	y := color.New(color.FgHiYellow, color.Faint)
	done := color.New(color.Faint, color.CrossedOut)
	tbl := uitable.New()
	tbl.Separator = " "
	tbl.MaxColWidth = uint(pp.width())
	for _, r := range rows {
		text := r.Text
		if r.Completed {
			text = done.Sprint(text)
		}
		tbl.AddRow(y.Sprint(r.TaskID), r.Checkbox, r.StarGlyph, text)
	}
	pp.table(tbl)
}

func (pp *PrettyPrint) SearchResult(res gateway.SearchResult) {
	switch r := res.(type) {
	case gateway.EmployeeResult:
		pp.TitleWithCount("Employees", len(r.Employees))
		if len(r.Employees) == 0 {
			pp.none(render.NoRecords)
			return
		}
		tbl := uitable.New()
		tbl.AddRow("NAME", "NUMBER", "DEPARTMENT")
		for _, e := range r.Employees {
			tbl.AddRow(e.Name, e.Number, e.Department)
		}
		pp.table(tbl)
	case gateway.ManuscriptResult:
		pp.reviewRecords("Reviews", r.Review)
		pp.reviewRecords("Re-reviews", r.ReReview)
	default:
		pp.none("unknown result type")
	}
}

func (pp *PrettyPrint) reviewRecords(title string, recs []gateway.ReviewRecord) {
	pp.TitleWithCount(title, len(recs))
	if len(recs) == 0 {
		pp.none(render.NoRecords)
		return
	}
	tbl := uitable.New()
	tbl.AddRow("MANUSCRIPT", "REVIEWER", "RETURNED")
	for _, rec := range recs {
		tbl.AddRow(rec.Manuscript, rec.Reviewer, render.ManuscriptDate(string(rec.ReturnedAt)))
	}
	pp.table(tbl)
}

func (pp *PrettyPrint) Review(res gateway.ReviewResult) {
	pp.Message(res.Message)
	if res.File != "" {
		_, _ = color.New(color.Faint).Fprintf(pp.W, "saved to: %s\n", res.File)
	}
}

func (pp *PrettyPrint) PageFees(rows []model.PageFeeRow, filter gateway.Filter) {
	pp.TitleWithCount(fmt.Sprintf("Page fees (%s)", filter), len(rows))
	if len(rows) == 0 {
		pp.none("no page-fee records found")
		return
	}
	tbl := uitable.New()
	tbl.MaxColWidth = 28
	tbl.AddRow("ACCEPTED", "INVOICED", "MANUSCRIPT", "REMARK", "WRITE-OFF", "FINANCE", "TAX ID", "INVOICE TITLE", "EMAIL")
	for _, r := range rows {
		tbl.AddRow(
			render.Checkbox(r.Accepted, pp.Glyphs),
			render.Checkbox(r.Invoiced, pp.Glyphs),
			r.Manuscript, r.Remark, r.WriteOffNo, r.FinanceRemark, r.TaxID, r.InvoiceTitle, r.Email,
		)
	}
	pp.table(tbl)
}

func (pp *PrettyPrint) Scrape(res gateway.ScrapeResult) {
	pp.Title("Scraping finished")
	tbl := uitable.New()
	tbl.AddRow("Year:", res.Year)
	tbl.AddRow("Issue:", res.Issue)
	tbl.AddRow("Articles:", res.ArticlesCount)
	pp.table(tbl)
	if len(res.Articles) == 0 {
		return
	}
	arts := uitable.New()
	arts.MaxColWidth = 60
	for _, a := range res.Articles {
		arts.AddRow(a.Title, color.New(color.Faint).Sprint(a.ImagePath))
	}
	pp.table(arts)
}

func (pp *PrettyPrint) Notes(notes map[string]string) {
	for _, n := range model.Notes {
		pp.Title(n.Title + " (" + string(n.ID) + ")")
		text := strings.TrimSpace(notes[string(n.ID)])
		if text == "" {
			pp.none("empty")
			continue
		}
		_, _ = fmt.Fprintln(pp.W, wordwrap.String(text, pp.width()))
	}
	extra := make([]string, 0)
	for k := range notes {
		if _, ok := model.LookupNote(model.NoteID(k)); !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		pp.Title(k)
		_, _ = fmt.Fprintln(pp.W, wordwrap.String(notes[k], pp.width()))
	}
}

// Bubble prints one chat message. Assistant replies are rendered markdown.
func (pp *PrettyPrint) Bubble(role chat.Role, text string) {
	switch role {
	case chat.RoleUser:
		_, _ = color.New(color.FgCyan, color.Bold).Fprint(pp.W, "you: ")
		_, _ = fmt.Fprintln(pp.W, wordwrap.String(text, pp.width()))
	case chat.RoleError:
		_, _ = color.New(color.FgRed).Fprintln(pp.W, text)
	default:
		pp.Markdown(text)
	}
}

// Markdown renders md for the terminal, or prints it wrapped when color is off.
func (pp *PrettyPrint) Markdown(md string) {
	if color.NoColor {
		_, _ = fmt.Fprintln(pp.W, wordwrap.String(md, pp.width()))
		return
	}
	_, _ = fmt.Fprintln(pp.W, markup.Terminal(md, pp.width(), markup.DetectStyle()))
}

func (pp *PrettyPrint) ChatLog(cl *store.ChatLog) {
	pp.TitleWithCount("Chat history", len(cl.Messages))
	if len(cl.Messages) == 0 {
		pp.none("no messages")
		return
	}
	for _, m := range cl.Messages {
		_, _ = color.New(color.Faint).Fprintln(pp.W, m.CreatedAt.Local().Format("2006-01-02 15:04"))
		pp.Bubble(chat.Role(m.Role), m.Content)
	}
}
