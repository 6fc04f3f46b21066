// Package render turns desk data into display rows. Rows are rebuilt from scratch on
// every call; nothing here keeps state between renders.
package render

import (
	"fmt"
	"strings"
	"time"

	"editdesk-cli/internal/model"
	"editdesk-cli/internal/tasks"
)

// Glyphs are the control glyphs drawn on each task row.
type Glyphs struct {
	Unchecked string
	Checked   string
	Star      string
	StarFull  string
	Delete    string
}

var UnicodeGlyphs = Glyphs{Unchecked: "[ ]", Checked: "[x]", Star: "☆", StarFull: "★", Delete: "✕"}
var ASCIIGlyphs = Glyphs{Unchecked: "[ ]", Checked: "[x]", Star: "( )", StarFull: "(*)", Delete: "x"}

// TaskRow is one rendered task. Every control on the row acts on TaskID.
type TaskRow struct {
	TaskID    int64
	Checkbox  string
	Text      string
	StarGlyph string
	Delete    string
	Completed bool
	Starred   bool
}

// TaskRows sorts tasks and returns fresh rows in presentation order.
func TaskRows(ts []model.Task, g Glyphs) []TaskRow {
	sorted := tasks.Sorted(ts)
	rows := make([]TaskRow, 0, len(sorted))
	for _, t := range sorted {
		row := TaskRow{
			TaskID:    t.ID,
			Checkbox:  g.Unchecked,
			Text:      t.Text,
			StarGlyph: g.Star,
			Delete:    g.Delete,
			Completed: t.Completed,
			Starred:   t.Starred,
		}
		if t.Completed {
			row.Checkbox = g.Checked
		}
		if t.Starred {
			row.StarGlyph = g.StarFull
		}
		rows = append(rows, row)
	}
	return rows
}

// Line renders a row as a single plain line.
func (r TaskRow) Line() string {
	return fmt.Sprintf("%s %s %s %s", r.Checkbox, r.Text, r.StarGlyph, r.Delete)
}

const NoRecords = "no records"

// ManuscriptDate formats an ISO date the way the desk shows review dates (2006/1/2).
// Values that do not parse are shown as-is.
func ManuscriptDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02", time.RFC1123, time.RFC1123Z}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006/1/2")
		}
	}
	return s
}

// Checkbox returns the glyph for a boolean status cell.
func Checkbox(v bool, g Glyphs) string {
	if v {
		return g.Checked
	}
	return g.Unchecked
}
