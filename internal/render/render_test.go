package render

import (
	"testing"
	"time"

	"editdesk-cli/internal/model"
)

func TestTaskRows_GlyphsAndOrder(t *testing.T) {
	t.Parallel()

	at := func(min int) time.Time { return time.Date(2026, 1, 1, 0, min, 0, 0, time.UTC) }
	in := []model.Task{
		{ID: 1, Text: "done", Completed: true, CreatedAt: at(3)},
		{ID: 2, Text: "starred", Starred: true, CreatedAt: at(1)},
		{ID: 3, Text: "plain", CreatedAt: at(2)},
	}

	rows := TaskRows(in, UnicodeGlyphs)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].TaskID != 2 || rows[0].StarGlyph != "★" {
		t.Fatalf("row 0: %#v", rows[0])
	}
	if rows[1].TaskID != 3 || rows[1].StarGlyph != "☆" || rows[1].Checkbox != "[ ]" {
		t.Fatalf("row 1: %#v", rows[1])
	}
	if rows[2].TaskID != 1 || rows[2].Checkbox != "[x]" || !rows[2].Completed {
		t.Fatalf("row 2: %#v", rows[2])
	}
	if got := rows[1].Line(); got != "[ ] plain ☆ ✕" {
		t.Fatalf("Line: got %q", got)
	}
}

func TestTaskRows_EmptyRendersNoRows(t *testing.T) {
	t.Parallel()

	if rows := TaskRows(nil, ASCIIGlyphs); len(rows) != 0 {
		t.Fatalf("expected no rows, got %#v", rows)
	}
}

func TestManuscriptDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "2024-03-05", want: "2024/3/5"},
		{in: "2024-03-05T00:00:00", want: "2024/3/5"},
		{in: "2024-11-20T08:30:00Z", want: "2024/11/20"},
		{in: "Tue, 05 Mar 2024 00:00:00 GMT", want: "2024/3/5"},
		{in: "", want: ""},
		{in: "last week", want: "last week"},
	}
	for _, tt := range tests {
		if got := ManuscriptDate(tt.in); got != tt.want {
			t.Fatalf("ManuscriptDate(%q): got %q want %q", tt.in, got, tt.want)
		}
	}
}
