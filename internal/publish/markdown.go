package publish

import (
	"bytes"
	"strings"

	"editdesk-cli/internal/model"
	"editdesk-cli/internal/tasks"
)

type RenderOptions struct {
	// PendingOnly leaves completed tasks out.
	PendingOnly bool
}

// RenderTasksMarkdown renders the task list as a markdown checklist in display order.
func RenderTasksMarkdown(ts []model.Task, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# To-do")
	writeLn("")
	n := 0
	for _, t := range tasks.Sorted(ts) {
		if opt.PendingOnly && t.Completed {
			continue
		}
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		line := "- " + box + " " + strings.TrimSpace(t.Text)
		if t.Starred {
			line += " ★"
		}
		writeLn(line)
		n++
	}
	if n == 0 {
		writeLn("_No tasks._")
	}
	return buf.String()
}

// RenderNotesMarkdown renders every known note as its own section. Placeholder text counts
// as empty.
func RenderNotesMarkdown(notes map[string]string) string {
	var buf bytes.Buffer
	buf.WriteString("# Notes\n")
	for _, def := range model.Notes {
		buf.WriteString("\n## " + def.Title + "\n\n")
		text := strings.TrimSpace(notes[string(def.ID)])
		if text == "" || text == def.Placeholder {
			buf.WriteString("_Empty._\n")
			continue
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}
	return buf.String()
}
