package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"editdesk-cli/internal/model"
)

func TestRenderTasksMarkdown(t *testing.T) {
	t.Parallel()
	ts := []model.Task{
		{ID: 1, Text: "send proofs", Completed: true},
		{ID: 2, Text: "call printer", Starred: true},
		{ID: 3, Text: "book room"},
	}

	md := RenderTasksMarkdown(ts, RenderOptions{})
	want := "# To-do\n\n- [ ] call printer ★\n- [ ] book room\n- [x] send proofs\n"
	if md != want {
		t.Fatalf("got:\n%s\nwant:\n%s", md, want)
	}

	pending := RenderTasksMarkdown(ts, RenderOptions{PendingOnly: true})
	if strings.Contains(pending, "send proofs") {
		t.Fatalf("expected completed task left out:\n%s", pending)
	}

	if empty := RenderTasksMarkdown(nil, RenderOptions{}); !strings.Contains(empty, "_No tasks._") {
		t.Fatalf("empty:\n%s", empty)
	}
}

func TestRenderNotesMarkdown_PlaceholderIsEmpty(t *testing.T) {
	t.Parallel()
	md := RenderNotesMarkdown(map[string]string{
		string(model.NoteSpecialExpense):     model.Notes[0].Placeholder,
		string(model.NoteReviewFeeProcessed): "March batch done",
	})
	if !strings.Contains(md, "## Special expenses\n\n_Empty._") {
		t.Fatalf("placeholder should render empty:\n%s", md)
	}
	if !strings.Contains(md, "## Review fees processed\n\nMarch batch done\n") {
		t.Fatalf("missing note text:\n%s", md)
	}
	if got := strings.Count(md, "\n## "); got != len(model.Notes) {
		t.Fatalf("expected %d sections, got %d", len(model.Notes), got)
	}
}

func TestWriteDesk_RefusesToOverwrite(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ts := []model.Task{{ID: 1, Text: "a"}}

	res, err := WriteDesk(dir, ts, nil, WriteOptions{})
	if err != nil {
		t.Fatalf("first write: %v", err)
	}
	if len(res.Written) != 2 {
		t.Fatalf("written: %v", res.Written)
	}

	if _, err := WriteDesk(dir, nil, nil, WriteOptions{}); err == nil || !strings.Contains(err.Error(), "file exists") {
		t.Fatalf("expected file exists error, got %v", err)
	}
	b, _ := os.ReadFile(filepath.Join(dir, TasksFile))
	if !strings.Contains(string(b), "- [ ] a") {
		t.Fatalf("tasks.md was modified:\n%s", b)
	}

	if _, err := WriteDesk(dir, nil, nil, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	b, _ = os.ReadFile(filepath.Join(dir, TasksFile))
	if !strings.Contains(string(b), "_No tasks._") {
		t.Fatalf("expected overwrite:\n%s", b)
	}

	if _, err := WriteDesk("  ", nil, nil, WriteOptions{}); err == nil {
		t.Fatalf("expected missing --to error")
	}
}
