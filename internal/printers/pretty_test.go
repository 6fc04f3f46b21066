package printers

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"editdesk-cli/internal/gateway"
	"editdesk-cli/internal/model"
	"editdesk-cli/internal/store"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestTasks(t *testing.T) {
	var buf bytes.Buffer
	pp := New(&buf)
	pp.Tasks([]model.Task{
		{ID: 1, Text: "write editorial", Starred: true},
		{ID: 2, Text: "send proofs", Completed: true},
	})
	out := buf.String()
	for _, want := range []string{"To-do - 2", "write editorial", "send proofs", "[x]", "★"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestTasksEmpty(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Tasks(nil)
	if !strings.Contains(buf.String(), "no tasks") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestSearchResultManuscript(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).SearchResult(gateway.ManuscriptResult{
		Review: []gateway.ReviewRecord{{Manuscript: "M-1", Reviewer: "Li", ReturnedAt: "2024-03-05"}},
	})
	out := buf.String()
	if !strings.Contains(out, "2024/3/5") {
		t.Fatalf("expected formatted date:\n%s", out)
	}
	if !strings.Contains(out, "Re-reviews - 0") || !strings.Contains(out, "no records") {
		t.Fatalf("expected empty re-review section:\n%s", out)
	}
}

func TestSearchResultEmployees(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).SearchResult(gateway.EmployeeResult{
		Employees: []gateway.Employee{{Name: "Zhang", Number: "1001", Department: "Editorial"}},
	})
	out := buf.String()
	for _, want := range []string{"NAME", "Zhang", "1001", "Editorial"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestPageFees(t *testing.T) {
	var buf bytes.Buffer
	pp := New(&buf)
	pp.PageFees(nil, gateway.FilterUnprocessed)
	if !strings.Contains(buf.String(), "no page-fee records found") {
		t.Fatalf("got %q", buf.String())
	}

	buf.Reset()
	pp.PageFees([]model.PageFeeRow{{Manuscript: "M-7", Accepted: true, Email: "a@b.c"}}, gateway.FilterAll)
	out := buf.String()
	if !strings.Contains(out, "M-7") || !strings.Contains(out, "[x]") || !strings.Contains(out, "[ ]") {
		t.Fatalf("unexpected table:\n%s", out)
	}
}

func TestScrape(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Scrape(gateway.ScrapeResult{
		Year: "2024", Issue: "3", ArticlesCount: 1,
		Articles: []gateway.Article{{Title: "On Tides", ImagePath: "/img/1.png"}},
	})
	out := buf.String()
	for _, want := range []string{"2024", "On Tides", "/img/1.png"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestNotesOrderAndExtras(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Notes(map[string]string{
		string(model.Notes[0].ID): "first body",
		"zz-extra":                "odd one",
	})
	out := buf.String()
	first := strings.Index(out, "first body")
	extra := strings.Index(out, "odd one")
	if first < 0 || extra < 0 || extra < first {
		t.Fatalf("unexpected notes layout:\n%s", out)
	}
	if !strings.Contains(out, "empty") {
		t.Fatalf("expected empty marker for unset notes:\n%s", out)
	}
}

func TestChatLog(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).ChatLog(&store.ChatLog{Messages: []store.ChatMessage{
		{Role: "user", Content: "hello", CreatedAt: time.Now()},
		{Role: "ai", Content: "hi there", CreatedAt: time.Now()},
		{Role: "error", Content: "Error: boom", CreatedAt: time.Now()},
	}})
	out := buf.String()
	for _, want := range []string{"you: hello", "hi there", "Error: boom"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
