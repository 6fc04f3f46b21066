package markup

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestHTML_RendersMarkdownAndDropsRawHTML(t *testing.T) {
	t.Parallel()

	got := string(HTML("**稿费** 已处理\n\n- 第一项\n- 第二项\n\n<script>alert(1)</script>"))
	if !strings.Contains(got, "<strong>稿费</strong>") {
		t.Fatalf("expected strong tag, got %q", got)
	}
	if !strings.Contains(got, "<li>第一项</li>") {
		t.Fatalf("expected list items, got %q", got)
	}
	if strings.Contains(got, "<script>") {
		t.Fatalf("raw HTML must not pass through: %q", got)
	}
	if HTML("   ") != "" {
		t.Fatalf("blank input should render empty")
	}
}

func TestTerminal_WrapsAndRendersEmphasis(t *testing.T) {
	t.Parallel()

	md := "The **review fee** sheet for 2026-09 is ready and saved to the shared folder."
	out := Terminal(md, 30, "dark")
	plain := xansi.Strip(out)
	if strings.Contains(plain, "**") {
		t.Fatalf("bold markers should be rendered, got %q", plain)
	}
	if !strings.Contains(plain, "review fee") {
		t.Fatalf("content missing: %q", plain)
	}
	for _, ln := range strings.Split(plain, "\n") {
		if xansi.StringWidth(strings.TrimRight(ln, " ")) > 30 {
			t.Fatalf("line wider than 30 columns: %q", ln)
		}
	}
	if Terminal("", 30, "dark") != "" {
		t.Fatalf("blank input should render empty")
	}
}
