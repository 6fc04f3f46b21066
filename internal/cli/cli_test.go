package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"

	"editdesk-cli/internal/store"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustEnvelope(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: editdesk %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, stderr, stdout)
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, stdout, args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
	}
	return env
}

func idOf(t *testing.T, v any) string {
	t.Helper()
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %#v", v)
	}
	f, ok := m["id"].(float64)
	if !ok {
		t.Fatalf("expected numeric id, got %#v", m["id"])
	}
	return strconv.FormatInt(int64(f), 10)
}

func TestTasksLifecycle(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	base := []string{"--dir", dir}
	run := func(args ...string) map[string]any {
		t.Helper()
		return mustEnvelope(t, append(append([]string{}, base...), args...)...)
	}

	a := idOf(t, run("tasks", "add", "send", "proofs")["data"])
	b := idOf(t, run("tasks", "add", "call printer")["data"])
	if a == b {
		t.Fatalf("expected distinct ids, both %s", a)
	}

	run("tasks", "done", a)
	run("tasks", "star", b)
	edited := run("tasks", "edit", b, "call the printer")
	if got := edited["data"].(map[string]any)["text"]; got != "call the printer" {
		t.Fatalf("edit text: got %v", got)
	}

	list := run("tasks", "list")
	items := list["data"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(items))
	}
	// Incomplete starred task sorts before the completed one.
	if idOf(t, items[0]) != b || idOf(t, items[1]) != a {
		t.Fatalf("unexpected order: %v", items)
	}

	pending := run("tasks", "list", "--pending")
	if n := len(pending["data"].([]any)); n != 1 {
		t.Fatalf("expected 1 pending task, got %d", n)
	}

	run("tasks", "rm", a)
	if n := len(run("tasks", "list")["data"].([]any)); n != 1 {
		t.Fatalf("expected 1 task after rm, got %d", n)
	}
}

func TestTasksUnknownID(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	_, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "done", "12345"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(string(stderr), "task not found: 12345") {
		t.Fatalf("stderr: %s", stderr)
	}

	_, _, err = runCLI(t, []string{"--dir", dir, "tasks", "done", "abc"})
	if err == nil {
		t.Fatalf("expected error for non-numeric id")
	}
}

func TestTasksBlankAddFails(t *testing.T) {
	t.Parallel()
	_, _, err := runCLI(t, []string{"--dir", t.TempDir(), "--storage", "memory", "tasks", "add", "   "})
	if err == nil {
		t.Fatalf("expected error for blank task")
	}
}

func TestTasksSQLiteBackendPersists(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	mustEnvelope(t, "--dir", dir, "--storage", "sqlite", "tasks", "add", "archive issue 3")
	list := mustEnvelope(t, "--dir", dir, "--storage", "sqlite", "tasks", "list")
	if n := len(list["data"].([]any)); n != 1 {
		t.Fatalf("expected 1 task, got %d", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "editdesk.sqlite")); err != nil {
		t.Fatalf("expected sqlite file: %v", err)
	}
}

func TestTasksTextFormat(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	mustEnvelope(t, "--dir", dir, "tasks", "add", "read galleys")
	stdout, _, err := runCLI(t, []string{"--dir", dir, "--format", "text", "tasks", "list"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(string(stdout), "read galleys") || !strings.Contains(string(stdout), "To-do - 1") {
		t.Fatalf("unexpected text output:\n%s", stdout)
	}
}

func TestSearchManuscript(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/query_manuscript" || r.URL.Query().Get("query") != "M-1" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"type":"manuscript","data":{"review":[{"稿件编号":"M-1","审稿人姓名":"Li","审回时间":"2024-03-05"}],"re_review":[]}}`))
	}))
	defer srv.Close()

	env := mustEnvelope(t, "--dir", t.TempDir(), "--server", srv.URL, "search", "--type", "manuscript", "M-1")
	if env["meta"].(map[string]any)["type"] != "manuscript" {
		t.Fatalf("meta: %v", env["meta"])
	}
	review := env["data"].(map[string]any)["review"].([]any)
	if len(review) != 1 {
		t.Fatalf("review: %v", review)
	}
}

func TestSearchServerErrorMessage(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"employee not found"}`))
	}))
	defer srv.Close()

	_, stderr, err := runCLI(t, []string{"--dir", t.TempDir(), "--server", srv.URL, "search", "nobody"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(string(stderr), "employee not found") {
		t.Fatalf("stderr: %s", stderr)
	}
}

func TestSearchUnknownType(t *testing.T) {
	t.Parallel()
	_, _, err := runCLI(t, []string{"--dir", t.TempDir(), "search", "--type", "isbn", "x"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestPageFeeToggle(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/get_page_fee_data":
			_, _ = w.Write([]byte(`[{"稿件编号":"M-7","录用":true,"发票":false,"备注":null,"税号":12345}]`))
		case "/update_status":
			mu.Lock()
			_ = json.NewDecoder(r.Body).Decode(&got)
			mu.Unlock()
			_, _ = w.Write([]byte(`{"message":"ok"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	env := mustEnvelope(t, "--dir", t.TempDir(), "--server", srv.URL, "pagefee", "toggle", "M-7", "--status", "invoiced")
	if env["meta"].(map[string]any)["checked"] != true {
		t.Fatalf("meta: %v", env["meta"])
	}
	mu.Lock()
	defer mu.Unlock()
	if got["稿件编号"] != "M-7" || got["statusType"] != "发票" || got["isChecked"] != true {
		t.Fatalf("update body: %v", got)
	}
}

func TestPageFeeToggleUnknownRow(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, stderr, err := runCLI(t, []string{"--dir", t.TempDir(), "--server", srv.URL, "pagefee", "toggle", "M-404"})
	if err == nil || !strings.Contains(string(stderr), "manuscript not found") {
		t.Fatalf("err=%v stderr=%s", err, stderr)
	}
}

func TestPageFeeListEmptyText(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("filter") != "unprocessed" {
			t.Errorf("filter: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	stdout, _, err := runCLI(t, []string{"--dir", t.TempDir(), "--server", srv.URL, "--format", "text", "pagefee", "list", "--filter", "unprocessed"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(string(stdout), "no page-fee records found") {
		t.Fatalf("stdout:\n%s", stdout)
	}
}

func TestReviewRejectsBadMonth(t *testing.T) {
	t.Parallel()
	_, _, err := runCLI(t, []string{"--dir", t.TempDir(), "review", "--month", "2024-13"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestNotesOfflineRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	mustEnvelope(t, "--dir", dir, "notes", "set", "--offline", "review-fee-processed", "paid March batch")
	env := mustEnvelope(t, "--dir", dir, "notes", "list", "--offline")
	data := env["data"].(map[string]any)
	if data["review-fee-processed"] != "paid March batch" {
		t.Fatalf("notes: %v", data)
	}
	if data["special-expense-note"] != "在这里记录特约费用..." {
		t.Fatalf("expected placeholder, got %v", data["special-expense-note"])
	}
}

func TestNotesSetPushesAllNotes(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	var saved map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/load_notes":
			_, _ = w.Write([]byte(`{"assistant-expense-note":"from server"}`))
		case "/save_notes":
			mu.Lock()
			_ = json.NewDecoder(r.Body).Decode(&saved)
			mu.Unlock()
			_, _ = w.Write([]byte(`{"message":"saved"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	mustEnvelope(t, "--dir", t.TempDir(), "--server", srv.URL, "notes", "set", "special-expense-note", "taxi 40")
	mu.Lock()
	defer mu.Unlock()
	if saved["special-expense-note"] != "taxi 40" || saved["assistant-expense-note"] != "from server" {
		t.Fatalf("saved: %v", saved)
	}
	if len(saved) != 6 {
		t.Fatalf("expected all 6 notes, got %d", len(saved))
	}
}

func TestNotesSetUnknownID(t *testing.T) {
	t.Parallel()
	_, _, err := runCLI(t, []string{"--dir", t.TempDir(), "notes", "set", "--offline", "grocery", "milk"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestChatAndHistory(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":"**Sure**, issue 3 ships Friday."}`))
	}))
	defer srv.Close()
	dir := t.TempDir()

	env := mustEnvelope(t, "--dir", dir, "--server", srv.URL, "chat", "when", "does", "issue", "3", "ship?")
	if env["data"].(map[string]any)["role"] != "ai" {
		t.Fatalf("data: %v", env["data"])
	}

	hist := mustEnvelope(t, "--dir", dir, "chat", "history")
	if n := len(hist["data"].([]any)); n != 2 {
		t.Fatalf("expected 2 messages, got %d", n)
	}

	stdout, _, err := runCLI(t, []string{"--dir", dir, "chat", "history", "--html", "-"})
	if err != nil {
		t.Fatalf("history html: %v", err)
	}
	if !strings.Contains(string(stdout), "<strong>Sure</strong>") {
		t.Fatalf("html:\n%s", stdout)
	}
}

func TestChatFailureExitsNonZero(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	stdout, _, err := runCLI(t, []string{"--dir", t.TempDir(), "--server", srv.URL, "chat", "hi"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(string(stdout), "Error: HTTP error! status: 500") {
		t.Fatalf("stdout: %s", stdout)
	}
}

func TestOpenFolderProgram(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/open_program_folder" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"message":"opened"}`))
	}))
	defer srv.Close()

	env := mustEnvelope(t, "--dir", t.TempDir(), "--server", srv.URL, "open-folder", "--program")
	if env["data"].(map[string]any)["message"] != "opened" {
		t.Fatalf("data: %v", env["data"])
	}
}

func TestConfigShowsFlags(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	env := mustEnvelope(t, "--dir", dir, "--server", "http://desk.local:9000/", "config")
	data := env["data"].(map[string]any)
	if data["server"] != "http://desk.local:9000" {
		t.Fatalf("server: %v", data["server"])
	}
	if data["dir"] != filepath.Clean(dir) {
		t.Fatalf("dir: %v", data["dir"])
	}
}

func TestUIRejectsUnknownPage(t *testing.T) {
	t.Parallel()
	_, stderr, err := runCLI(t, []string{"--dir", t.TempDir(), "ui", "--page", "billing"})
	if err == nil || !strings.Contains(string(stderr), "page not found: billing") {
		t.Fatalf("err=%v stderr=%s", err, stderr)
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()
	stdout, _, err := runCLI(t, []string{"--dir", t.TempDir(), "version"})
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(string(stdout), "dev") {
		t.Fatalf("stdout: %s", stdout)
	}
}

func TestDoctor(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	mustEnvelope(t, "--dir", dir, "tasks", "add", "proofs")

	env := mustEnvelope(t, "--dir", dir, "doctor")
	meta := env["meta"].(map[string]any)
	if meta["issues"] != float64(0) || meta["hasErrors"] != false {
		t.Fatalf("meta: %v", meta)
	}
	if got := env["data"].(map[string]any)["tasks"]; got != float64(1) {
		t.Fatalf("tasks: %v", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "slots", "tasks"), []byte(`{"id":1}`), 0o644); err != nil {
		t.Fatalf("corrupt tasks: %v", err)
	}
	stdout, _, err := runCLI(t, []string{"--dir", dir, "doctor", "--fail"})
	if !errors.Is(err, store.ErrDoctorIssuesFound) {
		t.Fatalf("expected doctor failure, got %v", err)
	}
	if !strings.Contains(string(stdout), "tasks_invalid") {
		t.Fatalf("stdout: %s", stdout)
	}
}

func TestDocs(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	env := mustEnvelope(t, "--dir", dir, "docs")
	topics := env["data"].(map[string]any)["topics"].([]any)
	if len(topics) == 0 {
		t.Fatalf("expected topics")
	}

	stdout, _, err := runCLI(t, []string{"--dir", dir, "docs", "keys", "--raw"})
	if err != nil {
		t.Fatalf("docs keys: %v", err)
	}
	if !strings.HasPrefix(string(stdout), "# Keys") {
		t.Fatalf("stdout: %s", stdout)
	}

	_, stderr, err := runCLI(t, []string{"--dir", dir, "docs", "nope"})
	if err == nil || !strings.Contains(string(stderr), "unknown docs topic") {
		t.Fatalf("err=%v stderr=%s", err, stderr)
	}
}

func TestPublish(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "export")

	mustEnvelope(t, "--dir", dir, "tasks", "add", "send proofs")
	mustEnvelope(t, "--dir", dir, "notes", "set", "review-fee-processed", "March batch", "--offline")

	env := mustEnvelope(t, "--dir", dir, "publish", "--to", out)
	if n := len(env["data"].(map[string]any)["written"].([]any)); n != 2 {
		t.Fatalf("expected 2 files, got %d", n)
	}
	b, err := os.ReadFile(filepath.Join(out, "notes.md"))
	if err != nil {
		t.Fatalf("read notes.md: %v", err)
	}
	if !strings.Contains(string(b), "March batch") {
		t.Fatalf("notes.md:\n%s", b)
	}

	_, stderr, err := runCLI(t, []string{"--dir", dir, "publish", "--to", out})
	if err == nil || !strings.Contains(string(stderr), "file exists") {
		t.Fatalf("err=%v stderr=%s", err, stderr)
	}
}
