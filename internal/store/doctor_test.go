package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func hasIssue(r DoctorReport, code string) bool {
	for _, it := range r.Issues {
		if it.Code == code {
			return true
		}
	}
	return false
}

func TestDoctor_CleanDir(t *testing.T) {
	t.Parallel()
	st := Store{Dir: t.TempDir()}
	kv, err := st.OpenKV(context.Background(), BackendDiskv)
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	if err := kv.Put(TasksKey, []byte(`[{"id":1,"text":"a"},{"id":2,"text":"b"}]`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	r := st.Doctor(context.Background(), BackendDiskv)
	if len(r.Issues) != 0 {
		t.Fatalf("expected no issues; got %#v", r.Issues)
	}
	if r.Tasks != 2 {
		t.Fatalf("expected 2 tasks, got %d", r.Tasks)
	}
}

func TestDoctor_ReportsInvalidTasksAndDuplicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		code    string
		wantErr bool
	}{
		{name: "invalid", raw: `{"id":1}`, code: "tasks_invalid", wantErr: true},
		{name: "createdAt not a date", raw: `[{"id":1,"text":"a","createdAt":"yesterday"}]`, code: "tasks_invalid", wantErr: true},
		{name: "duplicate ids", raw: `[{"id":1,"text":"a"},{"id":1,"text":"b"}]`, code: "task_duplicate_id"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			st := Store{Dir: t.TempDir()}
			kv, err := st.OpenKV(context.Background(), BackendSQLite)
			if err != nil {
				t.Fatalf("open kv: %v", err)
			}
			if err := kv.Put(TasksKey, []byte(tt.raw)); err != nil {
				t.Fatalf("put: %v", err)
			}
			_ = kv.Close()

			r := st.Doctor(context.Background(), BackendSQLite)
			if !hasIssue(r, tt.code) {
				t.Fatalf("expected %s; got %#v", tt.code, r.Issues)
			}
			if r.HasErrors() != tt.wantErr {
				t.Fatalf("HasErrors=%v, want %v", r.HasErrors(), tt.wantErr)
			}
		})
	}
}

func TestDoctor_CorruptSideFilesAreWarnings(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	for _, name := range []string{tuiStateFileName, chatLogFileName} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{not json"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	r := Store{Dir: dir}.Doctor(context.Background(), BackendMemory)
	if !hasIssue(r, "tui_state_invalid") || !hasIssue(r, "chat_log_invalid") {
		t.Fatalf("expected side file warnings; got %#v", r.Issues)
	}
	if r.HasErrors() {
		t.Fatalf("side files must only warn; got %#v", r.Issues)
	}
}

func TestDoctor_MissingDirIsNotCreated(t *testing.T) {
	t.Parallel()

	for _, backend := range []string{BackendDiskv, BackendSQLite} {
		dir := filepath.Join(t.TempDir(), "nope")
		r := Store{Dir: dir}.Doctor(context.Background(), backend)
		if !hasIssue(r, "dir_missing") {
			t.Fatalf("%s: expected dir_missing; got %#v", backend, r.Issues)
		}
		if r.HasErrors() {
			t.Fatalf("%s: missing dir should only warn; got %#v", backend, r.Issues)
		}
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Fatalf("%s: doctor created %s (stat err %v)", backend, dir, err)
		}
	}
}

func TestDoctor_BadBackend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dir  func(t *testing.T) string
	}{
		{name: "missing dir", dir: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope") }},
		{name: "existing dir", dir: func(t *testing.T) string { return t.TempDir() }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := Store{Dir: tt.dir(t)}.Doctor(context.Background(), "tape")
			if !hasIssue(r, "kv_open_failed") || !r.HasErrors() {
				t.Fatalf("expected kv_open_failed error; got %#v", r.Issues)
			}
		})
	}
}
