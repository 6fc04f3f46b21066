package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"editdesk-cli/internal/model"
)

var ErrDoctorIssuesFound = errors.New("doctor found errors")

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Path    string           `json:"path,omitempty"`
	Slot    string           `json:"slot,omitempty"`
}

type DoctorReport struct {
	Dir     string        `json:"dir"`
	Storage string        `json:"storage"`
	Tasks   int           `json:"tasks"`
	Issues  []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Doctor inspects the local data directory: the slot store for backend, the task slot and
// the JSON side files. Readers of these files fail soft, so anything odd here is otherwise
// silently replaced by defaults.
func (s Store) Doctor(ctx context.Context, backend string) DoctorReport {
	r := DoctorReport{Dir: s.Dir, Storage: backend}
	add := func(level DoctorIssueLevel, code, msg string) *DoctorIssue {
		r.Issues = append(r.Issues, DoctorIssue{Level: level, Code: code, Message: msg})
		return &r.Issues[len(r.Issues)-1]
	}

	if fi, err := os.Stat(s.Dir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			add(DoctorIssueLevelError, "dir_unreadable", err.Error()).Path = s.Dir
			return finishReport(r)
		}
		// Opening a disk backend would create the directory; doctor only looks.
		add(DoctorIssueLevelWarn, "dir_missing", "data directory does not exist yet; it is created on first write").Path = s.Dir
		if err := CheckBackend(backend); err != nil {
			add(DoctorIssueLevelError, "kv_open_failed", err.Error())
		}
		return finishReport(r)
	} else if !fi.IsDir() {
		add(DoctorIssueLevelError, "dir_not_directory", "data directory path is a file").Path = s.Dir
		return finishReport(r)
	}

	kv, err := s.OpenKV(ctx, backend)
	if err != nil {
		add(DoctorIssueLevelError, "kv_open_failed", err.Error())
		return finishReport(r)
	}
	defer kv.Close()

	r.Tasks = s.doctorTasks(kv, add)
	for _, n := range model.Notes {
		if _, err := kv.Get(n.StorageKey); err != nil && !errors.Is(err, ErrNotFound) {
			add(DoctorIssueLevelError, "note_unreadable", err.Error()).Slot = n.StorageKey
		}
	}

	s.doctorJSONFile(tuiStateFileName, &TUIState{}, "tui_state_invalid", add)
	s.doctorJSONFile(chatLogFileName, &ChatLog{}, "chat_log_invalid", add)
	return finishReport(r)
}

func (s Store) doctorTasks(kv KV, add func(DoctorIssueLevel, string, string) *DoctorIssue) int {
	b, err := kv.Get(TasksKey)
	if errors.Is(err, ErrNotFound) || (err == nil && len(bytes.TrimSpace(b)) == 0) {
		return 0
	}
	if err != nil {
		add(DoctorIssueLevelError, "tasks_unreadable", err.Error()).Slot = TasksKey
		return 0
	}
	ts, err := decodeTasks(b)
	if err != nil {
		add(DoctorIssueLevelError, "tasks_invalid", "task slot is not a task array and reads as empty: "+err.Error()).Slot = TasksKey
		return 0
	}
	seen := map[int64]bool{}
	for _, t := range ts {
		if seen[t.ID] {
			add(DoctorIssueLevelWarn, "task_duplicate_id", fmt.Sprintf("task id %d appears more than once", t.ID)).Slot = TasksKey
		}
		seen[t.ID] = true
	}
	return len(ts)
}

func (s Store) doctorJSONFile(name string, into any, code string, add func(DoctorIssueLevel, string, string) *DoctorIssue) {
	b, err := os.ReadFile(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		add(DoctorIssueLevelWarn, code, err.Error()).Path = s.path(name)
		return
	}
	if err := json.Unmarshal(b, into); err != nil {
		add(DoctorIssueLevelWarn, code, name+" is not valid JSON and is ignored").Path = s.path(name)
	}
}

func finishReport(r DoctorReport) DoctorReport {
	if r.Issues == nil {
		r.Issues = []DoctorIssue{}
	}
	return r
}
