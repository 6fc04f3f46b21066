// Package publish writes the local desk (tasks and notes) out as markdown files.
package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"editdesk-cli/internal/model"
)

const (
	TasksFile = "tasks.md"
	NotesFile = "notes.md"
)

type WriteOptions struct {
	PendingOnly bool
	Overwrite   bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteDesk renders tasks and notes into toDir. Existing files are left alone unless
// opt.Overwrite is set; a clash writes nothing.
func WriteDesk(toDir string, ts []model.Task, notes map[string]string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	files := []struct {
		name string
		body string
	}{
		{TasksFile, RenderTasksMarkdown(ts, RenderOptions{PendingOnly: opt.PendingOnly})},
		{NotesFile, RenderNotesMarkdown(notes)},
	}
	if !opt.Overwrite {
		for _, f := range files {
			if err := checkFree(filepath.Join(toDir, f.name)); err != nil {
				return WriteResult{}, err
			}
		}
	}

	var written []string
	for _, f := range files {
		path := filepath.Join(toDir, f.name)
		if err := os.WriteFile(path, []byte(f.body), 0o644); err != nil {
			return WriteResult{Written: written}, err
		}
		written = append(written, path)
	}
	return WriteResult{Written: written}, nil
}

func checkFree(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.New("file exists (use --overwrite): " + path)
	}
	return nil
}
