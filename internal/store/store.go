package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Store is the local data directory. Everything the desk persists lives under Dir.
type Store struct {
	Dir string
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store: missing dir")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) path(name string) string {
	return filepath.Join(s.Dir, name)
}
