package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotFound is returned by KV.Get when a slot has never been written.
var ErrNotFound = errors.New("store: slot not found")

// KV is a flat key-value slot store. Values are opaque bytes written whole.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}

const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// OpenKV opens the slot store for backend under s.Dir.
func (s Store) OpenKV(ctx context.Context, backend string) (KV, error) {
	if err := CheckBackend(backend); err != nil {
		return nil, err
	}
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendDiskv:
		if err := s.Ensure(); err != nil {
			return nil, err
		}
		return NewDiskKV(filepath.Join(s.Dir, "slots")), nil
	case BackendSQLite:
		if err := s.Ensure(); err != nil {
			return nil, err
		}
		return OpenSQLiteKV(ctx, filepath.Join(s.Dir, "editdesk.sqlite"))
	default: // BackendMemory
		return NewMemoryKV(), nil
	}
}

// CheckBackend reports whether backend names a storage backend OpenKV can open.
func CheckBackend(backend string) error {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendDiskv, BackendSQLite, BackendMemory:
		return nil
	}
	return fmt.Errorf("unknown storage backend: %s", backend)
}

// MemoryKV keeps slots in process memory. Used by tests and --storage memory.
type MemoryKV struct {
	mu sync.Mutex
	m  map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: map[string][]byte{}}
}

func (k *MemoryKV) Get(key string) ([]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.m[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (k *MemoryKV) Put(key string, value []byte) error {
	k.mu.Lock()
	k.m[key] = append([]byte(nil), value...)
	k.mu.Unlock()
	return nil
}

func (k *MemoryKV) Close() error { return nil }
