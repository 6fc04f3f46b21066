package store

import (
	"context"
	"errors"
	"testing"
)

func TestKV_Backends(t *testing.T) {
	t.Parallel()

	for _, backend := range []string{BackendMemory, BackendDiskv, BackendSQLite} {
		backend := backend
		t.Run(backend, func(t *testing.T) {
			t.Parallel()

			kv, err := Store{Dir: t.TempDir()}.OpenKV(context.Background(), backend)
			if err != nil {
				t.Fatalf("OpenKV: %v", err)
			}
			defer kv.Close()

			if _, err := kv.Get("tasks"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get missing: expected ErrNotFound, got %v", err)
			}
			if err := kv.Put("tasks", []byte(`[]`)); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if err := kv.Put("tasks", []byte(`[{"id":1,"text":"x"}]`)); err != nil {
				t.Fatalf("Put overwrite: %v", err)
			}
			got, err := kv.Get("tasks")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if string(got) != `[{"id":1,"text":"x"}]` {
				t.Fatalf("Get: got %q", got)
			}
		})
	}
}

func TestKV_DiskPersistsAcrossOpen(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	kv, err := s.OpenKV(context.Background(), BackendDiskv)
	if err != nil {
		t.Fatalf("OpenKV: %v", err)
	}
	if err := kv.Put("specialExpenseNote", []byte("taxi 42")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	kv2, err := s.OpenKV(context.Background(), BackendDiskv)
	if err != nil {
		t.Fatalf("OpenKV (reopen): %v", err)
	}
	got, err := kv2.Get("specialExpenseNote")
	if err != nil || string(got) != "taxi 42" {
		t.Fatalf("reopen Get: got %q err=%v", got, err)
	}
}

func TestKV_UnknownBackend(t *testing.T) {
	t.Parallel()

	if _, err := (Store{Dir: t.TempDir()}).OpenKV(context.Background(), "redis"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
