package store

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

// DiskKV stores each slot as one file under a base directory.
type DiskKV struct {
	d *diskv.Diskv
}

func NewDiskKV(basePath string) *DiskKV {
	return &DiskKV{d: diskv.New(diskv.Options{
		BasePath: basePath,
		// Slots are few and flat; no sharding.
		Transform: func(string) []string { return []string{} },
		// Writes land in TempDir first and are renamed into place.
		TempDir:      filepath.Join(basePath, ".tmp"),
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

func (k *DiskKV) Get(key string) ([]byte, error) {
	b, err := k.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (k *DiskKV) Put(key string, value []byte) error {
	return k.d.Write(key, value)
}

func (k *DiskKV) Close() error { return nil }
