package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type fileBlobStore struct{ dir string }

// NewFileBlobStore stores each key as <dir>/<key>.json.
func NewFileBlobStore(dir string) (BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create data dir: %w", err)
	}
	return &fileBlobStore{dir: dir}, nil
}

func (f *fileBlobStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *fileBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	return b, err
}

// Put writes to a temp file and renames it over the old value so a crash never
// leaves a truncated blob behind.
func (f *fileBlobStore) Put(ctx context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(f.dir, key+"-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

func (f *fileBlobStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
