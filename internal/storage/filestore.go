package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alexanderramin/actionmenu/internal/domain"
)

// FileStore keeps the state in a single JSON file. Saves go through a temp
// file in the same directory that is synced and renamed over the target, so
// a reader sees either the old document or the new one, never a mix.
type FileStore struct {
	path string
	now  func() time.Time

	// Seams for failure injection in tests.
	write  func(w io.Writer, data []byte) error
	rename func(oldpath, newpath string) error

	mu sync.Mutex
}

// NewFileStore returns a store backed by path. The directory is created on
// first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:   path,
		now:    time.Now,
		write:  writeAll,
		rename: os.Rename,
	}
}

func (f *FileStore) Path() string { return f.path }

func writeAll(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}

// Load reads and decodes the store file. A missing file is an empty state.
func (f *FileStore) Load(_ context.Context, opts LoadOptions) (*LoadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &LoadResult{State: domain.NewState()}, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "read", Path: f.path, Err: err}
	}
	return DecodeFrom(data, opts, f.path)
}

// Save validates and writes s atomically. The temp file is removed on every
// failure path and the committed file is only replaced by the final rename.
func (f *FileStore) Save(ctx context.Context, s *domain.State) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := Encode(s, f.now())
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &domain.StorageError{Op: "mkdir", Path: dir, Err: err}
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return &domain.StorageError{Op: "create temp", Path: dir, Err: err}
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := f.write(tmp, data); err != nil {
		return &domain.StorageError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &domain.StorageError{Op: "sync", Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &domain.StorageError{Op: "close", Path: tmpPath, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return &domain.StorageError{Op: "save", Path: f.path, Err: err}
	}
	if err := f.rename(tmpPath, f.path); err != nil {
		return &domain.StorageError{Op: "rename", Path: f.path, Err: err}
	}
	committed = true

	syncDir(dir)
	return nil
}

// syncDir flushes the rename to disk where the platform supports it. The
// document is already committed at this point, so failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
