package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// File stores each key as <dir>/<key>.json. Writes go through a temp file
// and rename so a crash never leaves a half-written record, and an advisory
// lock on <dir>/.lock keeps two processes from interleaving.
type File struct {
	dir  string
	lock *flock.Flock
}

// OpenFile creates dir if needed and returns a backend rooted there
func OpenFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &File{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, ".lock")),
	}, nil
}

// Name returns the backend identifier
func (f *File) Name() string {
	return "file"
}

// Dir returns the directory records are kept in
func (f *File) Dir() string {
	return f.dir
}

func (f *File) recordPath(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

// Read returns the contents of the record file for key
func (f *File) Read(key string) ([]byte, bool, error) {
	path, err := f.recordPath(key)
	if err != nil {
		return nil, false, err
	}

	if err := f.lock.RLock(); err != nil {
		return nil, false, fmt.Errorf("locking %s: %w", f.dir, err)
	}
	defer f.lock.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, true, nil
}

// Write atomically replaces the record file for key
func (f *File) Write(key string, value []byte) error {
	path, err := f.recordPath(key)
	if err != nil {
		return err
	}

	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("locking %s: %w", f.dir, err)
	}
	defer f.lock.Unlock()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("write %s tmp: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

// Close releases the lock file handle
func (f *File) Close() error {
	return f.lock.Close()
}

func init() {
	Register("file", func(path string) (Backend, error) {
		f, err := OpenFile(path)
		if err != nil {
			return nil, err
		}
		return f, nil
	})
}
