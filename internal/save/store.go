package save

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps one saved run per player name under a directory.
type FileStore struct {
	path string
}

// NewFileStore returns a store for name rooted at dir/saves.
func NewFileStore(dir, name string) *FileStore {
	if name == "" {
		name = "local"
	}
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == '.' || r < ' ' {
			return '_'
		}
		return r
	}, name)
	return &FileStore{path: filepath.Join(dir, "saves", name+".json")}
}

// Path returns the file the store reads and writes.
func (f *FileStore) Path() string { return f.path }

// Save writes rec to a temporary file and renames it into place.
func (f *FileStore) Save(rec Record) error {
	data, err := Encode(rec)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".save-*")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close save: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Load reads the saved run. A missing file yields ErrNoSave. A file that
// cannot be decoded is deleted and yields ErrCorrupt.
func (f *FileStore) Load() (Record, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Record{}, ErrNoSave
	}
	if err != nil {
		return Record{}, fmt.Errorf("read save: %w", err)
	}
	rec, err := Decode(data)
	if err != nil {
		if rmErr := f.Delete(); rmErr != nil {
			return Record{}, errors.Join(err, rmErr)
		}
		return Record{}, err
	}
	return rec, nil
}

// Exists reports whether a saved run is present.
func (f *FileStore) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Delete removes the saved run, if any.
func (f *FileStore) Delete() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete save: %w", err)
	}
	return nil
}
