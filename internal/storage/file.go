package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var keyRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// FileBackend stores each key as its own file, <dir>/<key>.json, holding the
// raw value. Keys are independent: a damaged file affects only its own key.
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat storage directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage path %s is not a directory", dir)
	}
	return &FileBackend{dir: dir}, nil
}

// Path returns the file that holds key.
func (b *FileBackend) Path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

func (b *FileBackend) Get(key string) (string, bool, error) {
	if !keyRe.MatchString(key) {
		return "", false, fmt.Errorf("invalid storage key %q", key)
	}
	data, err := os.ReadFile(b.Path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

func (b *FileBackend) Set(key, value string) error {
	if !keyRe.MatchString(key) {
		return fmt.Errorf("invalid storage key %q", key)
	}

	// write-then-rename so a crash mid-write leaves the previous value
	path := b.Path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }
