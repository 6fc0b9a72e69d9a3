package cart

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Slot is the device-local storage the guest cart persists into, one JSON
// document per key. It mirrors a browser localStorage slot: opaque bytes,
// last write wins, delete removes the slot entirely.
type Slot interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, data []byte) error
	Delete(key string) error
}

type fileSlot struct {
	dir string
}

// NewFileSlot stores each key as <dir>/<key>.json, creating dir on demand.
func NewFileSlot(dir string) Slot {
	return &fileSlot{dir: dir}
}

func (s *fileSlot) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *fileSlot) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (s *fileSlot) Set(key string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path(key), data, 0o644)
}

func (s *fileSlot) Delete(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
