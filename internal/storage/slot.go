// Package storage persists named slots of serialized state on the local
// machine. A slot holds one blob and is always read and written whole.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrEmpty is returned by Load when the slot has never been written
var ErrEmpty = errors.New("slot is empty")

// Slot is a single named value in local key/value storage
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Close() error
}

// Backend names a slot implementation
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

// DefaultDBName is the SQLite file created inside the data directory
const DefaultDBName = "projectboard.db"

// Open returns the slot named key for backend, rooted at dir
func Open(backend Backend, dir, key string) (Slot, error) {
	switch backend {
	case BackendSQLite, "":
		return OpenSQLite(filepath.Join(dir, DefaultDBName), key)
	case BackendFile:
		return NewFileSlot(dir, key), nil
	case BackendMemory:
		return NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want sqlite or file)", backend)
	}
}

// FileSlot stores the value in <dir>/<key>.json
type FileSlot struct {
	path string
}

// NewFileSlot creates a file-backed slot
func NewFileSlot(dir, key string) *FileSlot {
	return &FileSlot{path: filepath.Join(dir, key+".json")}
}

// Load reads the file
func (s *FileSlot) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return data, nil
}

// Save replaces the file through a temp file and rename, so a reader never
// sees a half-written value
func (s *FileSlot) Save(ctx context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op for files
func (s *FileSlot) Close() error {
	return nil
}

// MemorySlot keeps the value in process memory
type MemorySlot struct {
	mu    sync.Mutex
	data  []byte
	saves int
	err   error
}

// NewMemorySlot creates an empty in-memory slot
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// NewMemorySlotWith creates an in-memory slot holding data
func NewMemorySlotWith(data []byte) *MemorySlot {
	return &MemorySlot{data: append([]byte{}, data...)}
}

// Load returns a copy of the stored value
func (s *MemorySlot) Load(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, ErrEmpty
	}
	return append([]byte{}, s.data...), nil
}

// Save stores a copy of data, or returns the error set by FailWith
func (s *MemorySlot) Save(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.data = append([]byte{}, data...)
	s.saves++
	return nil
}

// Saves returns how many successful writes the slot has seen
func (s *MemorySlot) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// FailWith makes every following Save return err; nil restores normal writes
func (s *MemorySlot) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Close is a no-op
func (s *MemorySlot) Close() error {
	return nil
}
