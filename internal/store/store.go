// Package store reads and writes the save document on disk.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/hazzzi/maenggu-run/internal/config"
	"github.com/hazzzi/maenggu-run/internal/models"
)

var (
	// ErrNotFound means no save file exists yet.
	ErrNotFound = errors.New("save file not found")

	// ErrUnsupportedVersion means the save file was written by a newer release.
	ErrUnsupportedVersion = errors.New("unsupported save version")

	// ErrPreserved means an unreadable save file could not be moved aside,
	// so writing would destroy it.
	ErrPreserved = errors.New("unreadable save file could not be moved aside")
)

// Store persists SaveState snapshots to a single JSON file.
// It never retains a copy of the state it is handed.
type Store struct {
	path string

	mu       sync.Mutex
	lastHash uint64
	// pending is the backup name of a file that still has to be moved
	// aside before the next write.
	pending string
}

// New creates a store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Open creates a store at the canonical per-user save location.
func Open() (*Store, error) {
	path, err := config.SaveFile()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve save path: %w", err)
	}
	return New(path), nil
}

// Path returns the save file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads and validates the save file.
//
// A missing file yields ErrNotFound. A document without a version is
// treated as version 1. Corrupt documents and documents from a newer
// version are moved aside before the error is returned, so that falling
// back to defaults never overwrites them.
func (s *Store) Load() (models.SaveState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.SaveState{}, ErrNotFound
		}
		return models.SaveState{}, fmt.Errorf("failed to read save file %s: %w", s.path, err)
	}

	var state models.SaveState
	if err := json.Unmarshal(data, &state); err != nil {
		parseErr := fmt.Errorf("failed to parse save file %s: %w", s.path, err)
		return models.SaveState{}, errors.Join(parseErr, s.quarantine("corrupt"))
	}

	switch {
	case state.Version == 0:
		state.Version = models.SaveVersion
	case state.Version > models.SaveVersion:
		versionErr := fmt.Errorf("%w: %d", ErrUnsupportedVersion, state.Version)
		return models.SaveState{}, errors.Join(versionErr, s.quarantine(fmt.Sprintf("v%d", state.Version)))
	}

	return state, nil
}

// Save writes the state, replacing any previous content.
func (s *Store) Save(state models.SaveState) error {
	state.Version = models.SaveVersion

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal save state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != "" {
		if err := s.moveAsideLocked(s.pending); err != nil {
			return err
		}
	}

	if err := config.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return err
	}
	s.lastHash = xxh3.Hash(data)
	return nil
}

// LastWrittenHash returns the xxh3 hash of the last successfully written
// document, or 0 if nothing was written by this process.
func (s *Store) LastWrittenHash() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastHash
}

// Hash returns the xxh3 hash of the file currently on disk.
func (s *Store) Hash() (uint64, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0, err
	}
	return xxh3.Hash(data), nil
}

// quarantine moves the current file to <path>.<reason>.bak, replacing an
// older backup with the same reason. If the move fails, Save refuses to
// write until a retry succeeds.
func (s *Store) quarantine(reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveAsideLocked(reason)
}

func (s *Store) moveAsideLocked(reason string) error {
	err := os.Rename(s.path, s.path+"."+reason+".bak")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.pending = reason
		return fmt.Errorf("%w: %w", ErrPreserved, err)
	}
	s.pending = ""
	return nil
}
