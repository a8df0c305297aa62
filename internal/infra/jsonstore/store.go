// Package jsonstore keeps the task snapshot in a JSON file.
package jsonstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/runoshun/todo/internal/domain"
)

// Store implements domain.SnapshotStore using a single file.
// Readers take a shared flock and writers an exclusive one, so a TUI and a
// watch daemon on the same machine never observe a half-written file.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first write.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Ensure Store implements domain.SnapshotStore and domain.SnapshotInspector.
var (
	_ domain.SnapshotStore     = (*Store)(nil)
	_ domain.SnapshotInspector = (*Store)(nil)
)

// Load returns the file content, or nil if the file does not exist.
func (s *Store) Load(_ context.Context) ([]byte, error) {
	var content []byte
	err := s.withLock(syscall.LOCK_SH, func() error {
		var err error
		content, err = os.ReadFile(s.path)
		if os.IsNotExist(err) {
			content = nil
			return nil
		}
		if err != nil {
			return fmt.Errorf("read store file: %w", err)
		}
		return nil
	})
	return content, err
}

// Save replaces the file content atomically.
func (s *Store) Save(_ context.Context, snapshot []byte) error {
	return s.withLock(syscall.LOCK_EX, func() error {
		return s.write(snapshot)
	})
}

// Revisions reports the file as a single revision; a plain file keeps no history.
func (s *Store) Revisions(_ context.Context, limit int) ([]domain.SnapshotRevision, error) {
	if limit < 0 {
		return nil, nil
	}
	var revs []domain.SnapshotRevision
	err := s.withLock(syscall.LOCK_SH, func() error {
		info, err := os.Stat(s.path)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("stat store file: %w", err)
		}
		revs = append(revs, domain.SnapshotRevision{SavedAt: info.ModTime(), Size: info.Size()})
		return nil
	})
	return revs, err
}

// withLock executes fn while holding a flock of the given type.
func (s *Store) withLock(lockType int, fn func() error) error {
	lock, err := s.acquireLock(lockType)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	return fn()
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	// Ensure lock file directory exists
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) write(content []byte) error {
	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
