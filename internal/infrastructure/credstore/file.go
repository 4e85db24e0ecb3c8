// Package credstore holds the local CredentialStore implementations.
package credstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore keeps the credential in a single 0600 file. Writes go through a
// temporary file and a rename so a crash leaves either the old or the new
// value on disk, never a torn one.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading credential file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Set(_ context.Context, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating credential directory: %w", err)
	}

	temporaryPath := s.path + ".tmp"
	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating temporary credential file: %w", err)
	}

	if _, err := file.WriteString(credential + "\n"); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary credential file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary credential file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary credential file: %w", err)
	}

	if err := os.Rename(temporaryPath, s.path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming credential file into place: %w", err)
	}

	if parent, err := os.Open(dir); err == nil {
		parent.Sync()
		parent.Close()
	}
	return nil
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing credential file: %w", err)
	}
	return nil
}
