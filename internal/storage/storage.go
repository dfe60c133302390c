package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage is a rooted disk store for uploaded assets. All client-visible
// paths are validated against the root before touching the filesystem.
type Storage struct {
	validator *PathValidator
}

func New(root string) (*Storage, error) {
	validator, err := NewPathValidator(root)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(validator.RootAbs(), 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}

	return &Storage{validator: validator}, nil
}

func (s *Storage) RootAbs() string {
	return s.validator.RootAbs()
}

func (s *Storage) Resolve(clientPath string) (string, error) {
	return s.validator.ResolvePath(clientPath)
}

// Write streams r into clientPath, creating parent directories as needed,
// and returns the number of bytes written.
func (s *Storage) Write(clientPath string, r io.Reader) (int64, error) {
	resolved, err := s.Resolve(clientPath)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return 0, fmt.Errorf("create parent directory: %w", err)
	}

	f, err := os.Create(resolved)
	if err != nil {
		return 0, fmt.Errorf("create %q: %w", clientPath, err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		os.Remove(resolved)
		return 0, fmt.Errorf("write %q: %w", clientPath, err)
	}

	return written, nil
}

func (s *Storage) Open(clientPath string) (*os.File, error) {
	resolved, err := s.Resolve(clientPath)
	if err != nil {
		return nil, err
	}
	return os.Open(resolved)
}

func (s *Storage) Remove(clientPath string) error {
	resolved, err := s.Resolve(clientPath)
	if err != nil {
		return err
	}

	if err := os.Remove(resolved); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %q: %w", clientPath, err)
	}
	return nil
}
