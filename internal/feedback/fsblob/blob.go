package fsblob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minjae-ko/localtax-portal/internal/apperr"
)

// Store writes attachment blobs under a root directory, one file per opaque
// storage path. Paths are sanitized against traversal out of the root.
type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create blob root %s: %w", root, err)
	}
	return &Store{root: root}, nil
}

func (s *Store) fullPath(storagePath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(storagePath))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", apperr.NewValidation("invalid storage path")
	}
	return filepath.Join(s.root, clean), nil
}

func (s *Store) Put(ctx context.Context, storagePath string, data []byte) error {
	full, err := s.fullPath(storagePath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create blob dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return fmt.Errorf("failed to write blob %s: %w", storagePath, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, storagePath string) ([]byte, error) {
	full, err := s.fullPath(storagePath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.NewNotFound("blob not found")
		}
		return nil, fmt.Errorf("failed to read blob %s: %w", storagePath, err)
	}
	return data, nil
}

func (s *Store) Remove(ctx context.Context, storagePath string) error {
	full, err := s.fullPath(storagePath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove blob %s: %w", storagePath, err)
	}
	return nil
}
