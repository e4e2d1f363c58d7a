// Package storage keeps ticket attachments on the local filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sismaterial/helpdesk/internal/domain/attachment"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

// FileStore implements attachment.Store on one flat directory.
type FileStore struct {
	dir    string
	logger logger.Interface
}

func NewFileStore(dir string, log logger.Interface) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create attachment dir: %w", err)
	}
	return &FileStore{
		dir:    dir,
		logger: log,
	}, nil
}

// path maps name into the directory; any path components are discarded.
func (s *FileStore) path(name string) (string, error) {
	clean := attachment.SanitizeName(name)
	if clean == "" {
		return "", fmt.Errorf("invalid attachment name %q", name)
	}
	return filepath.Join(s.dir, clean), nil
}

func (s *FileStore) Save(ctx context.Context, name string, content io.Reader) error {
	target, err := s.path(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := io.Copy(tmp, content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write attachment %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close attachment %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod attachment %s: %w", name, err)
	}
	// same-named uploads overwrite
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("failed to store attachment %s: %w", name, err)
	}

	s.logger.Debugw("attachment stored", "name", filepath.Base(target))
	return nil
}

func (s *FileStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	target, err := s.path(name)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, fs.ErrNotExist)
	}
	f, err := os.Open(target)
	if err != nil {
		return nil, fmt.Errorf("failed to open attachment %s: %w", name, err)
	}
	return f, nil
}

func (s *FileStore) Exists(ctx context.Context, name string) (bool, error) {
	target, err := s.path(name)
	if err != nil {
		return false, nil
	}
	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat attachment %s: %w", name, err)
	}
	return info.Mode().IsRegular(), nil
}
