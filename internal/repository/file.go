package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
)

const filePermissions = 0o644

type fileSlot struct {
	dir string
}

// NewFileStateRepository stores the blob in a file named after key inside dir.
func NewFileStateRepository(dir, key string) StateRepository {
	return newStateRepository(&fileSlot{dir: dir}, key)
}

func (that *fileSlot) path(key string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '/', '\\':
			return '_'
		default:
			return r
		}
	}, key)

	return filepath.Join(that.dir, name+".json")
}

func (that *fileSlot) read(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(that.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperror.ErrStateNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("can't read slot file: %w", err)
	}

	return data, nil
}

// write replaces the file through a rename so a reader never sees a partial blob.
func (that *fileSlot) write(_ context.Context, key string, value []byte) error {
	target := that.path(key)

	tmp, err := os.CreateTemp(that.dir, filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("can't create temp file: %w", err)
	}

	defer os.Remove(tmp.Name()) //nolint: errcheck // already renamed on success

	if _, err = tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("can't write temp file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("can't close temp file: %w", err)
	}

	if err = os.Chmod(tmp.Name(), filePermissions); err != nil {
		return fmt.Errorf("can't set file permissions: %w", err)
	}

	if err = os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("can't replace slot file: %w", err)
	}

	return nil
}

func (that *fileSlot) remove(_ context.Context, key string) error {
	err := os.Remove(that.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("can't remove slot file: %w", err)
	}

	return nil
}
