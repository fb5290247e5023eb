package storage

import (
	"fmt"
	"os"
)

const dirPermissions = 0o755

// FileStorage keeps every slot as a file inside Dir.
type FileStorage struct {
	Dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("can't create storage directory: %w", err)
	}

	return &FileStorage{Dir: dir}, nil
}

