package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store writes uploaded blobs under a single directory, each with a random
// stored name so original file names never reach the filesystem.
type Store struct {
	Dir string
}

func (s Store) Save(src io.Reader, originalName string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	storedName := uuid.NewString() + filepath.Ext(originalName)
	dst, err := os.Create(filepath.Join(s.Dir, storedName))
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write blob: %w", err)
	}
	return storedName, nil
}

func (s Store) Path(storedName string) string {
	return filepath.Join(s.Dir, filepath.Base(storedName))
}
