package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// FilesystemStore writes attachments into Dir, creating it on first use, and
// reports them under PublicPrefix (for example "/uploads/1_1_photo.jpg").
type FilesystemStore struct {
	Dir          string
	PublicPrefix string
}

// NewFilesystemStore returns a store rooted at dir
func NewFilesystemStore(dir, publicPrefix string) *FilesystemStore {
	return &FilesystemStore{Dir: dir, PublicPrefix: publicPrefix}
}

// Save copies r into Dir/name, replacing any existing file of that name
func (f *FilesystemStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid attachment name %q", name)
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}

	target := filepath.Join(f.Dir, name)
	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		os.Remove(target)
		return "", fmt.Errorf("failed to write %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to close %s: %w", target, err)
	}

	return path.Join(f.PublicPrefix, name), nil
}
