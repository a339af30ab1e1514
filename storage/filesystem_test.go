package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linesmerrill/municipal-services-api/storage"
)

func TestFilesystemStore_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store := storage.NewFilesystemStore(dir, "/uploads")

	p, err := store.Save(context.Background(), "1_1_photo.jpg", strings.NewReader("image-bytes"))
	assert.NoError(t, err)
	assert.Equal(t, "/uploads/1_1_photo.jpg", p)

	b, err := os.ReadFile(filepath.Join(dir, "1_1_photo.jpg"))
	assert.NoError(t, err)
	assert.Equal(t, "image-bytes", string(b))
}

func TestFilesystemStore_SaveRejectsPaths(t *testing.T) {
	store := storage.NewFilesystemStore(t.TempDir(), "/uploads")

	for _, name := range []string{"", "../escape.txt", "nested/file.txt"} {
		_, err := store.Save(context.Background(), name, strings.NewReader("x"))
		assert.Error(t, err, "name %q", name)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("mocked-error") }

func TestFilesystemStore_SaveRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewFilesystemStore(dir, "/uploads")

	_, err := store.Save(context.Background(), "1_1_broken.pdf", failingReader{})
	assert.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "1_1_broken.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestFilesystemStore_SaveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := storage.NewFilesystemStore(t.TempDir(), "/uploads")

	_, err := store.Save(ctx, "1_1_photo.jpg", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
