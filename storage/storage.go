// Package storage persists the raw bytes of uploaded attachments.
package storage

import (
	"context"
	"io"
)

// AttachmentStore writes an attachment under name and returns the path or URL
// it can be fetched from afterwards.
type AttachmentStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}
