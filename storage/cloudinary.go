package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore uploads attachments to a Cloudinary folder
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore connects with a CLOUDINARY_URL style url
func NewCloudinaryStore(cloudinaryURL, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

// Save uploads r with name (minus its extension) as the public id and
// returns the secure delivery URL
func (c *CloudinaryStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	publicID := strings.TrimSuffix(name, path.Ext(name))
	resp, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       c.folder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("failed to upload %s: %s", name, resp.Error.Message)
	}
	return resp.SecureURL, nil
}
