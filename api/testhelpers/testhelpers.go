package testhelpers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/municipal-services-api/api/handlers"
	"github.com/linesmerrill/municipal-services-api/config"
)

// UploadFile is one file part of a multipart request
type UploadFile struct {
	Name    string
	Content []byte
}

// NewTestApp initializes an App with filesystem attachments in a temporary
// directory and no rate limiting
func NewTestApp(t *testing.T) *handlers.App {
	t.Helper()
	a := &handlers.App{
		Config: config.Config{
			Env:               "test",
			StorageBackend:    config.StorageFilesystem,
			UploadsDir:        t.TempDir(),
			UploadsPublicPath: "/uploads",
			MaxUploadBytes:    10 << 20,
			RequestTimeout:    5 * time.Second,
		},
	}
	require.NoError(t, a.Initialize())
	return a
}

// MultipartRequest builds a POST with fields and files sent under "attachments"
func MultipartRequest(t *testing.T, url string, fields map[string]string, files []UploadFile) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, f := range files {
		part, err := writer.CreateFormFile("attachments", f.Name)
		require.NoError(t, err)
		_, err = part.Write(f.Content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
