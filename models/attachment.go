package models

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

var (
	imageExtensions    = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff"}
	documentExtensions = []string{".pdf", ".doc", ".docx", ".txt", ".rtf"}
)

// MediaAttachment is a file uploaded with an issue report. IssueReportID is a
// back reference only; the report owns its attachments.
type MediaAttachment struct {
	AttachmentID  int       `json:"attachmentId"`
	FileName      string    `json:"fileName" validate:"required,max=255"`
	FilePath      string    `json:"filePath" validate:"max=500"`
	FileType      string    `json:"fileType" validate:"max=100"`
	FileSize      int64     `json:"fileSize" validate:"min=0"`
	UploadTime    time.Time `json:"uploadTime"`
	IssueReportID int       `json:"issueReportId"`
}

// GetFileName returns the original file name, or "" for a nil attachment
func (m *MediaAttachment) GetFileName() string {
	if m == nil {
		return ""
	}
	return m.FileName
}

// GetFileSize returns the size in bytes, or 0 for a nil attachment
func (m *MediaAttachment) GetFileSize() int64 {
	if m == nil {
		return 0
	}
	return m.FileSize
}

// GetFileExtension returns the lower-cased extension including the dot
func (m *MediaAttachment) GetFileExtension() string {
	return strings.ToLower(filepath.Ext(m.GetFileName()))
}

// IsValidImageType reports whether the extension is on the image allow-list
func (m *MediaAttachment) IsValidImageType() bool {
	return hasExtension(m.GetFileExtension(), imageExtensions)
}

// IsValidDocumentType reports whether the extension is on the document allow-list
func (m *MediaAttachment) IsValidDocumentType() bool {
	return hasExtension(m.GetFileExtension(), documentExtensions)
}

func hasExtension(ext string, allowed []string) bool {
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// AttachmentStorageName is the name an attachment is persisted under:
// {issueId}_{attachmentId}_{originalFileName}. Files are read back by this
// pattern, so it must not change.
func AttachmentStorageName(issueID, attachmentID int, fileName string) string {
	return fmt.Sprintf("%d_%d_%s", issueID, attachmentID, fileName)
}
