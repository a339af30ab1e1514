package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linesmerrill/municipal-services-api/databases/collection"
	"github.com/linesmerrill/municipal-services-api/models"
)

func categories() *collection.OrderedCollection[*models.IssueCategory] {
	return collection.From(
		&models.IssueCategory{CategoryID: 1, Name: "Road Maintenance", ResponsibleDepartment: "Public Works", IsActive: true},
		&models.IssueCategory{CategoryID: 2, Name: "Water Supply", ResponsibleDepartment: "Water Services", IsActive: false},
		&models.IssueCategory{CategoryID: 3, Name: "Street Lighting", ResponsibleDepartment: "public works", IsActive: true},
	)
}

func attachments() *collection.OrderedCollection[*models.MediaAttachment] {
	return collection.From(
		&models.MediaAttachment{AttachmentID: 1, FileName: "pothole.JPG", FileSize: 1024},
		&models.MediaAttachment{AttachmentID: 2, FileName: "report.pdf", FileSize: 512},
		&models.MediaAttachment{AttachmentID: 3, FileName: "notes.txt", FileSize: 0},
		&models.MediaAttachment{AttachmentID: 4, FileName: "clip.mp4", FileSize: 2048},
	)
}

func TestActiveCategories(t *testing.T) {
	active := collection.ActiveCategories(categories())
	assert.Len(t, active, 2)
	assert.Equal(t, 1, active[0].CategoryID)
	assert.Equal(t, 3, active[1].CategoryID)
}

func TestFindByName(t *testing.T) {
	c, ok := collection.FindByName(categories(), "water supply")
	assert.True(t, ok)
	assert.Equal(t, 2, c.CategoryID)

	_, ok = collection.FindByName(categories(), "Noise")
	assert.False(t, ok)
}

func TestCategoriesByDepartment(t *testing.T) {
	works := collection.CategoriesByDepartment(categories(), "PUBLIC WORKS")
	assert.Len(t, works, 2)

	none := collection.CategoriesByDepartment(categories(), "")
	assert.NotNil(t, none)
	assert.Len(t, none, 0)
}

func TestAddAttachment(t *testing.T) {
	c := collection.New[*models.MediaAttachment]()
	assert.False(t, collection.AddAttachment(c, &models.MediaAttachment{FileName: ""}))
	assert.True(t, collection.AddAttachment(c, &models.MediaAttachment{FileName: "a.png"}))
	assert.Equal(t, 1, c.Count())
}

func TestImageAndDocumentFiles(t *testing.T) {
	images := collection.ImageFiles(attachments())
	assert.Len(t, images, 1)
	assert.Equal(t, "pothole.JPG", images[0].FileName)

	documents := collection.DocumentFiles(attachments())
	assert.Len(t, documents, 2)
	assert.Equal(t, "report.pdf", documents[0].FileName)
	assert.Equal(t, "notes.txt", documents[1].FileName)
}

func TestFilesByExtension(t *testing.T) {
	assert.Len(t, collection.FilesByExtension(attachments(), "jpg"), 1)
	assert.Len(t, collection.FilesByExtension(attachments(), ".PDF"), 1)
	assert.Len(t, collection.FilesByExtension(attachments(), "png"), 0)
	assert.Len(t, collection.FilesByExtension(attachments(), ""), 0)
}

func TestCalculateTotalSize(t *testing.T) {
	assert.Equal(t, int64(3584), collection.CalculateTotalSize(attachments()))
	assert.Equal(t, int64(0), collection.CalculateTotalSize(collection.New[*models.MediaAttachment]()))
	assert.Equal(t, "3.5 KB", collection.TotalSizeFormatted(attachments()))
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 bytes"},
		{-5, "0 bytes"},
		{512, "512 bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{2048, "2 KB"},
		{1048576, "1 MB"},
		{1073741824, "1 GB"},
		{5 * 1073741824 * 1024, "5120 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, collection.FormatSize(tt.bytes), "bytes=%d", tt.bytes)
	}
}

func TestFindAndRemoveByFileName(t *testing.T) {
	c := attachments()

	a, ok := collection.FindByFileName(c, "REPORT.pdf")
	assert.True(t, ok)
	assert.Equal(t, 2, a.AttachmentID)

	_, ok = collection.FindByFileName(c, "")
	assert.False(t, ok)

	assert.True(t, collection.RemoveByFileName(c, "report.pdf"))
	assert.Equal(t, 3, c.Count())
	assert.False(t, collection.RemoveByFileName(c, "report.pdf"))
	assert.False(t, collection.RemoveByFileName(c, ""))
}
