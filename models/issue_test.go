package models_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/linesmerrill/municipal-services-api/models"
)

func TestIssueStatusType_Text(t *testing.T) {
	assert.Equal(t, "Submitted", models.Submitted.String())
	assert.Equal(t, "Under Review", models.UnderReview.String())
	assert.Equal(t, "Unknown", models.IssueStatusType(0).String())

	b, err := json.Marshal(models.Resolved)
	assert.NoError(t, err)
	assert.Equal(t, `"Resolved"`, string(b))

	var status models.IssueStatusType
	assert.NoError(t, json.Unmarshal([]byte(`"Under Review"`), &status))
	assert.Equal(t, models.UnderReview, status)
	assert.Error(t, json.Unmarshal([]byte(`"Closed"`), &status))
}

func TestNewIssueReport(t *testing.T) {
	draft := models.NewIssueReport()
	assert.Equal(t, models.Submitted, draft.CurrentStatus)
	assert.Equal(t, 1, draft.Priority)
	assert.NotNil(t, draft.Attachments)
	assert.True(t, draft.Attachments.IsEmpty())
}

func TestIssueReport_PriorityText(t *testing.T) {
	issue := models.IssueReport{}
	for priority, want := range map[int]string{1: "Low", 2: "Medium", 3: "High", 0: "Unknown", 7: "Unknown"} {
		issue.Priority = priority
		assert.Equal(t, want, issue.PriorityText())
	}
}

func TestIssueReport_ReferenceID(t *testing.T) {
	issue := models.IssueReport{IssueID: 42}
	assert.Equal(t, "000042", issue.ReferenceID())
	assert.Equal(t, "1234567", models.FormatReferenceID(1234567))
}

func TestIssueReport_Summary(t *testing.T) {
	issue := models.IssueReport{
		IssueID:       7,
		Location:      models.Location{Address: "1 Park Lane", City: "Springfield"},
		Description:   strings.Repeat("é", 120),
		SubmittedAt:   time.Date(2024, 5, 6, 14, 5, 0, 0, time.UTC),
		CurrentStatus: models.Submitted,
	}

	summary := issue.Summary()
	assert.Equal(t, 7, summary.ID)
	assert.Equal(t, strings.Repeat("é", 100)+"...", summary.Description)
	assert.Equal(t, "1 Park Lane, , Springfield", summary.Location)
	assert.Equal(t, "Submitted", summary.Status)
	assert.Equal(t, "2024-05-06 14:05", summary.SubmittedAt)

	issue.Description = "short"
	assert.Equal(t, "short", issue.Summary().Description)
}

func TestIssueReport_JSON(t *testing.T) {
	issue := models.NewIssueReport()
	issue.IssueID = 3
	issue.Attachments.Add(&models.MediaAttachment{AttachmentID: 1, FileName: "a.jpg"})

	b, err := json.Marshal(issue)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "Submitted", decoded["currentStatus"])
	assert.Len(t, decoded["attachments"], 1)
	assert.NotContains(t, decoded, "lastUpdated")
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		location models.Location
		want     string
	}{
		{models.Location{Address: "12 Main Road", Area: "Central", City: "Springfield", PostalCode: "1234"}, "12 Main Road, Central, Springfield 1234"},
		{models.Location{Address: "12 Main Road"}, "12 Main Road"},
		{models.Location{}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.location.String())
	}
}

func TestMediaAttachment_Classification(t *testing.T) {
	image := &models.MediaAttachment{FileName: "Photo.JPEG"}
	assert.Equal(t, ".jpeg", image.GetFileExtension())
	assert.True(t, image.IsValidImageType())
	assert.False(t, image.IsValidDocumentType())

	document := &models.MediaAttachment{FileName: "minutes.docx"}
	assert.True(t, document.IsValidDocumentType())
	assert.False(t, document.IsValidImageType())

	none := &models.MediaAttachment{FileName: "README"}
	assert.False(t, none.IsValidImageType())
	assert.False(t, none.IsValidDocumentType())

	var missing *models.MediaAttachment
	assert.Equal(t, "", missing.GetFileName())
	assert.Equal(t, int64(0), missing.GetFileSize())
	assert.False(t, missing.IsValidImageType())
}

func TestAttachmentStorageName(t *testing.T) {
	assert.Equal(t, "12_1_photo.jpg", models.AttachmentStorageName(12, 1, "photo.jpg"))
	assert.Equal(t, "12_2_scan.pdf", models.AttachmentStorageName(12, 2, "scan.pdf"))
}

func TestDefaultCategories(t *testing.T) {
	categories := models.DefaultCategories()
	assert.Len(t, categories, 8)
	assert.Equal(t, "Roads and Transport", categories[0].Name)
	assert.Equal(t, "Electricity", categories[2].Name)
	assert.Equal(t, "Other", categories[7].Name)
	for _, c := range categories {
		assert.True(t, c.IsActive)
		assert.NotEmpty(t, c.ResponsibleDepartment)
	}

	var missing *models.IssueCategory
	assert.Equal(t, "", missing.GetName())
	assert.False(t, missing.GetIsActive())
	assert.Equal(t, "", missing.GetResponsibleDepartment())
}
