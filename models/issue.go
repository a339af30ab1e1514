package models

import (
	"fmt"
	"time"

	"github.com/linesmerrill/municipal-services-api/databases/collection"
)

// IssueStatusType is the review state of a report. Only Submitted is set by
// the submission workflow; the rest belong to staff review.
type IssueStatusType int

// Issue statuses
const (
	Submitted IssueStatusType = iota + 1
	UnderReview
	Resolved
	Rejected
)

// String returns the human readable status
func (s IssueStatusType) String() string {
	switch s {
	case Submitted:
		return "Submitted"
	case UnderReview:
		return "Under Review"
	case Resolved:
		return "Resolved"
	case Rejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the status as its human readable text
func (s IssueStatusType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the texts produced by MarshalText
func (s *IssueStatusType) UnmarshalText(text []byte) error {
	for _, candidate := range []IssueStatusType{Submitted, UnderReview, Resolved, Rejected} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown issue status %q", text)
}

// IssueReport is a citizen submitted report. A report is a draft until the
// workflow assigns IssueID and stores it; after that it is not edited.
type IssueReport struct {
	IssueID       int                                             `json:"issueId"`
	Location      Location                                        `json:"location"`
	CategoryID    int                                             `json:"categoryId" validate:"required,gt=0"`
	Category      *IssueCategory                                  `json:"category,omitempty" validate:"-"`
	Description   string                                          `json:"description" validate:"required,notblank,max=2000"`
	SubmittedAt   time.Time                                       `json:"submittedAt"`
	LastUpdated   *time.Time                                      `json:"lastUpdated,omitempty"`
	CurrentStatus IssueStatusType                                 `json:"currentStatus"`
	Attachments   *collection.OrderedCollection[*MediaAttachment] `json:"attachments" validate:"-"`
	AdminNotes    string                                          `json:"adminNotes" validate:"max=1000"`
	Priority      int                                             `json:"priority" validate:"min=1,max=3"`
}

// NewIssueReport returns an empty draft with the defaults a form starts from
func NewIssueReport() IssueReport {
	return IssueReport{
		CurrentStatus: Submitted,
		Priority:      1,
		Attachments:   collection.New[*MediaAttachment](),
	}
}

// StatusText returns the human readable status
func (i *IssueReport) StatusText() string {
	return i.CurrentStatus.String()
}

// PriorityText maps the 1..3 priority onto Low, Medium and High
func (i *IssueReport) PriorityText() string {
	switch i.Priority {
	case 1:
		return "Low"
	case 2:
		return "Medium"
	case 3:
		return "High"
	default:
		return "Unknown"
	}
}

// ReferenceID is the confirmation number shown to the citizen
func (i *IssueReport) ReferenceID() string {
	return FormatReferenceID(i.IssueID)
}

// FormatReferenceID zero pads an issue id to six digits
func FormatReferenceID(issueID int) string {
	return fmt.Sprintf("%06d", issueID)
}

// SummaryTimeLayout is the timestamp layout used by IssueSummary
const SummaryTimeLayout = "2006-01-02 15:04"

const summaryDescriptionLimit = 100

// IssueSummary is the list projection of a report
type IssueSummary struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	SubmittedAt string `json:"submittedAt"`
}

// Summary projects the report for list views. Descriptions longer than 100
// characters are cut and suffixed with "...".
func (i *IssueReport) Summary() IssueSummary {
	description := i.Description
	if runes := []rune(description); len(runes) > summaryDescriptionLimit {
		description = string(runes[:summaryDescriptionLimit]) + "..."
	}
	return IssueSummary{
		ID:          i.IssueID,
		Description: description,
		Location:    i.Location.String(),
		Status:      i.StatusText(),
		SubmittedAt: i.SubmittedAt.Format(SummaryTimeLayout),
	}
}
