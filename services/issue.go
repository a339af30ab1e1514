// Package services holds the issue reporting workflow that sits between the
// HTTP handlers and the in-memory databases.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/municipal-services-api/databases"
	"github.com/linesmerrill/municipal-services-api/databases/collection"
	"github.com/linesmerrill/municipal-services-api/models"
	"github.com/linesmerrill/municipal-services-api/storage"
)

// FileUpload is one file received with a report
type FileUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Publisher is told about every accepted report
type Publisher interface {
	Publish(summary models.IssueSummary)
}

var encouragingMessages = []string{
	"Thank you for helping improve our community!",
	"Your participation makes a difference!",
	"Together we can build a better municipality!",
	"Every report helps us serve you better!",
	"Your civic engagement is appreciated!",
}

// IssueService runs the issue submission workflow. It is safe for concurrent
// use; the databases guard their own collections.
type IssueService struct {
	Issues     databases.IssueDatabase
	Categories databases.CategoryDatabase
	Storage    storage.AttachmentStore
	// Publisher is optional
	Publisher Publisher
	Now       func() time.Time
}

// NewIssueService wires a service with the wall clock and no publisher
func NewIssueService(issues databases.IssueDatabase, categories databases.CategoryDatabase, store storage.AttachmentStore) *IssueService {
	return &IssueService{
		Issues:     issues,
		Categories: categories,
		Storage:    store,
		Now:        time.Now,
	}
}

func (s *IssueService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// EnsureCategories seeds the default categories when none exist yet
func (s *IssueService) EnsureCategories(ctx context.Context) error {
	seeded, err := s.Categories.SeedIfEmpty(ctx, models.DefaultCategories())
	if err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	if seeded > 0 {
		zap.S().Infow("loaded default issue categories", "count", seeded)
	}
	return nil
}

// ListActiveCategories returns the categories a citizen can choose from
func (s *IssueService) ListActiveCategories(ctx context.Context) ([]*models.IssueCategory, error) {
	if err := s.EnsureCategories(ctx); err != nil {
		return nil, err
	}
	return s.Categories.FindActive(ctx)
}

// CategoriesByDepartment returns the categories owned by a department
func (s *IssueService) CategoriesByDepartment(ctx context.Context, department string) ([]*models.IssueCategory, error) {
	if err := s.EnsureCategories(ctx); err != nil {
		return nil, err
	}
	return s.Categories.FindByDepartment(ctx, department)
}

// SubmitIssue validates draft, assigns it the next issue id, stores its
// attachments and appends it to the issue collection. A *ValidationError is
// returned, and nothing is changed, when the draft is rejected.
func (s *IssueService) SubmitIssue(ctx context.Context, draft models.IssueReport, files []FileUpload) (int, error) {
	if err := s.EnsureCategories(ctx); err != nil {
		return 0, err
	}

	checked := draft
	if checked.Priority == 0 {
		checked.Priority = 1
	}
	if fields := validateDraft(checked); len(fields) > 0 {
		zap.S().Debugw("issue report rejected", "fields", fields)
		return 0, &ValidationError{Draft: draft, Message: ValidationMessage, Fields: fields}
	}

	category, err := s.FindCategoryByID(ctx, checked.CategoryID)
	if errors.Is(err, ErrCategoryNotFound) || (err == nil && !category.IsActive) {
		return 0, &ValidationError{
			Draft:   draft,
			Message: ValidationMessage,
			Fields:  map[string]string{"CategoryID": "does not match an active category"},
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve category %d: %w", checked.CategoryID, err)
	}

	issue := checked
	issue.IssueID = s.Issues.NextID()
	issue.SubmittedAt = s.now()
	issue.LastUpdated = nil
	issue.CurrentStatus = models.Submitted
	issue.Category = category
	issue.Attachments = s.ProcessAttachments(ctx, files, issue.IssueID)

	if err := s.Issues.InsertOne(ctx, &issue); err != nil {
		return 0, fmt.Errorf("failed to store issue %d: %w", issue.IssueID, err)
	}

	zap.S().Infow("new issue reported",
		"issueId", issue.IssueID,
		"category", issue.Category.GetName(),
		"location", issue.Location.String(),
		"attachments", issue.Attachments.Count(),
	)

	if s.Publisher != nil {
		s.Publisher.Publish(issue.Summary())
	}
	return issue.IssueID, nil
}

// ProcessAttachments stores every non-empty file and returns their records.
// A file that cannot be stored is logged and skipped; the rest still go
// through. Attachment ids count every attempted file starting at 1.
func (s *IssueService) ProcessAttachments(ctx context.Context, files []FileUpload, issueID int) *collection.OrderedCollection[*models.MediaAttachment] {
	attachments := collection.New[*models.MediaAttachment]()
	attachmentID := 1

	for _, file := range files {
		if file.Size <= 0 {
			continue
		}

		attachment := &models.MediaAttachment{
			AttachmentID:  attachmentID,
			FileName:      cleanFileName(file.FileName),
			FileType:      file.ContentType,
			FileSize:      file.Size,
			IssueReportID: issueID,
			UploadTime:    s.now(),
		}
		attachmentID++

		if attachment.FileName == "" {
			zap.S().Warnw("skipping attachment without a file name", "issueId", issueID)
			continue
		}

		name := models.AttachmentStorageName(issueID, attachment.AttachmentID, attachment.FileName)
		path, err := s.persist(ctx, name, file)
		if err != nil {
			zap.S().Errorw("error processing file attachment",
				"issueId", issueID,
				"fileName", attachment.FileName,
				"error", err,
			)
			continue
		}
		attachment.FilePath = path

		collection.AddAttachment(attachments, attachment)
		zap.S().Infow("file uploaded", "fileName", attachment.FileName, "bytes", attachment.FileSize)
	}

	return attachments
}

func (s *IssueService) persist(ctx context.Context, name string, file FileUpload) (string, error) {
	if s.Storage == nil {
		return "", errors.New("no attachment storage configured")
	}
	if file.Open == nil {
		return "", errors.New("file has no content")
	}
	rc, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer rc.Close()
	return s.Storage.Save(ctx, name, rc)
}

// cleanFileName keeps only the final element of a client supplied name so it
// cannot point outside the uploads directory
func cleanFileName(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	if name == "" {
		return ""
	}
	base := filepath.Base(name)
	if base == "." || base == "/" || base == ".." {
		return ""
	}
	return base
}

// FindIssueByID returns the report with the given id or ErrIssueNotFound
func (s *IssueService) FindIssueByID(ctx context.Context, issueID int) (*models.IssueReport, error) {
	issue, err := s.Issues.FindOne(ctx, issueID)
	if errors.Is(err, databases.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %d", ErrIssueNotFound, issueID)
	}
	if err != nil {
		return nil, err
	}
	return issue, nil
}

// FindCategoryByID returns the category with the given id or ErrCategoryNotFound
func (s *IssueService) FindCategoryByID(ctx context.Context, categoryID int) (*models.IssueCategory, error) {
	if err := s.EnsureCategories(ctx); err != nil {
		return nil, err
	}
	category, err := s.Categories.FindOne(ctx, categoryID)
	if errors.Is(err, databases.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %d", ErrCategoryNotFound, categoryID)
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

// GetIssuesByCategory returns list projections of the reports in a category.
// An unknown category yields ErrCategoryNotFound; a known one with no reports
// yields an empty slice.
func (s *IssueService) GetIssuesByCategory(ctx context.Context, categoryID int) ([]models.IssueSummary, error) {
	if _, err := s.FindCategoryByID(ctx, categoryID); err != nil {
		return nil, err
	}

	issues, err := s.Issues.Find(ctx, func(i *models.IssueReport) bool {
		return i.CategoryID == categoryID
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]models.IssueSummary, 0, len(issues))
	for _, issue := range issues {
		summaries = append(summaries, issue.Summary())
	}
	return summaries, nil
}

// ListAllIssues returns every report in submission order with the total count
func (s *IssueService) ListAllIssues(ctx context.Context) ([]*models.IssueReport, int, error) {
	issues, err := s.Issues.FindAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	return issues, len(issues), nil
}

// Attachment kinds accepted by IssueAttachments
const (
	AttachmentKindAll      = ""
	AttachmentKindImage    = "image"
	AttachmentKindDocument = "document"
)

// IssueAttachments lists the attachments of a report. kind is "", "image",
// "document" or a file extension such as "pdf".
func (s *IssueService) IssueAttachments(ctx context.Context, issueID int, kind string) (models.AttachmentListing, error) {
	issue, err := s.FindIssueByID(ctx, issueID)
	if err != nil {
		return models.AttachmentListing{}, err
	}

	all := issue.Attachments
	if all == nil {
		all = collection.New[*models.MediaAttachment]()
	}

	var selected []*models.MediaAttachment
	switch strings.ToLower(kind) {
	case AttachmentKindAll:
		selected = all.GetAll()
	case AttachmentKindImage:
		selected = collection.ImageFiles(all)
	case AttachmentKindDocument:
		selected = collection.DocumentFiles(all)
	default:
		selected = collection.FilesByExtension(all, kind)
	}

	subset := collection.From(selected...)
	return models.AttachmentListing{
		IssueID:       issueID,
		Attachments:   selected,
		Count:         len(selected),
		TotalSize:     collection.CalculateTotalSize(subset),
		TotalSizeText: collection.TotalSizeFormatted(subset),
	}, nil
}

// EngagementStats reports participation: ten percent per report, capped at 100
func (s *IssueService) EngagementStats(ctx context.Context) (models.EngagementStats, error) {
	total, err := s.Issues.CountDocuments(ctx)
	if err != nil {
		return models.EngagementStats{}, err
	}

	progress := total * 10
	if progress > 100 {
		progress = 100
	}
	return models.EngagementStats{
		TotalReports:       total,
		ProgressPercentage: progress,
		Message:            encouragingMessages[rand.Intn(len(encouragingMessages))],
	}, nil
}
