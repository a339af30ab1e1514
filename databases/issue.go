package databases

import (
	"context"
	"errors"
	"fmt"

	"github.com/linesmerrill/municipal-services-api/models"
)

// IssueDatabase contains the methods to use with the issue collection
type IssueDatabase interface {
	NextID() int
	InsertOne(ctx context.Context, issue *models.IssueReport) error
	FindOne(ctx context.Context, issueID int) (*models.IssueReport, error)
	Find(ctx context.Context, filter func(*models.IssueReport) bool) ([]*models.IssueReport, error)
	FindAll(ctx context.Context) ([]*models.IssueReport, error)
	CountDocuments(ctx context.Context) (int, error)
}

type issueDatabase struct {
	db *Store
}

// NewIssueDatabase initializes a new instance of issue database over the given store
func NewIssueDatabase(db *Store) IssueDatabase {
	return &issueDatabase{
		db: db,
	}
}

// NextID reserves the next issue id. Ids are never handed out twice, even
// when the reserving submission is later abandoned.
func (i *issueDatabase) NextID() int {
	return i.db.issueSeq.Next()
}

func (i *issueDatabase) InsertOne(ctx context.Context, issue *models.IssueReport) error {
	if issue == nil {
		return errors.New("cannot insert a nil issue")
	}
	if issue.IssueID <= 0 {
		return fmt.Errorf("issue has no id assigned: %d", issue.IssueID)
	}
	return i.db.write(ctx, func() {
		i.db.issues.Add(issue)
	})
}

func (i *issueDatabase) FindOne(ctx context.Context, issueID int) (*models.IssueReport, error) {
	var (
		issue *models.IssueReport
		found bool
	)
	err := i.db.read(ctx, func() {
		issue, found = i.db.issues.FindFunc(func(r *models.IssueReport) bool {
			return r.IssueID == issueID
		})
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoDocuments
	}
	return issue, nil
}

func (i *issueDatabase) Find(ctx context.Context, filter func(*models.IssueReport) bool) ([]*models.IssueReport, error) {
	var issues []*models.IssueReport
	err := i.db.read(ctx, func() {
		issues = i.db.issues.Filter(filter)
	})
	return issues, err
}

func (i *issueDatabase) FindAll(ctx context.Context) ([]*models.IssueReport, error) {
	var issues []*models.IssueReport
	err := i.db.read(ctx, func() {
		issues = i.db.issues.GetAll()
	})
	return issues, err
}

func (i *issueDatabase) CountDocuments(ctx context.Context) (int, error) {
	var count int
	err := i.db.read(ctx, func() {
		count = i.db.issues.Count()
	})
	return count, err
}
