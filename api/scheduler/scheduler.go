// Package scheduler runs the periodic department digest job.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/linesmerrill/municipal-services-api/databases"
	"github.com/linesmerrill/municipal-services-api/models"
	templates "github.com/linesmerrill/municipal-services-api/templates/html"
)

// DigestWindow is how far back a digest looks for new reports
const DigestWindow = 24 * time.Hour

// UnassignedDepartment groups reports whose category has no department
const UnassignedDepartment = "General Services"

// Mailer delivers a single email
type Mailer interface {
	Send(ctx context.Context, toEmail, subject, plain, html string) error
}

// SendgridMailer sends mail through the SendGrid v3 API
type SendgridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

// NewSendgridMailer returns a mailer that sends as fromName <fromEmail>
func NewSendgridMailer(apiKey, fromName, fromEmail string) *SendgridMailer {
	return &SendgridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromEmail),
	}
}

// Send delivers one message and treats any non 2xx answer as an error
func (m *SendgridMailer) Send(ctx context.Context, toEmail, subject, plain, html string) error {
	msg := mail.NewSingleEmail(m.from, subject, mail.NewEmail("", toEmail), plain, html)
	resp, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// Scheduler handles periodic background jobs
type Scheduler struct {
	cron             *cron.Cron
	Issues           databases.IssueDatabase
	Mailer           Mailer
	DepartmentEmails map[string]string
	Schedule         string
	Now              func() time.Time
}

// NewScheduler creates a new scheduler instance
func NewScheduler(issues databases.IssueDatabase, mailer Mailer, departmentEmails map[string]string, schedule string) *Scheduler {
	return &Scheduler{
		cron:             cron.New(cron.WithLocation(time.UTC)),
		Issues:           issues,
		Mailer:           mailer,
		DepartmentEmails: departmentEmails,
		Schedule:         schedule,
		Now:              time.Now,
	}
}

// Start registers the digest job and begins the scheduler
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.Schedule, s.runDigest)
	if err != nil {
		zap.S().Errorw("failed to register department digest job", "schedule", s.Schedule, "error", err)
		return err
	}

	s.cron.Start()
	zap.S().Infow("department digest scheduler started", "schedule", s.Schedule)
	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("department digest scheduler stopped")
}

func (s *Scheduler) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	sent, err := s.SendDigests(ctx)
	if err != nil {
		zap.S().Errorw("department digest failed", "error", err)
		return
	}
	zap.S().Infow("department digest complete", "emailsSent", sent)
}

// SendDigests mails every department with a configured address the reports
// submitted to it within DigestWindow, or a short notice when there were
// none. It returns the number of emails sent. A failed send is logged and
// does not stop the other departments.
func (s *Scheduler) SendDigests(ctx context.Context) (int, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	since := now.Add(-DigestWindow)

	recent, err := s.Issues.Find(ctx, func(i *models.IssueReport) bool {
		return !i.SubmittedAt.Before(since) && !i.SubmittedAt.After(now)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to find recent issues: %w", err)
	}

	byDepartment := GroupByDepartment(recent)
	departments := make([]string, 0, len(byDepartment)+len(s.DepartmentEmails))
	for department := range byDepartment {
		departments = append(departments, department)
	}
	for department := range s.DepartmentEmails {
		if _, ok := byDepartment[department]; !ok {
			departments = append(departments, department)
		}
	}
	sort.Strings(departments)

	sent := 0
	for _, department := range departments {
		to, ok := s.DepartmentEmails[department]
		if !ok || to == "" {
			zap.S().Debugw("no digest address for department", "department", department)
			continue
		}

		subject, plain, html := digestMessage(department, byDepartment[department])
		if err := s.Mailer.Send(ctx, to, subject, plain, html); err != nil {
			zap.S().Errorw("failed to send department digest", "department", department, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}

// GroupByDepartment buckets reports by the department responsible for their
// category, keeping submission order inside each bucket
func GroupByDepartment(issues []*models.IssueReport) map[string][]*models.IssueReport {
	grouped := make(map[string][]*models.IssueReport)
	for _, issue := range issues {
		department := issue.Category.GetResponsibleDepartment()
		if department == "" {
			department = UnassignedDepartment
		}
		grouped[department] = append(grouped[department], issue)
	}
	return grouped
}

func digestMessage(department string, issues []*models.IssueReport) (subject, plain, html string) {
	if len(issues) == 0 {
		subject = "No new issue reports for " + department
		plain = fmt.Sprintf("No new issue reports were submitted to %s in the last 24 hours.", department)
		return subject, plain, templates.RenderGenericEmail(subject, plain)
	}

	items := digestItems(issues)
	subject = fmt.Sprintf("%d new issue report(s) for %s", len(items), department)
	return subject, templates.RenderDigestText(department, items), templates.RenderDigestEmail(department, items)
}

func digestItems(issues []*models.IssueReport) []templates.DigestItem {
	items := make([]templates.DigestItem, 0, len(issues))
	for _, issue := range issues {
		items = append(items, templates.DigestItem{
			ReferenceID: issue.ReferenceID(),
			Category:    issue.Category.GetName(),
			Location:    issue.Location.String(),
			Description: issue.Description,
			Priority:    issue.PriorityText(),
			SubmittedAt: issue.SubmittedAt.Format(models.SummaryTimeLayout),
		})
	}
	return items
}
