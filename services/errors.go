package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/linesmerrill/municipal-services-api/models"
)

var (
	// ErrIssueNotFound is returned when no report has the requested id
	ErrIssueNotFound = errors.New("issue not found")
	// ErrCategoryNotFound is returned when no category has the requested id
	ErrCategoryNotFound = errors.New("category not found")
)

// ValidationMessage is shown to the citizen when a report is rejected
const ValidationMessage = "Please correct the errors below and try again."

// ValidationError rejects a draft report. Draft is the report exactly as it
// was submitted so it can be shown again.
type ValidationError struct {
	Draft   models.IssueReport
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}
