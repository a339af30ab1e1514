// Package docs Municipal Services API.
//
// Documentation of the Municipal Services issue reporting API.
//
//     Schemes: https, http
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//     - multipart/form-data
//
//     Produces:
//     - application/json
//
// swagger:meta
package docs

import (
	"github.com/linesmerrill/municipal-services-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route GET /api/v1/categories categories activeCategories
// Lists the active issue categories, optionally filtered by ?department=.
// responses:
//   200: categoriesResponse

// swagger:response categoriesResponse
type categoriesResponseWrapper struct {
	// in:body
	Body []models.IssueCategory
}

// swagger:route POST /api/v1/issues issues submitIssue
// Submits a new issue report as multipart/form-data with optional "attachments" files.
// responses:
//   201: submitIssueResponse
//   400: validationErrorResponse
//   429: description: too many submissions from this client

// swagger:response submitIssueResponse
type submitIssueResponseWrapper struct {
	// in:body
	Body models.SubmitIssueResponse
}

// The report was rejected. The draft is echoed back with a message per field.
// swagger:response validationErrorResponse
type validationErrorResponseWrapper struct {
	// in:body
	Body models.ValidationErrorResponse
}

// swagger:route GET /api/v1/issues issues listIssues
// Lists every issue report in submission order.
// responses:
//   200: issueListResponse

// swagger:response issueListResponse
type issueListResponseWrapper struct {
	// in:body
	Body models.IssueListResponse
}

// swagger:route GET /api/v1/issues/{issue_id} issues issueByID
// Gets a single issue report by ID.
// responses:
//   200: issueResponse
//   404: errorResponse

// swagger:response issueResponse
type issueResponseWrapper struct {
	// in:body
	Body models.IssueReport
}

// swagger:route GET /api/v1/issues/category/{category_id} issues issuesByCategory
// Lists summaries of the issue reports in a category.
// responses:
//   200: issueSummariesResponse
//   404: errorResponse

// swagger:response issueSummariesResponse
type issueSummariesResponseWrapper struct {
	// in:body
	Body []models.IssueSummary
}

// swagger:route GET /api/v1/issues/{issue_id}/attachments issues issueAttachments
// Lists the attachments of a report, optionally filtered by ?type=image|document|<extension>.
// responses:
//   200: attachmentListingResponse
//   404: errorResponse

// swagger:response attachmentListingResponse
type attachmentListingResponseWrapper struct {
	// in:body
	Body models.AttachmentListing
}

// swagger:route GET /api/v1/stats/engagement stats engagementStats
// Shows citizen participation progress.
// responses:
//   200: engagementStatsResponse

// swagger:response engagementStatsResponse
type engagementStatsResponseWrapper struct {
	// in:body
	Body models.EngagementStats
}

// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}
