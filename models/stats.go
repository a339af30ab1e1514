package models

// EngagementStats feeds the citizen participation progress bar
type EngagementStats struct {
	TotalReports       int    `json:"totalReports"`
	ProgressPercentage int    `json:"progressPercentage"`
	Message            string `json:"message"`
}

// AttachmentListing is the attachments of one report with their combined size
type AttachmentListing struct {
	IssueID       int                `json:"issueId"`
	Attachments   []*MediaAttachment `json:"attachments"`
	Count         int                `json:"count"`
	TotalSize     int64              `json:"totalSize"`
	TotalSizeText string             `json:"totalSizeText"`
}

// IssueListResponse is returned by the list-all endpoint
type IssueListResponse struct {
	Issues     []*IssueReport `json:"issues"`
	TotalCount int            `json:"totalCount"`
}

// SubmitIssueResponse confirms an accepted report
type SubmitIssueResponse struct {
	IssueID     int    `json:"issueId"`
	ReferenceID string `json:"referenceId"`
	Message     string `json:"message"`
}
