package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/municipal-services-api/config"
	"github.com/linesmerrill/municipal-services-api/models"
	"github.com/linesmerrill/municipal-services-api/services"
)

const defaultMaxUploadBytes = 32 << 20

// Issue exported for testing purposes
type Issue struct {
	Service        *services.IssueService
	MaxUploadBytes int64
}

// SubmitIssueHandler accepts a report as a multipart form with optional
// "attachments" files
func (i Issue) SubmitIssueHandler(w http.ResponseWriter, r *http.Request) {
	maxBytes := i.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	err := r.ParseMultipartForm(maxBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		config.ErrorStatus("failed to parse form", http.StatusBadRequest, w, err)
		return
	}

	draft := draftFromForm(r)
	var files []services.FileUpload
	if r.MultipartForm != nil {
		files = uploadsFromForm(r.MultipartForm.File["attachments"])
	}

	issueID, err := i.Service.SubmitIssue(r.Context(), draft, files)
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, models.ValidationErrorResponse{
			Message: verr.Message,
			Fields:  verr.Fields,
			Draft:   verr.Draft,
		})
		return
	}
	if err != nil {
		config.ErrorStatus("An error occurred while submitting your report. Please try again.", http.StatusInternalServerError, w, err)
		return
	}

	referenceID := models.FormatReferenceID(issueID)
	writeJSON(w, http.StatusCreated, models.SubmitIssueResponse{
		IssueID:     issueID,
		ReferenceID: referenceID,
		Message:     "Your issue has been successfully submitted! Reference ID: " + referenceID,
	})
}

func draftFromForm(r *http.Request) models.IssueReport {
	draft := models.NewIssueReport()
	draft.Location = models.Location{
		Address:    strings.TrimSpace(r.FormValue("address")),
		Area:       strings.TrimSpace(r.FormValue("area")),
		City:       strings.TrimSpace(r.FormValue("city")),
		PostalCode: strings.TrimSpace(r.FormValue("postalCode")),
	}
	draft.Description = strings.TrimSpace(r.FormValue("description"))
	draft.CategoryID, _ = strconv.Atoi(r.FormValue("categoryId"))
	if p, err := strconv.Atoi(r.FormValue("priority")); err == nil {
		draft.Priority = p
	}
	return draft
}

func uploadsFromForm(headers []*multipart.FileHeader) []services.FileUpload {
	files := make([]services.FileUpload, 0, len(headers))
	for _, fh := range headers {
		fh := fh
		files = append(files, services.FileUpload{
			FileName:    fh.Filename,
			ContentType: contentType(fh),
			Size:        fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return files
}

// contentType trusts the client's Content-Type unless it is missing or
// generic, in which case the bytes are sniffed
func contentType(fh *multipart.FileHeader) string {
	declared := fh.Header.Get("Content-Type")
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	f, err := fh.Open()
	if err != nil {
		return "application/octet-stream"
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		zap.S().Debugw("failed to detect attachment type", "fileName", fh.Filename, "error", err)
		return "application/octet-stream"
	}
	return mt.String()
}

// IssuesHandler returns every report with the total count
func (i Issue) IssuesHandler(w http.ResponseWriter, r *http.Request) {
	issues, total, err := i.Service.ListAllIssues(r.Context())
	if err != nil {
		config.ErrorStatus("failed to get issues", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.IssueListResponse{Issues: issues, TotalCount: total})
}

// IssueByIDHandler returns a report by id
func (i Issue) IssueByIDHandler(w http.ResponseWriter, r *http.Request) {
	issueID, err := strconv.Atoi(mux.Vars(r)["issue_id"])
	if err != nil {
		config.ErrorStatus("failed to parse issue id", http.StatusBadRequest, w, err)
		return
	}

	issue, err := i.Service.FindIssueByID(r.Context(), issueID)
	if errors.Is(err, services.ErrIssueNotFound) {
		config.ErrorStatus("Issue with ID "+strconv.Itoa(issueID)+" not found.", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to get issue by ID", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, issue)
}

// IssuesByCategoryHandler returns list projections of the reports in a category
func (i Issue) IssuesByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.Atoi(mux.Vars(r)["category_id"])
	if err != nil {
		config.ErrorStatus("failed to parse category id", http.StatusBadRequest, w, err)
		return
	}

	summaries, err := i.Service.GetIssuesByCategory(r.Context(), categoryID)
	if errors.Is(err, services.ErrCategoryNotFound) {
		config.ErrorStatus("Category with ID "+strconv.Itoa(categoryID)+" not found.", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("An error occurred while retrieving issues.", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// IssueAttachmentsHandler lists the attachments of a report, optionally
// narrowed by ?type=image|document|<extension>
func (i Issue) IssueAttachmentsHandler(w http.ResponseWriter, r *http.Request) {
	issueID, err := strconv.Atoi(mux.Vars(r)["issue_id"])
	if err != nil {
		config.ErrorStatus("failed to parse issue id", http.StatusBadRequest, w, err)
		return
	}

	listing, err := i.Service.IssueAttachments(r.Context(), issueID, r.URL.Query().Get("type"))
	if errors.Is(err, services.ErrIssueNotFound) {
		config.ErrorStatus("Issue with ID "+strconv.Itoa(issueID)+" not found.", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to get attachments", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// EngagementStatsHandler returns the participation progress numbers
func (i Issue) EngagementStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := i.Service.EngagementStats(r.Context())
	if err != nil {
		config.ErrorStatus("Unable to load engagement statistics", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
