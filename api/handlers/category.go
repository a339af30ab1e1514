package handlers

import (
	"net/http"

	"github.com/linesmerrill/municipal-services-api/config"
	"github.com/linesmerrill/municipal-services-api/models"
	"github.com/linesmerrill/municipal-services-api/services"
)

// Category exported for testing purposes
type Category struct {
	Service *services.IssueService
}

// CategoriesHandler returns the active categories, or those of one
// department when ?department= is given
func (c Category) CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	var (
		categories []*models.IssueCategory
		err        error
	)
	if department := r.URL.Query().Get("department"); department != "" {
		categories, err = c.Service.CategoriesByDepartment(r.Context(), department)
	} else {
		categories, err = c.Service.ListActiveCategories(r.Context())
	}
	if err != nil {
		config.ErrorStatus("failed to get categories", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}
