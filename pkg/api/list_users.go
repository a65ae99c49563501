package api

import (
	"log"
	"net/http"

	"github.com/jcallister/backdesk/pkg/domain"
	"github.com/jcallister/backdesk/pkg/engine"
)

// PaginationInfo is the pagination block every list endpoint returns
// alongside its items.
type PaginationInfo struct {
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

func paginationInfo(page *domain.ResultPage) PaginationInfo {
	return PaginationInfo{
		Page:    page.Page,
		PerPage: page.PerPage,
		Total:   page.Total,
		Pages:   page.Pages,
		HasNext: page.HasNext,
		HasPrev: page.HasPrev,
	}
}

// HandleListUsers handles GET requests to list users with search,
// filtering, sorting and pagination.
func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	log.Printf("INFO: handleListUsers called")

	spec, err := parseQuerySpec(r, "created_date", domain.SortDesc, "role", "status")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	page, err := engine.Execute(r.Context(), spec, h.users.Adapter())
	if err != nil {
		writeQueryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"users":      page.Items,
		"pagination": paginationInfo(page),
	})
}
