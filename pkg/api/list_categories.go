package api

import (
	"log"
	"net/http"

	"github.com/jcallister/backdesk/pkg/domain"
	"github.com/jcallister/backdesk/pkg/engine"
)

// CategoryCollection is the document-store collection file categories
// live in.
const CategoryCollection = "file_categories"

// categorySearchFields are the fields substring search runs over.
var categorySearchFields = []string{"code", "name", "description"}

// HandleListCategories handles GET requests to list file categories with
// search, filtering, sorting and pagination. The document store has no
// native query support, so every stage runs in the engine.
func (h *Handler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	log.Printf("INFO: handleListCategories called")

	spec, err := parseQuerySpec(r, "code", domain.SortAsc, "status")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	adapter := h.categories.Adapter(CategoryCollection, categorySearchFields...)
	page, err := engine.Execute(r.Context(), spec, adapter)
	if err != nil {
		writeQueryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"file_categories": page.Items,
		"pagination":      paginationInfo(page),
	})
}
