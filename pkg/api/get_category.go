package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jcallister/backdesk/pkg/docstore"
)

// HandleGetCategory handles GET requests to retrieve a specific file
// category by ID.
func (h *Handler) HandleGetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["id"]

	log.Printf("INFO: handleGetCategory called for category '%s'", categoryID)

	category, err := h.categories.GetByID(CategoryCollection, categoryID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			WriteJSONError(w, http.StatusNotFound, "CATEGORY_NOT_FOUND", fmt.Sprintf("File category with id %s not found", categoryID))
			return
		}
		log.Printf("ERROR: Get category '%s' failed: %v", categoryID, err)
		WriteJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load file category")
		return
	}

	writeJSON(w, http.StatusOK, category)
}
