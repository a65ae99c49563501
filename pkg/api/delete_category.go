package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jcallister/backdesk/pkg/docstore"
)

// HandleDeleteCategory handles DELETE requests to remove a file category.
func (h *Handler) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["id"]

	log.Printf("INFO: handleDeleteCategory called for category '%s'", categoryID)

	category, err := h.categories.GetByID(CategoryCollection, categoryID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			WriteJSONError(w, http.StatusNotFound, "CATEGORY_NOT_FOUND", fmt.Sprintf("File category with id %s not found", categoryID))
			return
		}
		log.Printf("ERROR: Get category '%s' failed: %v", categoryID, err)
		WriteJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete file category")
		return
	}

	if err := h.categories.DeleteByID(CategoryCollection, categoryID); err != nil {
		log.Printf("ERROR: Delete category '%s' failed: %v", categoryID, err)
		WriteJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete file category")
		return
	}

	h.logActivity(r.Context(), r, "file_category_deleted", fmt.Sprintf("Deleted file category: %s", category.FieldString("code")))

	log.Printf("INFO: Deleted file category '%s'", categoryID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "File category deleted successfully",
	})
}
