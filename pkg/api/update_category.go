package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/jcallister/backdesk/pkg/docstore"
	"github.com/jcallister/backdesk/pkg/domain"
)

// UpdateCategoryRequest is the body of PUT /api/file-categories/{id}.
// Absent fields are left untouched.
type UpdateCategoryRequest struct {
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (req *UpdateCategoryRequest) validate() error {
	if req.Code == nil && req.Name == nil && req.Description == nil && req.Status == nil {
		return fmt.Errorf("at least one field must be provided for update")
	}
	if req.Code != nil && strings.TrimSpace(*req.Code) == "" {
		return fmt.Errorf("'code' must not be empty")
	}
	if req.Status != nil && *req.Status != "active" && *req.Status != "inactive" {
		return fmt.Errorf("'status' must be 'active' or 'inactive'")
	}
	return nil
}

// HandleUpdateCategory handles PUT requests to update a file category.
func (h *Handler) HandleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["id"]

	log.Printf("INFO: handleUpdateCategory called for category '%s'", categoryID)

	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	updates := domain.Record{}
	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		if h.categories.FieldExists(CategoryCollection, "code", code, categoryID) {
			WriteJSONError(w, http.StatusConflict, "CATEGORY_EXISTS", "A file category with this code already exists")
			return
		}
		updates["code"] = code
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	category, err := h.categories.UpdateByID(CategoryCollection, categoryID, updates)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			WriteJSONError(w, http.StatusNotFound, "CATEGORY_NOT_FOUND", fmt.Sprintf("File category with id %s not found", categoryID))
			return
		}
		log.Printf("ERROR: Update category '%s' failed: %v", categoryID, err)
		WriteJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update file category")
		return
	}

	h.logActivity(r.Context(), r, "file_category_updated", fmt.Sprintf("Updated file category: %s", category.FieldString("code")))

	log.Printf("INFO: Updated file category '%s'", categoryID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "File category updated successfully",
		"file_category": category,
	})
}
