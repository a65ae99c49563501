package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jcallister/backdesk/pkg/domain"
)

// CreateCategoryRequest is the body of POST /api/file-categories.
type CreateCategoryRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (req *CreateCategoryRequest) validate() error {
	if strings.TrimSpace(req.Code) == "" {
		return fmt.Errorf("'code' is required")
	}
	if len(req.Code) > 50 {
		return fmt.Errorf("'code' must be at most 50 characters")
	}
	if len(req.Name) > 100 {
		return fmt.Errorf("'name' must be at most 100 characters")
	}
	if req.Status != "" && req.Status != "active" && req.Status != "inactive" {
		return fmt.Errorf("'status' must be 'active' or 'inactive'")
	}
	return nil
}

// HandleCreateCategory handles POST requests to create a file category.
// Codes are normalized to upper case before the uniqueness check.
func (h *Handler) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	log.Printf("INFO: handleCreateCategory called")

	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	if h.categories.FieldExists(CategoryCollection, "code", code, "") {
		WriteJSONError(w, http.StatusConflict, "CATEGORY_EXISTS", "A file category with this code already exists")
		return
	}

	name := req.Name
	if name == "" {
		name = code
	}
	status := req.Status
	if status == "" {
		status = "active"
	}

	category, err := h.categories.Insert(CategoryCollection, domain.Record{
		"code":        code,
		"name":        name,
		"description": req.Description,
		"status":      status,
	})
	if err != nil {
		log.Printf("ERROR: Create category failed: %v", err)
		WriteJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create file category")
		return
	}

	h.logActivity(r.Context(), r, "file_category_created", fmt.Sprintf("Created file category: %s", code))

	log.Printf("INFO: Created file category '%s'", code)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":       "File category created successfully",
		"file_category": category,
	})
}
