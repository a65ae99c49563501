package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jcallister/backdesk/pkg/indexes"
)

// HandleValidateIndexes handles GET requests to validate the index
// definitions file. Structural problems come back as data so the caller
// sees every issue at once; an invalid configuration is a 400.
func (h *Handler) HandleValidateIndexes(w http.ResponseWriter, r *http.Request) {
	log.Printf("INFO: handleValidateIndexes called")

	defs, err := h.loadIndexDefinitions()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			WriteJSONError(w, http.StatusNotFound, "INDEXES_FILE_NOT_FOUND", fmt.Sprintf("Index definitions file not found at %s", h.indexCfg.FilePath))
			return
		}
		log.Printf("ERROR: Loading index definitions failed: %v", err)
		WriteJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to validate indexes")
		return
	}

	report := indexes.Validate(defs)

	status := "valid"
	message := "Configuration is valid"
	statusCode := http.StatusOK
	if !report.IsValid() {
		status = "invalid"
		message = fmt.Sprintf("Found %d error(s)", len(report.Errors))
		statusCode = http.StatusBadRequest
	}

	writeJSON(w, statusCode, map[string]interface{}{
		"status":        status,
		"total_indexes": len(defs),
		"errors":        report.Errors,
		"warnings":      report.Warnings,
		"message":       message,
	})
}
