package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jcallister/backdesk/pkg/indexes"
)

// HandleCreateIndexes handles POST requests to provision every configured
// composite index against the remote Admin API. The run is idempotent per
// item; partial failure yields a 207 Multi-Status with per-item outcomes.
func (h *Handler) HandleCreateIndexes(w http.ResponseWriter, r *http.Request) {
	log.Printf("INFO: handleCreateIndexes called")

	if h.remote == nil {
		WriteJSONError(w, http.StatusServiceUnavailable, "PROVISIONING_DISABLED", "No remote index API is configured")
		return
	}

	defs, err := h.loadIndexDefinitions()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			WriteJSONError(w, http.StatusNotFound, "INDEXES_FILE_NOT_FOUND", fmt.Sprintf("Index definitions file not found at %s", h.indexCfg.FilePath))
			return
		}
		log.Printf("ERROR: Loading index definitions failed: %v", err)
		WriteJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read index definitions")
		return
	}

	if len(defs) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "Info",
			"message": "No composite indexes defined.",
		})
		return
	}

	outcomes, hasErrors := indexes.Provision(r.Context(), defs, h.remote)

	status := "Completed"
	statusCode := http.StatusOK
	if hasErrors {
		status = "Completed with Errors/Skips"
		statusCode = http.StatusMultiStatus
	}

	writeJSON(w, statusCode, map[string]interface{}{
		"status":  status,
		"message": "Index creation process finished. Check details.",
		"results": outcomes,
	})
}
