package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jcallister/backdesk/pkg/indexes"
)

// loadIndexDefinitions reads the configured index definitions file. The
// file is read per request so edits take effect without a restart.
func (h *Handler) loadIndexDefinitions() ([]indexes.Definition, error) {
	return indexes.LoadFile(h.indexCfg.FilePath)
}

// HandleGetIndexesConfig handles GET requests for the current composite
// index configuration.
func (h *Handler) HandleGetIndexesConfig(w http.ResponseWriter, r *http.Request) {
	log.Printf("INFO: handleGetIndexesConfig called")

	defs, err := h.loadIndexDefinitions()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			WriteJSONError(w, http.StatusNotFound, "INDEXES_FILE_NOT_FOUND", fmt.Sprintf("Index definitions file not found at %s", h.indexCfg.FilePath))
			return
		}
		log.Printf("ERROR: Loading index definitions failed: %v", err)
		WriteJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load indexes configuration")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"indexes": defs,
		"total":   len(defs),
	})
}
