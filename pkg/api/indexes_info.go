package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jcallister/backdesk/pkg/indexes"
)

// CollectionIndexes is the per-collection grouping of index definitions
// in the info response.
type CollectionIndexes struct {
	Fields     []indexes.Field    `json:"fields"`
	QueryScope indexes.QueryScope `json:"queryScope"`
}

// HandleIndexesInfo handles GET requests for the remote project identity
// and a per-collection summary of the configured indexes.
func (h *Handler) HandleIndexesInfo(w http.ResponseWriter, r *http.Request) {
	log.Printf("INFO: handleIndexesInfo called")

	defs, err := h.loadIndexDefinitions()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			WriteJSONError(w, http.StatusNotFound, "INDEXES_FILE_NOT_FOUND", fmt.Sprintf("Index definitions file not found at %s", h.indexCfg.FilePath))
			return
		}
		log.Printf("ERROR: Loading index definitions failed: %v", err)
		WriteJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get indexes info")
		return
	}

	collections := make(map[string][]CollectionIndexes)
	for _, def := range defs {
		name := def.CollectionGroup
		if name == "" {
			name = "unknown"
		}
		scope := def.QueryScope
		if scope == "" {
			scope = indexes.ScopeCollection
		}
		collections[name] = append(collections[name], CollectionIndexes{
			Fields:     def.Fields,
			QueryScope: scope,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"project_id":    h.indexCfg.ProjectID,
		"database_name": h.indexCfg.DatabaseID,
		"total_indexes": len(defs),
		"collections":   collections,
		"indexes_file":  filepath.Base(h.indexCfg.FilePath),
	})
}
