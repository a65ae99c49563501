package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jcallister/backdesk/pkg/sqlstore"
)

// HandleGetUser handles GET requests to retrieve a specific user by ID.
func (h *Handler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	log.Printf("INFO: handleGetUser called for user '%s'", userID)

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, sqlstore.ErrNotFound) {
			WriteJSONError(w, http.StatusNotFound, "USER_NOT_FOUND", fmt.Sprintf("User with id %s not found", userID))
			return
		}
		log.Printf("ERROR: Get user '%s' failed: %v", userID, err)
		WriteJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
