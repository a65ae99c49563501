package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jcallister/backdesk/pkg/sqlstore"
)

// HandleDeleteUser handles DELETE requests to remove a user. Activity
// rows written by the user are preserved with their user reference
// cleared.
func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	log.Printf("INFO: handleDeleteUser called for user '%s'", userID)

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, sqlstore.ErrNotFound) {
			WriteJSONError(w, http.StatusNotFound, "USER_NOT_FOUND", fmt.Sprintf("User with id %s not found", userID))
			return
		}
		log.Printf("ERROR: Get user '%s' failed: %v", userID, err)
		WriteJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete user")
		return
	}

	if err := h.users.Delete(r.Context(), userID); err != nil {
		log.Printf("ERROR: Delete user '%s' failed: %v", userID, err)
		WriteJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete user")
		return
	}

	h.logActivity(r.Context(), r, "user_deleted", fmt.Sprintf("Deleted user: %s", user.FieldString("email")))

	log.Printf("INFO: Deleted user '%s'", userID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User deleted successfully",
	})
}
