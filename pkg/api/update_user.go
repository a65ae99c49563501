package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/jcallister/backdesk/pkg/sqlstore"
)

// UpdateUserRequest is the body of PUT /api/users/{id}. Absent fields are
// left untouched.
type UpdateUserRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role"`
	Status    *string `json:"status"`
}

func (req *UpdateUserRequest) validate() error {
	if req.Email == nil && req.FirstName == nil && req.LastName == nil && req.Role == nil && req.Status == nil {
		return fmt.Errorf("at least one field must be provided for update")
	}
	if req.Email != nil && !strings.Contains(*req.Email, "@") {
		return fmt.Errorf("'email' must be a valid email address")
	}
	if req.Role != nil && *req.Role != "user" && *req.Role != "admin" && *req.Role != "superadmin" {
		return fmt.Errorf("'role' must be one of: user, admin, superadmin")
	}
	if req.Status != nil && *req.Status != "active" && *req.Status != "inactive" {
		return fmt.Errorf("'status' must be 'active' or 'inactive'")
	}
	return nil
}

// HandleUpdateUser handles PUT requests to update a user.
func (h *Handler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	log.Printf("INFO: handleUpdateUser called for user '%s'", userID)

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if req.Email != nil {
		exists, err := h.users.EmailExists(r.Context(), *req.Email, userID)
		if err != nil {
			log.Printf("ERROR: Email lookup failed: %v", err)
			WriteJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update user")
			return
		}
		if exists {
			WriteJSONError(w, http.StatusConflict, "EMAIL_EXISTS", "A user with this email already exists")
			return
		}
	}

	user, err := h.users.Update(r.Context(), userID, sqlstore.UserUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Status:    req.Status,
	})
	if err != nil {
		if errors.Is(err, sqlstore.ErrNotFound) {
			WriteJSONError(w, http.StatusNotFound, "USER_NOT_FOUND", fmt.Sprintf("User with id %s not found", userID))
			return
		}
		log.Printf("ERROR: Update user '%s' failed: %v", userID, err)
		WriteJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update user")
		return
	}

	h.logActivity(r.Context(), r, "user_updated", fmt.Sprintf("Updated user: %s", user.FieldString("email")))

	log.Printf("INFO: Updated user '%s'", userID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User updated successfully",
		"user":    user,
	})
}
