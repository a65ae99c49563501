package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jcallister/backdesk/pkg/sqlstore"
)

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

func (req *CreateUserRequest) validate() error {
	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("'email' is required")
	}
	if !strings.Contains(req.Email, "@") {
		return fmt.Errorf("'email' must be a valid email address")
	}
	if req.Role != "" && req.Role != "user" && req.Role != "admin" && req.Role != "superadmin" {
		return fmt.Errorf("'role' must be one of: user, admin, superadmin")
	}
	if req.Status != "" && req.Status != "active" && req.Status != "inactive" {
		return fmt.Errorf("'status' must be 'active' or 'inactive'")
	}
	return nil
}

// HandleCreateUser handles POST requests to create a user.
func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	log.Printf("INFO: handleCreateUser called")

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	exists, err := h.users.EmailExists(r.Context(), req.Email, "")
	if err != nil {
		log.Printf("ERROR: Email lookup failed: %v", err)
		WriteJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create user")
		return
	}
	if exists {
		WriteJSONError(w, http.StatusConflict, "EMAIL_EXISTS", "A user with this email already exists")
		return
	}

	user, err := h.users.Create(r.Context(), sqlstore.UserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Status:    req.Status,
	})
	if err != nil {
		log.Printf("ERROR: Create user failed: %v", err)
		WriteJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create user")
		return
	}

	h.logActivity(r.Context(), r, "user_created", fmt.Sprintf("Created user: %s", req.Email))

	log.Printf("INFO: Created user '%s'", user.ID())
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user":    user,
	})
}
