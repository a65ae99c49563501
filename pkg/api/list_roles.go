package api

import (
	"net/http"
)

// RoleOption is one selectable user role.
type RoleOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// HandleListRoles handles GET requests for the available user roles.
func (h *Handler) HandleListRoles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"roles": []RoleOption{
			{Value: "user", Label: "User"},
			{Value: "admin", Label: "Admin"},
			{Value: "superadmin", Label: "Super Admin"},
		},
	})
}
