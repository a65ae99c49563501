package api

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API routes with the given router
func (h *Handler) RegisterRoutes(router *mux.Router) {
	// User administration (relational store)
	router.HandleFunc("/api/users", h.HandleListUsers).Methods("GET")
	router.HandleFunc("/api/users", h.HandleCreateUser).Methods("POST")
	router.HandleFunc("/api/users/roles", h.HandleListRoles).Methods("GET")
	router.HandleFunc("/api/users/{id}", h.HandleGetUser).Methods("GET")
	router.HandleFunc("/api/users/{id}", h.HandleUpdateUser).Methods("PUT")
	router.HandleFunc("/api/users/{id}", h.HandleDeleteUser).Methods("DELETE")

	// File categories (document store)
	router.HandleFunc("/api/file-categories", h.HandleListCategories).Methods("GET")
	router.HandleFunc("/api/file-categories", h.HandleCreateCategory).Methods("POST")
	router.HandleFunc("/api/file-categories/{id}", h.HandleGetCategory).Methods("GET")
	router.HandleFunc("/api/file-categories/{id}", h.HandleUpdateCategory).Methods("PUT")
	router.HandleFunc("/api/file-categories/{id}", h.HandleDeleteCategory).Methods("DELETE")

	// Firestore composite index management
	router.HandleFunc("/api/firestore/indexes", h.HandleGetIndexesConfig).Methods("GET")
	router.HandleFunc("/api/firestore/indexes/validate", h.HandleValidateIndexes).Methods("GET")
	router.HandleFunc("/api/firestore/indexes/create", h.HandleCreateIndexes).Methods("POST")
	router.HandleFunc("/api/firestore/indexes/info", h.HandleIndexesInfo).Methods("GET")

	// Health check
	router.HandleFunc("/health", h.HandleHealth).Methods("GET")
}
