// Package server wires the stores, the API handlers and the router into
// one runnable unit.
package server

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/jcallister/backdesk/pkg/api"
	"github.com/jcallister/backdesk/pkg/config"
	"github.com/jcallister/backdesk/pkg/docstore"
	"github.com/jcallister/backdesk/pkg/indexes"
	"github.com/jcallister/backdesk/pkg/sqlstore"
)

// Server holds references to the stores, the router and the handlers.
type Server struct {
	router *mux.Router
	db     *sql.DB
	docs   *docstore.Store
}

// NewServer opens the relational store, prepares the document store and
// registers all routes. The remote index API is only wired when a
// Firestore project is configured; without one the provisioning endpoint
// reports itself disabled instead of failing requests halfway through.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := sqlstore.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	docs := docstore.NewStore(docstore.WithDataFile(cfg.DocStore.DataFile))
	users := sqlstore.NewUserStore(db)
	activity := sqlstore.NewActivityLog(db)

	var remote indexes.RemoteIndexAPI
	if cfg.Firestore.ProjectID != "" {
		options := []indexes.AdminClientOption{
			indexes.WithDatabase(cfg.Firestore.DatabaseID),
		}
		if cfg.Firestore.Endpoint != "" {
			options = append(options, indexes.WithEndpoint(cfg.Firestore.Endpoint))
		}
		if token := config.FirestoreToken(); token != "" {
			options = append(options, indexes.WithToken(token))
		}
		remote = indexes.NewAdminClient(cfg.Firestore.ProjectID, options...)
	} else {
		log.Printf("WARN: No Firestore project configured, index provisioning is disabled")
	}

	handler := api.NewHandler(users, docs, activity, api.IndexConfig{
		FilePath:   cfg.Firestore.IndexesFile,
		ProjectID:  cfg.Firestore.ProjectID,
		DatabaseID: cfg.Firestore.DatabaseID,
	}, remote)

	s := &Server{
		router: mux.NewRouter(),
		db:     db,
		docs:   docs,
	}

	handler.RegisterRoutes(s.router)

	// Use the logging middleware for all routes
	s.router.Use(requestLoggerMiddleware)

	// Customize NotFoundHandler to log 404s
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("WARN: No route found for %s %s", r.Method, r.URL.Path)
		http.NotFound(w, r)
	})

	return s, nil
}

// requestLoggerMiddleware logs the method, URL path, and duration for each request.
func requestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		elapsed := time.Since(start)
		log.Printf("INFO: Request %s %s took %s", r.Method, r.URL.Path, elapsed)
	})
}

// LoadDocs restores the document store from its snapshot file, if one
// exists.
func (s *Server) LoadDocs() {
	if err := s.docs.Load(); err != nil {
		log.Printf("ERROR: Could not load document store snapshot: %v", err)
	} else {
		log.Printf("INFO: Document store snapshot loaded")
	}
}

// SaveDocs persists the document store to its snapshot file.
func (s *Server) SaveDocs() {
	if err := s.docs.Save(); err != nil {
		log.Printf("ERROR: Could not save document store snapshot: %v", err)
	} else {
		log.Printf("INFO: Document store snapshot saved")
	}
}

// Router exposes the internal mux.Router.
func (s *Server) Router() http.Handler {
	return s.router
}

// Close releases the relational store.
func (s *Server) Close() error {
	return s.db.Close()
}
