// Package api provides the HTTP handlers for the admin backend: user
// administration backed by the relational store, file-category
// administration backed by the document store, and Firestore composite
// index management. Handlers depend on narrow interfaces so tests can
// inject mocks.
package api

import (
	"context"

	"github.com/jcallister/backdesk/pkg/domain"
	"github.com/jcallister/backdesk/pkg/indexes"
	"github.com/jcallister/backdesk/pkg/sqlstore"
)

// UserStore is the relational user persistence the handlers need.
type UserStore interface {
	Adapter() domain.StoreAdapter
	Create(ctx context.Context, input sqlstore.UserInput) (domain.Record, error)
	GetByID(ctx context.Context, id string) (domain.Record, error)
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
	Update(ctx context.Context, id string, update sqlstore.UserUpdate) (domain.Record, error)
	Delete(ctx context.Context, id string) error
}

// CategoryStore is the document-store surface backing file categories.
type CategoryStore interface {
	Adapter(collection string, searchFields ...string) domain.StoreAdapter
	Insert(collName string, doc domain.Record) (domain.Record, error)
	GetByID(collName, docID string) (domain.Record, error)
	UpdateByID(collName, docID string, updates domain.Record) (domain.Record, error)
	DeleteByID(collName, docID string) error
	FieldExists(collName, field string, value interface{}, excludeID string) bool
}

// IndexConfig locates the declarative index definitions and identifies
// the remote project they are provisioned into.
type IndexConfig struct {
	FilePath   string
	ProjectID  string
	DatabaseID string
}

// Handler provides HTTP handlers for the admin API.
type Handler struct {
	users      UserStore
	categories CategoryStore
	activity   domain.ActivitySink
	indexCfg   IndexConfig
	remote     indexes.RemoteIndexAPI
}

// NewHandler creates a new API handler with dependency injection.
func NewHandler(users UserStore, categories CategoryStore, activity domain.ActivitySink, indexCfg IndexConfig, remote indexes.RemoteIndexAPI) *Handler {
	return &Handler{
		users:      users,
		categories: categories,
		activity:   activity,
		indexCfg:   indexCfg,
		remote:     remote,
	}
}
