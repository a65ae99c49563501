package domain

import "context"

// Operation identifies one query stage a store may support natively.
type Operation string

const (
	OpSearch Operation = "search"
	OpFilter Operation = "filter"
	OpSort   Operation = "sort"
)

// StoreAdapter executes a QuerySpec against one record source. A capable
// backend applies the stages it supports natively inside Query; a
// scan-only backend returns its full record set and lets the engine do
// the rest. The engine branches on SupportsNative, never on the concrete
// adapter type.
type StoreAdapter interface {
	// FetchAll returns every record in the backing collection.
	FetchAll(ctx context.Context) ([]Record, error)

	// Query returns records with all natively supported stages of the
	// spec already applied. Pagination is never applied here; that is
	// always the engine's job.
	Query(ctx context.Context, spec QuerySpec) ([]Record, error)

	// SupportsNative reports whether the backend performs the given
	// operation itself.
	SupportsNative(op Operation) bool

	// SearchFields lists the fields the free-text search matches against.
	SearchFields() []string
}
