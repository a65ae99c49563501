package docstore

import (
	"context"

	"github.com/jcallister/backdesk/pkg/domain"
)

// collectionAdapter exposes one collection as a scan-only store adapter.
// It reports no native capabilities, so the query engine performs every
// stage itself over the full record set.
type collectionAdapter struct {
	store        *Store
	collection   string
	searchFields []string
}

// Adapter returns a domain.StoreAdapter view of one collection. The given
// fields are the ones free-text search matches against.
func (s *Store) Adapter(collection string, searchFields ...string) domain.StoreAdapter {
	return &collectionAdapter{
		store:        s,
		collection:   collection,
		searchFields: searchFields,
	}
}

func (a *collectionAdapter) FetchAll(ctx context.Context) ([]domain.Record, error) {
	return a.store.FetchAll(a.collection), nil
}

// Query ignores the spec: a scan store always returns its full,
// unfiltered record set.
func (a *collectionAdapter) Query(ctx context.Context, spec domain.QuerySpec) ([]domain.Record, error) {
	return a.FetchAll(ctx)
}

func (a *collectionAdapter) SupportsNative(op domain.Operation) bool {
	return false
}

func (a *collectionAdapter) SearchFields() []string {
	return a.searchFields
}
