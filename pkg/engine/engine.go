// Package engine executes normalized list queries against heterogeneous
// store adapters. A backend that can search, filter and sort natively is
// only asked to do what it supports; every stage the backend cannot do is
// performed here, in memory, in a fixed search -> filter -> sort order.
// Pagination is always computed by the engine so that page boundaries and
// ordering look identical regardless of storage technology.
package engine

import (
	"context"
	"strings"

	"github.com/jcallister/backdesk/pkg/domain"
)

// Execute runs one QuerySpec against a store adapter and produces a single
// ResultPage. It fails with *domain.InvalidSpecError for out-of-bounds
// pagination parameters and propagates *domain.StoreUnavailableError from
// the adapter untouched.
func Execute(ctx context.Context, spec domain.QuerySpec, adapter domain.StoreAdapter) (*domain.ResultPage, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	records, err := adapter.Query(ctx, spec)
	if err != nil {
		return nil, err
	}

	if spec.Search != "" && !adapter.SupportsNative(domain.OpSearch) {
		records = applySearch(records, spec.Search, adapter.SearchFields())
	}
	if len(spec.Filters) > 0 && !adapter.SupportsNative(domain.OpFilter) {
		records = applyFilters(records, spec.Filters)
	}
	if spec.SortField != "" && !adapter.SupportsNative(domain.OpSort) {
		records = applySort(records, spec.SortField, spec.SortDirection)
	}

	return paginate(records, spec), nil
}

// applySearch keeps records where any searchable field contains the term,
// case-insensitively. Non-string field values never match.
func applySearch(records []domain.Record, term string, fields []string) []domain.Record {
	needle := strings.ToLower(term)
	out := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		for _, field := range fields {
			s, ok := rec[field].(string)
			if ok && strings.Contains(strings.ToLower(s), needle) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// applyFilters keeps records matching every filter (AND semantics).
func applyFilters(records []domain.Record, filters map[string]interface{}) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if MatchesFilters(rec, filters) {
			out = append(out, rec)
		}
	}
	return out
}

// paginate slices the filtered set. Total is the size of the set before
// slicing; a page past the end yields an empty item list, not an error.
func paginate(records []domain.Record, spec domain.QuerySpec) *domain.ResultPage {
	total := len(records)
	start := (spec.Page - 1) * spec.PerPage
	end := start + spec.PerPage

	var items []domain.Record
	if start < total {
		if end > total {
			end = total
		}
		items = records[start:end]
	}

	return domain.NewResultPage(items, total, spec.Page, spec.PerPage)
}
