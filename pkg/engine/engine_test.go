package engine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcallister/backdesk/pkg/domain"
)

// scanAdapter fakes a backend that only offers full-collection retrieval.
type scanAdapter struct {
	records      []domain.Record
	searchFields []string
	err          error
}

func (a *scanAdapter) FetchAll(ctx context.Context) ([]domain.Record, error) {
	if a.err != nil {
		return nil, &domain.StoreUnavailableError{Backend: "scan", Err: a.err}
	}
	return a.records, nil
}

func (a *scanAdapter) Query(ctx context.Context, spec domain.QuerySpec) ([]domain.Record, error) {
	return a.FetchAll(ctx)
}

func (a *scanAdapter) SupportsNative(op domain.Operation) bool { return false }

func (a *scanAdapter) SearchFields() []string { return a.searchFields }

// capableAdapter fakes a backend with native search/filter/sort support by
// running the engine's own stages inside Query.
type capableAdapter struct {
	records      []domain.Record
	searchFields []string
}

func (a *capableAdapter) FetchAll(ctx context.Context) ([]domain.Record, error) {
	return a.records, nil
}

func (a *capableAdapter) Query(ctx context.Context, spec domain.QuerySpec) ([]domain.Record, error) {
	records := a.records
	if spec.Search != "" {
		records = applySearch(records, spec.Search, a.searchFields)
	}
	if len(spec.Filters) > 0 {
		records = applyFilters(records, spec.Filters)
	}
	if spec.SortField != "" {
		records = applySort(records, spec.SortField, spec.SortDirection)
	}
	return records, nil
}

func (a *capableAdapter) SupportsNative(op domain.Operation) bool { return true }

func (a *capableAdapter) SearchFields() []string { return a.searchFields }

func specWith(mutate func(*domain.QuerySpec)) domain.QuerySpec {
	spec := domain.QuerySpec{}
	spec.Normalize()
	if mutate != nil {
		mutate(&spec)
	}
	return spec
}

func TestExecute_InvalidSpec(t *testing.T) {
	adapter := &scanAdapter{}

	tests := []struct {
		name string
		spec domain.QuerySpec
	}{
		{name: "zero page", spec: domain.QuerySpec{Page: 0, PerPage: 10, SortDirection: domain.SortAsc}},
		{name: "negative page", spec: domain.QuerySpec{Page: -3, PerPage: 10, SortDirection: domain.SortAsc}},
		{name: "zero per_page", spec: domain.QuerySpec{Page: 1, PerPage: 0, SortDirection: domain.SortAsc}},
		{name: "per_page above max", spec: domain.QuerySpec{Page: 1, PerPage: 101, SortDirection: domain.SortAsc}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Execute(context.Background(), tt.spec, adapter)
			require.Error(t, err)
			var specErr *domain.InvalidSpecError
			assert.ErrorAs(t, err, &specErr)
		})
	}
}

func TestExecute_StoreError(t *testing.T) {
	adapter := &scanAdapter{err: fmt.Errorf("connection refused")}

	_, err := Execute(context.Background(), specWith(nil), adapter)
	require.Error(t, err)
	var storeErr *domain.StoreUnavailableError
	assert.ErrorAs(t, err, &storeErr)
}

func TestExecute_SearchCaseInsensitive(t *testing.T) {
	adapter := &scanAdapter{
		searchFields: []string{"code", "name"},
		records: []domain.Record{
			{"code": "ABC123", "name": "first"},
			{"code": "XYZ", "name": "second"},
			{"code": "xx", "name": "contains abc too"},
		},
	}

	page, err := Execute(context.Background(), specWith(func(s *domain.QuerySpec) {
		s.Search = "abc"
	}), adapter)
	require.NoError(t, err)

	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "ABC123", page.Items[0]["code"])
	assert.Equal(t, "xx", page.Items[1]["code"])
}

func TestExecute_SearchIgnoresNonStringFields(t *testing.T) {
	adapter := &scanAdapter{
		searchFields: []string{"code", "count"},
		records: []domain.Record{
			{"code": "other", "count": 42},
		},
	}

	page, err := Execute(context.Background(), specWith(func(s *domain.QuerySpec) {
		s.Search = "42"
	}), adapter)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Items)
}

func TestExecute_FiltersAndSemantics(t *testing.T) {
	adapter := &scanAdapter{
		records: []domain.Record{
			{"role": "admin", "status": "active"},
			{"role": "admin", "status": "inactive"},
			{"role": "user", "status": "active"},
		},
	}

	page, err := Execute(context.Background(), specWith(func(s *domain.QuerySpec) {
		s.Filters = map[string]interface{}{"role": "admin", "status": "active"}
	}), adapter)
	require.NoError(t, err)

	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "admin", page.Items[0]["role"])
	assert.Equal(t, "active", page.Items[0]["status"])
}

func TestExecute_FilterNumericCoercion(t *testing.T) {
	adapter := &scanAdapter{
		records: []domain.Record{
			{"age": int64(30)},
			{"age": 25},
		},
	}

	page, err := Execute(context.Background(), specWith(func(s *domain.QuerySpec) {
		s.Filters = map[string]interface{}{"age": float64(30)}
	}), adapter)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestExecute_SortStability(t *testing.T) {
	records := []domain.Record{
		{"id": "1", "status": "active"},
		{"id": "2", "status": "active"},
		{"id": "3", "status": "active"},
	}
	adapter := &scanAdapter{records: records}

	for _, dir := range []domain.SortDirection{domain.SortAsc, domain.SortDesc} {
		t.Run(string(dir), func(t *testing.T) {
			page, err := Execute(context.Background(), specWith(func(s *domain.QuerySpec) {
				s.SortField = "status"
				s.SortDirection = dir
			}), adapter)
			require.NoError(t, err)

			// Equal keys keep their relative input order in both directions.
			require.Len(t, page.Items, 3)
			assert.Equal(t, "1", page.Items[0]["id"])
			assert.Equal(t, "2", page.Items[1]["id"])
			assert.Equal(t, "3", page.Items[2]["id"])
		})
	}
}

func TestExecute_SortDescending(t *testing.T) {
	adapter := &scanAdapter{
		records: []domain.Record{
			{"code": "ALPHA"},
			{"code": "CHARLIE"},
			{"code": "BRAVO"},
		},
	}

	page, err := Execute(context.Background(), specWith(func(s *domain.QuerySpec) {
		s.SortField = "code"
		s.SortDirection = domain.SortDesc
	}), adapter)
	require.NoError(t, err)

	require.Len(t, page.Items, 3)
	assert.Equal(t, "CHARLIE", page.Items[0]["code"])
	assert.Equal(t, "BRAVO", page.Items[1]["code"])
	assert.Equal(t, "ALPHA", page.Items[2]["code"])
}

func TestExecute_SortTimestamps(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	adapter := &scanAdapter{
		records: []domain.Record{
			{"code": "MID", "created_date": base},
			{"code": "NEW", "created_date": base.Add(48 * time.Hour)},
			{"code": "MISSING"},
			{"code": "OLD", "created_date": base.Add(-48 * time.Hour)},
		},
	}

	page, err := Execute(context.Background(), specWith(func(s *domain.QuerySpec) {
		s.SortField = "created_date"
	}), adapter)
	require.NoError(t, err)

	require.Len(t, page.Items, 4)
	// Missing timestamp sorts as the epoch, ahead of every real instant.
	assert.Equal(t, "MISSING", page.Items[0]["code"])
	assert.Equal(t, "OLD", page.Items[1]["code"])
	assert.Equal(t, "MID", page.Items[2]["code"])
	assert.Equal(t, "NEW", page.Items[3]["code"])
}

func TestExecute_SortMissingStringField(t *testing.T) {
	adapter := &scanAdapter{
		records: []domain.Record{
			{"id": "1", "name": "zeta"},
			{"id": "2"},
			{"id": "3", "name": "alpha"},
		},
	}

	page, err := Execute(context.Background(), specWith(func(s *domain.QuerySpec) {
		s.SortField = "name"
	}), adapter)
	require.NoError(t, err)

	require.Len(t, page.Items, 3)
	assert.Equal(t, "2", page.Items[0]["id"])
	assert.Equal(t, "3", page.Items[1]["id"])
	assert.Equal(t, "1", page.Items[2]["id"])
}

func TestExecute_PaginationProperties(t *testing.T) {
	var records []domain.Record
	for i := 1; i <= 10; i++ {
		records = append(records, domain.Record{"name": fmt.Sprintf("user%02d", i)})
	}
	adapter := &scanAdapter{records: records}

	tests := []struct {
		name            string
		page            int
		perPage         int
		expectedCount   int
		expectedPages   int
		expectedHasNext bool
		expectedHasPrev bool
	}{
		{name: "first page", page: 1, perPage: 3, expectedCount: 3, expectedPages: 4, expectedHasNext: true, expectedHasPrev: false},
		{name: "middle page", page: 2, perPage: 3, expectedCount: 3, expectedPages: 4, expectedHasNext: true, expectedHasPrev: true},
		{name: "last partial page", page: 4, perPage: 3, expectedCount: 1, expectedPages: 4, expectedHasNext: false, expectedHasPrev: true},
		{name: "beyond end", page: 9, perPage: 3, expectedCount: 0, expectedPages: 4, expectedHasNext: false, expectedHasPrev: true},
		{name: "single page", page: 1, perPage: 100, expectedCount: 10, expectedPages: 1, expectedHasNext: false, expectedHasPrev: false},
		{name: "exact boundary", page: 2, perPage: 5, expectedCount: 5, expectedPages: 2, expectedHasNext: false, expectedHasPrev: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := Execute(context.Background(), specWith(func(s *domain.QuerySpec) {
				s.Page = tt.page
				s.PerPage = tt.perPage
			}), adapter)
			require.NoError(t, err)

			assert.Len(t, page.Items, tt.expectedCount)
			assert.Equal(t, 10, page.Total)
			assert.Equal(t, tt.expectedPages, page.Pages)
			assert.Equal(t, tt.expectedHasNext, page.HasNext)
			assert.Equal(t, tt.expectedHasPrev, page.HasPrev)
			assert.LessOrEqual(t, len(page.Items), tt.perPage)
		})
	}
}

func TestExecute_EmptySet(t *testing.T) {
	adapter := &scanAdapter{}

	page, err := Execute(context.Background(), specWith(nil), adapter)
	require.NoError(t, err)

	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 0, page.Pages)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

func TestExecute_SearchThenPaginate(t *testing.T) {
	adapter := &scanAdapter{
		searchFields: []string{"name"},
		records: []domain.Record{
			{"name": "Checks"},
			{"name": "Invoices"},
			{"name": "Paychecks"},
			{"name": "Receipts"},
			{"name": "Statements"},
		},
	}

	page, err := Execute(context.Background(), specWith(func(s *domain.QuerySpec) {
		s.Search = "check"
		s.Page = 1
		s.PerPage = 2
	}), adapter)
	require.NoError(t, err)

	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.Pages)
	assert.Len(t, page.Items, 2)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

func TestExecute_NativeDelegationNotDuplicated(t *testing.T) {
	// A capable adapter already filtered and sorted; the engine must only
	// paginate. Feed the engine an adapter whose Query applies the stages
	// and confirm both adapter kinds produce identical pages.
	dataset := []domain.Record{
		{"id": "1", "name": "Checks", "status": "active"},
		{"id": "2", "name": "Paychecks", "status": "inactive"},
		{"id": "3", "name": "Invoices", "status": "active"},
		{"id": "4", "name": "Receipts", "status": "active"},
		{"id": "5", "name": "Archived checks", "status": "inactive"},
	}
	searchFields := []string{"name"}
	scan := &scanAdapter{records: dataset, searchFields: searchFields}
	capable := &capableAdapter{records: dataset, searchFields: searchFields}

	specs := []domain.QuerySpec{
		specWith(nil),
		specWith(func(s *domain.QuerySpec) { s.Search = "check" }),
		specWith(func(s *domain.QuerySpec) { s.Filters = map[string]interface{}{"status": "active"} }),
		specWith(func(s *domain.QuerySpec) {
			s.SortField = "name"
			s.SortDirection = domain.SortDesc
		}),
		specWith(func(s *domain.QuerySpec) {
			s.Search = "check"
			s.Filters = map[string]interface{}{"status": "inactive"}
			s.SortField = "name"
			s.Page = 1
			s.PerPage = 1
		}),
	}

	for i, spec := range specs {
		t.Run(fmt.Sprintf("spec_%d", i), func(t *testing.T) {
			fromScan, err := Execute(context.Background(), spec, scan)
			require.NoError(t, err)
			fromCapable, err := Execute(context.Background(), spec, capable)
			require.NoError(t, err)

			assert.Equal(t, fromCapable, fromScan)
		})
	}
}
