package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/jcallister/backdesk/pkg/domain"
)

// TableAdapter exposes one table as a capable store adapter: search,
// filter and sort are pushed down into SQL, and only columns from the
// configured whitelist ever reach the generated statement.
type TableAdapter struct {
	db            *sql.DB
	table         string
	columns       []string
	searchColumns []string
	defaultSort   string
}

// NewTableAdapter builds an adapter for one table. columns is the full
// projection and whitelist, searchColumns the subset free-text search
// matches against, defaultSort the column used when a requested sort
// field is not a known column.
func NewTableAdapter(db *sql.DB, table string, columns, searchColumns []string, defaultSort string) *TableAdapter {
	return &TableAdapter{
		db:            db,
		table:         table,
		columns:       columns,
		searchColumns: searchColumns,
		defaultSort:   defaultSort,
	}
}

func (a *TableAdapter) hasColumn(name string) bool {
	for _, col := range a.columns {
		if col == name {
			return true
		}
	}
	return false
}

// FetchAll returns every row of the table.
func (a *TableAdapter) FetchAll(ctx context.Context) ([]domain.Record, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(a.columns, ", "), a.table)
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &domain.StoreUnavailableError{Backend: a.table, Err: err}
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Query pushes search, filters and sort into a single SELECT. Pagination
// is deliberately absent: the engine computes it so both store kinds share
// one page-boundary contract. The rowid tiebreak keeps rows with equal
// sort keys in insertion order, matching the engine's stable sort.
func (a *TableAdapter) Query(ctx context.Context, spec domain.QuerySpec) ([]domain.Record, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", strings.Join(a.columns, ", "), a.table)

	var conds []string
	var args []interface{}

	if spec.Search != "" && len(a.searchColumns) > 0 {
		ors := make([]string, len(a.searchColumns))
		needle := "%" + strings.ToLower(spec.Search) + "%"
		for i, col := range a.searchColumns {
			ors[i] = fmt.Sprintf("LOWER(%s) LIKE ?", col)
			args = append(args, needle)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	// Sorted iteration keeps the generated SQL deterministic.
	filterFields := make([]string, 0, len(spec.Filters))
	for field := range spec.Filters {
		if a.hasColumn(field) {
			filterFields = append(filterFields, field)
		}
	}
	sort.Strings(filterFields)
	for _, field := range filterFields {
		conds = append(conds, field+" = ?")
		args = append(args, spec.Filters[field])
	}

	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	sortCol := spec.SortField
	if !a.hasColumn(sortCol) {
		sortCol = a.defaultSort
	}
	dir := "ASC"
	if spec.SortDirection == domain.SortDesc {
		dir = "DESC"
	}
	fmt.Fprintf(&sb, " ORDER BY %s %s, rowid ASC", sortCol, dir)

	rows, err := a.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, &domain.StoreUnavailableError{Backend: a.table, Err: err}
	}
	defer rows.Close()
	return scanRecords(rows)
}

// SupportsNative reports true for every stage: the backend shapes the
// result set itself.
func (a *TableAdapter) SupportsNative(op domain.Operation) bool {
	switch op {
	case domain.OpSearch, domain.OpFilter, domain.OpSort:
		return true
	}
	return false
}

func (a *TableAdapter) SearchFields() []string {
	return a.searchColumns
}

// scanRecords converts sql rows into generic records. []byte column
// values become strings so records compare like their document-store
// counterparts.
func scanRecords(rows *sql.Rows) ([]domain.Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var out []domain.Record
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		rec := make(domain.Record, len(cols))
		for i, col := range cols {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			rec[col] = v
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return out, nil
}
