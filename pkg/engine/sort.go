package engine

import (
	"sort"
	"strconv"
	"time"

	"github.com/jcallister/backdesk/pkg/domain"
)

// sortKey is one record's extracted sort value. Timestamps collapse to
// their numeric instant so that time ordering never depends on string
// formatting.
type sortKey struct {
	num     float64
	str     string
	numeric bool
}

// keyAccessor maps a record to its sort key for one resolved field.
type keyAccessor func(domain.Record) sortKey

// applySort stably sorts records by the named field. Descending order
// flips the comparator, not the final list, so records with equal keys
// keep their relative input order in both directions. Records missing the
// field sort as the field's zero value rather than erroring.
func applySort(records []domain.Record, field string, direction domain.SortDirection) []domain.Record {
	access := resolveAccessor(records, field)

	type keyed struct {
		rec domain.Record
		key sortKey
	}
	keyedRecs := make([]keyed, len(records))
	for i, rec := range records {
		keyedRecs[i] = keyed{rec: rec, key: access(rec)}
	}

	desc := direction == domain.SortDesc
	sort.SliceStable(keyedRecs, func(i, j int) bool {
		if desc {
			return lessKey(keyedRecs[j].key, keyedRecs[i].key)
		}
		return lessKey(keyedRecs[i].key, keyedRecs[j].key)
	})

	out := make([]domain.Record, len(records))
	for i, kr := range keyedRecs {
		out[i] = kr.rec
	}
	return out
}

// resolveAccessor builds the typed accessor for a sort field, once per
// query. The field's kind is inferred from the first record that carries
// it; records without the field get that kind's zero value (empty string,
// epoch).
func resolveAccessor(records []domain.Record, field string) keyAccessor {
	numericField := false
	for _, rec := range records {
		v, ok := rec[field]
		if !ok || v == nil {
			continue
		}
		numericField = isNumericValue(v)
		break
	}

	zero := sortKey{numeric: numericField}
	return func(rec domain.Record) sortKey {
		v, ok := rec[field]
		if !ok || v == nil {
			return zero
		}
		return keyOf(v)
	}
}

func isNumericValue(v interface{}) bool {
	if _, ok := v.(time.Time); ok {
		return true
	}
	_, ok := toFloat64(v)
	return ok
}

// keyOf extracts a comparable key from one field value.
func keyOf(v interface{}) sortKey {
	if t, ok := v.(time.Time); ok {
		return sortKey{num: float64(t.UnixNano()), numeric: true}
	}
	if n, ok := toFloat64(v); ok {
		return sortKey{num: n, numeric: true}
	}
	switch s := v.(type) {
	case string:
		return sortKey{str: s}
	case bool:
		return sortKey{str: strconv.FormatBool(s)}
	default:
		return sortKey{}
	}
}

// lessKey orders numeric keys before string keys when a collection holds
// mixed types for the same field, keeping the comparator deterministic.
func lessKey(a, b sortKey) bool {
	if a.numeric != b.numeric {
		return a.numeric
	}
	if a.numeric {
		return a.num < b.num
	}
	return a.str < b.str
}
