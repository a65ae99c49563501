package engine

import "github.com/jcallister/backdesk/pkg/domain"

// MatchesFilters checks if a record satisfies every filter criterion.
func MatchesFilters(rec domain.Record, filters map[string]interface{}) bool {
	for field, expected := range filters {
		actual, exists := rec[field]
		if !exists {
			return false
		}
		if !valuesEqual(actual, expected) {
			return false
		}
	}
	return true
}

// valuesEqual compares two filter values for equality. Strings compare
// exactly; numeric values compare across concrete types so that a filter
// parsed from a query string still matches an int64 stored in a document.
func valuesEqual(actual, expected interface{}) bool {
	if actual == nil && expected == nil {
		return true
	}
	if actual == nil || expected == nil {
		return false
	}

	if actualNum, ok1 := toFloat64(actual); ok1 {
		if expectedNum, ok2 := toFloat64(expected); ok2 {
			return actualNum == expectedNum
		}
	}

	return actual == expected
}

// toFloat64 converts the numeric types a record can carry to float64.
func toFloat64(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}
