package domain

// Record is a borrowed view of one stored entity: a stable identifier plus
// named fields. The query engine reads records, it never mutates them.
type Record map[string]interface{}

// ID returns the record's identifier, or "" when it has none.
func (r Record) ID() string {
	if id, ok := r["id"].(string); ok {
		return id
	}
	return ""
}

// FieldString returns the named field as a string, or "" when the field is
// absent or not a string.
func (r Record) FieldString(name string) string {
	if s, ok := r[name].(string); ok {
		return s
	}
	return ""
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
