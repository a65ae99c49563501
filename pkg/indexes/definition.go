// Package indexes loads, validates and provisions Firestore composite
// index definitions against the Admin API. Provisioning is an idempotent
// batch: each definition gets its own outcome and a failing item never
// aborts the rest.
package indexes

import (
	"fmt"
	"strings"
)

// Order is a field's sort order within a composite index.
type Order string

const (
	OrderAscending  Order = "ASCENDING"
	OrderDescending Order = "DESCENDING"
)

// ArrayConfig marks a field as an array-containment index entry.
type ArrayConfig string

const ArrayContains ArrayConfig = "CONTAINS"

// QueryScope selects which queries an index serves.
type QueryScope string

const (
	ScopeCollection      QueryScope = "COLLECTION"
	ScopeCollectionGroup QueryScope = "COLLECTION_GROUP"
)

// Field is one entry of a composite index. A well-formed field carries a
// path and exactly one of Order or ArrayConfig; when both are present,
// ArrayConfig wins during payload construction and the validator warns.
type Field struct {
	FieldPath   string      `json:"fieldPath,omitempty" mapstructure:"fieldPath"`
	Order       Order       `json:"order,omitempty" mapstructure:"order"`
	ArrayConfig ArrayConfig `json:"arrayConfig,omitempty" mapstructure:"arrayConfig"`
}

// Definition is one declarative composite-index specification, in the
// shape of a firestore.indexes.json entry.
type Definition struct {
	CollectionGroup string     `json:"collectionGroup" mapstructure:"collectionGroup"`
	QueryScope      QueryScope `json:"queryScope,omitempty" mapstructure:"queryScope"`
	Fields          []Field    `json:"fields" mapstructure:"fields"`
}

// Payload is the request body submitted to the Admin API for one index.
type Payload struct {
	QueryScope QueryScope `json:"queryScope"`
	Fields     []Field    `json:"fields"`
}

// BuildPayload maps a definition to its Admin API request body. Fields
// without a path are dropped; a field carrying both order and arrayConfig
// is submitted with arrayConfig only, so the remote API never sees
// contradictory keys. The query scope defaults to COLLECTION.
func (d Definition) BuildPayload() Payload {
	scope := d.QueryScope
	if scope == "" {
		scope = ScopeCollection
	}

	fields := make([]Field, 0, len(d.Fields))
	for _, f := range d.Fields {
		if f.FieldPath == "" {
			continue
		}
		mapped := Field{FieldPath: f.FieldPath}
		if f.ArrayConfig != "" {
			mapped.ArrayConfig = f.ArrayConfig
		} else if f.Order != "" {
			mapped.Order = f.Order
		}
		fields = append(fields, mapped)
	}

	return Payload{QueryScope: scope, Fields: fields}
}

// Label is the human-readable identity of an index, built from the
// collection and the mapped field descriptors.
func (p Payload) Label(collectionGroup string) string {
	descs := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		if f.ArrayConfig != "" {
			descs[i] = f.FieldPath + " ARRAY_CONTAINS"
		} else if f.Order != "" {
			descs[i] = fmt.Sprintf("%s %s", f.FieldPath, f.Order)
		} else {
			descs[i] = f.FieldPath
		}
	}
	return fmt.Sprintf("%s (%s)", collectionGroup, strings.Join(descs, ", "))
}
