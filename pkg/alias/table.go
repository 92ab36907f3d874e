// Package alias derives the object<->wire field alias table for a mapped
// class, including accessor metadata for non-public fields and recursively
// nested tables for embedded types.
package alias

import (
	"bytes"
	"encoding/json"
)

// Access classifies how a field's value is reached at hydration time.
const (
	AccessPublic  = "public"
	AccessPrivate = "private"
)

// PropertyRecord holds the derived facts for one wire field.
type PropertyRecord struct {
	WireName     string `json:"wire_name"`
	PropertyName string `json:"property_name,omitempty"`
	Type         string `json:"type,omitempty"`

	// Access is public or private; private fields carry resolved accessors.
	Access string `json:"access,omitempty"`
	Getter string `json:"getter,omitempty"`
	Setter string `json:"setter,omitempty"`

	Identifier bool `json:"identifier,omitempty"`

	// Embedded target metadata. Aliases nests the target's own table.
	Embedded    bool   `json:"embedded,omitempty"`
	Class       string `json:"class,omitempty"`
	StorageMode string `json:"storage_mode,omitempty"`
	Multiple    bool   `json:"multiple,omitempty"`
	Aliases     *Table `json:"aliases,omitempty"`

	// ExcludeContext marks the serialization context this field is omitted
	// from, attached by exclusion post-processing.
	ExcludeContext string `json:"exclude_context,omitempty"`
}

// Table is an insertion-ordered wire-name -> PropertyRecord map. Enumeration
// order follows property resolution order: a class's own fields first, then
// unshadowed ancestor fields.
type Table struct {
	keys    []string
	records map[string]*PropertyRecord
}

// NewTable creates an empty alias table
func NewTable() *Table {
	return &Table{
		records: make(map[string]*PropertyRecord),
	}
}

// Set stores the record for a wire name. A duplicate key overwrites the
// earlier record but keeps its original position.
func (t *Table) Set(key string, rec *PropertyRecord) {
	if _, exists := t.records[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.records[key] = rec
}

// Get returns the record for a wire name
func (t *Table) Get(key string) (*PropertyRecord, bool) {
	rec, ok := t.records[key]
	return rec, ok
}

// Keys returns the wire names in insertion order
func (t *Table) Keys() []string {
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)
	return keys
}

// Len returns the number of records
func (t *Table) Len() int {
	return len(t.keys)
}

// MarshalJSON serializes the table in insertion order
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, key := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')

		v, err := json.Marshal(t.records[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
