package alias

import (
	"fmt"
	"sync"

	"github.com/searchmap/searchmap/internal/util/strcase"
	"github.com/searchmap/searchmap/pkg/metadata"
)

// idWireName is the storage engine's identifier field. Exclusion directives
// targeting the identifier's plain name are rewritten to it.
const idWireName = "_id"

// Resolver builds per-class alias tables. Tables are memoized per class
// unless the caller supplies a meta-fields accumulator: tables built with an
// accumulator also record identifier entries, so they never enter the memo.
type Resolver struct {
	reader metadata.Reader
	index  *metadata.Index

	mu   sync.RWMutex
	memo map[string]*Table
}

// NewResolver creates a new alias resolver
func NewResolver(reader metadata.Reader, index *metadata.Index) *Resolver {
	return &Resolver{
		reader: reader,
		index:  index,
		memo:   make(map[string]*Table),
	}
}

// BuildAliases derives the wire-name -> PropertyRecord table for a class.
// When metaFields is non-nil, identifier meta-field settings encountered
// during the walk are collected into it and the per-class memo is bypassed.
func (r *Resolver) BuildAliases(t *metadata.TypeDescriptor, metaFields map[string]map[string]interface{}) (*Table, error) {
	class := t.FullName()

	if metaFields == nil {
		r.mu.RLock()
		if cached, ok := r.memo[class]; ok {
			r.mu.RUnlock()
			return cached, nil
		}
		r.mu.RUnlock()
	}

	table, err := r.buildAliases(t, metaFields, make(map[string]bool))
	if err != nil {
		return nil, err
	}

	if metaFields == nil {
		r.mu.Lock()
		r.memo[class] = table
		r.mu.Unlock()
	}
	return table, nil
}

// Clear drops all memoized alias tables (useful for testing)
func (r *Resolver) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.memo = make(map[string]*Table)
}

func (r *Resolver) buildAliases(t *metadata.TypeDescriptor, metaFields map[string]map[string]interface{}, visiting map[string]bool) (*Table, error) {
	class := t.FullName()

	if visiting[class] {
		return nil, &metadata.CyclicEmbeddingError{Class: class}
	}
	visiting[class] = true
	defer delete(visiting, class)

	table := NewTable()
	props := r.index.PropertiesOf(t)

	for _, field := range props {
		rec, err := r.resolveRecord(t, field, metaFields, visiting)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			// Not part of the wire contract.
			continue
		}
		table.Set(rec.WireName, rec)
	}

	// Exclusion directives post-process entries by wire name. The target may
	// have been annotated separately from the canonical field annotation, in
	// which case a bare record is created for it.
	for _, field := range props {
		for _, ann := range r.reader.PropertyAnnotations(field) {
			ex, ok := ann.(*metadata.ExcludeAnnotation)
			if !ok {
				continue
			}
			key := ex.Name
			if key == "id" {
				key = idWireName
			}
			if rec, found := table.Get(key); found {
				rec.ExcludeContext = ex.Context
			} else {
				table.Set(key, &PropertyRecord{WireName: key, ExcludeContext: ex.Context})
			}
		}
	}

	return table, nil
}

// resolveRecord derives one field's record, or nil when the field carries no
// governing annotation. Property wins over Embedded; identifier meta fields
// are only considered when the caller aggregates them.
func (r *Resolver) resolveRecord(t *metadata.TypeDescriptor, field *metadata.PropertyDescriptor, metaFields map[string]map[string]interface{}, visiting map[string]bool) (*PropertyRecord, error) {
	var rec *PropertyRecord

	switch {
	case r.reader.PropertyAnnotation(field, metadata.KindProperty) != nil:
		pa := r.reader.PropertyAnnotation(field, metadata.KindProperty).(*metadata.PropertyAnnotation)
		rec = &PropertyRecord{
			WireName:     resolveWireName(pa.Name, field.Name),
			PropertyName: field.Name,
			Type:         pa.Type,
		}

	case r.reader.PropertyAnnotation(field, metadata.KindEmbedded) != nil:
		ea := r.reader.PropertyAnnotation(field, metadata.KindEmbedded).(*metadata.EmbeddedAnnotation)

		mode, err := metadata.StorageModeOf(r.reader, ea.Class)
		if err != nil {
			return nil, fmt.Errorf("field %s of class %s: %w", field.Name, t.FullName(), err)
		}
		sub, err := r.subAliases(ea.Class, visiting)
		if err != nil {
			return nil, err
		}

		rec = &PropertyRecord{
			WireName:     resolveWireName(ea.Name, field.Name),
			PropertyName: field.Name,
			Embedded:     true,
			Class:        ea.Class.FullName(),
			StorageMode:  mode,
			Multiple:     ea.Multiple,
			Aliases:      sub,
		}

	case metaFields != nil:
		ann := r.reader.PropertyAnnotation(field, metadata.KindID)
		if ann == nil {
			return nil, nil
		}
		ia := ann.(*metadata.IDAnnotation)
		metaFields[ia.Name] = ia.Settings
		rec = &PropertyRecord{
			WireName:     ia.Name,
			PropertyName: field.Name,
			Identifier:   true,
		}

	default:
		return nil, nil
	}

	if err := r.classifyAccess(t, field, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// classifyAccess records the field's visibility and, for non-public fields,
// its resolved accessors. Identifier fields are read-only and need no setter.
func (r *Resolver) classifyAccess(t *metadata.TypeDescriptor, field *metadata.PropertyDescriptor, rec *PropertyRecord) error {
	switch field.Visibility {
	case metadata.VisibilityPublic:
		rec.Access = AccessPublic
		return nil

	case metadata.VisibilityProtected, metadata.VisibilityPrivate:
		rec.Access = AccessPrivate
		if rec.Identifier {
			getter, err := metadata.ResolveStrictGetter(t, field)
			if err != nil {
				return err
			}
			rec.Getter = getter
			return nil
		}
		pair, err := metadata.ResolveMutatorPair(t, field)
		if err != nil {
			return err
		}
		rec.Getter = pair.Getter
		rec.Setter = pair.Setter
		return nil

	default:
		return &metadata.InvalidFieldVisibilityError{
			Class:      t.FullName(),
			Field:      field.Name,
			Visibility: field.Visibility,
		}
	}
}

// subAliases resolves an embedded target's table, reusing the memo when the
// target was already resolved without meta-field aggregation.
func (r *Resolver) subAliases(t *metadata.TypeDescriptor, visiting map[string]bool) (*Table, error) {
	class := t.FullName()

	r.mu.RLock()
	if cached, ok := r.memo[class]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	table, err := r.buildAliases(t, nil, visiting)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.memo[class] = table
	r.mu.Unlock()
	return table, nil
}

func resolveWireName(explicit, field string) string {
	if explicit != "" {
		return explicit
	}
	return strcase.ToSnakeCase(field)
}
