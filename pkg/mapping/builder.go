// Package mapping builds the search-engine field-mapping tree and the
// analysis configuration a mapped class requires.
package mapping

import (
	"context"
	"fmt"
	"sync"

	"github.com/searchmap/searchmap/internal/util/strcase"
	"github.com/searchmap/searchmap/pkg/cache"
	"github.com/searchmap/searchmap/pkg/metadata"
)

// Cache keys for the auxiliary per-class lookup tables. Each key holds a
// class-name -> field-name -> value table (see cache.Table); merges preserve
// other classes' rows.
const (
	KeyObjectFields   = "object_fields"   // object field -> wire name
	KeyWireFields     = "wire_fields"     // wire name -> object field
	KeyEmbeddedFields = "embedded_fields" // object field -> embedded class
)

// Builder walks a class's properties, including embedded classes
// recursively, and derives its field-mapping tree. Mappings are memoized per
// class; failed resolutions are never memoized.
type Builder struct {
	reader   metadata.Reader
	index    *metadata.Index
	store    cache.Cache
	analysis AnalysisConfig

	mu   sync.RWMutex
	memo map[string]*Properties
}

// NewBuilder creates a new schema builder
func NewBuilder(reader metadata.Reader, index *metadata.Index, store cache.Cache, analysis AnalysisConfig) *Builder {
	return &Builder{
		reader:   reader,
		index:    index,
		store:    store,
		analysis: analysis,
		memo:     make(map[string]*Properties),
	}
}

// BuildMapping derives the field-mapping tree for a class. Wire names default
// to the snake_case field identifier; a duplicate wire name silently
// overwrites the earlier entry.
func (b *Builder) BuildMapping(ctx context.Context, t *metadata.TypeDescriptor) (*Properties, error) {
	return b.buildMapping(ctx, t, make(map[string]bool))
}

func (b *Builder) buildMapping(ctx context.Context, t *metadata.TypeDescriptor, visiting map[string]bool) (*Properties, error) {
	class := t.FullName()

	b.mu.RLock()
	if cached, ok := b.memo[class]; ok {
		b.mu.RUnlock()
		return cached, nil
	}
	b.mu.RUnlock()

	if visiting[class] {
		return nil, &metadata.CyclicEmbeddingError{Class: class}
	}
	visiting[class] = true
	defer delete(visiting, class)

	props := NewProperties()
	objectFields := make(map[string]string)
	wireFields := make(map[string]string)
	embeddedFields := make(map[string]string)

	for _, field := range b.index.PropertiesOf(t) {
		if ann := b.reader.PropertyAnnotation(field, metadata.KindProperty); ann != nil {
			pa := ann.(*metadata.PropertyAnnotation)
			wire := wireName(pa.Name, field.Name)

			props.Set(wire, propertySettings(pa))
			objectFields[field.Name] = wire
			wireFields[wire] = field.Name
			continue
		}

		if ann := b.reader.PropertyAnnotation(field, metadata.KindEmbedded); ann != nil {
			ea := ann.(*metadata.EmbeddedAnnotation)
			wire := wireName(ea.Name, field.Name)

			mode, err := metadata.StorageModeOf(b.reader, ea.Class)
			if err != nil {
				return nil, fmt.Errorf("field %s of class %s: %w", field.Name, class, err)
			}
			sub, err := b.buildMapping(ctx, ea.Class, visiting)
			if err != nil {
				return nil, err
			}

			props.Set(wire, map[string]interface{}{
				"type":       mode,
				"properties": sub,
			})
			objectFields[field.Name] = wire
			wireFields[wire] = field.Name
			embeddedFields[field.Name] = ea.Class.FullName()
		}
	}

	if err := cache.MergeTable(ctx, b.store, KeyObjectFields, class, objectFields); err != nil {
		return nil, fmt.Errorf("persisting object field table for %s: %w", class, err)
	}
	if err := cache.MergeTable(ctx, b.store, KeyWireFields, class, wireFields); err != nil {
		return nil, fmt.Errorf("persisting wire field table for %s: %w", class, err)
	}
	if len(embeddedFields) > 0 {
		if err := cache.MergeTable(ctx, b.store, KeyEmbeddedFields, class, embeddedFields); err != nil {
			return nil, fmt.Errorf("persisting embedded field table for %s: %w", class, err)
		}
	}

	b.mu.Lock()
	b.memo[class] = props
	b.mu.Unlock()

	return props, nil
}

// Clear drops all memoized mappings (useful for testing)
func (b *Builder) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.memo = make(map[string]*Properties)
}

// wireName resolves a field's wire name: the explicit annotation name when
// set, else the snake_case conversion of the field identifier.
func wireName(explicit, field string) string {
	if explicit != "" {
		return explicit
	}
	return strcase.ToSnakeCase(field)
}

// propertySettings overlays the annotation's typed attributes onto its raw
// settings. Empty and nil entries are dropped from the final structure.
func propertySettings(pa *metadata.PropertyAnnotation) map[string]interface{} {
	settings := make(map[string]interface{}, len(pa.Settings)+5)
	for k, v := range pa.Settings {
		if v == nil || v == "" {
			continue
		}
		settings[k] = v
	}

	if pa.Type != "" {
		settings["type"] = pa.Type
	}
	if len(pa.Fields) > 0 {
		settings["fields"] = pa.Fields
	}
	if pa.Analyzer != "" {
		settings["analyzer"] = pa.Analyzer
	}
	if pa.SearchAnalyzer != "" {
		settings["search_analyzer"] = pa.SearchAnalyzer
	}
	if pa.SearchQuoteAnalyzer != "" {
		settings["search_quote_analyzer"] = pa.SearchQuoteAnalyzer
	}
	return settings
}
