// Package docmeta is the externally consumed entry point of the mapping
// engine: per-index metadata (alias, settings, mappings, analysis) and
// per-property metadata for document hydration and index provisioning.
package docmeta

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/searchmap/searchmap/internal/util/strcase"
	"github.com/searchmap/searchmap/pkg/alias"
	"github.com/searchmap/searchmap/pkg/cache"
	"github.com/searchmap/searchmap/pkg/mapping"
	"github.com/searchmap/searchmap/pkg/metadata"
)

// KeyNamespaces is the cache key of the index-alias -> class table used for
// namespace lookups.
const KeyNamespaces = "namespaces"

// Config holds facade configuration
type Config struct {
	// Analysis is the global analysis configuration mappings draw from.
	Analysis mapping.AnalysisConfig
	// Logger receives debug-level resolution events. Defaults to a nop logger.
	Logger *zap.Logger
}

// Facade composes the reflection index, schema builder and alias resolver
// behind the engine's public operations.
type Facade struct {
	reader   metadata.Reader
	index    *metadata.Index
	builder  *mapping.Builder
	resolver *alias.Resolver
	store    cache.Cache
	logger   *zap.Logger
}

// New creates a new document metadata facade
func New(reader metadata.Reader, store cache.Cache, cfg Config) *Facade {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	index := metadata.NewIndex()
	return &Facade{
		reader:   reader,
		index:    index,
		builder:  mapping.NewBuilder(reader, index, store, cfg.Analysis),
		resolver: alias.NewResolver(reader, index),
		store:    store,
		logger:   logger,
	}
}

// TypeMapping is one wire type's mapping entry.
type TypeMapping struct {
	Properties *mapping.Properties `json:"properties"`
}

// AliasView combines the hydration-facing metadata of an index: wire type,
// mapping properties, the alias table, collected meta fields and the class
// identity behind the index.
type AliasView struct {
	Type       string                            `json:"type"`
	Properties *mapping.Properties               `json:"properties"`
	Aliases    *alias.Table                      `json:"aliases"`
	MetaFields map[string]map[string]interface{} `json:"meta_fields,omitempty"`
	Namespace  string                            `json:"namespace,omitempty"`
	Class      string                            `json:"class"`
}

// IndexMetadata is the full derived structure for one indexable class. All
// fields are nil for non-indexable types.
type IndexMetadata struct {
	Settings map[string]interface{}  `json:"settings,omitempty"`
	Analysis mapping.AnalysisConfig  `json:"analysis,omitempty"`
	Mappings map[string]*TypeMapping `json:"mappings,omitempty"`
	Aliases  *AliasView              `json:"aliases,omitempty"`
}

// Empty reports whether the metadata belongs to a non-indexable type.
func (m *IndexMetadata) Empty() bool {
	return m.Mappings == nil
}

// indexAnnotation returns the class's Index annotation, or nil for traits
// and unannotated classes. Many call paths probe arbitrary classes to check
// indexability, so absence is not an error.
func (f *Facade) indexAnnotation(t *metadata.TypeDescriptor) *metadata.IndexAnnotation {
	if t.Trait {
		return nil
	}
	ann := f.reader.ClassAnnotation(t, metadata.KindIndex)
	if ann == nil {
		return nil
	}
	return ann.(*metadata.IndexAnnotation)
}

// IsIndexable reports whether the class carries an Index annotation.
func (f *Facade) IsIndexable(t *metadata.TypeDescriptor) bool {
	return f.indexAnnotation(t) != nil
}

// IndexAliasOf returns the class's index alias: the explicit annotation
// alias, else the snake_case class short name. Empty for non-indexable types.
func (f *Facade) IndexAliasOf(t *metadata.TypeDescriptor) string {
	ia := f.indexAnnotation(t)
	if ia == nil {
		return ""
	}
	if ia.Alias != "" {
		return ia.Alias
	}
	return strcase.ToSnakeCase(t.Name)
}

// IsDefaultIndex reports whether the class's index is the default one.
func (f *Facade) IsDefaultIndex(t *metadata.TypeDescriptor) bool {
	ia := f.indexAnnotation(t)
	return ia != nil && ia.DefaultIndex
}

// typeNameOf resolves the wire type name the mappings are keyed by.
func (f *Facade) typeNameOf(t *metadata.TypeDescriptor, ia *metadata.IndexAnnotation) string {
	if ia.TypeName != "" {
		return ia.TypeName
	}
	return strcase.ToSnakeCase(t.Name)
}

// IndexMetadataOf assembles the complete index metadata for a class:
// settings and analysis, the mapping tree keyed by wire type name, and the
// aliases view. Non-indexable types yield empty metadata, never an error.
func (f *Facade) IndexMetadataOf(ctx context.Context, t *metadata.TypeDescriptor) (*IndexMetadata, error) {
	ia := f.indexAnnotation(t)
	if ia == nil {
		return &IndexMetadata{}, nil
	}

	props, err := f.builder.BuildMapping(ctx, t)
	if err != nil {
		return nil, err
	}
	analysis, err := f.builder.BuildAnalysisConfig(ctx, t)
	if err != nil {
		return nil, err
	}

	metaFields := make(map[string]map[string]interface{})
	aliases, err := f.resolver.BuildAliases(t, metaFields)
	if err != nil {
		return nil, err
	}

	typeName := f.typeNameOf(t, ia)
	indexAlias := f.IndexAliasOf(t)

	if err := f.registerNamespace(ctx, indexAlias, t); err != nil {
		return nil, err
	}

	f.logger.Debug("resolved index metadata",
		zap.String("class", t.FullName()),
		zap.String("index", indexAlias),
		zap.String("type", typeName))

	return &IndexMetadata{
		Settings: ia.Settings,
		Analysis: analysis,
		Mappings: map[string]*TypeMapping{
			typeName: {Properties: props},
		},
		Aliases: &AliasView{
			Type:       typeName,
			Properties: props,
			Aliases:    aliases,
			MetaFields: metaFields,
			Namespace:  t.Namespace,
			Class:      t.Name,
		},
	}, nil
}

// PropertyMetadataOf returns the class's alias table, recursive for embedded
// fields. Classes with no mapped properties yield an empty table.
func (f *Facade) PropertyMetadataOf(ctx context.Context, t *metadata.TypeDescriptor) (*alias.Table, error) {
	if t.Trait {
		return alias.NewTable(), nil
	}
	return f.resolver.BuildAliases(t, nil)
}

// DocumentNamespaceFor looks up the namespace of the class behind an index
// alias. Returns the empty string for unknown aliases.
func (f *Facade) DocumentNamespaceFor(ctx context.Context, indexAlias string) (string, error) {
	table, err := f.loadNamespaces(ctx)
	if err != nil {
		return "", err
	}
	return table[indexAlias], nil
}

// registerNamespace merges one alias -> namespace entry into the cached
// table, preserving other aliases' entries.
func (f *Facade) registerNamespace(ctx context.Context, indexAlias string, t *metadata.TypeDescriptor) error {
	table, err := f.loadNamespaces(ctx)
	if err != nil {
		return err
	}

	table[indexAlias] = t.Namespace

	raw, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encoding namespace table: %w", err)
	}
	return f.store.Set(ctx, KeyNamespaces, raw, 0)
}

func (f *Facade) loadNamespaces(ctx context.Context) (map[string]string, error) {
	raw, err := f.store.Get(ctx, KeyNamespaces)
	if err != nil {
		if cache.IsCacheMiss(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	var table map[string]string
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("namespace table is malformed: %w", err)
	}
	return table, nil
}
