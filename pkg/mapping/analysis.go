package mapping

import (
	"context"

	"github.com/searchmap/searchmap/pkg/metadata"
)

// AnalysisConfig is the text-analysis pipeline configuration: category
// (analyzer, normalizer, tokenizer, filter, char_filter) -> name -> settings.
// The global configuration is supplied at construction; BuildAnalysisConfig
// narrows it to the entries a class's mapping actually references.
type AnalysisConfig map[string]map[string]map[string]interface{}

func (c AnalysisConfig) add(category, name string, settings map[string]interface{}) {
	if c[category] == nil {
		c[category] = make(map[string]map[string]interface{})
	}
	c[category][name] = settings
}

// BuildAnalysisConfig extracts the subset of the global analysis
// configuration referenced by the class's mapping tree.
//
// The first pass collects analyzer names reachable anywhere in the mapping
// under analyzer/search_analyzer/search_quote_analyzer keys, and normalizer
// names under normalizer keys. The second pass resolves tokenizer, filter
// and char_filter references against the already-filtered result, not the
// raw mapping tree, so only dependencies of selected analyzers and
// normalizers are picked up.
func (b *Builder) BuildAnalysisConfig(ctx context.Context, t *metadata.TypeDescriptor) (AnalysisConfig, error) {
	tree, err := b.BuildMapping(ctx, t)
	if err != nil {
		return nil, err
	}

	result := make(AnalysisConfig)

	analyzers := make(map[string]bool)
	collectNamed(tree, []string{"analyzer", "search_analyzer", "search_quote_analyzer"}, analyzers)
	b.copyEntries("analyzer", analyzers, result)

	normalizers := make(map[string]bool)
	collectNamed(tree, []string{"normalizer"}, normalizers)
	b.copyEntries("normalizer", normalizers, result)

	for _, category := range []string{"tokenizer", "filter", "char_filter"} {
		names := make(map[string]bool)
		for _, byName := range result {
			for _, settings := range byName {
				collectNamed(settings, []string{category}, names)
			}
		}
		b.copyEntries(category, names, result)
	}

	return result, nil
}

func (b *Builder) copyEntries(category string, names map[string]bool, result AnalysisConfig) {
	for name := range names {
		if settings, ok := b.analysis[category][name]; ok {
			result.add(category, name, settings)
		}
	}
}

// collectNamed walks a value tree depth-first and records every name found
// under one of the given keys. Names may appear as a single string or as a
// list of strings (filter chains).
func collectNamed(node interface{}, keys []string, out map[string]bool) {
	switch v := node.(type) {
	case *Properties:
		for _, key := range v.Keys() {
			settings, _ := v.Get(key)
			collectNamed(settings, keys, out)
		}
	case map[string]interface{}:
		for k, val := range v {
			if containsKey(keys, k) {
				recordNames(val, out)
			}
			collectNamed(val, keys, out)
		}
	case []interface{}:
		for _, e := range v {
			collectNamed(e, keys, out)
		}
	}
}

func recordNames(val interface{}, out map[string]bool) {
	switch v := val.(type) {
	case string:
		out[v] = true
	case []string:
		for _, s := range v {
			out[s] = true
		}
	case []interface{}:
		for _, e := range v {
			if s, ok := e.(string); ok {
				out[s] = true
			}
		}
	}
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
