package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Table is a two-level lookup table as persisted through the cache:
// class name -> field name -> derived value. Derived metadata tables are
// accumulate-only; entries for other classes are always preserved on merge.
type Table map[string]map[string]string

// GetTable loads a table from the cache. A missing key yields an empty table.
func GetTable(ctx context.Context, c Cache, key string) (Table, error) {
	raw, err := c.Get(ctx, key)
	if err != nil {
		if IsCacheMiss(err) {
			return Table{}, nil
		}
		return nil, err
	}

	var table Table
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("cache key %s holds a malformed table: %w", key, err)
	}
	return table, nil
}

// MergeTable merges one class's entries into the cached table under key,
// non-destructively: existing entries for other classes are kept, and the
// class's own row is replaced wholesale.
func MergeTable(ctx context.Context, c Cache, key, class string, entries map[string]string) error {
	table, err := GetTable(ctx, c, key)
	if err != nil {
		return err
	}

	table[class] = entries

	raw, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encoding table for cache key %s: %w", key, err)
	}
	return c.Set(ctx, key, raw, time.Duration(0))
}
