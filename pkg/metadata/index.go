package metadata

import "sync"

// Index enumerates the properties of a class with inheritance-aware merging.
// A child property shadows a same-named ancestor property; ancestor fields
// follow the child's own fields in enumeration order. Results are memoized
// per type name for the process lifetime.
type Index struct {
	mu    sync.RWMutex
	props map[string][]*PropertyDescriptor
}

// NewIndex creates a new reflection index
func NewIndex() *Index {
	return &Index{
		props: make(map[string][]*PropertyDescriptor),
	}
}

// PropertiesOf returns the ordered, inheritance-merged properties of a type.
// The returned slice is shared with the memo and must not be mutated.
func (ix *Index) PropertiesOf(t *TypeDescriptor) []*PropertyDescriptor {
	key := t.FullName()

	ix.mu.RLock()
	if cached, ok := ix.props[key]; ok {
		ix.mu.RUnlock()
		return cached
	}
	ix.mu.RUnlock()

	merged := mergeProperties(t)

	// Last writer wins on a concurrent fill; results are idempotent.
	ix.mu.Lock()
	ix.props[key] = merged
	ix.mu.Unlock()

	return merged
}

// Clear drops all memoized property tables (useful for testing)
func (ix *Index) Clear() {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.props = make(map[string][]*PropertyDescriptor)
}

// mergeProperties walks from the class to its root ancestor, collecting
// declared properties child-first and dropping shadowed ancestor fields.
func mergeProperties(t *TypeDescriptor) []*PropertyDescriptor {
	var merged []*PropertyDescriptor
	seen := make(map[string]bool)

	for cur := t; cur != nil; cur = cur.Parent {
		for _, p := range cur.Properties {
			if seen[p.Name] {
				continue
			}
			seen[p.Name] = true
			merged = append(merged, p)
		}
	}
	return merged
}
