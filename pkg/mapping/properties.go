package mapping

import (
	"bytes"
	"encoding/json"
)

// Properties is an insertion-ordered wire-name -> field-settings map. The
// generated schema must serialize identically across runs, so ordinary Go
// maps cannot hold the mapping tree.
type Properties struct {
	keys   []string
	values map[string]map[string]interface{}
}

// NewProperties creates an empty properties map
func NewProperties() *Properties {
	return &Properties{
		values: make(map[string]map[string]interface{}),
	}
}

// Set stores the settings for a wire name. A duplicate key overwrites the
// earlier value but keeps its original position.
func (p *Properties) Set(key string, settings map[string]interface{}) {
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = settings
}

// Get returns the settings for a wire name
func (p *Properties) Get(key string) (map[string]interface{}, bool) {
	settings, ok := p.values[key]
	return settings, ok
}

// Keys returns the wire names in insertion order
func (p *Properties) Keys() []string {
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

// Len returns the number of entries
func (p *Properties) Len() int {
	return len(p.keys)
}

// MarshalJSON serializes the map in insertion order
func (p *Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')

		v, err := json.Marshal(p.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
