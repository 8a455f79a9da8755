package metrics

import (
	"bytes"
	"encoding/json"
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

// Record is a flat, insertion ordered mapping from metric name to value.
// Values are int, float64, string, []string, []PropertyCount or time.Time.
// Absence of a key means the metric was not computed, which is different
// from a computed zero.
type Record struct {
	keys   []Key
	values map[Key]any
}

// New returns an empty record.
func New() *Record {
	return &Record{values: make(map[Key]any)}
}

// Set stores value under key. Setting an existing key replaces the value but
// keeps its original position.
func (r *Record) Set(key Key, value any) {
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns value stored under key.
func (r *Record) Get(key Key) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key was computed.
func (r *Record) Has(key Key) bool {
	_, ok := r.Get(key)
	return ok
}

// Keys returns keys in insertion order.
func (r *Record) Keys() []Key {
	if r == nil {
		return nil
	}
	out := make([]Key, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns number of metrics in the record.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Merge appends all metrics of other to r in other's order.
func (r *Record) Merge(other *Record) {
	for _, k := range other.Keys() {
		r.Set(k, other.values[k])
	}
}

// Int returns integer metric.
func (r *Record) Int(key Key) (int, bool) {
	v, ok := r.Get(key)
	if !ok {
		return 0, false
	}
	i, ok := v.(int)
	return i, ok
}

// Float returns floating point metric.
func (r *Record) Float(key Key) (float64, bool) {
	v, ok := r.Get(key)
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// Number returns any numeric metric as float64.
func (r *Record) Number(key Key) (float64, bool) {
	v, ok := r.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Strings returns list metric.
func (r *Record) Strings(key Key) ([]string, bool) {
	v, ok := r.Get(key)
	if !ok {
		return nil, false
	}
	s, ok := v.([]string)
	return s, ok
}

// Properties returns ranked properties list.
func (r *Record) Properties() ([]PropertyCount, bool) {
	v, ok := r.Get(PropertiesCount)
	if !ok {
		return nil, false
	}
	p, ok := v.([]PropertyCount)
	return p, ok
}

// MarshalJSON produces JSON object with keys in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteByte('{')
	for i, k := range r.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(k))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("unable to marshal metric %s: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML produces mapping node with keys in insertion order.
func (r *Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range r.Keys() {
		val := &yaml.Node{}
		if err := val.Encode(r.values[k]); err != nil {
			return nil, fmt.Errorf("unable to marshal metric %s: %w", k, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: string(k)}, val)
	}
	return node, nil
}
