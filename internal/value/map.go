// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package value holds the ordered configuration tree written by cfgsplit.
//
// A configuration value is one of:
//   - nil, bool, string
//   - any Go integer type, float32 or float64
//   - *Map (ordered mapping), or map[string]any rendered with sorted keys
//   - []any (ordered sequence)
package value

import "sort"

// Map is an insertion-ordered mapping from string keys to configuration values.
// The zero value is an empty map ready to use.
type Map struct {
	keys []string
	vals map[string]any
}

// Entry is a single key/value pair of a Map.
type Entry struct {
	Key   string
	Value any
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{}
}

// MapOf builds a map from entries, in order. Later duplicates replace earlier values.
func MapOf(entries ...Entry) *Map {
	m := &Map{}
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

// Set stores v under key. An existing key keeps its position.
func (m *Map) Set(key string, v any) {
	if m.vals == nil {
		m.vals = make(map[string]any)
	}
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key, preserving the order of the remaining keys.
func (m *Map) Delete(key string) {
	if m == nil {
		return
	}
	if _, ok := m.vals[key]; !ok {
		return
	}
	delete(m.vals, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Entries returns the entries in insertion order.
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Entry{Key: k, Value: m.vals[k]})
	}
	return out
}

// Without returns a shallow copy of m with the given keys removed.
// m itself is not modified.
func (m *Map) Without(keys ...string) *Map {
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	out := &Map{}
	for _, e := range m.Entries() {
		if _, skip := drop[e.Key]; skip {
			continue
		}
		out.Set(e.Key, e.Value)
	}
	return out
}

// AsMap returns v as an ordered mapping. A map[string]any carries no order and
// is converted with its keys sorted; its values are not converted.
func AsMap(v any) (*Map, bool) {
	switch t := v.(type) {
	case *Map:
		return t, t != nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMap()
		for _, k := range keys {
			m.Set(k, t[k])
		}
		return m, true
	default:
		return nil, false
	}
}
