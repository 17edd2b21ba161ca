// Package kv provides the ordered string map used to hold configuration
// sections and their global defaults.
package kv

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is an insertion-ordered mapping of string keys to string values.
// Overwriting a key keeps its original position.
//
// The zero value is not usable; create maps with New.
type Map struct {
	om *orderedmap.OrderedMap[string, string]
}

// New returns an empty Map.
func New() *Map {
	return &Map{om: orderedmap.New[string, string]()}
}

// Set inserts key with value, or overwrites the value of an existing key.
func (m *Map) Set(key, value string) {
	m.om.Set(key, value)
}

// Get returns the value stored under key and whether it was present.
func (m *Map) Get(key string) (string, bool) {
	return m.om.Get(key)
}

// Value returns the value stored under key, or the empty string.
func (m *Map) Value(key string) string {
	return m.om.Value(key)
}

// Copy sets every pair of from into m, in from's order.
func (m *Map) Copy(from *Map) {
	if from == nil {
		return
	}
	for pair := from.om.Oldest(); pair != nil; pair = pair.Next() {
		m.om.Set(pair.Key, pair.Value)
	}
}

// Len returns the number of keys in m. A nil or released Map has length 0.
func (m *Map) Len() int {
	if m == nil || m.om == nil {
		return 0
	}
	return m.om.Len()
}

// Range calls fn for every pair in insertion order until fn returns false.
func (m *Map) Range(fn func(key, value string) bool) {
	if m == nil || m.om == nil {
		return
	}
	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Keys returns the keys of m in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.Len())
	m.Range(func(key, _ string) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Entries returns a plain Go map holding the pairs of m.
func (m *Map) Entries() map[string]string {
	entries := make(map[string]string, m.Len())
	m.Range(func(key, value string) bool {
		entries[key] = value
		return true
	})
	return entries
}

// Release drops the storage held by m. Any further use other than Len,
// Range, Keys or Entries panics.
func (m *Map) Release() {
	m.om = nil
}

// MarshalJSON encodes m as a JSON object with keys in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil || m.om == nil {
		return []byte("{}"), nil
	}
	return m.om.MarshalJSON()
}
