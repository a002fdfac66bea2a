package index

import (
	"sort"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
)

// orderedMap keys postings by an ordered type (integer Elo, lexicographic
// date strings) so range queries can select a key interval. Keys are held
// in a plain map: Range sorts every present key on each call and filters
// them to the interval, so it visits every key. One generic
// implementation backs both the
// Elo index (K=int, V=int game ID) and the date index (K=string,
// V=int game ID), the way constraints.Ordered lets a single type serve
// either key shape.
type orderedMap[K constraints.Ordered, V comparable] struct {
	postings map[K]set[V]
}

func newOrderedMap[K constraints.Ordered, V comparable]() *orderedMap[K, V] {
	return &orderedMap[K, V]{postings: make(map[K]set[V])}
}

func (m *orderedMap[K, V]) add(key K, v V) {
	s, ok := m.postings[key]
	if !ok {
		s = newSet[V]()
		m.postings[key] = s
	}
	s.add(v)
}

// sortedKeys returns every key currently present, ascending.
func (m *orderedMap[K, V]) sortedKeys() []K {
	keys := maps.Keys(m.postings)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Range returns the union of values whose key lies in [lo, hi] inclusive.
func (m *orderedMap[K, V]) Range(lo, hi K) []V {
	out := newSet[V]()
	for _, k := range m.sortedKeys() {
		if k < lo || k > hi {
			continue
		}
		for v := range m.postings[k] {
			out.add(v)
		}
	}
	return out.toSlice()
}

// Keys returns every key, ascending, for sidecar serialization; At
// returns the values stored under one key.
func (m *orderedMap[K, V]) Keys() []K {
	return m.sortedKeys()
}

// At returns the posting set for exactly key.
func (m *orderedMap[K, V]) At(key K) []V {
	return m.postings[key].toSlice()
}
