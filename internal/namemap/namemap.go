// Package namemap implements the per-node associative container mapping
// folder names to child values.
//
// Map is not safe for concurrent use on its own; every Map is reachable
// only through a single tree.Node, and every access to it is expected to
// happen under that node's rwlock.RWLock. Values are stored as `any`
// rather than a concrete node type so this package has no dependency on
// the tree package that composes it.
package namemap

import (
	"sort"
	"sync"
)

var backingPool = &sync.Pool{
	New: func() any { return make(map[string]any) },
}

// Map is a mutable name -> value mapping, backed by a pooled Go map to
// reduce allocation churn across the create/remove lifecycle of tree
// nodes, which constantly spin up empty child maps and tear them down.
type Map struct {
	m map[string]any
}

// New returns an empty Map.
func New() *Map {
	return &Map{m: backingPool.Get().(map[string]any)}
}

// Insert adds name -> v if name is not already present. It reports
// whether the insertion happened.
func (m *Map) Insert(name string, v any) bool {
	if _, exists := m.m[name]; exists {
		return false
	}
	m.m[name] = v
	return true
}

// Get returns the value stored under name, if any.
func (m *Map) Get(name string) (any, bool) {
	v, ok := m.m[name]
	return v, ok
}

// Remove deletes name from the map, if present.
func (m *Map) Remove(name string) {
	delete(m.m, name)
}

// Size returns the number of entries in the map.
func (m *Map) Size() int {
	return len(m.m)
}

// Each calls fn for every (name, value) pair, in unspecified order. fn
// returning false stops the iteration early.
func (m *Map) Each(fn func(name string, v any) bool) {
	for name, v := range m.m {
		if !fn(name, v) {
			return
		}
	}
}

// SortedNames returns the map's keys, lexicographically sorted.
func (m *Map) SortedNames() []string {
	names := make([]string, 0, len(m.m))
	for name := range m.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns a comma-separated, lexicographically sorted rendering of
// the map's names, with no trailing comma. An empty map renders as "".
func (m *Map) Render() string {
	names := m.SortedNames()
	out := make([]byte, 0, len(names)*8)
	for i, name := range names {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, name...)
	}
	return string(out)
}

// Release returns the backing Go map to the pool. The Map must not be
// used afterwards. Callers hold writer protection on the owning node's
// parent when a map is released as part of destroying that node, and no
// operation can reach the node without passing that parent, so this never
// races.
func (m *Map) Release() {
	if m.m == nil {
		return
	}
	for k := range m.m {
		delete(m.m, k)
	}
	backingPool.Put(m.m)
	m.m = nil
}
