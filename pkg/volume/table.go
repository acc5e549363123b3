package volume

import "github.com/dd0wney/sdfv-volume/pkg/sdfg"

// Table holds the derived volume of each edge. An edge without an entry
// has no known volume.
type Table struct {
	values map[sdfg.EdgeID]float64
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{values: make(map[sdfg.EdgeID]float64)}
}

// Lookup returns the cached volume of an edge
func (t *Table) Lookup(id sdfg.EdgeID) (float64, bool) {
	v, ok := t.values[id]
	return v, ok
}

// Store caches a volume for an edge
func (t *Table) Store(id sdfg.EdgeID, v float64) {
	t.values[id] = v
}

// Forget marks an edge's volume as unknown. It reports whether a value was
// cached.
func (t *Table) Forget(id sdfg.EdgeID) bool {
	if _, ok := t.values[id]; !ok {
		return false
	}
	delete(t.values, id)
	return true
}

// Len returns the number of edges with a known volume
func (t *Table) Len() int {
	return len(t.values)
}

// Reset forgets every volume
func (t *Table) Reset() {
	t.values = make(map[sdfg.EdgeID]float64)
}
