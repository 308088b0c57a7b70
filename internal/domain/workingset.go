package domain

// WorkingSet is the ordered collection of structures the menu currently shows.
// Every mutation bumps Version so renderers can tell stale snapshots apart.
type WorkingSet struct {
	structures []Structure
	version    uint64
}

// NewWorkingSet creates a working set holding a copy of structures
func NewWorkingSet(structures []Structure) *WorkingSet {
	ws := &WorkingSet{}
	ws.Reset(structures)
	return ws
}

// Reset replaces the whole content of the set
func (ws *WorkingSet) Reset(structures []Structure) {
	ws.structures = append([]Structure(nil), structures...)
	ws.version++
}

// Replace swaps the entry with the same Index for s.
// Returns false when no entry matches.
func (ws *WorkingSet) Replace(s Structure) bool {
	for i := range ws.structures {
		if ws.structures[i].Index == s.Index {
			ws.structures[i] = s
			ws.version++
			return true
		}
	}
	return false
}

// Get returns the structure with the given index
func (ws *WorkingSet) Get(index int) (Structure, bool) {
	for _, s := range ws.structures {
		if s.Index == index {
			return s, true
		}
	}
	return Structure{}, false
}

// All returns a copy of the structures in order
func (ws *WorkingSet) All() []Structure {
	return append([]Structure(nil), ws.structures...)
}

// Except returns the structures in order, leaving out the given index
func (ws *WorkingSet) Except(index int) []Structure {
	out := make([]Structure, 0, len(ws.structures))
	for _, s := range ws.structures {
		if s.Index != index {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of structures
func (ws *WorkingSet) Len() int {
	return len(ws.structures)
}

// Version returns the mutation counter
func (ws *WorkingSet) Version() uint64 {
	return ws.version
}
