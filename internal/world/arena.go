package world

// Index is a stable handle to a node slot in the arena. A generation counter
// guards against stale handles: removing a node invalidates every Index
// previously issued for its slot, even after the slot is reused.
type Index struct {
	slot       int
	generation uint64
}

type arenaEntry struct {
	node       *Node
	generation uint64
}

// Arena stores nodes in reusable slots addressed by generational indices.
// Indices substitute for pointers everywhere nodes reference each other.
type Arena struct {
	entries []arenaEntry
	free    []int
	count   int
}

func NewArena() *Arena {
	return &Arena{}
}

// Insert places n in a free slot and returns its index.
func (a *Arena) Insert(n *Node) Index {
	if len(a.free) > 0 {
		slot := a.free[len(a.free)-1]
		a.free = a.free[:len(a.free)-1]
		a.entries[slot].node = n
		a.count++
		return Index{slot: slot, generation: a.entries[slot].generation}
	}

	a.entries = append(a.entries, arenaEntry{node: n})
	a.count++
	return Index{slot: len(a.entries) - 1}
}

// Get resolves idx to a live node. Stale or out-of-range indices return false.
func (a *Arena) Get(idx Index) (*Node, bool) {
	if idx.slot < 0 || idx.slot >= len(a.entries) {
		return nil, false
	}
	entry := a.entries[idx.slot]
	if entry.node == nil || entry.generation != idx.generation {
		return nil, false
	}
	return entry.node, true
}

// Remove frees the slot at idx and returns the node that occupied it. The
// slot's generation is bumped so outstanding indices stop resolving.
func (a *Arena) Remove(idx Index) (*Node, bool) {
	node, ok := a.Get(idx)
	if !ok {
		return nil, false
	}
	a.entries[idx.slot].node = nil
	a.entries[idx.slot].generation++
	a.free = append(a.free, idx.slot)
	a.count--
	return node, true
}

// Len returns the number of live nodes.
func (a *Arena) Len() int {
	return a.count
}
