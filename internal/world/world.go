package world

// Spawnable is implemented by anything that can be placed at a spawn point.
// The world calls back into the asset with the chosen node index.
type Spawnable interface {
	SetSpawnPoint(Index)
}

// GameWorld is the authoritative entity graph: an arena of nodes plus the
// spawn candidate list. It is exclusively owned and mutated by the engine
// goroutine; nothing here is safe for concurrent use.
type GameWorld struct {
	name        string
	description string
	nodes       *Arena
	spawnNodes  []Index
	nextSpawn   int
	nextAssetID AssetID
}

func NewGameWorld(name string) *GameWorld {
	return &GameWorld{
		name:  name,
		nodes: NewArena(),
	}
}

func (w *GameWorld) Name() string {
	return w.name
}

func (w *GameWorld) Description() string {
	return w.description
}

func (w *GameWorld) SetDescription(description string) {
	w.description = description
}

// NextAssetID issues a fresh asset id. All asset ids in a world must come
// from here so they never collide.
func (w *GameWorld) NextAssetID() AssetID {
	id := w.nextAssetID
	w.nextAssetID++
	return id
}

// AddNode inserts a node into the arena and returns its stable index.
func (w *GameWorld) AddNode(n *Node) Index {
	return w.nodes.Insert(n)
}

// AddSpawnNode inserts a node and registers it as a spawn candidate.
func (w *GameWorld) AddSpawnNode(n *Node) Index {
	idx := w.nodes.Insert(n)
	w.spawnNodes = append(w.spawnNodes, idx)
	return idx
}

// Node resolves an index to a live node.
func (w *GameWorld) Node(idx Index) (*Node, bool) {
	return w.nodes.Get(idx)
}

// NodeCount returns the number of live nodes.
func (w *GameWorld) NodeCount() int {
	return w.nodes.Len()
}

// RemoveNode removes a node and strips it from the spawn candidates, keeping
// the invariant that every candidate resolves to a live node.
func (w *GameWorld) RemoveNode(idx Index) (*Node, bool) {
	node, ok := w.nodes.Remove(idx)
	if !ok {
		return nil, false
	}
	kept := w.spawnNodes[:0]
	for _, s := range w.spawnNodes {
		if s != idx {
			kept = append(kept, s)
		}
	}
	w.spawnNodes = kept
	if len(w.spawnNodes) > 0 {
		w.nextSpawn %= len(w.spawnNodes)
	} else {
		w.nextSpawn = 0
	}
	return node, true
}

// Spawn places the asset at a spawn candidate, cycling round-robin through
// the candidate list so consecutive spawns spread across them. Fails with
// ErrNoSpawnpoint when no candidates are configured.
func (w *GameWorld) Spawn(s Spawnable) (Index, error) {
	if len(w.spawnNodes) == 0 {
		return Index{}, ErrNoSpawnpoint
	}
	idx := w.spawnNodes[w.nextSpawn%len(w.spawnNodes)]
	w.nextSpawn++
	s.SetSpawnPoint(idx)
	return idx, nil
}
