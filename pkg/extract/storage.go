package extract

import "github.com/paulmach/osm"

// Vertices is the set of nodes that act as graph vertices.
type Vertices map[osm.NodeID]struct{}

// ChainStorage coalesces way fragments into completed edges. It keeps
// partial chains indexed by their dangling (non-vertex) ends; a chain with
// two dangling ends occupies two entries pointing at the same value. The
// vertex set grows over time as dissimilar chains meeting at a node force
// that node to become a vertex.
type ChainStorage struct {
	Edges    map[osm.NodeID]*NodeChain
	Vertices Vertices
}

// NewChainStorage creates a storage over a private copy of the vertex set.
func NewChainStorage(vertices Vertices) *ChainStorage {
	own := make(Vertices, len(vertices))
	for v := range vertices {
		own[v] = struct{}{}
	}
	return &ChainStorage{
		Edges:    make(map[osm.NodeID]*NodeChain),
		Vertices: own,
	}
}

func (cs *ChainStorage) isVertex(n osm.NodeID) bool {
	_, ok := cs.Vertices[n]
	return ok
}

// Remove drops the chain's entries at both of its ends.
func (cs *ChainStorage) Remove(nc *NodeChain) {
	for _, e := range nc.Ends() {
		delete(cs.Edges, e)
	}
}

// InsertWay splits a way into chains at every known vertex and feeds each
// to Insert, returning the completed edges. Ways that are not routable
// roads, or shorter than two nodes, contribute nothing.
func (cs *ChainStorage) InsertWay(w *osm.Way) []*NodeChain {
	cat, ok := ParseRoadCat(w.Tags.Find("highway"))
	if !ok || len(w.Nodes) < 2 {
		return nil
	}
	ow := ParseOneWay(w.Tags.Find("oneway"))
	ms := ParseMaxSpeed(w.Tags.Find("maxspeed"))
	lanes := ParseLanes(w.Tags.Find("lanes"))

	end := len(w.Nodes) - 1
	prev := 0
	var candidates []*NodeChain
	for cur, wn := range w.Nodes {
		if cur > prev && (cs.isVertex(wn.ID) || cur == end) {
			nodes := make([]osm.NodeID, 0, cur-prev+1)
			for _, n := range w.Nodes[prev : cur+1] {
				nodes = append(nodes, n.ID)
			}
			candidates = append(candidates, &NodeChain{
				WayID:    w.ID,
				Nodes:    nodes,
				Category: cat,
				Lanes:    lanes,
				OneWay:   ow,
				MaxSpeed: ms,
			})
			prev = cur
		}
	}

	var out []*NodeChain
	for _, nc := range candidates {
		out = append(out, cs.Insert(nc)...)
	}
	return out
}

// Insert runs the coalescing protocol on a single chain.
//
// A chain whose both ends are vertices is a completed edge and is returned
// immediately. Otherwise each dangling end is checked against the stored
// partial chains: a match with equal attributes couples the two and the
// joined chain is re-inserted; a match with differing attributes means the
// shared node is an implicit junction between dissimilar roads, so it is
// promoted to a vertex and both chains are re-inserted. A chain that
// attaches to nothing is stored under each of its dangling ends.
func (cs *ChainStorage) Insert(nc *NodeChain) []*NodeChain {
	ends := nc.Ends()

	if cs.isVertex(ends[0]) && cs.isVertex(ends[1]) {
		return []*NodeChain{nc}
	}

	for _, e := range ends {
		if cs.isVertex(e) {
			continue
		}
		nc2, ok := cs.Edges[e]
		if !ok {
			continue
		}
		if nc3, ok := nc.Couple(nc2); ok {
			cs.Remove(nc2)
			return cs.Insert(nc3)
		}
		// Late promotion: the chains meet at e but cannot merge, so e is
		// a junction. Re-insert both; each now terminates at a vertex.
		cs.Vertices[e] = struct{}{}
		cs.Remove(nc2)
		out := cs.Insert(nc)
		return append(out, cs.Insert(nc2)...)
	}

	for _, e := range ends {
		if !cs.isVertex(e) {
			cs.Edges[e] = nc
		}
	}
	return nil
}
