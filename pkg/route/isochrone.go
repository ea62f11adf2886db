package route

import (
	"github.com/paulmach/orb"
)

// Isochrone is a single-source shortest-path distance table, optionally
// bounded by a maximum cost.
type Isochrone struct {
	Source     VertexId
	SourceGeom orb.Point
	Distances  map[VertexId]Cost
}

// NewIsochrone runs Dijkstra from source. With maxDist > 0 a relaxation
// is only pushed while the candidate's accumulated cost is strictly below
// maxDist; maxDist 0 leaves the search unbounded.
func NewIsochrone(g *Graph, source VertexId, maxDist Cost) (*Isochrone, error) {
	src, ok := g.Get(source)
	if !ok {
		return nil, programmingf("isochrone source %d not in the graph", source)
	}

	iso := &Isochrone{
		Source:     source,
		SourceGeom: src.Geom,
		Distances:  make(map[VertexId]Cost),
	}

	heap := &scoreHeap{}
	heap.Push(NewVertexScore(source, source, 0, 0))

	for heap.Len() > 0 {
		vs := heap.Pop()
		if _, settled := iso.Distances[vs.Vid]; settled {
			continue
		}
		iso.Distances[vs.Vid] = vs.CostBefore

		v, ok := g.Get(vs.Vid)
		if !ok {
			return nil, programmingf("settled vertex %d not in the graph", vs.Vid)
		}
		for _, e := range v.Edges {
			if _, settled := iso.Distances[e.V2]; settled {
				continue
			}
			next := NewVertexScore(e.V2, vs.Vid, vs.CostBefore+Cost(e.Weight), 0)
			if maxDist == 0 || next.CostBefore < maxDist {
				heap.Push(next)
			}
		}
	}
	return iso, nil
}

// Check returns the distance to vid, or ErrNoRoute if the isochrone never
// reached it.
func (iso *Isochrone) Check(vid VertexId) (Cost, error) {
	c, ok := iso.Distances[vid]
	if !ok {
		return 0, noRoutef("vertex %d not reached from %d", vid, iso.Source)
	}
	return c, nil
}
