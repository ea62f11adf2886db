package route

import (
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/tidwall/rtree"
)

// maxSnapDistMeters bounds how far a query point may sit from the road
// network. Graph coordinates are projected meters, so the planar distance
// is meaningful.
const maxSnapDistMeters = 500.0

// ErrPointTooFar is returned when the query point is too far from any
// vertex of the road network.
var ErrPointTooFar = errors.New("point too far from road network")

// Snapper resolves arbitrary points to the nearest graph vertex through
// an r-tree over the vertex geometry.
type Snapper struct {
	tr rtree.RTreeG[VertexId]
	g  *Graph
}

// NewSnapper indexes every vertex of the graph.
func NewSnapper(g *Graph) *Snapper {
	s := &Snapper{g: g}
	for vid, v := range g.Vertices {
		pt := [2]float64{v.Geom.X(), v.Geom.Y()}
		s.tr.Insert(pt, pt, vid)
	}
	return s
}

// Nearest returns the vertex closest to p (in the graph's projected
// plane), or ErrPointTooFar beyond the snap cutoff.
func (s *Snapper) Nearest(p orb.Point) (VertexId, error) {
	target := [2]float64{p.X(), p.Y()}
	var best VertexId
	found := false
	s.tr.Nearby(
		rtree.BoxDist[float64, VertexId](target, target, nil),
		func(min, max [2]float64, vid VertexId, dist float64) bool {
			best = vid
			found = true
			return false
		},
	)
	if !found {
		return 0, ErrPointTooFar
	}
	if v, ok := s.g.Get(best); !ok || planar.Distance(v.Geom, p) > maxSnapDistMeters {
		return 0, ErrPointTooFar
	}
	return best, nil
}
