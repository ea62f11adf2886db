package route

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
)

// NumLandmarks is the number of angular sectors sampled for landmarks.
const NumLandmarks = 16

// AltRouter is an ALT (A*, Landmarks, Triangle inequality) engine.
// Landmarks are the farthest vertices from the centroid in each angular
// sector; one unbounded isochrone per landmark yields the distance
// vectors that drive the lower-bound heuristic.
type AltRouter struct {
	G            *Graph
	Center       orb.Point
	Landmarks    []VertexId
	LandmarkDist map[VertexId][]Cost
}

// NewAltRouter selects landmarks and precomputes their isochrones.
func NewAltRouter(g *Graph) (*AltRouter, error) {
	if g.NumVertices() == 0 {
		return nil, fmt.Errorf("alt: graph has no vertices")
	}

	var sumX, sumY float64
	for _, v := range g.Vertices {
		sumX += v.Geom.X()
		sumY += v.Geom.Y()
	}
	n := float64(g.NumVertices())
	center := orb.Point{sumX / n, sumY / n}

	// Farthest vertex from the centroid in each sector.
	type candidate struct {
		dist float64
		vid  VertexId
		ok   bool
	}
	sectorWidth := 360.0 / NumLandmarks
	farthest := make([]candidate, NumLandmarks)
	for vid, v := range g.Vertices {
		dist := planar.Distance(v.Geom, center)
		sector := int(bearing(v.Geom, center) / sectorWidth)
		if sector >= NumLandmarks {
			sector = NumLandmarks - 1
		}
		if dist > farthest[sector].dist || !farthest[sector].ok {
			farthest[sector] = candidate{dist: dist, vid: vid, ok: true}
		}
	}
	seen := make(map[VertexId]struct{})
	var landmarks []VertexId
	for _, c := range farthest {
		if !c.ok {
			continue
		}
		if _, dup := seen[c.vid]; dup {
			continue
		}
		seen[c.vid] = struct{}{}
		landmarks = append(landmarks, c.vid)
	}

	// One unbounded isochrone per landmark, in parallel.
	isos := make([]*Isochrone, len(landmarks))
	var wg sync.WaitGroup
	for i, lm := range landmarks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			iso, err := NewIsochrone(g, lm, 0)
			if err == nil {
				isos[i] = iso
			}
		}()
	}
	wg.Wait()

	kept := isos[:0]
	for _, iso := range isos {
		if iso != nil {
			kept = append(kept, iso)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("alt: no landmark isochrone succeeded")
	}
	log.Printf("alt: %d landmarks", len(kept))

	// Distance vectors for vertices reachable from every landmark.
	// A vertex missing from any isochrone gets no entry; the estimate
	// then falls back to zero for it.
	landmarkDist := make(map[VertexId][]Cost, len(kept[0].Distances))
outer:
	for vid := range kept[0].Distances {
		dists := make([]Cost, len(kept))
		for i, iso := range kept {
			c, ok := iso.Distances[vid]
			if !ok {
				continue outer
			}
			dists[i] = c
		}
		landmarkDist[vid] = dists
	}

	lmIds := make([]VertexId, len(kept))
	for i, iso := range kept {
		lmIds[i] = iso.Source
	}
	return &AltRouter{G: g, Center: center, Landmarks: lmIds, LandmarkDist: landmarkDist}, nil
}

func (r *AltRouter) Graph() *Graph { return r.G }

// Center4326 reprojects the vertex centroid back to lon/lat.
func (r *AltRouter) Center4326() (float64, float64) {
	p := project.Mercator.ToWGS84(r.Center)
	return p.X(), p.Y()
}

// Estimate is the triangle-inequality lower bound on d(v, target):
// the maximum of |d(v, L) − d(target, L)| over the landmarks. Vertices
// without a distance vector yield zero, which stays admissible.
func (r *AltRouter) Estimate(v, target VertexId) Cost {
	x1, ok := r.LandmarkDist[v]
	if !ok {
		return 0
	}
	x2, ok := r.LandmarkDist[target]
	if !ok {
		return 0
	}
	var best Cost
	for i := range x1 {
		d := x2[i] - x1[i]
		if d < 0 {
			d = -d
		}
		if d > best {
			best = d
		}
	}
	return best
}

// Route satisfies Router.
func (r *AltRouter) Route(ctx context.Context, source, target VertexId) (GraphPath, error) {
	return r.ShortestPath(ctx, source, target)
}

// ShortestPath runs single-direction A* with the landmark heuristic,
// settling each vertex at most once and stopping when the target pops.
// A cancelled or expired context aborts the search.
func (r *AltRouter) ShortestPath(ctx context.Context, source, target VertexId) (*OnewayPath, error) {
	heap := &scoreHeap{}
	visited := make(VisitedMap)
	heap.Push(NewVertexScore(source, source, 0, r.Estimate(source, target)))

	visitNumber := 0
	for heap.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vs := heap.Pop()
		vs.VisitNumber = visitNumber
		visitNumber++
		if _, seen := visited[vs.Vid]; seen {
			continue
		}
		visited[vs.Vid] = vs
		if vs.Vid == target {
			return &OnewayPath{Scores: visited, Source: source, Target: target, Graph: r.G}, nil
		}

		v, ok := r.G.Get(vs.Vid)
		if !ok {
			return nil, programmingf("settled vertex %d not in the graph", vs.Vid)
		}
		for _, e := range v.Edges {
			if _, seen := visited[e.V2]; !seen {
				heap.Push(NewVertexScore(
					e.V2, vs.Vid,
					vs.CostBefore+Cost(e.Weight),
					r.Estimate(e.V2, target),
				))
			}
		}
	}
	return nil, noRoutef("no route from %d to %d", source, target)
}

// bearing is the azimuth in degrees [0, 360) of the vector from other
// to p.
func bearing(p, other orb.Point) float64 {
	dx := p.X() - other.X()
	dy := p.Y() - other.Y()
	deg := math.Atan2(dy, dx) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}
