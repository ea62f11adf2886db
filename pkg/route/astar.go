package route

import (
	"context"

	"github.com/paulmach/orb/planar"
)

// AstarRouter runs bidirectional A* with a euclidean heuristic. The two
// frontiers expand in strict alternation and the search stops on the
// first vertex settled by both sides.
type AstarRouter struct {
	G *Graph
}

func (r *AstarRouter) Graph() *Graph { return r.G }

// Route satisfies Router.
func (r *AstarRouter) Route(ctx context.Context, source, target VertexId) (GraphPath, error) {
	return r.ShortestPath(ctx, source, target)
}

// ShortestPath searches from both endpoints at once. Each side's scores
// are seeded with the straight-line distance between the endpoints; a
// side relaxes neighbors with the straight-line remainder toward its own
// goal. An exhausted heap on either side means no route exists. A
// cancelled or expired context aborts the search.
func (r *AstarRouter) ShortestPath(ctx context.Context, source, target VertexId) (*BidirPath, error) {
	start, ok := r.G.Get(source)
	if !ok {
		return nil, programmingf("source %d not in the graph", source)
	}
	end, ok := r.G.Get(target)
	if !ok {
		return nil, programmingf("target %d not in the graph", target)
	}

	dist := Cost(planar.Distance(start.Geom, end.Geom))
	fwdHeap := &scoreHeap{}
	bwdHeap := &scoreHeap{}
	fwdVisited := make(VisitedMap)
	bwdVisited := make(VisitedMap)
	fwdHeap.Push(NewVertexScore(source, source, 0, dist))
	bwdHeap.Push(NewVertexScore(target, target, 0, dist))

	visitNumber := 0
	for fwdHeap.Len() > 0 && bwdHeap.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vs := fwdHeap.Pop()
		vs.VisitNumber = visitNumber
		visitNumber++
		if _, seen := fwdVisited[vs.Vid]; seen {
			continue
		}
		fwdVisited[vs.Vid] = vs
		if _, seen := bwdVisited[vs.Vid]; seen {
			return &BidirPath{Forward: fwdVisited, Backward: bwdVisited, MeetVertex: vs.Vid, Graph: r.G}, nil
		}
		v, ok := r.G.Get(vs.Vid)
		if !ok {
			return nil, programmingf("settled vertex %d not in the graph", vs.Vid)
		}
		for _, e := range v.Edges {
			w, ok := r.G.Get(e.V2)
			if !ok {
				return nil, programmingf("edge head %d not in the graph", e.V2)
			}
			if _, seen := fwdVisited[w.ID]; !seen {
				fwdHeap.Push(NewVertexScore(
					w.ID, vs.Vid,
					vs.CostBefore+Cost(e.Weight),
					Cost(planar.Distance(w.Geom, end.Geom)),
				))
			}
		}

		vs = bwdHeap.Pop()
		vs.VisitNumber = visitNumber
		visitNumber++
		if _, seen := bwdVisited[vs.Vid]; seen {
			continue
		}
		bwdVisited[vs.Vid] = vs
		if _, seen := fwdVisited[vs.Vid]; seen {
			return &BidirPath{Forward: fwdVisited, Backward: bwdVisited, MeetVertex: vs.Vid, Graph: r.G}, nil
		}
		v, ok = r.G.Get(vs.Vid)
		if !ok {
			return nil, programmingf("settled vertex %d not in the graph", vs.Vid)
		}
		for _, e := range v.Edges {
			w, ok := r.G.Get(e.V2)
			if !ok {
				return nil, programmingf("edge head %d not in the graph", e.V2)
			}
			if _, seen := bwdVisited[w.ID]; !seen {
				bwdHeap.Push(NewVertexScore(
					w.ID, vs.Vid,
					vs.CostBefore+Cost(e.Weight),
					Cost(planar.Distance(w.Geom, start.Geom)),
				))
			}
		}
	}

	return nil, noRoutef("no route from %d to %d", source, target)
}
