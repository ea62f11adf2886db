package route

import "github.com/paulmach/orb"

// GraphPath is a reconstructed shortest path. Implementations hold the
// visited maps of the search that produced them; reconstruction failures
// after a successful search are programming errors.
type GraphPath interface {
	Cost() (Cost, error)
	Vertices() ([]VertexId, error)
	Edges() ([]Edge, error)
	VertexGeoms() ([]orb.Point, error)
	VisitedMaps() []VisitedMap
}

// OnewayPath is the result of a single-direction search.
type OnewayPath struct {
	Scores VisitedMap
	Source VertexId
	Target VertexId
	Graph  *Graph
}

func (p *OnewayPath) Cost() (Cost, error) {
	vs, ok := p.Scores[p.Target]
	if !ok {
		return 0, programmingf("target %d not in visited map", p.Target)
	}
	return vs.CostBefore, nil
}

func (p *OnewayPath) Vertices() ([]VertexId, error) {
	vs, ok := p.Scores[p.Target]
	if !ok {
		return nil, programmingf("target %d not in visited map", p.Target)
	}
	out := []VertexId{vs.Vid}
	for vs.Vid != p.Source {
		vs, ok = p.Scores[vs.From]
		if !ok {
			return nil, programmingf("predecessor %d not in visited map", vs.From)
		}
		out = append(out, vs.Vid)
	}
	reverseIds(out)
	return out, nil
}

func (p *OnewayPath) Edges() ([]Edge, error) {
	return pathEdges(p.Graph, p)
}

func (p *OnewayPath) VertexGeoms() ([]orb.Point, error) {
	return vertexGeoms(p.Graph, p)
}

func (p *OnewayPath) VisitedMaps() []VisitedMap {
	return []VisitedMap{p.Scores}
}

// BidirPath is the result of a bidirectional search: two visited maps and
// the vertex where the frontiers met.
type BidirPath struct {
	Forward    VisitedMap
	Backward   VisitedMap
	MeetVertex VertexId
	Graph      *Graph
}

// Cost is the sum of both sides' arrival costs at the meet vertex.
func (p *BidirPath) Cost() (Cost, error) {
	f, ok := p.Forward[p.MeetVertex]
	if !ok {
		return 0, programmingf("meet vertex %d not in forward map", p.MeetVertex)
	}
	b, ok := p.Backward[p.MeetVertex]
	if !ok {
		return 0, programmingf("meet vertex %d not in backward map", p.MeetVertex)
	}
	return f.CostBefore + b.CostBefore, nil
}

// collectVertices walks predecessors from the meet vertex to the side's
// root (stored with From == Vid).
func (p *BidirPath) collectVertices(scores VisitedMap) ([]VertexId, error) {
	out := []VertexId{p.MeetVertex}
	current := p.MeetVertex
	for {
		vs, ok := scores[current]
		if !ok {
			return nil, programmingf("vertex %d not in visited map", current)
		}
		if vs.Vid == vs.From {
			break
		}
		current = vs.From
		out = append(out, vs.From)
	}
	return out, nil
}

// Vertices splices the two halves: forward predecessors reversed, then
// backward predecessors with the duplicated meet vertex dropped.
func (p *BidirPath) Vertices() ([]VertexId, error) {
	fwd, err := p.collectVertices(p.Forward)
	if err != nil {
		return nil, err
	}
	reverseIds(fwd)
	bwd, err := p.collectVertices(p.Backward)
	if err != nil {
		return nil, err
	}
	return append(fwd, bwd[1:]...), nil
}

func (p *BidirPath) Edges() ([]Edge, error) {
	return pathEdges(p.Graph, p)
}

func (p *BidirPath) VertexGeoms() ([]orb.Point, error) {
	return vertexGeoms(p.Graph, p)
}

func (p *BidirPath) VisitedMaps() []VisitedMap {
	return []VisitedMap{p.Forward, p.Backward}
}

func pathEdges(g *Graph, p GraphPath) ([]Edge, error) {
	vertices, err := p.Vertices()
	if err != nil {
		return nil, err
	}
	edges := make([]Edge, 0, len(vertices)-1)
	for i := 1; i < len(vertices); i++ {
		e, ok := g.GetEdge(vertices[i-1], vertices[i])
		if !ok {
			return nil, programmingf("edge %d->%d not in the graph", vertices[i-1], vertices[i])
		}
		edges = append(edges, e)
	}
	return edges, nil
}

func vertexGeoms(g *Graph, p GraphPath) ([]orb.Point, error) {
	vertices, err := p.Vertices()
	if err != nil {
		return nil, err
	}
	pts := make([]orb.Point, 0, len(vertices))
	for _, vid := range vertices {
		v, ok := g.Get(vid)
		if !ok {
			return nil, programmingf("vertex %d not in the graph", vid)
		}
		pts = append(pts, v.Geom)
	}
	return pts, nil
}

func reverseIds(ids []VertexId) {
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
}
