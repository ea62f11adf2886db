package route

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
)

// Vertex is a graph node with its point geometry and outgoing edges.
type Vertex struct {
	ID    VertexId
	Geom  orb.Point
	Edges []Edge
}

// Edge is a directed edge with its full linestring geometry. V1 is the
// owning vertex, V2 the head.
type Edge struct {
	V1     VertexId
	V2     VertexId
	Weight Weight
	Geom   orb.LineString
}

// Graph is an in-memory adjacency structure keyed by vertex id.
type Graph struct {
	Vertices map[VertexId]*Vertex
}

func NewGraph() *Graph {
	return &Graph{Vertices: make(map[VertexId]*Vertex)}
}

// AddEdge registers the edge under its tail vertex, creating the vertex
// from the geometry's first point if needed. With bidirectional set, the
// reverse edge (swapped endpoints, reversed geometry) is added too.
func (g *Graph) AddEdge(e Edge, bidirectional bool) {
	v, ok := g.Vertices[e.V1]
	if !ok {
		v = &Vertex{ID: e.V1, Geom: e.Geom[0]}
		g.Vertices[e.V1] = v
	}
	v.Edges = append(v.Edges, e)

	if bidirectional {
		g.AddEdge(Edge{
			V1:     e.V2,
			V2:     e.V1,
			Weight: e.Weight,
			Geom:   reverseLine(e.Geom),
		}, false)
	}
}

// GetEdge finds the edge a->b by scanning a's outgoing edges.
func (g *Graph) GetEdge(a, b VertexId) (Edge, bool) {
	va, ok := g.Vertices[a]
	if !ok {
		return Edge{}, false
	}
	for _, e := range va.Edges {
		if e.V2 == b {
			return e, true
		}
	}
	return Edge{}, false
}

// Get returns the vertex record for id.
func (g *Graph) Get(id VertexId) (*Vertex, bool) {
	v, ok := g.Vertices[id]
	return v, ok
}

// NumVertices returns the number of vertices in the graph.
func (g *Graph) NumVertices() int { return len(g.Vertices) }

// FromPath loads an edge CSV file. With doProject set, coordinates are
// reprojected EPSG:4326 to EPSG:3857 so that euclidean edge lengths, and
// therefore all weights, are meters.
func FromPath(path string, doProject bool) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return FromReader(f, doProject)
}

// FromReader parses edge CSV rows into a graph. Every source edge is
// added in both directions; the oneway column is carried by the data but
// not honored by the graph model.
func FromReader(r io.Reader, doProject bool) (*Graph, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("edge csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range []string{"node1", "node2", "WKT"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("edge csv: missing column %q", name)
		}
	}

	g := NewGraph()
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("edge csv row: %w", err)
		}

		node1, err := strconv.ParseInt(rec[col["node1"]], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("edge csv node1: %w", err)
		}
		node2, err := strconv.ParseInt(rec[col["node2"]], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("edge csv node2: %w", err)
		}
		geom, err := wkt.UnmarshalLineString(rec[col["WKT"]])
		if err != nil {
			return nil, fmt.Errorf("edge csv WKT: %w", err)
		}
		if doProject {
			for i, p := range geom {
				geom[i] = project.WGS84.ToMercator(p)
			}
		}

		g.AddEdge(Edge{
			V1:     VertexId(node1),
			V2:     VertexId(node2),
			Weight: Weight(math.Round(planar.Length(geom))),
			Geom:   geom,
		}, true)
	}
	return g, nil
}

func reverseLine(ls orb.LineString) orb.LineString {
	out := make(orb.LineString, len(ls))
	for i, p := range ls {
		out[len(ls)-1-i] = p
	}
	return out
}
