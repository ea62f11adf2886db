package extract

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/paulmach/osm"

	"osmgraph/pkg/osmio"
	"osmgraph/pkg/route"
)

type collectSink struct {
	edges []Edge
}

func (s *collectSink) WriteEdge(e Edge) error {
	s.edges = append(s.edges, e)
	return nil
}

// Same street layout as the census fixture, plus a detached road that
// changes category mid-way at a plain transit node (late promotion).
const pipelineXML = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <node id="1" lat="0.0" lon="0.000"/>
  <node id="2" lat="0.0" lon="0.001"/>
  <node id="3" lat="0.0" lon="0.002"/>
  <node id="4" lat="0.0" lon="0.003"/>
  <node id="5" lat="0.001" lon="0.002"/>
  <node id="10" lat="0.010" lon="0.000"/>
  <node id="11" lat="0.010" lon="0.001"/>
  <node id="12" lat="0.010" lon="0.002"/>
  <way id="100">
    <nd ref="1"/><nd ref="2"/><nd ref="3"/><nd ref="4"/>
    <tag k="highway" v="residential"/>
  </way>
  <way id="200">
    <nd ref="5"/><nd ref="3"/>
    <tag k="highway" v="residential"/>
  </way>
  <way id="400">
    <nd ref="10"/><nd ref="11"/>
    <tag k="highway" v="primary"/>
  </way>
  <way id="500">
    <nd ref="11"/><nd ref="12"/>
    <tag k="highway" v="service"/>
  </way>
</osm>`

func runExtract(t *testing.T, workers int) []Edge {
	t.Helper()
	sink := &collectSink{}
	err := Extract(context.Background(), osmio.XMLSource([]byte(pipelineXML)), sink, workers)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	return sink.edges
}

func TestExtractEmitsCompleteCover(t *testing.T) {
	edges := runExtract(t, 4)

	// Way 100 splits at the junction 3, ways 400/500 split at the
	// promoted node 11: five edges in total.
	if len(edges) != 5 {
		t.Fatalf("%d edges, want 5: %+v", len(edges), edges)
	}

	// Every consecutive node pair of every routable way is covered by
	// exactly one emitted edge.
	cover := map[string]int{}
	for _, e := range edges {
		for i := 1; i < len(e.Geometry); i++ {
			a, b := e.Geometry[i-1], e.Geometry[i]
			k := fmt.Sprintf("%v-%v", a, b)
			if fmt.Sprintf("%v", a) > fmt.Sprintf("%v", b) {
				k = fmt.Sprintf("%v-%v", b, a)
			}
			cover[k]++
		}
	}
	if len(cover) != 6 {
		t.Errorf("%d distinct segments, want 6: %v", len(cover), cover)
	}
	for k, n := range cover {
		if n != 1 {
			t.Errorf("segment %s covered %d times", k, n)
		}
	}
}

func TestExtractEndpointsAreVertices(t *testing.T) {
	edges := runExtract(t, 4)

	// Census vertices plus the late-promoted junction 11.
	wantVertices := map[osm.NodeID]bool{1: true, 3: true, 4: true, 5: true, 10: true, 11: true, 12: true}
	interior := map[osm.NodeID]bool{2: true}

	for _, e := range edges {
		if !wantVertices[e.Node1] || !wantVertices[e.Node2] {
			t.Errorf("edge %d->%d has a non-vertex endpoint", e.Node1, e.Node2)
		}
		if interior[e.Node1] || interior[e.Node2] {
			t.Errorf("edge %d->%d ends on a transit node", e.Node1, e.Node2)
		}
	}
}

func TestExtractSingleWorkerMatchesParallel(t *testing.T) {
	one := runExtract(t, 1)
	many := runExtract(t, 8)
	if len(one) != len(many) {
		t.Errorf("worker counts disagree: 1 worker -> %d edges, 8 workers -> %d", len(one), len(many))
	}
}

func TestExtractCSVRoundtrip(t *testing.T) {
	var buf bytes.Buffer
	sink, err := NewCSVSink(&buf)
	if err != nil {
		t.Fatalf("NewCSVSink: %v", err)
	}
	if err := Extract(context.Background(), osmio.XMLSource([]byte(pipelineXML)), sink, 2); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if err := sink.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	g, err := route.FromReader(&buf, false)
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	// 7 distinct edge endpoints across both road clusters.
	if g.NumVertices() != 7 {
		t.Errorf("%d graph vertices, want 7", g.NumVertices())
	}
	if _, ok := g.GetEdge(route.VertexId(3), route.VertexId(5)); !ok {
		t.Error("edge 3->5 missing from loaded graph")
	}
	if _, ok := g.GetEdge(route.VertexId(5), route.VertexId(3)); !ok {
		t.Error("reverse edge 5->3 missing from loaded graph")
	}
}
