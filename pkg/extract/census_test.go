package extract

import (
	"context"
	"testing"

	"github.com/paulmach/osm"

	"osmgraph/pkg/osmio"
)

// Two crossing roads:
//
//	      5
//	      |
//	1--2--3--4
//
// Way 100 is 1,2,3,4; way 200 is 5,3. Node 2 is a transit node, every
// other node is an endpoint or a junction.
const censusXML = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <node id="1" lat="0.0" lon="0.000"/>
  <node id="2" lat="0.0" lon="0.001"/>
  <node id="3" lat="0.0" lon="0.002"/>
  <node id="4" lat="0.0" lon="0.003"/>
  <node id="5" lat="0.001" lon="0.002"/>
  <node id="6" lat="0.5" lon="0.5"/>
  <way id="100">
    <nd ref="1"/><nd ref="2"/><nd ref="3"/><nd ref="4"/>
    <tag k="highway" v="residential"/>
  </way>
  <way id="200">
    <nd ref="5"/><nd ref="3"/>
    <tag k="highway" v="service"/>
  </way>
  <way id="300">
    <nd ref="1"/><nd ref="6"/>
    <tag k="waterway" v="river"/>
  </way>
</osm>`

func TestFindVertices(t *testing.T) {
	vertices, coords, err := FindVertices(context.Background(), osmio.XMLSource([]byte(censusXML)))
	if err != nil {
		t.Fatalf("FindVertices: %v", err)
	}

	for _, want := range []int64{1, 3, 4, 5} {
		if _, ok := vertices[osm.NodeID(want)]; !ok {
			t.Errorf("node %d not classified as vertex", want)
		}
	}
	if _, ok := vertices[2]; ok {
		t.Error("transit node 2 classified as vertex")
	}
	// Node 6 only appears on a non-road way.
	if _, ok := vertices[6]; ok {
		t.Error("node 6 of a non-road way classified as vertex")
	}

	if len(coords) != 5 {
		t.Errorf("%d node coords, want 5", len(coords))
	}
	if pt, ok := coords[3]; !ok || pt.Lon() != 0.002 || pt.Lat() != 0.0 {
		t.Errorf("coords[3] = %v", pt)
	}
	if _, ok := coords[6]; ok {
		t.Error("coords recorded for unreferenced node 6")
	}
}
