package extract

import (
	"context"
	"fmt"
	"log"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"

	"osmgraph/pkg/osmio"
)

// NodeCoords maps node ids to their (lon, lat) coordinates.
type NodeCoords map[osm.NodeID]orb.Point

// FindVertices scans the source twice and classifies nodes.
//
// Pass 1 walks the ways: every node of a routable way is counted once, and
// every interior node once more. A node with count 2 (strictly inside a
// single way, or the end of exactly two ways) is a transit node; any other
// count marks a junction or a dead end, so the node becomes a vertex.
//
// Pass 2 walks the nodes and records coordinates for every counted node.
func FindVertices(ctx context.Context, src osmio.Source) (Vertices, NodeCoords, error) {
	counts := make(map[osm.NodeID]int)

	sc, err := src(ctx, osmio.Options{SkipNodes: true, SkipRelations: true})
	if err != nil {
		return nil, nil, err
	}
	for sc.Scan() {
		w, ok := sc.Object().(*osm.Way)
		if !ok {
			continue
		}
		if _, ok := ParseRoadCat(w.Tags.Find("highway")); !ok {
			continue
		}
		if len(w.Nodes) < 2 {
			continue
		}
		for _, wn := range w.Nodes {
			counts[wn.ID]++
		}
		for _, wn := range w.Nodes[1 : len(w.Nodes)-1] {
			counts[wn.ID]++
		}
	}
	if err := sc.Err(); err != nil {
		sc.Close()
		return nil, nil, fmt.Errorf("census pass 1 (ways): %w", err)
	}
	sc.Close()
	log.Printf("census pass 1 complete: %d referenced nodes", len(counts))

	coords := make(NodeCoords, len(counts))
	sc, err = src(ctx, osmio.Options{SkipWays: true, SkipRelations: true})
	if err != nil {
		return nil, nil, err
	}
	for sc.Scan() {
		n, ok := sc.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, used := counts[n.ID]; used {
			coords[n.ID] = orb.Point{n.Lon, n.Lat}
		}
	}
	if err := sc.Err(); err != nil {
		sc.Close()
		return nil, nil, fmt.Errorf("census pass 2 (nodes): %w", err)
	}
	sc.Close()
	log.Printf("census pass 2 complete: %d node coordinates", len(coords))

	vertices := make(Vertices)
	for id, c := range counts {
		if c != 2 {
			vertices[id] = struct{}{}
		}
	}
	return vertices, coords, nil
}
