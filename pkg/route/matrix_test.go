package route

import "testing"

func TestFloydWarshallMatchesDijkstra(t *testing.T) {
	g := culDeSacGraph()
	fw := NewFloydWarshall(g)

	for source := range g.Vertices {
		iso, err := NewIsochrone(g, source, 0)
		if err != nil {
			t.Fatalf("isochrone from %d: %v", source, err)
		}
		for target, want := range iso.Distances {
			got, ok := fw.Weight(source, target)
			if !ok {
				t.Errorf("Weight(%d,%d) unreachable, dijkstra says %d", source, target, want)
				continue
			}
			if got != want {
				t.Errorf("Weight(%d,%d) = %d, dijkstra = %d", source, target, got, want)
			}
		}
	}
}

func TestFloydWarshallUnreachable(t *testing.T) {
	g := NewGraph()
	g.AddEdge(Edge{V1: 1, V2: 2, Weight: 5, Geom: lineBetween(0, 0, 5, 0)}, true)
	g.AddEdge(Edge{V1: 3, V2: 4, Weight: 5, Geom: lineBetween(50, 0, 55, 0)}, true)

	fw := NewFloydWarshall(g)
	if _, ok := fw.Weight(1, 3); ok {
		t.Error("cross-component distance reported as reachable")
	}
	if d, ok := fw.Weight(1, 1); !ok || d != 0 {
		t.Errorf("Weight(1,1) = %d, %v", d, ok)
	}
	if _, ok := fw.Weight(1, 99); ok {
		t.Error("unknown vertex reported as reachable")
	}
}
