// Command astar benchmarks bidirectional A* over 1000 random vertex
// pairs, or routes a single snapped pair with -from/-to.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	"osmgraph/pkg/route"
)

func main() {
	debug := flag.Bool("debug", false, "emit per-query visited-vertex traces to data/astar/")
	lcc := flag.Bool("lcc", false, "restrict the graph to its largest connected component")
	from := flag.String("from", "", "route a single query from this lon,lat")
	to := flag.String("to", "", "route a single query to this lon,lat")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("usage: astar GRAPH.CSV")
		return
	}

	if err := run(flag.Arg(0), *debug, *lcc, *from, *to); err != nil {
		log.Fatalf("astar: %v", err)
	}
}

func run(path string, debug, lcc bool, from, to string) error {
	start := time.Now()
	g, err := route.FromPath(path, true)
	if err != nil {
		return err
	}
	if lcc {
		g = route.LargestComponent(g)
	}
	log.Printf("reading graph: %.1f s, %d vertices", time.Since(start).Seconds(), g.NumVertices())

	router := &route.AstarRouter{G: g}

	if from != "" || to != "" {
		return routeOnce(router, from, to)
	}
	if debug {
		return route.DebugRouter(router, "data/astar/", 2)
	}

	start = time.Now()
	stats := route.RunBenchmark(router, 1000)
	secs := time.Since(start).Seconds()
	log.Printf("mean: %.2f visited (%.2f%%), bad routes: %d", stats.MeanVisited, stats.MeanVisitedShare, stats.Bad)
	log.Printf("routing: %.1f s, %.4f s/query", secs, secs/float64(stats.Queries))
	return nil
}

// routeOnce snaps the two coordinates to the nearest vertices and prints
// the path between them.
func routeOnce(router route.Router, from, to string) error {
	snapper := route.NewSnapper(router.Graph())
	source, err := snapVertex(snapper, from, "from")
	if err != nil {
		return err
	}
	target, err := snapVertex(snapper, to, "to")
	if err != nil {
		return err
	}

	path, err := router.Route(context.Background(), source, target)
	if err != nil {
		return err
	}
	vertices, err := path.Vertices()
	if err != nil {
		return err
	}
	cost, err := path.Cost()
	if err != nil {
		return err
	}
	fmt.Printf("route %d -> %d: %d m via %v\n", source, target, cost, vertices)
	return nil
}

func snapVertex(snapper *route.Snapper, coord, name string) (route.VertexId, error) {
	var lon, lat float64
	if _, err := fmt.Sscanf(coord, "%f,%f", &lon, &lat); err != nil {
		return 0, fmt.Errorf("invalid -%s (expected lon,lat): %w", name, err)
	}
	vid, err := snapper.Nearest(project.WGS84.ToMercator(orb.Point{lon, lat}))
	if err != nil {
		return 0, fmt.Errorf("-%s %s: %w", name, coord, err)
	}
	return vid, nil
}
