// Command alt benchmarks the ALT router (A*, landmarks, triangle
// inequality) over 1000 random vertex pairs.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"osmgraph/pkg/route"
)

func main() {
	debug := flag.Bool("debug", false, "emit traces and landmark distances to data/alt/")
	lcc := flag.Bool("lcc", false, "restrict the graph to its largest connected component")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("usage: alt GRAPH.CSV")
		return
	}

	if err := run(flag.Arg(0), *debug, *lcc); err != nil {
		log.Fatalf("alt: %v", err)
	}
}

func run(path string, debug, lcc bool) error {
	start := time.Now()
	g, err := route.FromPath(path, true)
	if err != nil {
		return err
	}
	if lcc {
		g = route.LargestComponent(g)
	}

	router, err := route.NewAltRouter(g)
	if err != nil {
		return err
	}
	log.Printf("reading graph: %.1f s, %d vertices", time.Since(start).Seconds(), g.NumVertices())

	if debug {
		if err := route.DebugRouter(router, "data/alt/", 2); err != nil {
			return err
		}
		return route.WriteLandmarkCSV(router, "data/alt/graph.csv")
	}

	start = time.Now()
	stats := route.RunBenchmark(router, 1000)
	secs := time.Since(start).Seconds()
	log.Printf("mean: %.2f visited (%.2f%%), bad routes: %d", stats.MeanVisited, stats.MeanVisitedShare, stats.Bad)
	log.Printf("routing: %.1f s, %.4f s/query", secs, secs/float64(stats.Queries))
	return nil
}
