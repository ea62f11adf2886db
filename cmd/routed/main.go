// Command routed serves shortest-path queries over HTTP.
package main

import (
	"flag"
	"fmt"
	"log"

	"osmgraph/pkg/api"
	"osmgraph/pkg/route"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("usage: routed GRAPH.CSV")
		return
	}

	if err := run(flag.Arg(0), *addr); err != nil {
		log.Fatalf("routed: %v", err)
	}
}

func run(path, addr string) error {
	g, err := route.FromPath(path, true)
	if err != nil {
		return err
	}
	// Drop unreachable islands so snapped endpoints stay routable.
	g = route.LargestComponent(g)
	log.Printf("graph: %d vertices", g.NumVertices())

	router, err := route.NewAltRouter(g)
	if err != nil {
		return err
	}

	handlers := api.NewHandlers(router, route.NewSnapper(g), api.StatsResponse{
		NumVertices:  g.NumVertices(),
		NumLandmarks: len(router.Landmarks),
	})
	return api.ListenAndServe(api.NewServer(api.DefaultConfig(addr), handlers))
}
