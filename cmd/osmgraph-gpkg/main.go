// Command osmgraph-gpkg extracts a routable edge layer into a GeoPackage.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"osmgraph/pkg/extract"
	"osmgraph/pkg/osmio"
)

func main() {
	workers := flag.Int("workers", extract.DefaultWorkers, "number of chain-storage workers")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Println("usage: osmgraph-gpkg INPUT.OSM.PBF OUTPUT.GPKG")
		return
	}

	if err := run(flag.Arg(0), flag.Arg(1), *workers); err != nil {
		log.Fatalf("osmgraph-gpkg: %v", err)
	}
}

func run(input, output string, workers int) error {
	start := time.Now()

	sink, err := extract.NewGPKGSink(output)
	if err != nil {
		return err
	}

	err = extract.Extract(context.Background(), osmio.FileSource(input), sink, workers)
	if cerr := sink.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	log.Printf("graph built in %.1f s", time.Since(start).Seconds())
	return nil
}
