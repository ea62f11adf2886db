// Command osmgraph extracts a routable edge CSV from an OSM file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"osmgraph/pkg/extract"
	"osmgraph/pkg/osmio"
)

func main() {
	workers := flag.Int("workers", extract.DefaultWorkers, "number of chain-storage workers")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Println("usage: osmgraph INPUT.OSM OUTPUT.CSV")
		return
	}

	if err := run(flag.Arg(0), flag.Arg(1), *workers); err != nil {
		log.Fatalf("osmgraph: %v", err)
	}
}

func run(input, output string, workers int) error {
	start := time.Now()

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	sink, err := extract.NewCSVSink(f)
	if err != nil {
		f.Close()
		return err
	}

	err = extract.Extract(context.Background(), osmio.FileSource(input), sink, workers)
	if err == nil {
		err = sink.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	log.Printf("graph built in %.1f s", time.Since(start).Seconds())
	return nil
}
