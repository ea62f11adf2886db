// Package osmio opens OSM extracts as streams of typed objects.
//
// XML files (.osm, optionally gzip or bzip2 compressed) are decoded with
// osmxml, PBF files with osmpbf. Both surface the osm.Scanner contract, so
// consumers iterate the same way regardless of the input format.
package osmio

import (
	"compress/bzip2"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
)

// Options selects which element types a scan should decode.
// Two-pass consumers (the vertex census) skip everything they do not need.
type Options struct {
	SkipNodes     bool
	SkipWays      bool
	SkipRelations bool
}

// Source yields a fresh scanner over the same OSM data each time it is
// called. The caller owns the returned scanner and must Close it.
type Source func(ctx context.Context, opts Options) (osm.Scanner, error)

// FileSource returns a Source reading the file at path. The format is
// dispatched on the filename suffix: .osm, .osm.gz, .osm.bz2 are XML,
// .pbf and .osm.pbf are PBF. Anything else fails at scan time.
func FileSource(path string) Source {
	return func(ctx context.Context, opts Options) (osm.Scanner, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}

		switch {
		case strings.HasSuffix(path, ".pbf"):
			sc := osmpbf.New(ctx, f, 1)
			sc.SkipNodes = opts.SkipNodes
			sc.SkipWays = opts.SkipWays
			sc.SkipRelations = opts.SkipRelations
			return &fileScanner{Scanner: sc, f: f}, nil
		case strings.HasSuffix(path, ".osm"):
			return newXMLScanner(ctx, f, f, opts)
		case strings.HasSuffix(path, ".osm.gz"):
			zr, err := gzip.NewReader(f)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("open %s: %w", path, err)
			}
			return newXMLScanner(ctx, zr, f, opts)
		case strings.HasSuffix(path, ".osm.bz2"):
			return newXMLScanner(ctx, bzip2.NewReader(f), f, opts)
		default:
			f.Close()
			return nil, fmt.Errorf("unsupported file suffix: %s", path)
		}
	}
}

// XMLSource returns a Source over in-memory OSM XML. Used by tests.
func XMLSource(data []byte) Source {
	return func(ctx context.Context, opts Options) (osm.Scanner, error) {
		return &filterScanner{
			Scanner: osmxml.New(ctx, strings.NewReader(string(data))),
			opts:    opts,
		}, nil
	}
}

func newXMLScanner(ctx context.Context, r io.Reader, f *os.File, opts Options) (osm.Scanner, error) {
	return &fileScanner{
		Scanner: &filterScanner{Scanner: osmxml.New(ctx, r), opts: opts},
		f:       f,
	}, nil
}

// fileScanner closes the backing file together with the scanner.
type fileScanner struct {
	osm.Scanner
	f *os.File
}

func (s *fileScanner) Close() error {
	err := s.Scanner.Close()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// filterScanner applies element-skip options to scanners that have no
// native skip support (osmxml decodes every element).
type filterScanner struct {
	osm.Scanner
	opts Options
}

func (s *filterScanner) Scan() bool {
	for s.Scanner.Scan() {
		switch s.Scanner.Object().(type) {
		case *osm.Node:
			if s.opts.SkipNodes {
				continue
			}
		case *osm.Way:
			if s.opts.SkipWays {
				continue
			}
		case *osm.Relation:
			if s.opts.SkipRelations {
				continue
			}
		}
		return true
	}
	return false
}
