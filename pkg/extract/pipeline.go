package extract

import (
	"context"
	"log"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"golang.org/x/sync/errgroup"

	"osmgraph/pkg/osmio"
)

// Edge is a completed road segment between two vertices.
type Edge struct {
	Node1    osm.NodeID
	Node2    osm.NodeID
	Geometry orb.LineString
	Category RoadCat
	Lanes    uint8
	OneWay   OneWay
	MaxSpeed MaxSpeed
}

// EdgeSink receives completed edges. Implementations are driven by a
// single goroutine, so they need no internal locking.
type EdgeSink interface {
	WriteEdge(e Edge) error
}

const (
	// DefaultWorkers is the number of chain-storage workers.
	DefaultWorkers = 8
	// chanCap bounds both pipeline channels, giving backpressure from
	// the writer to the workers and from the workers to the reader.
	chanCap = 10
)

// Extract runs the full extraction pipeline: vertex census, then a single
// reader feeding ways to workers that each own a private ChainStorage,
// then a writer draining completed edges into the sink.
//
// Late vertex promotions stay local to a worker until the end of the
// stream; the final reconciliation seeds a central storage with the union
// of every worker's vertex set and re-inserts the residual partial chains,
// so fragments split across workers still coalesce.
func Extract(ctx context.Context, src osmio.Source, sink EdgeSink, workers int) error {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	vertices, coords, err := FindVertices(ctx, src)
	if err != nil {
		return err
	}
	log.Printf("census: %d vertices", len(vertices))

	g, ctx := errgroup.WithContext(ctx)
	ways := make(chan *osm.Way, chanCap)
	chains := make(chan []*NodeChain, chanCap)
	stores := make([]*ChainStorage, workers)

	g.Go(func() error {
		defer close(ways)
		sc, err := src(ctx, osmio.Options{SkipNodes: true, SkipRelations: true})
		if err != nil {
			return err
		}
		defer sc.Close()
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
			select {
			case ways <- w:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return sc.Err()
	})

	var workersDone sync.WaitGroup
	for i := range workers {
		cs := NewChainStorage(vertices)
		stores[i] = cs
		workersDone.Add(1)
		g.Go(func() error {
			defer workersDone.Done()
			for w := range ways {
				done := cs.InsertWay(w)
				if len(done) == 0 {
					continue
				}
				select {
				case chains <- done:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		workersDone.Wait()
		defer close(chains)
		return reconcile(ctx, stores, chains)
	})

	g.Go(func() error {
		for done := range chains {
			for _, nc := range done {
				e, ok := edgeFromChain(nc, coords)
				if !ok {
					continue
				}
				if err := sink.WriteEdge(e); err != nil {
					return err
				}
			}
		}
		return nil
	})

	return g.Wait()
}

// reconcile merges the workers' leftovers through a central storage. A
// chain that stayed partial in one worker may complete against a chain
// from another, and vertex promotions made inside any worker must be
// visible while doing so.
func reconcile(ctx context.Context, stores []*ChainStorage, chains chan<- []*NodeChain) error {
	central := NewChainStorage(nil)
	for _, cs := range stores {
		for v := range cs.Vertices {
			central.Vertices[v] = struct{}{}
		}
	}

	for _, cs := range stores {
		keys := make([]osm.NodeID, 0, len(cs.Edges))
		for k := range cs.Edges {
			keys = append(keys, k)
		}
		for _, k := range keys {
			nc, ok := cs.Edges[k]
			if !ok {
				// already drained through its other end
				continue
			}
			cs.Remove(nc)
			done := central.Insert(nc)
			if len(done) == 0 {
				continue
			}
			select {
			case chains <- done:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	if n := len(central.Edges); n > 0 {
		log.Printf("reconciliation: %d dangling chain ends dropped", n)
	}
	return nil
}

// edgeFromChain resolves a completed chain's nodes to coordinates. Chains
// with fewer than two resolvable nodes have no geometry and are skipped.
func edgeFromChain(nc *NodeChain, coords NodeCoords) (Edge, bool) {
	geom := make(orb.LineString, 0, len(nc.Nodes))
	for _, nid := range nc.Nodes {
		if pt, ok := coords[nid]; ok {
			geom = append(geom, pt)
		}
	}
	if len(geom) < 2 {
		return Edge{}, false
	}
	ends := nc.Ends()
	return Edge{
		Node1:    ends[0],
		Node2:    ends[1],
		Geometry: geom,
		Category: nc.Category,
		Lanes:    nc.Lanes,
		OneWay:   nc.OneWay,
		MaxSpeed: nc.MaxSpeed,
	}, true
}
