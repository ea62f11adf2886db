package route

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// DebugRouter runs a handful of random queries and dumps, per query,
// route_<i>.csv (the straight line between the endpoints) and
// visited_<i>.csv (every settled vertex with its predecessor segment and
// costs). The output loads directly into QGIS for inspection.
func DebugRouter(r Router, pathPrefix string, queries int) error {
	if err := os.MkdirAll(pathPrefix, 0o755); err != nil {
		return err
	}

	g := r.Graph()
	vids := make([]VertexId, 0, g.NumVertices())
	for vid := range g.Vertices {
		vids = append(vids, vid)
	}
	if len(vids) == 0 {
		return fmt.Errorf("debug: graph has no vertices")
	}

	for i := 0; i < queries; i++ {
		v1 := vids[rand.Intn(len(vids))]
		v2 := vids[rand.Intn(len(vids))]
		if err := debugQuery(r, pathPrefix, i, v1, v2); err != nil {
			return err
		}
	}
	return nil
}

func debugQuery(r Router, pathPrefix string, i int, v1, v2 VertexId) error {
	g := r.Graph()
	vtx1, ok := g.Get(v1)
	if !ok {
		return programmingf("vertex %d not in the graph", v1)
	}
	vtx2, ok := g.Get(v2)
	if !ok {
		return programmingf("vertex %d not in the graph", v2)
	}

	err := writeCSV(filepath.Join(pathPrefix, fmt.Sprintf("route_%d.csv", i)), func(w *csv.Writer) error {
		if err := w.Write(visitedHeader); err != nil {
			return err
		}
		line := orb.LineString{vtx1.Geom, vtx2.Geom}
		return w.Write(visitedRow(VertexScore{Vid: v2, From: v1}, line))
	})
	if err != nil {
		return err
	}

	path, err := r.Route(context.Background(), v1, v2)
	if err != nil {
		// NoRoute between random endpoints is not worth a trace.
		return nil
	}

	return writeCSV(filepath.Join(pathPrefix, fmt.Sprintf("visited_%d.csv", i)), func(w *csv.Writer) error {
		if err := w.Write(visitedHeader); err != nil {
			return err
		}
		for _, visited := range path.VisitedMaps() {
			for _, vs := range visited {
				from, ok := g.Get(vs.From)
				if !ok {
					return programmingf("vertex %d not in the graph", vs.From)
				}
				to, ok := g.Get(vs.Vid)
				if !ok {
					return programmingf("vertex %d not in the graph", vs.Vid)
				}
				if err := w.Write(visitedRow(vs, orb.LineString{from.Geom, to.Geom})); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// WriteLandmarkCSV dumps per-vertex landmark distance statistics for an
// ALT router, one row per vertex with a distance vector.
func WriteLandmarkCSV(alt *AltRouter, path string) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write([]string{"vid", "WKT", "kind", "dists", "max_dist", "mean_dist", "min_dist"}); err != nil {
			return err
		}
		for vid, dists := range alt.LandmarkDist {
			v, ok := alt.G.Get(vid)
			if !ok {
				return programmingf("vertex %d not in the graph", vid)
			}
			minD, maxD, sum := dists[0], dists[0], Cost(0)
			joined := ""
			for i, d := range dists {
				if d < minD {
					minD = d
				}
				if d > maxD {
					maxD = d
				}
				sum += d
				if i > 0 {
					joined += ";"
				}
				joined += strconv.FormatInt(int64(d)/100, 10)
			}
			mean := float64(sum) / float64(len(dists))
			err := w.Write([]string{
				strconv.FormatInt(int64(vid), 10),
				wkt.MarshalString(v.Geom),
				"v",
				joined,
				strconv.FormatInt(int64(maxD), 10),
				strconv.FormatFloat(mean, 'f', 1, 64),
				strconv.FormatInt(int64(minD), 10),
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

var visitedHeader = []string{"vid", "from", "WKT", "cost_before", "cost_remain", "visit_number"}

func visitedRow(vs VertexScore, line orb.LineString) []string {
	return []string{
		strconv.FormatInt(int64(vs.Vid), 10),
		strconv.FormatInt(int64(vs.From), 10),
		wkt.MarshalString(line),
		strconv.FormatInt(int64(vs.CostBefore), 10),
		strconv.FormatInt(int64(vs.CostRemain), 10),
		strconv.Itoa(vs.VisitNumber),
	}
}

func writeCSV(path string, fill func(w *csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := fill(w); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
