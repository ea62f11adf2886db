package extract

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/paulmach/orb/encoding/wkt"
)

// CSVSink writes edges as CSV rows:
// node1,node2,WKT,category,lanes,oneway,maxspeed
type CSVSink struct {
	w *csv.Writer
}

// NewCSVSink writes the header row and returns the sink.
func NewCSVSink(w io.Writer) (*CSVSink, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"node1", "node2", "WKT", "category", "lanes", "oneway", "maxspeed"}); err != nil {
		return nil, err
	}
	return &CSVSink{w: cw}, nil
}

func (s *CSVSink) WriteEdge(e Edge) error {
	return s.w.Write([]string{
		strconv.FormatInt(int64(e.Node1), 10),
		strconv.FormatInt(int64(e.Node2), 10),
		wkt.MarshalString(e.Geometry),
		e.Category.String(),
		strconv.FormatUint(uint64(e.Lanes), 10),
		e.OneWay.String(),
		e.MaxSpeed.String(),
	})
}

// Flush writes any buffered rows to the underlying writer.
func (s *CSVSink) Flush() error {
	s.w.Flush()
	return s.w.Error()
}
