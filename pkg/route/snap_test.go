package route

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
)

func TestSnapperNearest(t *testing.T) {
	g := culDeSacGraph()
	s := NewSnapper(g)

	// Right next to vertex 7 at (260, 40).
	vid, err := s.Nearest(orb.Point{262, 43})
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if vid != 7 {
		t.Errorf("snapped to %d, want 7", vid)
	}

	// Exactly on vertex 1.
	vid, err = s.Nearest(orb.Point{20, 40})
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if vid != 1 {
		t.Errorf("snapped to %d, want 1", vid)
	}
}

func TestSnapperTooFar(t *testing.T) {
	s := NewSnapper(culDeSacGraph())
	if _, err := s.Nearest(orb.Point{50000, 50000}); !errors.Is(err, ErrPointTooFar) {
		t.Errorf("error = %v, want ErrPointTooFar", err)
	}
}

func TestSnapperEmptyGraph(t *testing.T) {
	s := NewSnapper(NewGraph())
	if _, err := s.Nearest(orb.Point{0, 0}); !errors.Is(err, ErrPointTooFar) {
		t.Errorf("error = %v, want ErrPointTooFar", err)
	}
}
