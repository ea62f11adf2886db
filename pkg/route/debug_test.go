package route

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDebugRouter(t *testing.T) {
	dir := t.TempDir()
	router := &AstarRouter{G: culDeSacGraph()}
	if err := DebugRouter(router, dir, 2); err != nil {
		t.Fatalf("DebugRouter: %v", err)
	}

	for _, name := range []string{"route_0.csv", "route_1.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestWriteLandmarkCSV(t *testing.T) {
	alt, err := NewAltRouter(culDeSacGraph())
	if err != nil {
		t.Fatalf("NewAltRouter: %v", err)
	}

	path := filepath.Join(t.TempDir(), "graph.csv")
	if err := WriteLandmarkCSV(alt, path); err != nil {
		t.Fatalf("WriteLandmarkCSV: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) == 0 {
		t.Error("landmark csv is empty")
	}
}
