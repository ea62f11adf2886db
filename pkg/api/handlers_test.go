package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"

	"osmgraph/pkg/route"
)

// testHandlers builds a 3-vertex road along the equator:
//
//	1 --- 2 --- 3   (lon 0, 0.001, 0.002)
func testHandlers(t *testing.T) *Handlers {
	t.Helper()
	pts := []orb.Point{
		project.WGS84.ToMercator(orb.Point{0, 0}),
		project.WGS84.ToMercator(orb.Point{0.001, 0}),
		project.WGS84.ToMercator(orb.Point{0.002, 0}),
	}

	g := route.NewGraph()
	for i := 0; i < 2; i++ {
		geom := orb.LineString{pts[i], pts[i+1]}
		g.AddEdge(route.Edge{
			V1:     route.VertexId(i + 1),
			V2:     route.VertexId(i + 2),
			Weight: route.Weight(planar.Length(geom)),
			Geom:   geom,
		}, true)
	}

	router, err := route.NewAltRouter(g)
	if err != nil {
		t.Fatalf("NewAltRouter: %v", err)
	}
	return NewHandlers(router, route.NewSnapper(g), StatsResponse{NumVertices: 3, NumLandmarks: len(router.Landmarks)})
}

func postRoute(t *testing.T, h *Handlers, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/route", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.HandleRoute(w, req)
	return w
}

func TestHandleRoute(t *testing.T) {
	h := testHandlers(t)
	w := postRoute(t, h, `{"start":{"lat":0,"lng":0},"end":{"lat":0,"lng":0.002}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp RouteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Vertices) != 3 || resp.Vertices[0] != 1 || resp.Vertices[2] != 3 {
		t.Errorf("vertices = %v, want [1 2 3]", resp.Vertices)
	}
	// Two ~111 m segments along the equator.
	if resp.TotalCostMeters < 200 || resp.TotalCostMeters > 250 {
		t.Errorf("total cost = %d m", resp.TotalCostMeters)
	}
	if len(resp.Geometry) != 3 {
		t.Errorf("geometry has %d points, want 3", len(resp.Geometry))
	}
}

func TestHandleRouteBadContentType(t *testing.T) {
	h := testHandlers(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/route", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	h.HandleRoute(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleRouteInvalidCoords(t *testing.T) {
	h := testHandlers(t)
	w := postRoute(t, h, `{"start":{"lat":95,"lng":0},"end":{"lat":0,"lng":0.002}}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "invalid_coordinates" || resp.Field != "start" {
		t.Errorf("error = %+v", resp)
	}
}

func TestHandleRoutePointTooFar(t *testing.T) {
	h := testHandlers(t)
	w := postRoute(t, h, `{"start":{"lat":45,"lng":90},"end":{"lat":0,"lng":0.002}}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
}

func TestHandleRouteCancelledContext(t *testing.T) {
	h := testHandlers(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/route",
		strings.NewReader(`{"start":{"lat":0,"lng":0},"end":{"lat":0,"lng":0.002}}`))
	req.Header.Set("Content-Type", "application/json")
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	w := httptest.NewRecorder()
	h.HandleRoute(w, req.WithContext(ctx))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "request_timeout" {
		t.Errorf("error = %q, want request_timeout", resp.Error)
	}
}

func TestHandleHealth(t *testing.T) {
	h := testHandlers(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	h.HandleHealth(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q", resp.Status)
	}
}

func TestHandleStats(t *testing.T) {
	h := testHandlers(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	w := httptest.NewRecorder()
	h.HandleStats(w, req)

	var resp StatsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.NumVertices != 3 {
		t.Errorf("num_vertices = %d, want 3", resp.NumVertices)
	}
}
