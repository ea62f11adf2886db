package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"mime"
	"net/http"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	"osmgraph/pkg/route"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	router  route.Router
	snapper *route.Snapper
	stats   StatsResponse
}

// NewHandlers creates handlers over a router and its snapper.
func NewHandlers(router route.Router, snapper *route.Snapper, stats StatsResponse) *Handlers {
	return &Handlers{
		router:  router,
		snapper: snapper,
		stats:   stats,
	}
}

// HandleRoute handles POST /api/v1/route: snap both coordinates to the
// nearest vertex, run the shortest-path search, and return the vertex
// sequence with its lon/lat geometry.
func (h *Handlers) HandleRoute(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	if err := validateCoord(req.Start); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "start")
		return
	}
	if err := validateCoord(req.End); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "end")
		return
	}

	// Graph coordinates are EPSG:3857 meters.
	source, err := h.snapper.Nearest(project.WGS84.ToMercator(orb.Point{req.Start.Lng, req.Start.Lat}))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "point_too_far_from_road", "start")
		return
	}
	target, err := h.snapper.Nearest(project.WGS84.ToMercator(orb.Point{req.End.Lng, req.End.Lat}))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "point_too_far_from_road", "end")
		return
	}

	path, err := h.router.Route(r.Context(), source, target)
	if err != nil {
		if errors.Is(err, route.ErrNoRoute) {
			writeError(w, http.StatusNotFound, "no_route_found", "")
			return
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			writeError(w, http.StatusServiceUnavailable, "request_timeout", "")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	resp, err := buildResponse(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func buildResponse(path route.GraphPath) (*RouteResponse, error) {
	cost, err := path.Cost()
	if err != nil {
		return nil, err
	}
	vertices, err := path.Vertices()
	if err != nil {
		return nil, err
	}
	edges, err := path.Edges()
	if err != nil {
		return nil, err
	}

	resp := &RouteResponse{TotalCostMeters: int64(cost)}
	for _, vid := range vertices {
		resp.Vertices = append(resp.Vertices, int64(vid))
	}
	for i, e := range edges {
		for j, p := range e.Geom {
			if i > 0 && j == 0 {
				// shared with the previous edge's last point
				continue
			}
			ll := project.Mercator.ToWGS84(p)
			resp.Geometry = append(resp.Geometry, LatLngJSON{Lat: ll.Lat(), Lng: ll.Lon()})
		}
	}
	return resp, nil
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.stats)
}

func validateCoord(ll LatLngJSON) error {
	if math.IsNaN(ll.Lat) || math.IsNaN(ll.Lng) || math.IsInf(ll.Lat, 0) || math.IsInf(ll.Lng, 0) {
		return errors.New("coordinates must be finite numbers")
	}
	if ll.Lat < -90 || ll.Lat > 90 || ll.Lng < -180 || ll.Lng > 180 {
		return errors.New("coordinates out of range")
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field})
}
