package route

import "context"

// Router is a goal-directed shortest-path engine over a graph. The
// context bounds a single query: callers such as the HTTP layer pass a
// deadline so a pathological search is cancelled rather than left
// running.
type Router interface {
	Route(ctx context.Context, source, target VertexId) (GraphPath, error)
	Graph() *Graph
}
