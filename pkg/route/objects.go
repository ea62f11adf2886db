// Package route implements shortest-path searches over an extracted road
// graph: single-source Dijkstra isochrones, bidirectional A* with a
// euclidean heuristic, and ALT with landmark lower bounds.
package route

// VertexId identifies a graph vertex. It carries the OSM node id of the
// node that survived vertex classification during extraction.
type VertexId int64

// Cost is an accumulated path cost in integer meters.
type Cost int64

// Weight is a single edge's cost in integer meters.
type Weight int64

// VertexScore is a priority-queue entry: the cheapest known arrival at
// Vid through From, plus the heuristic remainder toward the target.
type VertexScore struct {
	Vid         VertexId
	From        VertexId
	CostBefore  Cost
	CostRemain  Cost
	TotalCost   Cost
	VisitNumber int
}

// NewVertexScore computes TotalCost and marks the score as not yet
// settled (VisitNumber -1).
func NewVertexScore(vid, from VertexId, before, remain Cost) VertexScore {
	return VertexScore{
		Vid:         vid,
		From:        from,
		CostBefore:  before,
		CostRemain:  remain,
		TotalCost:   before + remain,
		VisitNumber: -1,
	}
}

// VisitedMap records, for every settled vertex, the predecessor that
// yielded the cheapest arrival.
type VisitedMap map[VertexId]VertexScore

// scoreHeap is a concrete-typed min-heap over TotalCost. Avoids the
// interface boxing of container/heap.
type scoreHeap struct {
	items []VertexScore
}

func (h *scoreHeap) Len() int { return len(h.items) }

func (h *scoreHeap) Push(vs VertexScore) {
	h.items = append(h.items, vs)
	h.siftUp(len(h.items) - 1)
}

func (h *scoreHeap) Pop() VertexScore {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *scoreHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].TotalCost >= h.items[parent].TotalCost {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *scoreHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && h.items[left].TotalCost < h.items[smallest].TotalCost {
			smallest = left
		}
		if right < n && h.items[right].TotalCost < h.items[smallest].TotalCost {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
