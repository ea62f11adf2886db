package route

import "math"

const costUnreachable = Cost(math.MaxInt64 / 4)

// FloydWarshall holds an all-pairs distance matrix over a dense index of
// the graph's sparse vertex ids. Cubic in the vertex count, meant for
// small graphs and cross-checking the goal-directed searches.
type FloydWarshall struct {
	index  map[VertexId]int
	n      int
	matrix []Cost
}

// NewFloydWarshall computes the full matrix.
func NewFloydWarshall(g *Graph) *FloydWarshall {
	n := g.NumVertices()
	fw := &FloydWarshall{
		index:  make(map[VertexId]int, n),
		n:      n,
		matrix: make([]Cost, n*n),
	}
	for vid := range g.Vertices {
		fw.index[vid] = len(fw.index)
	}
	for i := range fw.matrix {
		fw.matrix[i] = costUnreachable
	}
	for i := 0; i < n; i++ {
		fw.matrix[i*n+i] = 0
	}
	for vid, v := range g.Vertices {
		i := fw.index[vid]
		for _, e := range v.Edges {
			j, ok := fw.index[e.V2]
			if !ok {
				continue
			}
			if w := Cost(e.Weight); w < fw.matrix[i*n+j] {
				fw.matrix[i*n+j] = w
			}
		}
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			ik := fw.matrix[i*n+k]
			if ik == costUnreachable {
				continue
			}
			for j := 0; j < n; j++ {
				kj := fw.matrix[k*n+j]
				if kj == costUnreachable {
					continue
				}
				if d := ik + kj; d < fw.matrix[i*n+j] {
					fw.matrix[i*n+j] = d
				}
			}
		}
	}
	return fw
}

// Weight returns the shortest-path cost from a to b. ok is false when
// either vertex is unknown or b is unreachable from a.
func (fw *FloydWarshall) Weight(a, b VertexId) (Cost, bool) {
	i, ok := fw.index[a]
	if !ok {
		return 0, false
	}
	j, ok := fw.index[b]
	if !ok {
		return 0, false
	}
	c := fw.matrix[i*fw.n+j]
	if c == costUnreachable {
		return 0, false
	}
	return c, true
}
