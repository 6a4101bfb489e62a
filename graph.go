package depgraph

// The orthogonal adjacency list threads every edge through two singly linked
// lists at once: the outgoing list of its tail vertex and the incoming list
// of its head vertex. Vertices and edges live in parallel arenas addressed by
// dense index; -1 is the list terminator. Insertion splices at the head, so
// traversal yields neighbors in reverse insertion order.

const nilEdge = -1

// Vertex is an orthogonal-graph vertex. FirstIn and FirstOut index into the
// edge arena (or nilEdge).
type Vertex struct {
	Data      VertexData
	FirstIn   int
	FirstOut  int
	InDegree  int
	OutDegree int
}

// Edge is an orthogonal-graph edge. TailNext threads the outgoing list of
// TailVertex; HeadNext threads the incoming list of HeadVertex.
type Edge struct {
	Data       EdgeData
	TailVertex int
	HeadVertex int
	HeadNext   int
	TailNext   int
}

// OrthogonalGraph is an in-memory vertex/edge arena built for a single
// invocation and discarded with it.
type OrthogonalGraph struct {
	Vertices []Vertex
	Edges    []Edge

	index map[string]int // vertex data id -> dense index
}

// BuildGraph constructs an orthogonal graph from vertices in arrival order
// and edges in input order. Edges whose endpoints are not among the vertices
// are skipped silently. O(|V|+|E|).
func BuildGraph(vertices []VertexData, edges []Connection) *OrthogonalGraph {
	g := &OrthogonalGraph{
		Vertices: make([]Vertex, 0, len(vertices)),
		Edges:    make([]Edge, 0, len(edges)),
		index:    make(map[string]int, len(vertices)),
	}
	for _, data := range vertices {
		g.index[data.ID] = len(g.Vertices)
		g.Vertices = append(g.Vertices, Vertex{
			Data:     data,
			FirstIn:  nilEdge,
			FirstOut: nilEdge,
		})
	}
	for _, c := range edges {
		tail, ok := g.index[c.FromID]
		if !ok {
			continue
		}
		head, ok := g.index[c.ToID]
		if !ok {
			continue
		}
		idx := len(g.Edges)
		g.Edges = append(g.Edges, Edge{
			Data: EdgeData{
				ID:     c.FromID + "-" + c.ToID,
				FromID: c.FromID,
				ToID:   c.ToID,
			},
			TailVertex: tail,
			HeadVertex: head,
			TailNext:   g.Vertices[tail].FirstOut,
			HeadNext:   g.Vertices[head].FirstIn,
		})
		g.Vertices[tail].FirstOut = idx
		g.Vertices[tail].OutDegree++
		g.Vertices[head].FirstIn = idx
		g.Vertices[head].InDegree++
	}
	return g
}

// VertexIndex returns the dense index of the vertex carrying id, or -1.
func (g *OrthogonalGraph) VertexIndex(id string) int {
	if idx, ok := g.index[id]; ok {
		return idx
	}
	return -1
}

// OutNeighbors returns the head vertex indices of v's outgoing edges, in
// reverse insertion order.
func (g *OrthogonalGraph) OutNeighbors(v int) []int {
	var out []int
	for cur := g.Vertices[v].FirstOut; cur != nilEdge; cur = g.Edges[cur].TailNext {
		out = append(out, g.Edges[cur].HeadVertex)
	}
	return out
}

// InNeighbors returns the tail vertex indices of v's incoming edges, in
// reverse insertion order.
func (g *OrthogonalGraph) InNeighbors(v int) []int {
	var in []int
	for cur := g.Vertices[v].FirstIn; cur != nilEdge; cur = g.Edges[cur].HeadNext {
		in = append(in, g.Edges[cur].TailVertex)
	}
	return in
}
