package depgraph

// FindCycles reports directed cycles in g using a single Gray/Black
// depth-first pass over the whole graph: vertices on the active path are
// gray, finished vertices black, and every edge closing back into the gray
// path emits one cycle. The cycle is the slice of the active path from the
// first occurrence of the back edge's target through the path end, with the
// target repeated at the end for closure.
//
// The walk is iterative with an explicit frame stack, so depth is bounded
// only by heap. Roots are tried in vertex index order; a vertex finished
// under an earlier root is never re-entered.
func FindCycles(g *OrthogonalGraph) [][]VertexData {
	var cycles [][]VertexData
	visited := make([]bool, len(g.Vertices))
	onPath := make([]bool, len(g.Vertices))

	type frame struct {
		vertex int
		cursor int // next edge in the outgoing list, or nilEdge
	}

	var stack []frame
	var path []int

	push := func(v int) {
		visited[v] = true
		onPath[v] = true
		path = append(path, v)
		stack = append(stack, frame{vertex: v, cursor: g.Vertices[v].FirstOut})
	}

	for s := range g.Vertices {
		if visited[s] {
			continue
		}
		push(s)

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.cursor == nilEdge {
				onPath[top.vertex] = false
				path = path[:len(path)-1]
				stack = stack[:len(stack)-1]
				continue
			}

			e := g.Edges[top.cursor]
			top.cursor = e.TailNext
			w := e.HeadVertex

			if onPath[w] {
				cycles = append(cycles, sliceCycle(g, path, w))
			} else if !visited[w] {
				push(w)
			}
		}
	}
	return cycles
}

// sliceCycle copies the path suffix starting at the first occurrence of w and
// closes it by repeating w.
func sliceCycle(g *OrthogonalGraph, path []int, w int) []VertexData {
	start := 0
	for i, v := range path {
		if v == w {
			start = i
			break
		}
	}
	cycle := make([]VertexData, 0, len(path)-start+1)
	for _, v := range path[start:] {
		cycle = append(cycle, g.Vertices[v].Data)
	}
	return append(cycle, g.Vertices[w].Data)
}
