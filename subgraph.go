package depgraph

import (
	"fmt"

	"github.com/seeyon-dev/depgraph/internal/store"
)

// DefaultMaxDepth bounds sub-graph traversal when the caller passes no depth.
const DefaultMaxDepth = 100

// NodeGraph materializes the bounded neighborhood of nodeID: a breadth-first
// expansion over Connection in both directions, capped at maxDepth levels,
// followed by cycle detection over the accumulated component. The returned
// string is the JSON envelope, or "" when the node does not exist (the SQL
// surface maps "" to NULL). maxDepth <= 0 keeps only the root.
func (e *Engine) NodeGraph(nodeID string, maxDepth int) (string, error) {
	root, err := e.store.NodeByID(nodeID)
	if err != nil {
		return "", fmt.Errorf("node graph: %w", err)
	}
	if root == nil {
		return "", nil
	}

	vertices := []VertexData{nodeVertexData(root)}
	visited := map[string]bool{nodeID: true}
	seenEdges := make(map[store.Connection]bool)
	var edges []Connection

	frontier := []string{nodeID}
	for depth := 0; len(frontier) > 0 && depth < maxDepth; depth++ {
		conns, err := e.store.ConnectionsTouching(frontier)
		if err != nil {
			return "", fmt.Errorf("node graph: %w", err)
		}

		var next []string
		for _, c := range conns {
			if seenEdges[c] {
				continue
			}
			seenEdges[c] = true
			edges = append(edges, c)
			for _, id := range []string{c.FromID, c.ToID} {
				if !visited[id] {
					visited[id] = true
					next = append(next, id)
				}
			}
		}

		if len(next) > 0 {
			nodes, err := e.store.NodesByIDs(next)
			if err != nil {
				return "", fmt.Errorf("node graph: %w", err)
			}
			for _, n := range nodes {
				vertices = append(vertices, nodeVertexData(n))
			}
		}
		frontier = next
	}

	g := BuildGraph(vertices, edges)
	cycles := FindCycles(g)
	return emitSubgraph(g, cycles), nil
}
