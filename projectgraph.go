package depgraph

import (
	"fmt"
	"strings"

	"github.com/seeyon-dev/depgraph/internal/store"
)

// WildcardProject selects every project; the materializer then emits one
// envelope per weakly connected component.
const WildcardProject = "*"

// unboundedDepth stands in for an infinite cap during wildcard enumeration.
const unboundedDepth = 1 << 30

// ProjectGraph materializes the project-level dependency graph reachable
// from projectID on the given branch. A project edge P -> Q exists when some
// Connection joins a node of P to a node of Q on that branch, P != Q. For the
// wildcard the result is a bare JSON array with one envelope per component;
// otherwise it is a single envelope, or "" when the project does not exist.
func (e *Engine) ProjectGraph(projectID, branch string, maxDepth int) (string, error) {
	if projectID == WildcardProject {
		return e.allProjectGraphs(branch)
	}

	p, err := e.store.ProjectByID(projectID)
	if err != nil {
		return "", fmt.Errorf("project graph: %w", err)
	}
	if p == nil {
		return "", nil
	}
	envelope, _, err := e.buildProjectComponent(p, branch, maxDepth)
	if err != nil {
		return "", err
	}
	return envelope, nil
}

// allProjectGraphs walks every project in table order, building one
// component per seed that was not already absorbed into an earlier one.
func (e *Engine) allProjectGraphs(branch string) (string, error) {
	ids, err := e.store.ProjectIDs()
	if err != nil {
		return "", fmt.Errorf("project graph: %w", err)
	}

	absorbed := make(map[string]bool, len(ids))
	var b strings.Builder
	b.Grow(envelopeReserve)
	b.WriteByte('[')
	first := true
	for _, id := range ids {
		if absorbed[id] {
			continue
		}
		p, err := e.store.ProjectByID(id)
		if err != nil {
			return "", fmt.Errorf("project graph: %w", err)
		}
		if p == nil {
			continue
		}
		envelope, members, err := e.buildProjectComponent(p, branch, unboundedDepth)
		if err != nil {
			return "", err
		}
		for _, m := range members {
			absorbed[m] = true
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(envelope)
	}
	b.WriteByte(']')
	return b.String(), nil
}

// buildProjectComponent runs the level-capped expansion from one seed
// project, expanding both edge directions per level, and returns the
// serialized envelope together with the ids of every project it reached.
func (e *Engine) buildProjectComponent(seed *store.Project, branch string, maxDepth int) (string, []string, error) {
	vertices := []VertexData{projectVertexData(seed, branch)}
	members := []string{seed.ID}
	visited := map[string]bool{seed.ID: true}
	seenEdges := make(map[store.Connection]bool)
	var edges []Connection

	frontier := []string{seed.ID}
	for depth := 0; len(frontier) > 0 && depth < maxDepth; depth++ {
		conns, err := e.store.ProjectEdges(frontier, branch)
		if err != nil {
			return "", nil, fmt.Errorf("project graph: %w", err)
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
			projects, err := e.store.ProjectsByIDs(next)
			if err != nil {
				return "", nil, fmt.Errorf("project graph: %w", err)
			}
			for _, p := range projects {
				vertices = append(vertices, projectVertexData(p, branch))
			}
			members = append(members, next...)
		}
		frontier = next
	}

	g := BuildGraph(vertices, edges)
	cycles := FindCycles(g)
	return emitSubgraph(g, cycles), members, nil
}
