package depgraph

import "github.com/seeyon-dev/depgraph/internal/store"

// Public aliases for the internal store types used in the Engine API.
// Aliases, not definitions, so no conversion is needed at the boundary.

type Store = store.Store
type Node = store.Node
type Project = store.Project
type Connection = store.Connection

// Node.Type values written by the analyzers. Reader types consume; writer
// types produce. Synthesis matches readers to writers.
const (
	TypeNamedImport                = "NamedImport"
	TypeNamedExport                = "NamedExport"
	TypeRuntimeDynamicImport       = "RuntimeDynamicImport"
	TypeDynamicModuleFederationRef = "DynamicModuleFederationReference"
	TypeGlobalVarRead              = "GlobalVarRead"
	TypeGlobalVarWrite             = "GlobalVarWrite"
	TypeWebStorageRead             = "WebStorageRead"
	TypeWebStorageWrite            = "WebStorageWrite"
	TypeEventOn                    = "EventOn"
	TypeEventEmit                  = "EventEmit"
	TypeUrlParamRead               = "UrlParamRead"
	TypeUrlParamWrite              = "UrlParamWrite"
)

// VertexData is the payload carried by an orthogonal-graph vertex. For node
// graphs it mirrors a Node row; for project graphs ID/Name/Type/Addr come
// from the Project row, Branch is the requested branch, and the remaining
// fields stay empty.
type VertexData struct {
	ID           string
	Name         string
	Type         string
	Branch       string
	ProjectName  string
	ProjectID    string
	RelativePath string
	StartLine    int
	StartColumn  int
	Addr         string
}

// EdgeData is the payload carried by an orthogonal-graph edge. ID is
// synthesized as FromID + "-" + ToID.
type EdgeData struct {
	ID     string
	FromID string
	ToID   string
}

func nodeVertexData(n *store.Node) VertexData {
	return VertexData{
		ID:           n.ID,
		Name:         n.Name,
		Type:         n.Type,
		Branch:       n.Branch,
		ProjectName:  n.ProjectName,
		ProjectID:    n.ProjectID,
		RelativePath: n.RelativePath,
		StartLine:    n.StartLine,
		StartColumn:  n.StartColumn,
	}
}

func projectVertexData(p *store.Project, branch string) VertexData {
	return VertexData{
		ID:     p.ID,
		Name:   p.Name,
		Type:   p.Type,
		Branch: branch,
		Addr:   p.Addr,
	}
}
