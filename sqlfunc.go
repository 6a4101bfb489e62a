package depgraph

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// The three scalar functions are thin bindings over the Engine methods.
// Argument decoding accepts TEXT (or BLOB) for ids and branch and INTEGER
// for depth; a NULL id or branch yields a NULL result, and an empty engine
// result ("" means the starting vertex is absent) also yields NULL.

func (e *Engine) registerFuncs(conn *sqlite3.SQLiteConn) error {
	if err := conn.RegisterFunc("auto_create_connections", e.autoCreateConnectionsFunc, false); err != nil {
		return fmt.Errorf("register auto_create_connections: %w", err)
	}
	if err := conn.RegisterFunc("get_node_dependency_graph", e.nodeGraphFunc, false); err != nil {
		return fmt.Errorf("register get_node_dependency_graph: %w", err)
	}
	if err := conn.RegisterFunc("get_project_dependency_graph", e.projectGraphFunc, false); err != nil {
		return fmt.Errorf("register get_project_dependency_graph: %w", err)
	}
	return nil
}

func textArg(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	}
	return "", false
}

func intArg(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func (e *Engine) autoCreateConnectionsFunc() (string, error) {
	return e.AutoCreateConnections()
}

func (e *Engine) nodeGraphFunc(args ...any) (any, error) {
	if len(args) < 1 {
		return nil, errors.New("Requires a nodeId argument")
	}
	if args[0] == nil {
		return nil, nil
	}
	nodeID, ok := textArg(args[0])
	if !ok {
		return nil, errors.New("Requires nodeId to be text")
	}
	depth := e.defaultDepth
	if len(args) >= 2 && args[1] != nil {
		if d, ok := intArg(args[1]); ok {
			depth = d
		}
	}
	out, err := e.NodeGraph(nodeID, depth)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return out, nil
}

func (e *Engine) projectGraphFunc(args ...any) (any, error) {
	if len(args) < 2 {
		return nil, errors.New("Requires projectId and branch arguments")
	}
	if args[0] == nil || args[1] == nil {
		return nil, nil
	}
	projectID, ok := textArg(args[0])
	if !ok {
		return nil, errors.New("Requires projectId to be text")
	}
	branch, ok := textArg(args[1])
	if !ok {
		return nil, errors.New("Requires branch to be text")
	}
	depth := e.defaultDepth
	if len(args) >= 3 && args[2] != nil {
		if d, ok := intArg(args[2]); ok {
			depth = d
		}
	}
	out, err := e.ProjectGraph(projectID, branch, depth)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return out, nil
}
