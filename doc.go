// Package depgraph provides an in-database dependency-graph engine for
// SQLite. It manages a persistent graph whose vertices are code entities
// observed by external static analyzers (the Node table) and whose edges are
// discovered dependencies between them (the Connection table).
//
// # Operations
//
// The engine exposes three operations, each available both as a Go method on
// [Engine] and as a scalar SQL function registered on every connection the
// engine opens:
//
//  1. Synthesis: auto_create_connections() joins producer and consumer
//     vertices under seven matching rules and inserts the resulting edges in
//     one transaction. Synthesis is idempotent and only ever links vertices
//     from different projects.
//
//  2. Sub-graph materialization: get_node_dependency_graph(nodeId[, depth])
//     extracts the bounded neighborhood of a vertex into an orthogonal
//     adjacency list and reports directed cycles found in it.
//
//  3. Project roll-up: get_project_dependency_graph(projectId, branch[,
//     depth]) aggregates node-level edges into project-level edges and
//     materializes the project neighborhood the same way. The wildcard
//     project id "*" emits one envelope per connected project component.
//
// All three return a single JSON document with a fixed key order, built by a
// streaming emitter.
//
// # Usage
//
// Create an Engine, which opens the database and registers the SQL
// functions, then call it from Go or from SQL:
//
//	e, err := depgraph.New("deps.db")
//	if err != nil { ... }
//	defer e.Close()
//
//	out, err := e.AutoCreateConnections()
//
//	var doc string
//	err = e.Store().DB().QueryRow(`SELECT get_node_dependency_graph(?)`, "node-1").Scan(&doc)
//
// The Node and Project tables are populated by external analyzers; the
// engine only ever appends to Connection.
package depgraph
