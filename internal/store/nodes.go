package store

import (
	"database/sql"
	"fmt"
)

const nodeColumns = "id, type, name, projectName, projectId, branch, relativePath, startLine, startColumn, meta"

func scanNode(scanner interface{ Scan(...any) error }) (*Node, error) {
	n := &Node{}
	var meta sql.NullString
	err := scanner.Scan(&n.ID, &n.Type, &n.Name, &n.ProjectName, &n.ProjectID,
		&n.Branch, &n.RelativePath, &n.StartLine, &n.StartColumn, &meta)
	if err != nil {
		return nil, err
	}
	n.Meta = meta.String
	return n, nil
}

// CountNodes returns the number of rows in Node.
func (s *Store) CountNodes() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM Node").Scan(&count); err != nil {
		return 0, fmt.Errorf("count nodes: %w", err)
	}
	return count, nil
}

// AllNodes returns every Node row in table order.
func (s *Store) AllNodes() ([]*Node, error) {
	rows, err := s.db.Query("SELECT " + nodeColumns + " FROM Node")
	if err != nil {
		return nil, fmt.Errorf("select nodes: %w", err)
	}
	defer rows.Close()

	var nodes []*Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("node rows: %w", err)
	}
	return nodes, nil
}

// NodeByID returns the Node with the given id, or nil when absent.
func (s *Store) NodeByID(id string) (*Node, error) {
	n, err := scanNode(s.db.QueryRow("SELECT "+nodeColumns+" FROM Node WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("node by id: %w", err)
	}
	return n, nil
}

// NodesByIDs returns the Node rows whose ids are in the given set, in table
// order. Ids without a row are simply absent from the result.
func (s *Store) NodesByIDs(ids []string) ([]*Node, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := "SELECT " + nodeColumns + " FROM Node WHERE id IN (" + placeholderList(len(ids)) + ") ORDER BY rowid"
	rows, err := s.db.Query(query, stringsToArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("nodes by ids: %w", err)
	}
	defer rows.Close()

	var nodes []*Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, fmt.Errorf("nodes by ids: scan: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("nodes by ids: rows: %w", err)
	}
	return nodes, nil
}

// InsertNode writes one Node row. Exposed for tests and for hosts that feed
// the engine directly instead of through an analyzer.
func (s *Store) InsertNode(n *Node) error {
	_, err := s.db.Exec(
		"INSERT INTO Node ("+nodeColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		n.ID, n.Type, n.Name, n.ProjectName, n.ProjectID,
		n.Branch, n.RelativePath, n.StartLine, n.StartColumn, n.Meta,
	)
	if err != nil {
		return fmt.Errorf("insert node: %w", err)
	}
	return nil
}
