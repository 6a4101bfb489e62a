package store

import (
	"database/sql"
	"fmt"
)

// ProjectByID returns the Project with the given id, or nil when absent.
func (s *Store) ProjectByID(id string) (*Project, error) {
	p := &Project{}
	err := s.db.QueryRow("SELECT id, name, addr, type FROM Project WHERE id = ?", id).
		Scan(&p.ID, &p.Name, &p.Addr, &p.Type)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("project by id: %w", err)
	}
	return p, nil
}

// ProjectsByIDs returns the Project rows whose ids are in the given set, in
// table order.
func (s *Store) ProjectsByIDs(ids []string) ([]*Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := "SELECT id, name, addr, type FROM Project WHERE id IN (" + placeholderList(len(ids)) + ") ORDER BY rowid"
	rows, err := s.db.Query(query, stringsToArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("projects by ids: %w", err)
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		p := &Project{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Addr, &p.Type); err != nil {
			return nil, fmt.Errorf("projects by ids: scan: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("projects by ids: rows: %w", err)
	}
	return projects, nil
}

// ProjectIDs returns every Project id in table order. The order decides which
// project seeds each component during a wildcard traversal.
func (s *Store) ProjectIDs() ([]string, error) {
	rows, err := s.db.Query("SELECT id FROM Project ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("project ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("project ids: scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("project ids: rows: %w", err)
	}
	return ids, nil
}

// ProjectEdges derives the project-level edges touching the given frontier:
// each distinct (fromProject, toProject) pair produced by a Connection whose
// two endpoint nodes sit on the given branch, belong to different projects,
// and have at least one side in the frontier.
func (s *Store) ProjectEdges(projectIDs []string, branch string) ([]Connection, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	placeholders := placeholderList(len(projectIDs))
	query := `SELECT DISTINCT nf.projectId, nt.projectId
FROM Connection c
JOIN Node nf ON nf.id = c.fromId
JOIN Node nt ON nt.id = c.toId
WHERE nf.branch = ? AND nt.branch = ?
  AND nf.projectId <> nt.projectId
  AND (nf.projectId IN (` + placeholders + `) OR nt.projectId IN (` + placeholders + `))`

	args := make([]any, 0, 2+2*len(projectIDs))
	args = append(args, branch, branch)
	args = append(args, repeatArgs(stringsToArgs(projectIDs), 2)...)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("project edges: %w", err)
	}
	defer rows.Close()

	var conns []Connection
	for rows.Next() {
		var c Connection
		if err := rows.Scan(&c.FromID, &c.ToID); err != nil {
			return nil, fmt.Errorf("project edges: scan: %w", err)
		}
		conns = append(conns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("project edges: rows: %w", err)
	}
	return conns, nil
}

// InsertProject writes one Project row. Exposed for tests and for hosts that
// feed the engine directly instead of through an analyzer.
func (s *Store) InsertProject(p *Project) error {
	_, err := s.db.Exec("INSERT INTO Project (id, name, addr, type) VALUES (?, ?, ?, ?)",
		p.ID, p.Name, p.Addr, p.Type)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}
