package store

import "fmt"

// AllConnections returns every Connection row. On a query error the rows read
// so far are returned together with the error; callers that treat connection
// reads as best-effort record the message and continue with what they have.
func (s *Store) AllConnections() ([]Connection, error) {
	rows, err := s.db.Query("SELECT fromId, toId FROM Connection")
	if err != nil {
		return nil, fmt.Errorf("select connections: %w", err)
	}
	defer rows.Close()

	var conns []Connection
	for rows.Next() {
		var c Connection
		if err := rows.Scan(&c.FromID, &c.ToID); err != nil {
			return conns, fmt.Errorf("scan connection: %w", err)
		}
		conns = append(conns, c)
	}
	if err := rows.Err(); err != nil {
		return conns, fmt.Errorf("connection rows: %w", err)
	}
	return conns, nil
}

// ConnectionsTouching returns every Connection whose fromId or toId lies in
// the given id set.
func (s *Store) ConnectionsTouching(ids []string) ([]Connection, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := placeholderList(len(ids))
	query := "SELECT fromId, toId FROM Connection WHERE fromId IN (" + placeholders + ") OR toId IN (" + placeholders + ")"
	rows, err := s.db.Query(query, repeatArgs(stringsToArgs(ids), 2)...)
	if err != nil {
		return nil, fmt.Errorf("connections touching: %w", err)
	}
	defer rows.Close()

	var conns []Connection
	for rows.Next() {
		var c Connection
		if err := rows.Scan(&c.FromID, &c.ToID); err != nil {
			return nil, fmt.Errorf("connections touching: scan: %w", err)
		}
		conns = append(conns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("connections touching: rows: %w", err)
	}
	return conns, nil
}

// InsertConnections writes the given edges inside a single transaction using
// one prepared statement. Per-row failures are collected and the batch
// continues; the returned count covers only rows actually inserted. The
// returned error is reserved for transaction-level failures.
func (s *Store) InsertConnections(conns []Connection) (int, []string, error) {
	if len(conns) == 0 {
		return 0, nil, nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return 0, nil, fmt.Errorf("insert connections: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO Connection (fromId, toId) VALUES (?, ?)")
	if err != nil {
		return 0, nil, fmt.Errorf("insert connections: prepare: %w", err)
	}
	defer stmt.Close()

	created := 0
	var rowErrs []string
	for _, c := range conns {
		if _, err := stmt.Exec(c.FromID, c.ToID); err != nil {
			rowErrs = append(rowErrs, err.Error())
			continue
		}
		created++
	}
	if err := tx.Commit(); err != nil {
		return 0, rowErrs, fmt.Errorf("insert connections: commit: %w", err)
	}
	return created, rowErrs, nil
}

// InsertConnection writes one edge outside of a batch. Exposed for tests.
func (s *Store) InsertConnection(fromID, toID string) error {
	_, err := s.db.Exec("INSERT INTO Connection (fromId, toId) VALUES (?, ?)", fromID, toID)
	if err != nil {
		return fmt.Errorf("insert connection: %w", err)
	}
	return nil
}
