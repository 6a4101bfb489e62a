package store

import (
	"database/sql"
	"fmt"
)

// Store is the SQLite data access layer for the Node, Project and Connection
// tables. Node and Project are populated by external analyzers; the engine's
// operations only ever append to Connection. InsertNode and InsertProject
// write the other two tables for tests and for hosts that feed rows directly.
type Store struct {
	db *sql.DB
}

// Open opens a SQLite database at dbPath with WAL mode enabled, using the
// named database/sql driver. The driver is registered by the engine so that
// its ConnectHook runs on every new connection.
func Open(driverName, dbPath string) (*Store, error) {
	db, err := sql.Open(driverName, dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct statement execution.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates the three tables and their indexes. Idempotent; a database
// already populated by the analyzers is left untouched.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(schemaDDL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS Node (
  id            TEXT PRIMARY KEY,
  type          TEXT NOT NULL,
  name          TEXT NOT NULL,
  projectName   TEXT NOT NULL DEFAULT '',
  projectId     TEXT NOT NULL DEFAULT '',
  branch        TEXT NOT NULL DEFAULT '',
  relativePath  TEXT NOT NULL DEFAULT '',
  startLine     INTEGER NOT NULL DEFAULT 0,
  startColumn   INTEGER NOT NULL DEFAULT 0,
  meta          TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS Project (
  id    TEXT PRIMARY KEY,
  name  TEXT NOT NULL,
  addr  TEXT NOT NULL DEFAULT '',
  type  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS Connection (
  fromId  TEXT NOT NULL,
  toId    TEXT NOT NULL,
  PRIMARY KEY (fromId, toId)
);

CREATE INDEX IF NOT EXISTS idx_node_type ON Node(type);
CREATE INDEX IF NOT EXISTS idx_node_project_branch ON Node(projectId, branch);
CREATE INDEX IF NOT EXISTS idx_connection_to ON Connection(toId);
`
