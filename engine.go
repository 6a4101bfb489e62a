package depgraph

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/mattn/go-sqlite3"

	"github.com/seeyon-dev/depgraph/internal/store"
)

// Engine owns a SQLite database carrying the Node, Project and Connection
// tables and exposes the dependency-graph operations over it, both as Go
// methods and as scalar SQL functions registered on every connection.
type Engine struct {
	store *store.Store

	// entryNames is the export-surface filter applied to NamedImport
	// matching. Only NamedExport producers whose meta entryName is in this
	// set may satisfy a NamedImport reader.
	entryNames map[string]bool

	// defaultDepth caps sub-graph traversal when a SQL caller passes no
	// depth argument.
	defaultDepth int

	notifier *Notifier
}

// Option configures an Engine.
type Option func(*Engine)

// WithEntryNames replaces the export-surface filter for NamedImport matching.
func WithEntryNames(names ...string) Option {
	return func(e *Engine) {
		e.entryNames = make(map[string]bool, len(names))
		for _, name := range names {
			e.entryNames[name] = true
		}
	}
}

// WithDefaultDepth sets the traversal cap used when a SQL caller passes no
// depth argument. The default is DefaultMaxDepth.
func WithDefaultDepth(depth int) Option {
	return func(e *Engine) {
		e.defaultDepth = depth
	}
}

// WithNodeChangeNotifier attaches a Notifier that fires after any insert,
// update or delete on the Node table. Engines without this option register
// no update hook.
func WithNodeChangeNotifier(n *Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// defaultEntryNames is the export-surface filter applied when no
// WithEntryNames option is given.
var defaultEntryNames = []string{"index", "seeyon_ui_index", "seeyon_mui_index"}

// driverSeq numbers the per-engine driver registrations. database/sql driver
// names are process-global and cannot be unregistered, so every Engine gets
// its own.
var driverSeq atomic.Int64

// New creates an Engine backed by a SQLite database at dbPath. The engine
// registers a dedicated database/sql driver whose ConnectHook installs the
// three SQL functions (auto_create_connections, get_node_dependency_graph,
// get_project_dependency_graph) on every new connection, so they are callable
// from any statement on the engine's handle.
func New(dbPath string, opts ...Option) (*Engine, error) {
	e := &Engine{
		defaultDepth: DefaultMaxDepth,
	}
	WithEntryNames(defaultEntryNames...)(e)
	for _, opt := range opts {
		opt(e)
	}

	driverName := fmt.Sprintf("sqlite3_depgraph_%d", driverSeq.Add(1))
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			if err := e.registerFuncs(conn); err != nil {
				return err
			}
			if e.notifier != nil {
				e.notifier.attach(conn)
			}
			return nil
		},
	})

	s, err := store.Open(driverName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("depgraph: open store: %w", err)
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("depgraph: migrate: %w", err)
	}
	e.store = s
	return e, nil
}

// Close releases the Engine's database resources and stops notification
// delivery if a Notifier is attached.
func (e *Engine) Close() error {
	if e.notifier != nil {
		e.notifier.Close()
	}
	return e.store.Close()
}

// Store returns the underlying Store for direct access.
func (e *Engine) Store() *Store {
	return e.store
}
