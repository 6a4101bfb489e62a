package depgraph

import (
	"sync"

	"github.com/mattn/go-sqlite3"
)

// NodeChange describes one mutation of the Node table.
type NodeChange struct {
	Op    int // sqlite3.SQLITE_INSERT, SQLITE_UPDATE or SQLITE_DELETE
	RowID int64
}

// Notifier delivers Node-table change notifications to a single callback.
// Deliveries are coalesced through a buffered channel so a burst of writes
// inside one transaction wakes the consumer once per drained signal rather
// than once per row. Attach it to an Engine with WithNodeChangeNotifier;
// the notifier then hooks every connection the engine opens.
type Notifier struct {
	fn func(NodeChange)

	mu      sync.Mutex
	pending []NodeChange
	signal  chan struct{}
	done    chan struct{}
	closed  bool
}

// NewNotifier creates a Notifier delivering changes to fn on a dedicated
// goroutine. fn must not block for long; deliveries are serialized.
func NewNotifier(fn func(NodeChange)) *Notifier {
	n := &Notifier{
		fn:     fn,
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go n.run()
	return n
}

// attach registers the update hook on one connection, filtered to the Node
// table. Called from the engine's ConnectHook.
func (n *Notifier) attach(conn *sqlite3.SQLiteConn) {
	conn.RegisterUpdateHook(func(op int, db string, table string, rowid int64) {
		if table != "Node" {
			return
		}
		n.enqueue(NodeChange{Op: op, RowID: rowid})
	})
}

func (n *Notifier) enqueue(c NodeChange) {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.pending = append(n.pending, c)
	n.mu.Unlock()

	select {
	case n.signal <- struct{}{}:
	default:
	}
}

func (n *Notifier) run() {
	for {
		select {
		case <-n.done:
			return
		case <-n.signal:
		}

		n.mu.Lock()
		batch := n.pending
		n.pending = nil
		n.mu.Unlock()

		for _, c := range batch {
			n.fn(c)
		}
	}
}

// Close stops delivery. Changes enqueued but not yet delivered are dropped.
// Safe to call more than once.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()
	close(n.done)
}
