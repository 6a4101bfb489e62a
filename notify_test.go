package depgraph

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// changeRecorder collects deliveries and lets tests wait for a count.
type changeRecorder struct {
	mu      sync.Mutex
	changes []NodeChange
}

func (r *changeRecorder) record(c NodeChange) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, c)
}

func (r *changeRecorder) waitFor(t *testing.T, n int) []NodeChange {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		r.mu.Lock()
		if len(r.changes) >= n {
			out := append([]NodeChange(nil), r.changes...)
			r.mu.Unlock()
			return out
		}
		r.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d node changes", n)
	return nil
}

// =============================================================================
// Notifier
// =============================================================================

func TestNotifier_DeliversNodeInserts(t *testing.T) {
	t.Parallel()
	rec := &changeRecorder{}
	n := NewNotifier(rec.record)
	e := newTestEngine(t, WithNodeChangeNotifier(n))

	insertNode(t, e, &Node{ID: "n1", Type: TypeNamedExport, Name: "foo", Branch: "main"})

	changes := rec.waitFor(t, 1)
	assert.NotZero(t, changes[0].RowID)
}

func TestNotifier_IgnoresOtherTables(t *testing.T) {
	t.Parallel()
	rec := &changeRecorder{}
	n := NewNotifier(rec.record)
	e := newTestEngine(t, WithNodeChangeNotifier(n))

	insertProject(t, e, &Project{ID: "P1", Name: "one"})
	insertConnection(t, e, "x", "y")
	insertNode(t, e, &Node{ID: "n1", Type: TypeNamedExport, Name: "foo", Branch: "main"})

	changes := rec.waitFor(t, 1)
	require.Len(t, changes, 1)
}

func TestNotifier_CloseStopsDelivery(t *testing.T) {
	t.Parallel()
	rec := &changeRecorder{}
	n := NewNotifier(rec.record)
	e := newTestEngine(t, WithNodeChangeNotifier(n))

	insertNode(t, e, &Node{ID: "n1", Type: TypeNamedExport, Name: "foo", Branch: "main"})
	rec.waitFor(t, 1)

	n.Close()
	n.Close() // safe to repeat

	insertNode(t, e, &Node{ID: "n2", Type: TypeNamedExport, Name: "bar", Branch: "main"})
	time.Sleep(50 * time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Len(t, rec.changes, 1)
}

func TestNotifier_WithoutOptionNoHookRegistered(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	insertNode(t, e, &Node{ID: "n1", Type: TypeNamedExport, Name: "foo", Branch: "main"})

	n, err := e.Store().NodeByID("n1")
	require.NoError(t, err)
	assert.NotNil(t, n)
}
