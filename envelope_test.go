package depgraph

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// String escaping
// =============================================================================

func TestAppendString_EscapesControlSet(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	appendString(&b, "a\"b\\c/d\be\ff\ng\rh\ti")

	var decoded string
	require.NoError(t, json.Unmarshal([]byte(b.String()), &decoded))
	assert.Equal(t, "a\"b\\c/d\be\ff\ng\rh\ti", decoded)
	assert.Contains(t, b.String(), `\/`)
}

func TestAppendString_CopiesPlainBytesVerbatim(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	appendString(&b, "plain.name-123")
	assert.Equal(t, `"plain.name-123"`, b.String())
}

// =============================================================================
// Synthesis envelope
// =============================================================================

func TestEmitSynthesis_KeyOrderAndContent(t *testing.T) {
	t.Parallel()
	out := emitSynthesis(3, 2, []string{"UNIQUE constraint failed"}, nil)

	assert.True(t, strings.HasPrefix(out, `{"createdConnections":3,"skippedConnections":2,"errors":[`))

	var env struct {
		Created int            `json:"createdConnections"`
		Skipped int            `json:"skippedConnections"`
		Errors  []string       `json:"errors"`
		Cycles  [][]cycleEntry `json:"cycles"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Equal(t, 3, env.Created)
	assert.Equal(t, 2, env.Skipped)
	assert.Equal(t, []string{"UNIQUE constraint failed"}, env.Errors)
	assert.Empty(t, env.Cycles)
}

type cycleEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func TestEmitSynthesis_CyclesCarryIDNameType(t *testing.T) {
	t.Parallel()
	cycle := []VertexData{
		{ID: "a", Name: "na", Type: "ta"},
		{ID: "b", Name: "nb", Type: "tb"},
		{ID: "a", Name: "na", Type: "ta"},
	}
	out := emitSynthesis(0, 0, nil, [][]VertexData{cycle})

	var env struct {
		Cycles [][]cycleEntry `json:"cycles"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	require.Len(t, env.Cycles, 1)
	require.Len(t, env.Cycles[0], 3)
	assert.Equal(t, cycleEntry{ID: "a", Name: "na", Type: "ta"}, env.Cycles[0][0])
	assert.Equal(t, env.Cycles[0][0], env.Cycles[0][2])
}

// =============================================================================
// Sub-graph envelope
// =============================================================================

type subgraphEnvelope struct {
	Vertices []struct {
		Data      map[string]any `json:"data"`
		FirstIn   int            `json:"firstIn"`
		FirstOut  int            `json:"firstOut"`
		InDegree  int            `json:"inDegree"`
		OutDegree int            `json:"outDegree"`
	} `json:"vertices"`
	Edges []struct {
		Data struct {
			ID     string `json:"id"`
			FromID string `json:"fromId"`
			ToID   string `json:"toId"`
		} `json:"data"`
		TailVertex int `json:"tailvertex"`
		HeadVertex int `json:"headvertex"`
		HeadNext   int `json:"headnext"`
		TailNext   int `json:"tailnext"`
	} `json:"edges"`
	Cycles *[][]cycleEntry `json:"cycles"`
}

func TestEmitSubgraph_OmitsCyclesWhenEmpty(t *testing.T) {
	t.Parallel()
	g := BuildGraph(vdata("a", "b"), []Connection{{FromID: "a", ToID: "b"}})
	out := emitSubgraph(g, nil)

	assert.True(t, strings.HasPrefix(out, `{"vertices":[`))
	assert.NotContains(t, out, `"cycles"`)

	var env subgraphEnvelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	require.Len(t, env.Vertices, 2)
	require.Len(t, env.Edges, 1)
	assert.Equal(t, "a-b", env.Edges[0].Data.ID)
	assert.Nil(t, env.Cycles)
}

func TestEmitSubgraph_IncludesCyclesWhenFound(t *testing.T) {
	t.Parallel()
	g := BuildGraph(vdata("a", "b"), []Connection{
		{FromID: "a", ToID: "b"},
		{FromID: "b", ToID: "a"},
	})
	out := emitSubgraph(g, FindCycles(g))

	var env subgraphEnvelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	require.NotNil(t, env.Cycles)
	require.Len(t, *env.Cycles, 1)
}

func TestEmitSubgraph_VertexDataFieldRules(t *testing.T) {
	t.Parallel()
	vertices := []VertexData{
		{ID: "src", Name: "n", Type: "t", Branch: "main", ProjectName: "P", ProjectID: "p1",
			RelativePath: "src/a.ts", StartLine: 3, StartColumn: 7, Addr: "ignored"},
		{ID: "proj", Name: "n", Type: "t", Branch: "main", Addr: "http://host"},
		{ID: "bare", Name: "n", Type: "t", Branch: "main"},
	}
	out := emitSubgraph(BuildGraph(vertices, nil), nil)

	var env subgraphEnvelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	require.Len(t, env.Vertices, 3)

	src := env.Vertices[0].Data
	assert.Equal(t, "P", src["projectName"])
	assert.Equal(t, "p1", src["projectId"])
	assert.Equal(t, "src/a.ts", src["relativePath"])
	assert.Equal(t, float64(3), src["startLine"])
	assert.Equal(t, float64(7), src["startColumn"])
	assert.NotContains(t, src, "addr")
	assert.NotContains(t, src, "_")

	proj := env.Vertices[1].Data
	assert.Equal(t, "http://host", proj["addr"])
	assert.NotContains(t, proj, "relativePath")
	assert.NotContains(t, proj, "projectName")

	bare := env.Vertices[2].Data
	assert.Equal(t, float64(0), bare["_"])
	assert.NotContains(t, bare, "addr")
	assert.NotContains(t, bare, "relativePath")
}

func TestEmitSubgraph_DegreesAndThreadingSurviveSerialization(t *testing.T) {
	t.Parallel()
	g := BuildGraph(vdata("a", "b", "c"), []Connection{
		{FromID: "a", ToID: "b"},
		{FromID: "a", ToID: "c"},
	})
	out := emitSubgraph(g, nil)

	var env subgraphEnvelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	a := env.Vertices[0]
	assert.Equal(t, 2, a.OutDegree)
	assert.Equal(t, 1, a.FirstOut) // head splice: last inserted edge leads
	assert.Equal(t, -1, a.FirstIn)
	assert.Equal(t, 0, env.Edges[1].TailNext)
	assert.Equal(t, -1, env.Edges[0].TailNext)
}
