package depgraph

import (
	"fmt"
	"path/filepath"
	"testing"
)

func benchVertices(n int) []VertexData {
	out := make([]VertexData, n)
	for i := range out {
		out[i] = VertexData{ID: fmt.Sprintf("n%d", i), Name: "name", Type: "NamedExport", Branch: "main"}
	}
	return out
}

func benchEdges(n int) []Connection {
	out := make([]Connection, n)
	for i := range out {
		out[i] = Connection{
			FromID: fmt.Sprintf("n%d", i),
			ToID:   fmt.Sprintf("n%d", (i*7+1)%n),
		}
	}
	return out
}

func BenchmarkBuildGraph_10k(b *testing.B) {
	vertices := benchVertices(10000)
	edges := benchEdges(10000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		BuildGraph(vertices, edges)
	}
}

func BenchmarkFindCycles_10k(b *testing.B) {
	g := BuildGraph(benchVertices(10000), benchEdges(10000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FindCycles(g)
	}
}

func BenchmarkEmitSubgraph_10k(b *testing.B) {
	g := BuildGraph(benchVertices(10000), benchEdges(10000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		emitSubgraph(g, nil)
	}
}

func BenchmarkAutoCreateConnections_1kNodes(b *testing.B) {
	e, err := New(filepath.Join(b.TempDir(), "bench.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer e.Close()

	for i := 0; i < 500; i++ {
		reader := &Node{ID: fmt.Sprintf("r%d", i), Type: TypeGlobalVarRead,
			Name: fmt.Sprintf("var%d", i), ProjectName: "A", Branch: "main"}
		writer := &Node{ID: fmt.Sprintf("w%d", i), Type: TypeGlobalVarWrite,
			Name: fmt.Sprintf("var%d", i), ProjectName: "B", Branch: "main"}
		if err := e.Store().InsertNode(reader); err != nil {
			b.Fatal(err)
		}
		if err := e.Store().InsertNode(writer); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.AutoCreateConnections(); err != nil {
			b.Fatal(err)
		}
	}
}
