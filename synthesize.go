package depgraph

import (
	"fmt"
	"strings"

	"github.com/seeyon-dev/depgraph/internal/store"
)

// Connection synthesis is a single-shot batch: read every node, index the
// producer classes, walk the reader classes under the matching rules, insert
// whatever is new in one transaction, then report the resulting graph's
// cycles. Readers and producers must sit on the same branch and in different
// projects.

// exportKey addresses NamedExport producers by owning project, exported name
// (or entry name) and branch.
type exportKey struct {
	project string
	name    string
	branch  string
}

// writeKey addresses writer-class producers by type, written name and branch.
type writeKey struct {
	typ    string
	name   string
	branch string
}

// synthesisIndexes holds the producer-side lookup maps built once per batch.
type synthesisIndexes struct {
	nodesByType         map[string][]*store.Node
	namedExports        map[exportKey][]*store.Node // project : name : branch
	namedExportsByEntry map[exportKey][]*store.Node // project : entryName : branch
	genericWrites       map[writeKey][]*store.Node  // type : name : branch
	entryNames          map[string]string           // NamedExport node id -> entryName
}

// entryNameOf scans meta for the literal "entryName" and returns the first
// double-quoted token after it. Any malformed input yields the empty string;
// the scanner never errors.
func entryNameOf(meta string) string {
	i := strings.Index(meta, `"entryName"`)
	if i < 0 {
		return ""
	}
	rest := meta[i+len(`"entryName"`):]
	start := strings.IndexByte(rest, '"')
	if start < 0 {
		return ""
	}
	rest = rest[start+1:]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return ""
	}
	return rest[:end]
}

var genericWriteTypes = []string{
	TypeGlobalVarWrite,
	TypeWebStorageWrite,
	TypeUrlParamWrite,
	TypeEventEmit,
}

func buildIndexes(nodes []*store.Node) *synthesisIndexes {
	idx := &synthesisIndexes{
		nodesByType:         make(map[string][]*store.Node),
		namedExports:        make(map[exportKey][]*store.Node),
		namedExportsByEntry: make(map[exportKey][]*store.Node),
		genericWrites:       make(map[writeKey][]*store.Node),
		entryNames:          make(map[string]string),
	}
	writers := make(map[string]bool, len(genericWriteTypes))
	for _, t := range genericWriteTypes {
		writers[t] = true
	}
	for _, n := range nodes {
		idx.nodesByType[n.Type] = append(idx.nodesByType[n.Type], n)
		switch {
		case n.Type == TypeNamedExport:
			k := exportKey{project: n.ProjectName, name: n.Name, branch: n.Branch}
			idx.namedExports[k] = append(idx.namedExports[k], n)
			entry := entryNameOf(n.Meta)
			idx.entryNames[n.ID] = entry
			if entry != "" {
				ek := exportKey{project: n.ProjectName, name: entry, branch: n.Branch}
				idx.namedExportsByEntry[ek] = append(idx.namedExportsByEntry[ek], n)
			}
		case writers[n.Type]:
			k := writeKey{typ: n.Type, name: n.Name, branch: n.Branch}
			idx.genericWrites[k] = append(idx.genericWrites[k], n)
		}
	}
	return idx
}

// synthesisBatch accumulates matches for one auto_create_connections run.
// seen starts as the persisted connection set and grows with every enqueued
// edge, so a pair is only ever queued once per batch.
type synthesisBatch struct {
	idx        *synthesisIndexes
	entryNames map[string]bool
	seen       map[store.Connection]bool
	queued     []store.Connection
	skipped    int
}

// processMatch links reader to each candidate producer that sits in another
// project. When entryFiltered is set the candidate's entryName must be one of
// the configured entry surfaces. Pairs already seen count as skipped.
func (b *synthesisBatch) processMatch(reader *store.Node, candidates []*store.Node, entryFiltered bool) {
	for _, cand := range candidates {
		if cand.ProjectName == reader.ProjectName {
			continue
		}
		if entryFiltered && !b.entryNames[b.idx.entryNames[cand.ID]] {
			continue
		}
		c := store.Connection{FromID: reader.ID, ToID: cand.ID}
		if b.seen[c] {
			b.skipped++
			continue
		}
		b.seen[c] = true
		b.queued = append(b.queued, c)
	}
}

// matchNamedImports links NamedImport readers to NamedExport producers. The
// reader name is "project.export"; readers without a dot are skipped.
func (b *synthesisBatch) matchNamedImports() {
	for _, r := range b.idx.nodesByType[TypeNamedImport] {
		parts := strings.Split(r.Name, ".")
		if len(parts) < 2 {
			continue
		}
		k := exportKey{project: parts[0], name: parts[1], branch: r.Branch}
		b.processMatch(r, b.idx.namedExports[k], true)
	}
}

// matchRuntimeDynamicImports links RuntimeDynamicImport readers to
// NamedExport producers. The reader name is "project.container.export";
// readers with fewer than two dots are skipped.
func (b *synthesisBatch) matchRuntimeDynamicImports() {
	for _, r := range b.idx.nodesByType[TypeRuntimeDynamicImport] {
		parts := strings.Split(r.Name, ".")
		if len(parts) < 3 {
			continue
		}
		k := exportKey{project: parts[0], name: parts[2], branch: r.Branch}
		b.processMatch(r, b.idx.namedExports[k], false)
	}
}

// matchGenericWrites links a reader type to its writer type through the
// shared name: global variables, web storage keys, URL parameters and event
// channels all pair the same way.
func (b *synthesisBatch) matchGenericWrites(readerType, writerType string) {
	for _, r := range b.idx.nodesByType[readerType] {
		k := writeKey{typ: writerType, name: r.Name, branch: r.Branch}
		b.processMatch(r, b.idx.genericWrites[k], false)
	}
}

// matchModuleFederationRefs links DynamicModuleFederationReference readers to
// NamedExport producers addressed by entry name. The reader name is
// "project.entry"; readers without a dot are skipped.
func (b *synthesisBatch) matchModuleFederationRefs() {
	for _, r := range b.idx.nodesByType[TypeDynamicModuleFederationRef] {
		parts := strings.Split(r.Name, ".")
		if len(parts) < 2 {
			continue
		}
		k := exportKey{project: parts[0], name: parts[1], branch: r.Branch}
		b.processMatch(r, b.idx.namedExportsByEntry[k], false)
	}
}

// AutoCreateConnections runs one synthesis batch and returns the result
// envelope: counts of created and skipped edges, accumulated row errors, and
// the cycles present in the graph after the batch.
func (e *Engine) AutoCreateConnections() (string, error) {
	nodes, err := e.store.AllNodes()
	if err != nil {
		return "", fmt.Errorf("auto create connections: %w", err)
	}

	var errs []string
	conns, err := e.store.AllConnections()
	if err != nil {
		errs = append(errs, err.Error())
	}

	b := &synthesisBatch{
		idx:        buildIndexes(nodes),
		entryNames: e.entryNames,
		seen:       make(map[store.Connection]bool, len(conns)),
	}
	for _, c := range conns {
		b.seen[c] = true
	}

	b.matchNamedImports()
	b.matchRuntimeDynamicImports()
	b.matchGenericWrites(TypeGlobalVarRead, TypeGlobalVarWrite)
	b.matchGenericWrites(TypeWebStorageRead, TypeWebStorageWrite)
	b.matchGenericWrites(TypeEventOn, TypeEventEmit)
	b.matchGenericWrites(TypeUrlParamRead, TypeUrlParamWrite)
	b.matchModuleFederationRefs()

	created, rowErrs, err := e.store.InsertConnections(b.queued)
	if err != nil {
		return "", fmt.Errorf("auto create connections: %w", err)
	}
	errs = append(errs, rowErrs...)

	vertices := make([]VertexData, 0, len(nodes))
	for _, n := range nodes {
		vertices = append(vertices, nodeVertexData(n))
	}
	edges := make([]Connection, 0, len(conns)+len(b.queued))
	edges = append(edges, conns...)
	edges = append(edges, b.queued...)

	g := BuildGraph(vertices, edges)
	cycles := FindCycles(g)

	return emitSynthesis(created, b.skipped, errs, cycles), nil
}
