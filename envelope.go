package depgraph

import (
	"strconv"
	"strings"
)

// The envelopes are built by direct string construction so key order is
// fixed and byte-stable for downstream consumers. Input strings are assumed
// to be UTF-8 and are not revalidated.

// envelopeReserve is the initial buffer reservation for envelope output.
const envelopeReserve = 4 << 20

// appendString writes s as a JSON string literal. Escapes the two-character
// forms for quote, backslash, slash, backspace, form feed, newline, carriage
// return, and tab; every other byte is copied verbatim.
func appendString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '/':
			b.WriteString(`\/`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
}

func appendField(b *strings.Builder, key, value string) {
	appendString(b, key)
	b.WriteByte(':')
	appendString(b, value)
}

func appendIntField(b *strings.Builder, key string, value int) {
	appendString(b, key)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(value))
}

// appendVertexData writes the data payload of a vertex. id, name, type and
// branch are always present. projectName and projectId follow when non-empty.
// Source position fields travel together, keyed off relativePath; project
// rows carry addr instead; a vertex with neither gets the "_" placeholder so
// the object is never empty.
func appendVertexData(b *strings.Builder, d *VertexData) {
	b.WriteByte('{')
	appendField(b, "id", d.ID)
	b.WriteByte(',')
	appendField(b, "name", d.Name)
	b.WriteByte(',')
	appendField(b, "type", d.Type)
	b.WriteByte(',')
	appendField(b, "branch", d.Branch)
	if d.ProjectName != "" {
		b.WriteByte(',')
		appendField(b, "projectName", d.ProjectName)
	}
	if d.ProjectID != "" {
		b.WriteByte(',')
		appendField(b, "projectId", d.ProjectID)
	}
	switch {
	case d.RelativePath != "":
		b.WriteByte(',')
		appendField(b, "relativePath", d.RelativePath)
		b.WriteByte(',')
		appendIntField(b, "startLine", d.StartLine)
		b.WriteByte(',')
		appendIntField(b, "startColumn", d.StartColumn)
	case d.Addr != "":
		b.WriteByte(',')
		appendField(b, "addr", d.Addr)
	default:
		b.WriteByte(',')
		appendIntField(b, "_", 0)
	}
	b.WriteByte('}')
}

// appendCycles writes an array of cycles, each an array of {id, name, type}
// objects with the opening vertex repeated as the last element.
func appendCycles(b *strings.Builder, cycles [][]VertexData) {
	b.WriteByte('[')
	for i, cycle := range cycles {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('[')
		for j := range cycle {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('{')
			appendField(b, "id", cycle[j].ID)
			b.WriteByte(',')
			appendField(b, "name", cycle[j].Name)
			b.WriteByte(',')
			appendField(b, "type", cycle[j].Type)
			b.WriteByte('}')
		}
		b.WriteByte(']')
	}
	b.WriteByte(']')
}

// emitSynthesis renders the auto_create_connections envelope. Key order:
// createdConnections, skippedConnections, errors, cycles.
func emitSynthesis(created, skipped int, errs []string, cycles [][]VertexData) string {
	var b strings.Builder
	b.Grow(envelopeReserve)
	b.WriteByte('{')
	appendIntField(&b, "createdConnections", created)
	b.WriteByte(',')
	appendIntField(&b, "skippedConnections", skipped)
	b.WriteByte(',')
	appendString(&b, "errors")
	b.WriteString(":[")
	for i, msg := range errs {
		if i > 0 {
			b.WriteByte(',')
		}
		appendString(&b, msg)
	}
	b.WriteString("],")
	appendString(&b, "cycles")
	b.WriteByte(':')
	appendCycles(&b, cycles)
	b.WriteByte('}')
	return b.String()
}

// emitSubgraph renders a materialized sub-graph envelope. Key order:
// vertices, edges, then cycles only when at least one was found.
func emitSubgraph(g *OrthogonalGraph, cycles [][]VertexData) string {
	var b strings.Builder
	b.Grow(envelopeReserve)
	b.WriteByte('{')
	appendString(&b, "vertices")
	b.WriteString(":[")
	for i := range g.Vertices {
		if i > 0 {
			b.WriteByte(',')
		}
		v := &g.Vertices[i]
		b.WriteByte('{')
		appendString(&b, "data")
		b.WriteByte(':')
		appendVertexData(&b, &v.Data)
		b.WriteByte(',')
		appendIntField(&b, "firstIn", v.FirstIn)
		b.WriteByte(',')
		appendIntField(&b, "firstOut", v.FirstOut)
		b.WriteByte(',')
		appendIntField(&b, "inDegree", v.InDegree)
		b.WriteByte(',')
		appendIntField(&b, "outDegree", v.OutDegree)
		b.WriteByte('}')
	}
	b.WriteString("],")
	appendString(&b, "edges")
	b.WriteString(":[")
	for i := range g.Edges {
		if i > 0 {
			b.WriteByte(',')
		}
		e := &g.Edges[i]
		b.WriteByte('{')
		appendString(&b, "data")
		b.WriteString(":{")
		appendField(&b, "id", e.Data.ID)
		b.WriteByte(',')
		appendField(&b, "fromId", e.Data.FromID)
		b.WriteByte(',')
		appendField(&b, "toId", e.Data.ToID)
		b.WriteString("},")
		appendIntField(&b, "tailvertex", e.TailVertex)
		b.WriteByte(',')
		appendIntField(&b, "headvertex", e.HeadVertex)
		b.WriteByte(',')
		appendIntField(&b, "headnext", e.HeadNext)
		b.WriteByte(',')
		appendIntField(&b, "tailnext", e.TailNext)
		b.WriteByte('}')
	}
	b.WriteByte(']')
	if len(cycles) > 0 {
		b.WriteByte(',')
		appendString(&b, "cycles")
		b.WriteByte(':')
		appendCycles(&b, cycles)
	}
	b.WriteByte('}')
	return b.String()
}
