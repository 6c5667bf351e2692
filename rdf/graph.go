package rdf

import "strings"

// Graph is an in-memory set of triples with stable insertion order.
// Duplicate triples collapse on Add; iteration over Triples always
// reproduces the order in which distinct triples were first added, which
// keeps downstream processing deterministic for a given input document.
type Graph struct {
	triples  []Triple
	index    map[string]struct{}
	prefixes map[string]string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{index: map[string]struct{}{}}
}

// Add inserts a triple. It reports whether the triple was new; adding a
// triple that is already present is a no-op.
func (g *Graph) Add(t Triple) bool {
	if t.S == nil || t.P.Value == "" || t.O == nil {
		return false
	}
	key := tripleKey(t)
	if _, ok := g.index[key]; ok {
		return false
	}
	g.index[key] = struct{}{}
	g.triples = append(g.triples, t)
	return true
}

// Contains reports whether the graph holds the given triple.
func (g *Graph) Contains(t Triple) bool {
	_, ok := g.index[tripleKey(t)]
	return ok
}

// Len returns the number of distinct triples in the graph.
func (g *Graph) Len() int { return len(g.triples) }

// Triples returns the triples in insertion order. The slice is shared
// with the graph and must not be mutated by the caller.
func (g *Graph) Triples() []Triple { return g.triples }

// Bind records a namespace prefix binding. Bindings are carried through
// to serializations that support prefix directives.
func (g *Graph) Bind(prefix, namespace string) {
	if g.prefixes == nil {
		g.prefixes = map[string]string{}
	}
	g.prefixes[prefix] = namespace
}

// Prefixes returns the recorded namespace bindings.
func (g *Graph) Prefixes() map[string]string { return g.prefixes }

func tripleKey(t Triple) string {
	var b strings.Builder
	writeTermKey(&b, t.S)
	b.WriteByte(0)
	b.WriteString(t.P.Value)
	b.WriteByte(0)
	writeTermKey(&b, t.O)
	return b.String()
}

func writeTermKey(b *strings.Builder, term Term) {
	switch value := term.(type) {
	case IRI:
		b.WriteByte('i')
		b.WriteString(value.Value)
	case BlankNode:
		b.WriteByte('b')
		b.WriteString(value.ID)
	case Literal:
		b.WriteByte('l')
		b.WriteString(value.Lexical)
		b.WriteByte(0)
		b.WriteString(value.Datatype.Value)
		b.WriteByte(0)
		b.WriteString(value.Lang)
	}
}
