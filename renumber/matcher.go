package renumber

import (
	"strings"

	"github.com/conceptworks/renumber/rdf"
	"github.com/conceptworks/renumber/vocab"
)

// Matcher decides whether a URI is eligible for renumbering. It is a
// pure predicate over an immutable rule set: a URI matches when it
// starts with the base URI, its remainder satisfies the target term
// under the configured mode, and, when a target class is set, the graph
// types the URI as that class.
type Matcher struct {
	base  string
	term  string
	mode  MatchMode
	typed map[string]struct{} // nil when no class gate is configured
}

// NewMatcher builds a matcher from the configuration. When TargetClass
// is set the input graph is scanned once for rdf:type statements so the
// per-URI check stays O(1).
func NewMatcher(cfg Config, graph *rdf.Graph) *Matcher {
	m := &Matcher{
		base: cfg.BaseURI,
		term: cfg.TargetTerm,
		mode: cfg.MatchMode,
	}
	if cfg.TargetClass != "" && graph != nil {
		m.typed = map[string]struct{}{}
		for _, t := range graph.Triples() {
			if t.P.Value != vocab.RDFType {
				continue
			}
			subject, ok := t.S.(rdf.IRI)
			if !ok {
				continue
			}
			object, ok := t.O.(rdf.IRI)
			if !ok || object.Value != cfg.TargetClass {
				continue
			}
			m.typed[subject.Value] = struct{}{}
		}
	}
	return m
}

// Matches reports whether the URI should be renumbered.
func (m *Matcher) Matches(uri string) bool {
	if !strings.HasPrefix(uri, m.base) {
		return false
	}
	if !m.termMatches(uri) {
		return false
	}
	if m.typed != nil {
		if _, ok := m.typed[uri]; !ok {
			return false
		}
	}
	return true
}

func (m *Matcher) termMatches(uri string) bool {
	if m.term == "" {
		return true
	}
	rest := uri[len(m.base):]
	switch m.mode {
	case MatchPrefix:
		return strings.HasPrefix(rest, m.term)
	case MatchSegment:
		for _, segment := range strings.Split(rest, "/") {
			if segment == m.term {
				return true
			}
		}
		return false
	default: // MatchSubstring
		return strings.Contains(uri, m.term)
	}
}
