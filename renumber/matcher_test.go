package renumber

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conceptworks/renumber/rdf"
	"github.com/conceptworks/renumber/vocab"
)

func TestMatcherSubstring(t *testing.T) {
	m := NewMatcher(Config{
		BaseURI:    "http://ex.org/thesaurus/",
		TargetTerm: "concept",
		MatchMode:  MatchSubstring,
	}, nil)

	assert.True(t, m.Matches("http://ex.org/thesaurus/concept/apple"))
	assert.True(t, m.Matches("http://ex.org/thesaurus/misconception"))
	assert.False(t, m.Matches("http://ex.org/thesaurus/scheme"))
	assert.False(t, m.Matches("http://other.org/concept/apple"))
}

func TestMatcherPrefix(t *testing.T) {
	m := NewMatcher(Config{
		BaseURI:    "http://ex.org/thesaurus/",
		TargetTerm: "concept/",
		MatchMode:  MatchPrefix,
	}, nil)

	assert.True(t, m.Matches("http://ex.org/thesaurus/concept/apple"))
	assert.False(t, m.Matches("http://ex.org/thesaurus/old/concept/apple"))
}

func TestMatcherSegment(t *testing.T) {
	m := NewMatcher(Config{
		BaseURI:    "http://ex.org/thesaurus/",
		TargetTerm: "concept",
		MatchMode:  MatchSegment,
	}, nil)

	assert.True(t, m.Matches("http://ex.org/thesaurus/concept/apple"))
	assert.True(t, m.Matches("http://ex.org/thesaurus/old/concept/apple"))
	assert.False(t, m.Matches("http://ex.org/thesaurus/misconception/apple"))
}

func TestMatcherEmptyTermMatchesBase(t *testing.T) {
	m := NewMatcher(Config{BaseURI: "http://ex.org/id/"}, nil)

	assert.True(t, m.Matches("http://ex.org/id/anything"))
	assert.False(t, m.Matches("http://ex.org/other/anything"))
}

func TestMatcherClassGate(t *testing.T) {
	graph := rdf.NewGraph()
	graph.Add(rdf.Triple{
		S: rdf.IRI{Value: "http://ex.org/id/apple"},
		P: rdf.IRI{Value: vocab.RDFType},
		O: rdf.IRI{Value: vocab.SKOSConcept},
	})
	graph.Add(rdf.Triple{
		S: rdf.IRI{Value: "http://ex.org/id/scheme"},
		P: rdf.IRI{Value: vocab.RDFType},
		O: rdf.IRI{Value: "http://www.w3.org/2004/02/skos/core#ConceptScheme"},
	})

	m := NewMatcher(Config{
		BaseURI:     "http://ex.org/id/",
		TargetClass: vocab.SKOSConcept,
	}, graph)

	assert.True(t, m.Matches("http://ex.org/id/apple"))
	assert.False(t, m.Matches("http://ex.org/id/scheme"), "wrong class must not match")
	assert.False(t, m.Matches("http://ex.org/id/untyped"), "untyped URI must not match")
}
