package rdf

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	ld "github.com/piprate/json-gold/ld"
)

// jsonldDecoder converts a JSON-LD document to triples using json-gold.
// The whole document is expanded up front; Next then drains the result.
// Named graphs are merged into the default graph in deterministic order,
// since the renumber pipeline operates on a single triple set.
type jsonldDecoder struct {
	reader  io.Reader
	triples []Triple
	loaded  bool
	err     error
}

func newJSONLDDecoder(r io.Reader) *jsonldDecoder {
	return &jsonldDecoder{reader: r}
}

func (d *jsonldDecoder) Next() (Triple, error) {
	if d.err != nil {
		return Triple{}, d.err
	}
	if !d.loaded {
		if err := d.load(); err != nil {
			d.err = err
			return Triple{}, err
		}
	}
	if len(d.triples) == 0 {
		return Triple{}, io.EOF
	}
	triple := d.triples[0]
	d.triples = d.triples[1:]
	return triple, nil
}

func (d *jsonldDecoder) Close() error { return nil }

func (d *jsonldDecoder) load() error {
	var document interface{}
	if err := json.NewDecoder(d.reader).Decode(&document); err != nil {
		return wrapParseError("jsonld", "", 0, err)
	}
	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions("")
	result, err := proc.ToRDF(document, opts)
	if err != nil {
		return wrapParseError("jsonld", "", 0, err)
	}
	dataset, ok := result.(*ld.RDFDataset)
	if !ok {
		return wrapParseError("jsonld", "", 0, fmt.Errorf("unexpected ToRDF result %T", result))
	}

	graphNames := make([]string, 0, len(dataset.Graphs))
	for name := range dataset.Graphs {
		if name == "@default" {
			continue
		}
		graphNames = append(graphNames, name)
	}
	sort.Strings(graphNames)
	graphNames = append([]string{"@default"}, graphNames...)

	for _, name := range graphNames {
		for _, quad := range dataset.Graphs[name] {
			if quad == nil {
				continue
			}
			triple, err := tripleFromLDQuad(quad)
			if err != nil {
				return wrapParseError("jsonld", "", 0, err)
			}
			d.triples = append(d.triples, triple)
		}
	}
	d.loaded = true
	return nil
}

func tripleFromLDQuad(quad *ld.Quad) (Triple, error) {
	subject, err := termFromLDNode(quad.Subject)
	if err != nil {
		return Triple{}, err
	}
	predicate, err := termFromLDNode(quad.Predicate)
	if err != nil {
		return Triple{}, err
	}
	predicateIRI, ok := predicate.(IRI)
	if !ok {
		return Triple{}, fmt.Errorf("predicate must be an IRI, got %T", predicate)
	}
	object, err := termFromLDNode(quad.Object)
	if err != nil {
		return Triple{}, err
	}
	return Triple{S: subject, P: predicateIRI, O: object}, nil
}

func termFromLDNode(node ld.Node) (Term, error) {
	switch value := node.(type) {
	case *ld.IRI:
		return IRI{Value: value.Value}, nil
	case ld.IRI:
		return IRI{Value: value.Value}, nil
	case *ld.BlankNode:
		return BlankNode{ID: trimBlankPrefix(value.Attribute)}, nil
	case ld.BlankNode:
		return BlankNode{ID: trimBlankPrefix(value.Attribute)}, nil
	case *ld.Literal:
		return literalFromLD(value.Value, value.Datatype, value.Language), nil
	case ld.Literal:
		return literalFromLD(value.Value, value.Datatype, value.Language), nil
	default:
		return nil, fmt.Errorf("unsupported node type %T", node)
	}
}

func literalFromLD(lexical, datatype, language string) Literal {
	literal := Literal{Lexical: lexical, Lang: language}
	if language == "" && datatype != "" && datatype != ld.XSDString {
		literal.Datatype = IRI{Value: datatype}
	}
	return literal
}

func trimBlankPrefix(attribute string) string {
	if len(attribute) > 2 && attribute[:2] == "_:" {
		return attribute[2:]
	}
	return attribute
}
