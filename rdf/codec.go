package rdf

import "io"

// Decoder streams RDF triples from an input.
type Decoder interface {
	Next() (Triple, error)
	Close() error
}

// Encoder streams RDF triples to an output.
type Encoder interface {
	Write(Triple) error
	Flush() error
	Close() error
}

// prefixReader is implemented by decoders that track prefix directives.
type prefixReader interface {
	Prefixes() map[string]string
}

// NewDecoder creates a decoder for the given format.
func NewDecoder(r io.Reader, format Format) (Decoder, error) {
	switch format {
	case FormatTurtle:
		return newTurtleDecoder(r), nil
	case FormatNTriples:
		return newNTriplesDecoder(r), nil
	case FormatJSONLD:
		return newJSONLDDecoder(r), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// NewEncoder creates an encoder for the given format.
func NewEncoder(w io.Writer, format Format, opts EncodeOptions) (Encoder, error) {
	switch format {
	case FormatTurtle:
		return newTurtleEncoder(w, opts), nil
	case FormatTriG:
		return newTriGEncoder(w, opts), nil
	case FormatNTriples:
		return newNTriplesEncoder(w), nil
	case FormatNQuads:
		return newNQuadsEncoder(w, opts.GraphName), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// DecodeGraph parses an entire document into a Graph, carrying over any
// prefix bindings the document declares.
func DecodeGraph(r io.Reader, format Format) (*Graph, error) {
	dec, err := NewDecoder(r, format)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	graph := NewGraph()
	for {
		triple, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		graph.Add(triple)
	}
	if pr, ok := dec.(prefixReader); ok {
		for prefix, namespace := range pr.Prefixes() {
			graph.Bind(prefix, namespace)
		}
	}
	return graph, nil
}

// EncodeGraph serializes a graph. Prefix bindings recorded on the graph
// are merged under any bindings given in opts.
func EncodeGraph(w io.Writer, graph *Graph, format Format, opts EncodeOptions) error {
	if len(graph.Prefixes()) > 0 {
		merged := make(map[string]string, len(graph.Prefixes())+len(opts.Prefixes))
		for prefix, namespace := range graph.Prefixes() {
			merged[prefix] = namespace
		}
		for prefix, namespace := range opts.Prefixes {
			merged[prefix] = namespace
		}
		opts.Prefixes = merged
	}

	enc, err := NewEncoder(w, format, opts)
	if err != nil {
		return err
	}
	for _, triple := range graph.Triples() {
		if err := enc.Write(triple); err != nil {
			return err
		}
	}
	return enc.Close()
}
