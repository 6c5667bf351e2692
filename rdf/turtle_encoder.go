package rdf

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// EncodeOptions configures graph serialization.
type EncodeOptions struct {
	// Prefixes are emitted as @prefix directives and used to abbreviate
	// IRIs in prefix-aware formats.
	Prefixes map[string]string
	// BaseIRI is emitted as an @base directive when set.
	BaseIRI string
	// GraphName wraps the output in a named graph for quad formats
	// (TriG, N-Quads). Triple formats ignore it.
	GraphName string
}

// turtleEncoder streams triples as Turtle, abbreviating IRIs against the
// configured prefix bindings.
type turtleEncoder struct {
	writer  *bufio.Writer
	err     error
	started bool
	opts    EncodeOptions
}

func newTurtleEncoder(w io.Writer, opts EncodeOptions) *turtleEncoder {
	return &turtleEncoder{writer: bufio.NewWriter(w), opts: opts}
}

func (e *turtleEncoder) Write(t Triple) error {
	if e.err != nil {
		return e.err
	}
	if !e.started {
		if err := e.writeHeader(); err != nil {
			return err
		}
	}
	if t.S == nil || t.P.Value == "" || t.O == nil {
		return fmt.Errorf("turtle: missing statement fields")
	}
	line := renderTermWithPrefixes(t.S, e.opts.Prefixes) + " " +
		renderIRIWithPrefixes(t.P, e.opts.Prefixes) + " " +
		renderTermWithPrefixes(t.O, e.opts.Prefixes) + " .\n"
	_, err := e.writer.WriteString(line)
	if err != nil {
		e.err = err
	}
	return err
}

func (e *turtleEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	if !e.started {
		if err := e.writeHeader(); err != nil {
			return err
		}
	}
	return e.writer.Flush()
}

func (e *turtleEncoder) Close() error { return e.Flush() }

func (e *turtleEncoder) writeHeader() error {
	e.started = true
	if err := writePrologue(e.writer, e.opts); err != nil {
		e.err = err
		return err
	}
	return nil
}

// trigEncoder streams triples as TriG. With a GraphName all statements
// are emitted inside a single named graph block, mirroring how a
// thesaurus export identifies its dataset.
type trigEncoder struct {
	writer    *bufio.Writer
	err       error
	started   bool
	blockOpen bool
	opts      EncodeOptions
}

func newTriGEncoder(w io.Writer, opts EncodeOptions) *trigEncoder {
	return &trigEncoder{writer: bufio.NewWriter(w), opts: opts}
}

func (e *trigEncoder) Write(t Triple) error {
	if e.err != nil {
		return e.err
	}
	if !e.started {
		if err := e.writeHeader(); err != nil {
			return err
		}
	}
	if t.S == nil || t.P.Value == "" || t.O == nil {
		return fmt.Errorf("trig: missing statement fields")
	}
	line := renderTermWithPrefixes(t.S, e.opts.Prefixes) + " " +
		renderIRIWithPrefixes(t.P, e.opts.Prefixes) + " " +
		renderTermWithPrefixes(t.O, e.opts.Prefixes) + " .\n"
	if e.blockOpen {
		line = "  " + line
	}
	_, err := e.writer.WriteString(line)
	if err != nil {
		e.err = err
	}
	return err
}

func (e *trigEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	if !e.started {
		if err := e.writeHeader(); err != nil {
			return err
		}
	}
	return e.writer.Flush()
}

func (e *trigEncoder) Close() error {
	if e.err != nil {
		return e.err
	}
	if !e.started {
		if err := e.writeHeader(); err != nil {
			return err
		}
	}
	if e.blockOpen {
		if _, err := e.writer.WriteString("}\n"); err != nil {
			e.err = err
			return err
		}
		e.blockOpen = false
	}
	return e.writer.Flush()
}

func (e *trigEncoder) writeHeader() error {
	e.started = true
	if err := writePrologue(e.writer, e.opts); err != nil {
		e.err = err
		return err
	}
	if e.opts.GraphName != "" {
		graph := renderIRIWithPrefixes(IRI{Value: e.opts.GraphName}, e.opts.Prefixes)
		if _, err := e.writer.WriteString(graph + " {\n"); err != nil {
			e.err = err
			return err
		}
		e.blockOpen = true
	}
	return nil
}

func writePrologue(w *bufio.Writer, opts EncodeOptions) error {
	if opts.BaseIRI != "" {
		if _, err := w.WriteString("@base <" + opts.BaseIRI + "> .\n"); err != nil {
			return err
		}
	}
	for _, prefix := range sortedPrefixKeys(opts.Prefixes) {
		label := prefix + ":"
		if prefix == "" {
			label = ":"
		}
		if _, err := w.WriteString("@prefix " + label + " <" + opts.Prefixes[prefix] + "> .\n"); err != nil {
			return err
		}
	}
	if opts.BaseIRI != "" || len(opts.Prefixes) > 0 {
		if _, err := w.WriteString("\n"); err != nil {
			return err
		}
	}
	return nil
}

func sortedPrefixKeys(prefixes map[string]string) []string {
	keys := make([]string, 0, len(prefixes))
	for key := range prefixes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func renderIRIWithPrefixes(iri IRI, prefixes map[string]string) string {
	if qname, ok := abbreviateQName(iri.Value, prefixes); ok {
		return qname
	}
	return renderIRI(iri)
}

func renderTermWithPrefixes(term Term, prefixes map[string]string) string {
	switch value := term.(type) {
	case IRI:
		return renderIRIWithPrefixes(value, prefixes)
	case BlankNode:
		return value.String()
	case Literal:
		if value.Lang != "" {
			return escapeLiteral(value.Lexical) + "@" + value.Lang
		}
		if value.Datatype.Value != "" {
			return escapeLiteral(value.Lexical) + "^^" + renderIRIWithPrefixes(value.Datatype, prefixes)
		}
		return escapeLiteral(value.Lexical)
	default:
		return ""
	}
}

// abbreviateQName rewrites an IRI as prefix:local against the longest
// matching namespace whose remainder is a safe local name.
func abbreviateQName(iri string, prefixes map[string]string) (string, bool) {
	bestNS := ""
	bestPrefix := ""
	found := false
	for prefix, ns := range prefixes {
		if ns == "" || !strings.HasPrefix(iri, ns) {
			continue
		}
		local := iri[len(ns):]
		if !isQNameLocal(local) {
			continue
		}
		if len(ns) > len(bestNS) {
			bestNS = ns
			bestPrefix = prefix
			found = true
		}
	}
	if !found {
		return "", false
	}
	return bestPrefix + ":" + iri[len(bestNS):], true
}

// isQNameLocal reports whether a local name can be written unescaped in a
// prefixed name. Conservative: anything needing escapes is written as a
// full IRI instead.
func isQNameLocal(local string) bool {
	if local == "" {
		return false
	}
	if local[0] == '-' || local[0] == '.' || strings.HasSuffix(local, ".") {
		return false
	}
	for i := 0; i < len(local); i++ {
		ch := local[i]
		switch {
		case ch >= 'a' && ch <= 'z':
		case ch >= 'A' && ch <= 'Z':
		case ch >= '0' && ch <= '9':
		case ch == '_' || ch == '-' || ch == '.':
		case ch >= 0x80: // multi-byte runes pass through unvalidated
		default:
			return false
		}
	}
	return true
}
