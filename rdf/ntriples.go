package rdf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ntDecoder streams triples from an N-Triples document, one statement
// per line.
type ntDecoder struct {
	reader *bufio.Reader
	err    error
	line   int
}

func newNTriplesDecoder(r io.Reader) *ntDecoder {
	return &ntDecoder{reader: bufio.NewReader(r)}
}

func (d *ntDecoder) Next() (Triple, error) {
	if d.err != nil {
		return Triple{}, d.err
	}
	for {
		line, err := d.readLine()
		if err != nil {
			if err == io.EOF {
				return Triple{}, io.EOF
			}
			d.err = err
			return Triple{}, err
		}
		d.line++
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		triple, err := parseNTLine(line)
		if err != nil {
			err = wrapParseError("ntriples", line, d.line, err)
			d.err = err
			return Triple{}, err
		}
		return triple, nil
	}
}

func (d *ntDecoder) Close() error { return nil }

func (d *ntDecoder) readLine() (string, error) {
	line, err := d.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			return line, nil
		}
		return "", err
	}
	return line, nil
}

func parseNTLine(line string) (Triple, error) {
	cursor := &ntCursor{input: line}
	subject, err := cursor.parseTerm(false)
	if err != nil {
		return Triple{}, err
	}
	predicate, err := cursor.parseIRI()
	if err != nil {
		return Triple{}, err
	}
	object, err := cursor.parseTerm(true)
	if err != nil {
		return Triple{}, err
	}
	cursor.skipWS()
	if !cursor.consume('.') {
		return Triple{}, cursor.errorf("expected '.' at end of statement")
	}
	return Triple{S: subject, P: predicate, O: object}, nil
}

type ntCursor struct {
	input string
	pos   int
}

func (c *ntCursor) skipWS() {
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		default:
			return
		}
	}
}

func (c *ntCursor) consume(ch byte) bool {
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

func (c *ntCursor) parseTerm(allowLiteral bool) (Term, error) {
	c.skipWS()
	if c.pos >= len(c.input) {
		return nil, c.errorf("unexpected end of line")
	}
	switch {
	case c.input[c.pos] == '<':
		return c.parseIRI()
	case strings.HasPrefix(c.input[c.pos:], "_:"):
		return c.parseBlankNode()
	case c.input[c.pos] == '"':
		if !allowLiteral {
			return nil, c.errorf("literal not allowed here")
		}
		return c.parseLiteral()
	default:
		return nil, c.errorf("unexpected token")
	}
}

func (c *ntCursor) parseIRI() (IRI, error) {
	c.skipWS()
	if !c.consume('<') {
		return IRI{}, c.errorf("expected IRI")
	}
	var builder strings.Builder
	for c.pos < len(c.input) && c.input[c.pos] != '>' {
		ch := c.input[c.pos]
		if ch == '\\' {
			// Only \uXXXX and \UXXXXXXXX escapes are legal in an IRIREF.
			if c.pos+1 >= len(c.input) || (c.input[c.pos+1] != 'u' && c.input[c.pos+1] != 'U') {
				return IRI{}, c.errorf("invalid escape in IRI")
			}
			value, width, err := unescapeAt(c.input, c.pos)
			if err != nil {
				return IRI{}, c.errorf("%v", err)
			}
			builder.WriteString(value)
			c.pos += width
			continue
		}
		builder.WriteByte(ch)
		c.pos++
	}
	if c.pos >= len(c.input) {
		return IRI{}, c.errorf("unterminated IRI")
	}
	c.pos++
	return IRI{Value: builder.String()}, nil
}

func (c *ntCursor) parseBlankNode() (BlankNode, error) {
	c.pos += 2
	start := c.pos
	for c.pos < len(c.input) && !isNTDelimiter(c.input[c.pos]) {
		c.pos++
	}
	if start == c.pos {
		return BlankNode{}, c.errorf("blank node id missing")
	}
	return BlankNode{ID: c.input[start:c.pos]}, nil
}

func (c *ntCursor) parseLiteral() (Literal, error) {
	c.pos++ // consume '"'
	var builder strings.Builder
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		if ch == '"' {
			c.pos++
			goto suffix
		}
		if ch == '\\' {
			value, width, err := unescapeAt(c.input, c.pos)
			if err != nil {
				return Literal{}, c.errorf("%v", err)
			}
			builder.WriteString(value)
			c.pos += width
			continue
		}
		builder.WriteByte(ch)
		c.pos++
	}
	return Literal{}, c.errorf("unterminated literal")

suffix:
	lexical := builder.String()
	if c.pos < len(c.input) && c.input[c.pos] == '@' {
		c.pos++
		start := c.pos
		for c.pos < len(c.input) && !isNTDelimiter(c.input[c.pos]) {
			c.pos++
		}
		return Literal{Lexical: lexical, Lang: c.input[start:c.pos]}, nil
	}
	if strings.HasPrefix(c.input[c.pos:], "^^") {
		c.pos += 2
		dt, err := c.parseIRI()
		if err != nil {
			return Literal{}, err
		}
		return Literal{Lexical: lexical, Datatype: dt}, nil
	}
	return Literal{Lexical: lexical}, nil
}

func (c *ntCursor) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("ntriples: "+format, args...)
}

func isNTDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '.':
		return true
	default:
		return false
	}
}

// ntEncoder streams triples as N-Triples, or as N-Quads when a graph
// name is configured.
type ntEncoder struct {
	writer *bufio.Writer
	err    error
	quads  bool
	graph  string
}

func newNTriplesEncoder(w io.Writer) *ntEncoder {
	return &ntEncoder{writer: bufio.NewWriter(w)}
}

func newNQuadsEncoder(w io.Writer, graphName string) *ntEncoder {
	return &ntEncoder{writer: bufio.NewWriter(w), quads: true, graph: graphName}
}

func (e *ntEncoder) Write(t Triple) error {
	if e.err != nil {
		return e.err
	}
	if t.S == nil || t.P.Value == "" || t.O == nil {
		return fmt.Errorf("ntriples: missing statement fields")
	}
	line := renderTerm(t.S) + " " + renderIRI(t.P) + " " + renderTerm(t.O)
	if e.quads && e.graph != "" {
		line += " " + renderIRI(IRI{Value: e.graph})
	}
	line += " .\n"
	_, err := e.writer.WriteString(line)
	if err != nil {
		e.err = err
	}
	return err
}

func (e *ntEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.writer.Flush()
}

func (e *ntEncoder) Close() error { return e.Flush() }

func renderIRI(iri IRI) string {
	return "<" + iri.Value + ">"
}

func renderTerm(term Term) string {
	switch value := term.(type) {
	case IRI:
		return renderIRI(value)
	case BlankNode:
		return value.String()
	case Literal:
		if value.Lang != "" {
			return escapeLiteral(value.Lexical) + "@" + value.Lang
		}
		if value.Datatype.Value != "" {
			return escapeLiteral(value.Lexical) + "^^" + renderIRI(value.Datatype)
		}
		return escapeLiteral(value.Lexical)
	default:
		return ""
	}
}

func escapeLiteral(lexical string) string {
	var builder strings.Builder
	builder.Grow(len(lexical) + 2)
	builder.WriteByte('"')
	for i := 0; i < len(lexical); i++ {
		switch ch := lexical[i]; ch {
		case '"':
			builder.WriteString("\\\"")
		case '\\':
			builder.WriteString("\\\\")
		case '\n':
			builder.WriteString("\\n")
		case '\r':
			builder.WriteString("\\r")
		case '\t':
			builder.WriteString("\\t")
		default:
			builder.WriteByte(ch)
		}
	}
	builder.WriteByte('"')
	return builder.String()
}
