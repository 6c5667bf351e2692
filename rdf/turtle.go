package rdf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Well-known IRIs the Turtle grammar expands keywords and syntactic sugar
// into.
const (
	rdfTypeIRI  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	rdfFirstIRI = "http://www.w3.org/1999/02/22-rdf-syntax-ns#first"
	rdfRestIRI  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#rest"
	rdfNilIRI   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#nil"

	xsdIntegerIRI = "http://www.w3.org/2001/XMLSchema#integer"
	xsdDecimalIRI = "http://www.w3.org/2001/XMLSchema#decimal"
	xsdDoubleIRI  = "http://www.w3.org/2001/XMLSchema#double"
	xsdBooleanIRI = "http://www.w3.org/2001/XMLSchema#boolean"
)

// turtleDecoder streams triples from a Turtle document. Statements are
// accumulated line by line until a top-level '.' terminator is seen, then
// handed to a cursor parser.
type turtleDecoder struct {
	reader       *bufio.Reader
	err          error
	prefixes     map[string]string
	baseIRI      string
	pending      []Triple
	line         int
	bnodeCounter int
}

func newTurtleDecoder(r io.Reader) *turtleDecoder {
	return &turtleDecoder{
		reader:   bufio.NewReader(r),
		prefixes: map[string]string{},
	}
}

func (d *turtleDecoder) Next() (Triple, error) {
	// Return pending triples first (from object lists and expansions).
	if len(d.pending) > 0 {
		triple := d.pending[0]
		d.pending = d.pending[1:]
		return triple, nil
	}
	if d.err != nil {
		return Triple{}, d.err
	}

	for {
		statement, startLine, err := d.readStatement()
		if err != nil {
			d.err = err
			return Triple{}, err
		}
		if statement == "" {
			continue
		}

		triples, err := d.parseStatement(statement)
		if err != nil {
			err = wrapParseError("turtle", statement, startLine, err)
			d.err = err
			return Triple{}, err
		}
		if len(triples) == 0 {
			continue
		}
		if len(triples) > 1 {
			d.pending = triples[1:]
		}
		return triples[0], nil
	}
}

func (d *turtleDecoder) Close() error { return nil }

// Prefixes returns the prefix bindings seen so far.
func (d *turtleDecoder) Prefixes() map[string]string { return d.prefixes }

// readStatement accumulates raw lines until the comment-stripped text
// forms a complete statement. Directive lines are consumed in place.
func (d *turtleDecoder) readStatement() (string, int, error) {
	var raw strings.Builder
	startLine := 0
	for {
		line, err := d.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", startLine, err
		}
		atEOF := err == io.EOF
		if line != "" {
			d.line++
		}

		if raw.Len() == 0 {
			trimmed := strings.TrimSpace(stripComments(line))
			if trimmed == "" {
				if atEOF {
					return "", startLine, io.EOF
				}
				continue
			}
			if d.handleDirective(trimmed) {
				if atEOF {
					return "", startLine, io.EOF
				}
				continue
			}
			startLine = d.line
		}
		raw.WriteString(line)

		stmt := strings.TrimSpace(stripComments(raw.String()))
		if stmt != "" && statementComplete(stmt) {
			return stmt, startLine, nil
		}
		if atEOF {
			if stmt == "" {
				return "", startLine, io.EOF
			}
			// Let the parser report the incomplete statement.
			return stmt, startLine, nil
		}
	}
}

func (d *turtleDecoder) handleDirective(line string) bool {
	if prefix, iri, ok := parsePrefixDirective(line); ok {
		d.prefixes[prefix] = iri
		return true
	}
	if iri, ok := parseBaseDirective(line); ok {
		d.baseIRI = iri
		return true
	}
	return false
}

func (d *turtleDecoder) parseStatement(statement string) ([]Triple, error) {
	cursor := &turtleCursor{
		input:        statement,
		prefixes:     d.prefixes,
		base:         d.baseIRI,
		bnodeCounter: &d.bnodeCounter,
	}
	return cursor.parseStatements()
}

// parsePrefixDirective recognizes "@prefix p: <iri> ." and the SPARQL
// style "PREFIX p: <iri>".
func parsePrefixDirective(line string) (string, string, bool) {
	rest, ok := directiveRest(line, "@prefix")
	if !ok {
		rest, ok = directiveRest(line, "prefix")
	}
	if !ok {
		return "", "", false
	}
	rest = strings.TrimSuffix(strings.TrimSpace(rest), ".")
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return "", "", false
	}
	name := fields[0]
	if !strings.HasSuffix(name, ":") {
		return "", "", false
	}
	iri := fields[1]
	if !strings.HasPrefix(iri, "<") || !strings.HasSuffix(iri, ">") {
		return "", "", false
	}
	return strings.TrimSuffix(name, ":"), strings.Trim(iri, "<>"), true
}

// parseBaseDirective recognizes "@base <iri> ." and "BASE <iri>".
func parseBaseDirective(line string) (string, bool) {
	rest, ok := directiveRest(line, "@base")
	if !ok {
		rest, ok = directiveRest(line, "base")
	}
	if !ok {
		return "", false
	}
	rest = strings.TrimSuffix(strings.TrimSpace(rest), ".")
	iri := strings.TrimSpace(rest)
	if !strings.HasPrefix(iri, "<") || !strings.HasSuffix(iri, ">") {
		return "", false
	}
	return strings.Trim(iri, "<>"), true
}

func directiveRest(line, keyword string) (string, bool) {
	if len(line) < len(keyword) {
		return "", false
	}
	if !strings.EqualFold(line[:len(keyword)], keyword) {
		return "", false
	}
	rest := line[len(keyword):]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	return rest, true
}

// stripComments removes '#' comments while respecting string literals and
// IRI references.
func stripComments(input string) string {
	var out strings.Builder
	out.Grow(len(input))
	var quote byte
	long := false
	inIRI := false
	for i := 0; i < len(input); i++ {
		ch := input[i]
		switch {
		case quote != 0:
			out.WriteByte(ch)
			if ch == '\\' && i+1 < len(input) {
				out.WriteByte(input[i+1])
				i++
				continue
			}
			if ch == quote {
				if !long {
					quote = 0
				} else if strings.HasPrefix(input[i+1:], string([]byte{quote, quote})) {
					out.WriteString(input[i+1 : i+3])
					i += 2
					quote = 0
					long = false
				}
			}
		case inIRI:
			out.WriteByte(ch)
			if ch == '>' {
				inIRI = false
			}
		case ch == '"' || ch == '\'':
			quote = ch
			long = false
			if strings.HasPrefix(input[i:], string([]byte{ch, ch, ch})) {
				long = true
				out.WriteString(input[i : i+3])
				i += 2
				continue
			}
			out.WriteByte(ch)
		case ch == '<':
			inIRI = true
			out.WriteByte(ch)
		case ch == '#':
			// Skip to end of line.
			for i < len(input) && input[i] != '\n' {
				i++
			}
			if i < len(input) {
				out.WriteByte('\n')
			}
		default:
			out.WriteByte(ch)
		}
	}
	return out.String()
}

// statementComplete reports whether the text ends with a top-level '.'
// terminator, i.e. one outside strings, IRIs and bracketed groups.
func statementComplete(stmt string) bool {
	var quote byte
	long := false
	inIRI := false
	depth := 0
	lastDot := -1
	for i := 0; i < len(stmt); i++ {
		ch := stmt[i]
		switch {
		case quote != 0:
			if ch == '\\' {
				i++
				continue
			}
			if ch == quote {
				if !long {
					quote = 0
				} else if strings.HasPrefix(stmt[i+1:], string([]byte{quote, quote})) {
					i += 2
					quote = 0
					long = false
				}
			}
		case inIRI:
			if ch == '>' {
				inIRI = false
			}
		case ch == '"' || ch == '\'':
			quote = ch
			long = false
			if strings.HasPrefix(stmt[i:], string([]byte{ch, ch, ch})) {
				long = true
				i += 2
			}
		case ch == '<':
			inIRI = true
		case ch == '[' || ch == '(':
			depth++
		case ch == ']' || ch == ')':
			depth--
		case ch == '.' && depth == 0:
			lastDot = i
		}
	}
	if quote != 0 || inIRI || depth != 0 || lastDot < 0 {
		return false
	}
	return strings.TrimSpace(stmt[lastDot+1:]) == ""
}

// turtleCursor parses one or more complete statements from a string.
type turtleCursor struct {
	input        string
	pos          int
	prefixes     map[string]string
	base         string
	extra        []Triple // triples generated by collections and property lists
	bnodeCounter *int
}

func (c *turtleCursor) parseStatements() ([]Triple, error) {
	var triples []Triple
	for {
		c.skipWS()
		if c.pos >= len(c.input) {
			return triples, nil
		}
		c.extra = nil
		subject, err := c.parseSubject()
		if err != nil {
			return nil, err
		}
		c.skipWS()
		// A blank node property list may stand alone as a statement.
		if c.pos < len(c.input) && c.input[c.pos] == '.' {
			if len(c.extra) == 0 {
				return nil, c.errorf("expected predicate")
			}
			c.pos++
			triples = append(triples, c.extra...)
			continue
		}
		statementTriples, err := c.parsePredicateObjectList(subject)
		if err != nil {
			return nil, err
		}
		if !c.consume('.') {
			return nil, c.errorf("expected '.' at end of statement")
		}
		triples = append(triples, statementTriples...)
		triples = append(triples, c.extra...)
	}
}

func (c *turtleCursor) skipWS() {
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		default:
			return
		}
	}
}

func (c *turtleCursor) consume(ch byte) bool {
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

func (c *turtleCursor) parseSubject() (Term, error) {
	return c.parseTerm(false)
}

func (c *turtleCursor) parsePredicateObjectList(subject Term) ([]Triple, error) {
	var triples []Triple
	for {
		predicate, err := c.parseVerb()
		if err != nil {
			return nil, err
		}
		for {
			object, err := c.parseTerm(true)
			if err != nil {
				return nil, err
			}
			triples = append(triples, Triple{S: subject, P: predicate, O: object})
			if !c.consume(',') {
				break
			}
		}
		if !c.consume(';') {
			return triples, nil
		}
		// Trailing semicolons before the terminator are allowed.
		for c.consume(';') {
		}
		c.skipWS()
		if c.pos >= len(c.input) || c.input[c.pos] == '.' || c.input[c.pos] == ']' {
			return triples, nil
		}
	}
}

func (c *turtleCursor) parseVerb() (IRI, error) {
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] == 'a' {
		next := c.peekAt(c.pos + 1)
		if next == 0 || next == ' ' || next == '\t' || next == '\r' || next == '\n' || next == '<' || next == '[' {
			c.pos++
			return IRI{Value: rdfTypeIRI}, nil
		}
	}
	term, err := c.parseTerm(false)
	if err != nil {
		return IRI{}, err
	}
	iri, ok := term.(IRI)
	if !ok {
		return IRI{}, c.errorf("predicate must be an IRI")
	}
	return iri, nil
}

func (c *turtleCursor) parseTerm(allowLiteral bool) (Term, error) {
	c.skipWS()
	if c.pos >= len(c.input) {
		return nil, c.errorf("unexpected end of statement")
	}
	switch ch := c.input[c.pos]; {
	case ch == '<':
		return c.parseIRIRef()
	case strings.HasPrefix(c.input[c.pos:], "_:"):
		return c.parseBlankNodeLabel()
	case ch == '[':
		return c.parseBlankNodePropertyList()
	case ch == '(':
		return c.parseCollection()
	case ch == '"' || ch == '\'':
		if !allowLiteral {
			return nil, c.errorf("literal not allowed here")
		}
		return c.parseStringLiteral()
	case allowLiteral && (ch == '+' || ch == '-' || (ch >= '0' && ch <= '9')):
		return c.parseNumericLiteral()
	default:
		if allowLiteral {
			if lit, ok := c.tryParseBooleanLiteral(); ok {
				return lit, nil
			}
		}
		return c.parsePrefixedName()
	}
}

func (c *turtleCursor) parseIRIRef() (Term, error) {
	if !c.consume('<') {
		return nil, c.errorf("expected IRI")
	}
	var builder strings.Builder
	for c.pos < len(c.input) && c.input[c.pos] != '>' {
		ch := c.input[c.pos]
		if ch <= 0x20 || ch == '<' || ch == '"' || ch == '{' || ch == '}' || ch == '|' || ch == '^' || ch == '`' {
			return nil, c.errorf("invalid character in IRI")
		}
		if ch == '\\' {
			// Only \uXXXX and \UXXXXXXXX escapes are legal in an IRIREF.
			next := c.peekAt(c.pos + 1)
			if next != 'u' && next != 'U' {
				return nil, c.errorf("invalid escape in IRI")
			}
			value, width, err := unescapeAt(c.input, c.pos)
			if err != nil {
				return nil, c.errorf("%v", err)
			}
			builder.WriteString(value)
			c.pos += width
			continue
		}
		builder.WriteByte(ch)
		c.pos++
	}
	if c.pos >= len(c.input) {
		return nil, c.errorf("unterminated IRI")
	}
	value := builder.String()
	c.pos++
	if c.base != "" {
		return IRI{Value: resolveIRI(c.base, value)}, nil
	}
	return IRI{Value: value}, nil
}

func (c *turtleCursor) parseBlankNodeLabel() (Term, error) {
	c.pos += 2
	start := c.pos
	for c.pos < len(c.input) && !isTurtleTerminator(c.input[c.pos]) {
		c.pos++
	}
	label := c.input[start:c.pos]
	for strings.HasSuffix(label, ".") {
		label = label[:len(label)-1]
		c.pos--
	}
	if label == "" {
		return nil, c.errorf("blank node label missing")
	}
	return BlankNode{ID: label}, nil
}

func (c *turtleCursor) parsePrefixedName() (Term, error) {
	start := c.pos
	for c.pos < len(c.input) && !isTurtleTerminator(c.input[c.pos]) {
		if c.input[c.pos] == '\\' && c.pos+1 < len(c.input) {
			c.pos += 2
			continue
		}
		c.pos++
	}
	token := c.input[start:c.pos]
	// A prefixed name cannot end with an unescaped dot; the dot is the
	// statement terminator.
	for strings.HasSuffix(token, ".") && !strings.HasSuffix(token, "\\.") {
		token = token[:len(token)-1]
		c.pos--
	}
	if token == "" {
		return nil, c.errorf("expected term")
	}
	sep := strings.Index(token, ":")
	if sep < 0 {
		return nil, c.errorf("invalid token %q", token)
	}
	prefix := token[:sep]
	local := unescapeLocalName(token[sep+1:])
	base, ok := c.prefixes[prefix]
	if !ok {
		return nil, c.errorf("unknown prefix %q", prefix)
	}
	return IRI{Value: base + local}, nil
}

func (c *turtleCursor) parseStringLiteral() (Term, error) {
	quote := c.input[c.pos]
	var lexical string
	var err error
	if strings.HasPrefix(c.input[c.pos:], string([]byte{quote, quote, quote})) {
		lexical, err = c.parseLongString(quote)
	} else {
		lexical, err = c.parseShortString(quote)
	}
	if err != nil {
		return nil, err
	}

	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] == '@' {
		c.pos++
		start := c.pos
		for c.pos < len(c.input) && !isTurtleTerminator(c.input[c.pos]) {
			c.pos++
		}
		lang := c.input[start:c.pos]
		for strings.HasSuffix(lang, ".") {
			lang = lang[:len(lang)-1]
			c.pos--
		}
		if lang == "" {
			return nil, c.errorf("empty language tag")
		}
		return Literal{Lexical: lexical, Lang: lang}, nil
	}
	if strings.HasPrefix(c.input[c.pos:], "^^") {
		c.pos += 2
		dt, err := c.parseTerm(false)
		if err != nil {
			return nil, err
		}
		iri, ok := dt.(IRI)
		if !ok {
			return nil, c.errorf("datatype must be an IRI")
		}
		return Literal{Lexical: lexical, Datatype: iri}, nil
	}
	return Literal{Lexical: lexical}, nil
}

func (c *turtleCursor) parseShortString(quote byte) (string, error) {
	c.pos++
	var builder strings.Builder
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		if ch == quote {
			c.pos++
			return builder.String(), nil
		}
		if ch == '\\' {
			value, width, err := unescapeAt(c.input, c.pos)
			if err != nil {
				return "", c.errorf("%v", err)
			}
			builder.WriteString(value)
			c.pos += width
			continue
		}
		if ch == '\n' || ch == '\r' {
			return "", c.errorf("newline in string literal")
		}
		builder.WriteByte(ch)
		c.pos++
	}
	return "", c.errorf("unterminated string literal")
}

func (c *turtleCursor) parseLongString(quote byte) (string, error) {
	c.pos += 3
	var builder strings.Builder
	closer := string([]byte{quote, quote, quote})
	for c.pos < len(c.input) {
		if strings.HasPrefix(c.input[c.pos:], closer) {
			c.pos += 3
			return builder.String(), nil
		}
		if c.input[c.pos] == '\\' {
			value, width, err := unescapeAt(c.input, c.pos)
			if err != nil {
				return "", c.errorf("%v", err)
			}
			builder.WriteString(value)
			c.pos += width
			continue
		}
		builder.WriteByte(c.input[c.pos])
		c.pos++
	}
	return "", c.errorf("unterminated long string literal")
}

func (c *turtleCursor) parseNumericLiteral() (Term, error) {
	start := c.pos
	if c.input[c.pos] == '+' || c.input[c.pos] == '-' {
		c.pos++
	}
	hasDigits := false
	hasDot := false
	hasExp := false
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		switch {
		case ch >= '0' && ch <= '9':
			hasDigits = true
		case ch == '.' && !hasDot && !hasExp:
			// A dot not followed by a digit terminates the statement.
			next := c.peekAt(c.pos + 1)
			if next < '0' || next > '9' {
				goto done
			}
			hasDot = true
		case (ch == 'e' || ch == 'E') && !hasExp && hasDigits:
			hasExp = true
			next := c.peekAt(c.pos + 1)
			if next == '+' || next == '-' {
				c.pos++
			}
		default:
			goto done
		}
		c.pos++
	}
done:
	lexical := c.input[start:c.pos]
	if !hasDigits {
		return nil, c.errorf("invalid numeric literal %q", lexical)
	}
	datatype := xsdIntegerIRI
	if hasExp {
		datatype = xsdDoubleIRI
	} else if hasDot {
		datatype = xsdDecimalIRI
	}
	return Literal{Lexical: lexical, Datatype: IRI{Value: datatype}}, nil
}

func (c *turtleCursor) tryParseBooleanLiteral() (Literal, bool) {
	for _, word := range []string{"true", "false"} {
		if strings.HasPrefix(c.input[c.pos:], word) {
			after := c.peekAt(c.pos + len(word))
			if after == 0 || after == '.' || isTurtleTerminator(after) {
				c.pos += len(word)
				return Literal{Lexical: word, Datatype: IRI{Value: xsdBooleanIRI}}, true
			}
		}
	}
	return Literal{}, false
}

func (c *turtleCursor) parseCollection() (Term, error) {
	c.pos++ // consume '('
	var items []Term
	for {
		c.skipWS()
		if c.pos >= len(c.input) {
			return nil, c.errorf("unterminated collection")
		}
		if c.input[c.pos] == ')' {
			c.pos++
			break
		}
		item, err := c.parseTerm(true)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return IRI{Value: rdfNilIRI}, nil
	}
	// Chain the items through rdf:first/rdf:rest cells.
	head := c.newBlankNode()
	node := head
	for i, item := range items {
		c.extra = append(c.extra, Triple{S: node, P: IRI{Value: rdfFirstIRI}, O: item})
		var rest Term = IRI{Value: rdfNilIRI}
		if i < len(items)-1 {
			next := c.newBlankNode()
			rest = next
			c.extra = append(c.extra, Triple{S: node, P: IRI{Value: rdfRestIRI}, O: rest})
			node = next
			continue
		}
		c.extra = append(c.extra, Triple{S: node, P: IRI{Value: rdfRestIRI}, O: rest})
	}
	return head, nil
}

func (c *turtleCursor) parseBlankNodePropertyList() (Term, error) {
	c.pos++ // consume '['
	node := c.newBlankNode()
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] == ']' {
		c.pos++
		return node, nil
	}
	triples, err := c.parsePredicateObjectList(node)
	if err != nil {
		return nil, err
	}
	if !c.consume(']') {
		return nil, c.errorf("unterminated blank node property list")
	}
	c.extra = append(c.extra, triples...)
	return node, nil
}

func (c *turtleCursor) newBlankNode() BlankNode {
	*c.bnodeCounter++
	return BlankNode{ID: fmt.Sprintf("b%d", *c.bnodeCounter)}
}

func (c *turtleCursor) peekAt(pos int) byte {
	if pos >= len(c.input) {
		return 0
	}
	return c.input[pos]
}

func (c *turtleCursor) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("turtle: "+format, args...)
}

func isTurtleTerminator(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', ',', ';', ']', ')', '"', '\'', '<':
		return true
	default:
		return false
	}
}

func unescapeLocalName(local string) string {
	if !strings.Contains(local, "\\") {
		return local
	}
	var builder strings.Builder
	for i := 0; i < len(local); i++ {
		if local[i] == '\\' && i+1 < len(local) {
			builder.WriteByte(local[i+1])
			i++
			continue
		}
		builder.WriteByte(local[i])
	}
	return builder.String()
}
