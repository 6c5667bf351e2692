package rdf

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedFormat indicates a serialization the package cannot
	// decode or encode.
	ErrUnsupportedFormat = errors.New("unsupported RDF format")
)

// ParseError provides structured context for parse failures.
type ParseError struct {
	Format    string // format name, e.g. "turtle"
	Statement string // offending statement or input excerpt
	Line      int    // 1-based line number (0 if unknown)
	Err       error  // underlying error
}

func (e *ParseError) Error() string {
	var msg strings.Builder
	msg.WriteString(e.Format)
	if e.Line > 0 {
		fmt.Fprintf(&msg, ":%d", e.Line)
	}
	msg.WriteString(": ")
	msg.WriteString(e.Err.Error())
	if e.Statement != "" {
		msg.WriteString("\n  ")
		msg.WriteString(excerpt(e.Statement))
	}
	return msg.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// wrapParseError adds format/statement/line context to a parse error.
// Existing ParseError context is preserved rather than nested.
func wrapParseError(format, statement string, line int, err error) error {
	if err == nil {
		return nil
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		if parseErr.Line > 0 && line == 0 {
			line = parseErr.Line
		}
		err = parseErr.Err
	}
	return &ParseError{Format: format, Statement: statement, Line: line, Err: err}
}

func excerpt(statement string) string {
	const maxExcerptLen = 80
	statement = strings.TrimSpace(statement)
	if len(statement) > maxExcerptLen {
		return statement[:maxExcerptLen] + "..."
	}
	return statement
}
