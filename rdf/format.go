package rdf

import (
	"path/filepath"
	"strings"
)

// Format identifies RDF serialization formats.
type Format string

const (
	FormatTurtle   Format = "turtle"
	FormatTriG     Format = "trig"
	FormatNTriples Format = "ntriples"
	FormatNQuads   Format = "nquads"
	FormatJSONLD   Format = "jsonld"
)

// ParseFormat normalizes a format string.
func ParseFormat(value string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "turtle", "ttl":
		return FormatTurtle, true
	case "trig":
		return FormatTriG, true
	case "ntriples", "nt", "n-triples":
		return FormatNTriples, true
	case "nquads", "nq", "n-quads":
		return FormatNQuads, true
	case "jsonld", "json-ld", "json":
		return FormatJSONLD, true
	default:
		return "", false
	}
}

// FormatForPath infers a format from a file extension.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttl", ".turtle":
		return FormatTurtle, true
	case ".trig":
		return FormatTriG, true
	case ".nt":
		return FormatNTriples, true
	case ".nq":
		return FormatNQuads, true
	case ".jsonld", ".json":
		return FormatJSONLD, true
	default:
		return "", false
	}
}

// CanDecode reports whether the package can parse the format.
func (f Format) CanDecode() bool {
	switch f {
	case FormatTurtle, FormatNTriples, FormatJSONLD:
		return true
	default:
		return false
	}
}

// CanEncode reports whether the package can serialize the format.
func (f Format) CanEncode() bool {
	switch f {
	case FormatTurtle, FormatTriG, FormatNTriples, FormatNQuads:
		return true
	default:
		return false
	}
}
