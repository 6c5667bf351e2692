// Package rdf provides an in-memory RDF triple model together with
// decoders and encoders for the serializations the renumber tool works
// with: Turtle and N-Triples on the way in, Turtle, TriG, N-Triples and
// N-Quads on the way out, plus a JSON-LD reader backed by json-gold.
//
// The package is deliberately free of logging and configuration concerns;
// callers get explicit errors and decide policy themselves.
package rdf
