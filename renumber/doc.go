// Package renumber implements the URI renumbering pipeline: match
// resource URIs under a configured base, assign each distinct match a
// sequential number from a bounded range, rewrite every occurrence in
// the graph, and optionally reformat date literals along the way.
package renumber
