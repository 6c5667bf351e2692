package renumber

import (
	"fmt"

	"github.com/araddon/dateparse"

	"github.com/conceptworks/renumber/rdf"
)

// DateParseError reports a date literal under a recognized predicate
// that could not be parsed. It is non-fatal unless strict date handling
// is configured.
type DateParseError struct {
	Predicate string
	Lexical   string
	Err       error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("renumber: date literal %q under <%s>: %v", e.Lexical, e.Predicate, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// dateReformatter rewrites date literals under the configured
// predicates into a target layout. The source value is parsed leniently
// so exports with mixed date conventions still convert.
type dateReformatter struct {
	layout     string
	predicates map[string]struct{}
}

// newDateReformatter returns nil when no target format is configured,
// in which case date literals pass through untouched.
func newDateReformatter(cfg Config) *dateReformatter {
	if cfg.NewDateFormat == "" {
		return nil
	}
	predicates := make(map[string]struct{}, len(cfg.DatePredicates))
	for _, predicate := range cfg.DatePredicates {
		predicates[predicate] = struct{}{}
	}
	return &dateReformatter{layout: cfg.NewDateFormat, predicates: predicates}
}

// applies reports whether the predicate is a recognized date property.
func (r *dateReformatter) applies(predicate string) bool {
	_, ok := r.predicates[predicate]
	return ok
}

// reformat converts the literal's lexical form to the target layout,
// keeping datatype and language tag intact. A parse failure returns the
// original literal together with a DateParseError; the caller decides
// whether that aborts the run.
func (r *dateReformatter) reformat(predicate string, literal rdf.Literal) (rdf.Literal, error) {
	parsed, err := dateparse.ParseAny(literal.Lexical)
	if err != nil {
		return literal, &DateParseError{Predicate: predicate, Lexical: literal.Lexical, Err: err}
	}
	literal.Lexical = parsed.Format(r.layout)
	return literal, nil
}
