package renumber

import (
	"github.com/hashicorp/go-hclog"

	"github.com/conceptworks/renumber/rdf"
)

// Rewriter walks a graph and produces a new one with every matched URI
// replaced by its allocated successor. The input graph is never
// modified, so a run can be repeated safely on the same loaded data.
type Rewriter struct {
	matcher     *Matcher
	allocator   *Allocator
	dates       *dateReformatter
	strictDates bool
	logger      hclog.Logger
}

// NewRewriter assembles the rewrite engine for one run.
func NewRewriter(cfg Config, matcher *Matcher, allocator *Allocator, logger hclog.Logger) *Rewriter {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Rewriter{
		matcher:     matcher,
		allocator:   allocator,
		dates:       newDateReformatter(cfg),
		strictDates: cfg.StrictDates,
		logger:      logger,
	}
}

// Rewrite produces the renumbered graph. Subjects and objects are
// inspected independently; predicates are never renamed. Numbering
// follows first-encounter order over the graph's stable iteration, with
// the subject position checked before the object, so a reference seen
// before its definition still receives the same number as the
// definition. The output triple count equals the input count unless a
// rewrite collapses two triples into one.
func (r *Rewriter) Rewrite(graph *rdf.Graph) (*rdf.Graph, error) {
	out := rdf.NewGraph()
	for prefix, namespace := range graph.Prefixes() {
		out.Bind(prefix, namespace)
	}

	for _, triple := range graph.Triples() {
		subject, err := r.rewriteTerm(triple.S)
		if err != nil {
			return nil, err
		}
		object, err := r.rewriteTerm(triple.O)
		if err != nil {
			return nil, err
		}
		if r.dates != nil && r.dates.applies(triple.P.Value) {
			if literal, ok := object.(rdf.Literal); ok {
				object, err = r.rewriteDate(triple.P.Value, literal)
				if err != nil {
					return nil, err
				}
			}
		}
		out.Add(rdf.Triple{S: subject, P: triple.P, O: object})
	}
	return out, nil
}

func (r *Rewriter) rewriteTerm(term rdf.Term) (rdf.Term, error) {
	iri, ok := term.(rdf.IRI)
	if !ok || !r.matcher.Matches(iri.Value) {
		return term, nil
	}
	minted, err := r.allocator.Allocate(iri.Value)
	if err != nil {
		return nil, err
	}
	return rdf.IRI{Value: minted}, nil
}

func (r *Rewriter) rewriteDate(predicate string, literal rdf.Literal) (rdf.Term, error) {
	reformatted, err := r.dates.reformat(predicate, literal)
	if err != nil {
		if r.strictDates {
			return nil, err
		}
		r.logger.Warn("keeping unparseable date literal",
			"predicate", predicate, "value", literal.Lexical, "error", err)
		return literal, nil
	}
	return reformatted, nil
}
