package renumber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/conceptworks/renumber/rdf"
)

// Runner orchestrates one renumbering run: load, match, allocate,
// rewrite, serialize. Output is all-or-nothing; any fatal error leaves
// the destination untouched.
type Runner struct {
	cfg    Config
	logger hclog.Logger
	dryRun bool
}

// NewRunner creates a runner for a validated configuration.
func NewRunner(cfg Config, logger hclog.Logger) *Runner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Runner{cfg: cfg, logger: logger}
}

// SetDryRun makes Run perform the full rewrite without writing the
// output file.
func (r *Runner) SetDryRun(dryRun bool) { r.dryRun = dryRun }

// Run executes the pipeline.
func (r *Runner) Run(ctx context.Context) error {
	graph, err := r.load()
	if err != nil {
		return err
	}
	r.logger.Info("graph loaded", "file", r.cfg.InputFile, "triples", graph.Len())

	if err := ctx.Err(); err != nil {
		return err
	}

	matcher := NewMatcher(r.cfg, graph)
	allocator := NewAllocator(r.cfg.BaseURI, r.cfg.RangeStart, r.cfg.RangeEnd)
	rewriter := NewRewriter(r.cfg, matcher, allocator, r.logger)

	out, err := rewriter.Rewrite(graph)
	if err != nil {
		return err
	}
	r.logger.Info("graph rewritten",
		"renamed_uris", allocator.Count(),
		"input_triples", graph.Len(),
		"output_triples", out.Len())

	if err := ctx.Err(); err != nil {
		return err
	}
	if r.dryRun {
		r.logger.Info("dry run, skipping output", "file", r.cfg.OutputFile)
		return nil
	}
	if err := r.write(out); err != nil {
		return err
	}
	r.logger.Info("output written", "file", r.cfg.OutputFile, "format", r.cfg.OutputFormat)
	return nil
}

func (r *Runner) load() (*rdf.Graph, error) {
	file, err := os.Open(r.cfg.InputFile)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()
	graph, err := rdf.DecodeGraph(file, r.cfg.ResolvedInputFormat())
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", r.cfg.InputFile, err)
	}
	return graph, nil
}

// write serializes into a temp file beside the destination and renames
// it into place, so a failing run never leaves a partial output file.
func (r *Runner) write(graph *rdf.Graph) error {
	dir := filepath.Dir(r.cfg.OutputFile)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.cfg.OutputFile)+".*")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	opts := rdf.EncodeOptions{GraphName: r.cfg.GraphName}
	if err := rdf.EncodeGraph(tmp, graph, r.cfg.ResolvedOutputFormat(), opts); err != nil {
		return fmt.Errorf("serialize output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.cfg.OutputFile); err != nil {
		return fmt.Errorf("finalize output: %w", err)
	}
	return nil
}
