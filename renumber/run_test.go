package renumber

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conceptworks/renumber/rdf"
)

const thesaurusTurtle = `@prefix skos: <http://www.w3.org/2004/02/skos/core#> .
@prefix dcterms: <http://purl.org/dc/terms/> .

<http://ex.org/id/apple> a skos:Concept ;
    skos:prefLabel "apple"@en ;
    skos:broader <http://ex.org/id/fruit> ;
    dcterms:created "2019-03-12T09:30:00Z" .

<http://ex.org/id/fruit> a skos:Concept ;
    skos:prefLabel "fruit"@en .

<http://ex.org/id/scheme> a skos:ConceptScheme ;
    skos:prefLabel "test thesaurus"@en .
`

func runConfig(t *testing.T, input string) Config {
	t.Helper()
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "export.ttl")
	require.NoError(t, os.WriteFile(inputPath, []byte(input), 0o644))

	cfg := Config{
		InputFile:   inputPath,
		OutputFile:  filepath.Join(dir, "out.trig"),
		BaseURI:     "http://ex.org/id/",
		TargetClass: "http://www.w3.org/2004/02/skos/core#Concept",
		RangeStart:  1000000,
		RangeEnd:    9999999,
		GraphName:   "http://ex.org/id/thesaurus",
	}
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())
	return cfg
}

func loadOutput(t *testing.T, cfg Config) *rdf.Graph {
	t.Helper()
	file, err := os.Open(cfg.OutputFile)
	require.NoError(t, err)
	defer file.Close()
	graph, err := rdf.DecodeGraph(file, rdf.FormatTurtle)
	require.NoError(t, err)
	return graph
}

func TestRunnerEndToEnd(t *testing.T) {
	cfg := runConfig(t, thesaurusTurtle)
	runner := NewRunner(cfg, nil)
	require.NoError(t, runner.Run(context.Background()))

	raw, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	text := string(raw)

	assert.Contains(t, text, "<http://ex.org/id/thesaurus> {")
	assert.True(t, strings.HasSuffix(strings.TrimRight(text, "\n"), "}"))
	assert.Contains(t, text, "@prefix skos:")
	assert.Contains(t, text, "<http://ex.org/id/1000000>")
	assert.Contains(t, text, "<http://ex.org/id/1000001>")
	assert.NotContains(t, text, "<http://ex.org/id/apple>")
	assert.NotContains(t, text, "<http://ex.org/id/fruit>")
	// The concept scheme is not a skos:Concept and keeps its URI.
	assert.Contains(t, text, "<http://ex.org/id/scheme>")
	assert.Contains(t, text, "2019-03-12T09:30:00Z")
}

func TestRunnerOutputParsesBack(t *testing.T) {
	cfg := runConfig(t, thesaurusTurtle)
	cfg.OutputFile = filepath.Join(filepath.Dir(cfg.OutputFile), "out.ttl")
	cfg.OutputFormat = ""
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())

	runner := NewRunner(cfg, nil)
	require.NoError(t, runner.Run(context.Background()))

	out := loadOutput(t, cfg)
	assert.Equal(t, 8, out.Len())

	// apple keeps its broader link, now between renumbered URIs.
	assert.True(t, out.Contains(rdf.Triple{
		S: rdf.IRI{Value: "http://ex.org/id/1000000"},
		P: rdf.IRI{Value: "http://www.w3.org/2004/02/skos/core#broader"},
		O: rdf.IRI{Value: "http://ex.org/id/1000001"},
	}))
}

func TestRunnerDateReformat(t *testing.T) {
	cfg := runConfig(t, thesaurusTurtle)
	cfg.NewDateFormat = "2006-01-02"

	runner := NewRunner(cfg, nil)
	require.NoError(t, runner.Run(context.Background()))

	raw, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"2019-03-12"`)
	assert.NotContains(t, string(raw), "2019-03-12T09:30:00Z")
}

func TestRunnerRangeExhaustionLeavesNoOutput(t *testing.T) {
	cfg := runConfig(t, thesaurusTurtle)
	cfg.RangeStart = 1
	cfg.RangeEnd = 1

	runner := NewRunner(cfg, nil)
	err := runner.Run(context.Background())
	require.ErrorIs(t, err, ErrRangeExhausted)

	_, statErr := os.Stat(cfg.OutputFile)
	assert.True(t, os.IsNotExist(statErr), "failed run must not leave an output file")

	// No stray temp files either.
	entries, readErr := os.ReadDir(filepath.Dir(cfg.OutputFile))
	require.NoError(t, readErr)
	for _, entry := range entries {
		assert.False(t, strings.HasPrefix(entry.Name(), ".out.trig."), "leftover temp file %s", entry.Name())
	}
}

func TestRunnerDryRun(t *testing.T) {
	cfg := runConfig(t, thesaurusTurtle)
	runner := NewRunner(cfg, nil)
	runner.SetDryRun(true)
	require.NoError(t, runner.Run(context.Background()))

	_, err := os.Stat(cfg.OutputFile)
	assert.True(t, os.IsNotExist(err))
}

func TestRunnerMissingInput(t *testing.T) {
	cfg := runConfig(t, thesaurusTurtle)
	cfg.InputFile = filepath.Join(filepath.Dir(cfg.InputFile), "absent.ttl")

	runner := NewRunner(cfg, nil)
	assert.Error(t, runner.Run(context.Background()))
}

func TestRunnerCancelledContext(t *testing.T) {
	cfg := runConfig(t, thesaurusTurtle)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(cfg, nil)
	err := runner.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(cfg.OutputFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunnerMalformedInput(t *testing.T) {
	cfg := runConfig(t, "<http://ex.org/id/a> <http://ex.org/p> .\n")

	runner := NewRunner(cfg, nil)
	err := runner.Run(context.Background())
	var parseErr *rdf.ParseError
	assert.ErrorAs(t, err, &parseErr)
}
