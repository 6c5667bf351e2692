package rdf

import (
	"bytes"
	"strings"
	"testing"
)

func TestTurtleEncoderAbbreviatesWithPrefixes(t *testing.T) {
	var buf bytes.Buffer
	enc, err := NewEncoder(&buf, FormatTurtle, EncodeOptions{
		Prefixes: map[string]string{"ex": "http://example.org/"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	triple := Triple{
		S: IRI{Value: "http://example.org/s"},
		P: IRI{Value: "http://example.org/p"},
		O: Literal{Lexical: "v"},
	}
	if err := enc.Write(triple); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "@prefix ex: <http://example.org/> .") {
		t.Fatalf("missing prefix directive:\n%s", output)
	}
	if !strings.Contains(output, "ex:s ex:p \"v\" .") {
		t.Fatalf("missing abbreviated statement:\n%s", output)
	}
}

func TestTurtleEncoderFullIRIWithoutPrefix(t *testing.T) {
	var buf bytes.Buffer
	enc, _ := NewEncoder(&buf, FormatTurtle, EncodeOptions{})
	triple := Triple{
		S: IRI{Value: "http://example.org/s"},
		P: IRI{Value: "http://example.org/p"},
		O: IRI{Value: "http://example.org/o"},
	}
	if err := enc.Write(triple); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	enc.Close()
	if !strings.Contains(buf.String(), "<http://example.org/s> <http://example.org/p> <http://example.org/o> .") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestTriGEncoderNamedGraphBlock(t *testing.T) {
	var buf bytes.Buffer
	enc, err := NewEncoder(&buf, FormatTriG, EncodeOptions{
		GraphName: "http://example.org/graph",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	triple := Triple{
		S: IRI{Value: "http://example.org/s"},
		P: IRI{Value: "http://example.org/p"},
		O: Literal{Lexical: "v"},
	}
	if err := enc.Write(triple); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "<http://example.org/graph> {\n") {
		t.Fatalf("missing graph block open:\n%s", output)
	}
	if !strings.HasSuffix(output, "}\n") {
		t.Fatalf("missing graph block close:\n%s", output)
	}
}

func TestEncoderEscapesLiterals(t *testing.T) {
	var buf bytes.Buffer
	enc, _ := NewEncoder(&buf, FormatNTriples, EncodeOptions{})
	triple := Triple{
		S: IRI{Value: "http://example.org/s"},
		P: IRI{Value: "http://example.org/p"},
		O: Literal{Lexical: "say \"hi\"\nbye"},
	}
	if err := enc.Write(triple); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	enc.Close()
	if !strings.Contains(buf.String(), `"say \"hi\"\nbye"`) {
		t.Fatalf("literal not escaped:\n%s", buf.String())
	}
}

func TestTurtleRoundTrip(t *testing.T) {
	input := "@prefix ex: <http://example.org/> .\n" +
		"ex:s ex:p ex:o .\n" +
		"ex:s ex:q \"v\"@en .\n"
	graph, err := DecodeGraph(strings.NewReader(input), FormatTurtle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := EncodeGraph(&buf, graph, FormatTurtle, EncodeOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reparsed, err := DecodeGraph(strings.NewReader(buf.String()), FormatTurtle)
	if err != nil {
		t.Fatalf("round trip reparse failed: %v\n%s", err, buf.String())
	}
	if reparsed.Len() != graph.Len() {
		t.Fatalf("round trip changed triple count: %d != %d", reparsed.Len(), graph.Len())
	}
	for _, triple := range graph.Triples() {
		if !reparsed.Contains(triple) {
			t.Fatalf("round trip lost triple: %v", triple)
		}
	}
}
