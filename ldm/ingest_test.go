package ldm

import (
	"errors"
	"reflect"
	"testing"

	"github.com/geoknoesis/solid-go/rdf"
	"github.com/geoknoesis/solid-go/xsd"
)

func TestFromQuadsLiterals(t *testing.T) {
	quads := []rdf.Quad{
		{S: iri("https://example.org/s"), P: iri("https://example.org/p"), O: rdf.Literal{Lexical: "42", Datatype: iri(xsd.Integer)}},
		{S: iri("https://example.org/s"), P: iri("https://example.org/p"), O: rdf.Literal{Lexical: "plain"}},
		{S: iri("https://example.org/s"), P: iri("https://example.org/p"), O: rdf.Literal{Lexical: "colour", Lang: "EN-GB"}},
	}
	d, err := FromQuads(quads)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, ok := d.Subject(DefaultGraph, "https://example.org/s")
	if !ok {
		t.Fatal("missing subject")
	}
	objects := s.Predicates["https://example.org/p"]
	if got := objects.Literals[xsd.Integer]; !reflect.DeepEqual(got, []string{"42"}) {
		t.Fatalf("unexpected integer literals: %v", got)
	}
	// A literal without a datatype carries xsd:string implicitly.
	if got := objects.Literals[xsd.String]; !reflect.DeepEqual(got, []string{"plain"}) {
		t.Fatalf("unexpected string literals: %v", got)
	}
	// Language tags are lowercased on ingestion.
	if got := objects.LangStrings["en-gb"]; !reflect.DeepEqual(got, []string{"colour"}) {
		t.Fatalf("unexpected lang strings: %v", got)
	}
}

func TestFromQuadsPreservesLiteralOrder(t *testing.T) {
	quads := []rdf.Quad{
		{S: iri("https://example.org/s"), P: iri("https://example.org/p"), O: rdf.Literal{Lexical: "a", Datatype: iri(xsd.String)}},
		{S: iri("https://example.org/s"), P: iri("https://example.org/p"), O: rdf.Literal{Lexical: "b", Datatype: iri(xsd.String)}},
		{S: iri("https://example.org/s"), P: iri("https://example.org/p"), O: rdf.Literal{Lexical: "c", Datatype: iri(xsd.String)}},
	}
	d, err := FromQuads(quads)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, _ := d.Subject(DefaultGraph, "https://example.org/s")
	got := s.Predicates["https://example.org/p"].Literals[xsd.String]
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("insertion order not preserved: %v", got)
	}
}

func TestFromQuadsInlinesChainBlankNode(t *testing.T) {
	quads := []rdf.Quad{
		{S: iri("https://example.org/s"), P: iri("https://example.org/p"), O: bnode("b1")},
		{S: bnode("b1"), P: iri("https://example.org/p2"), O: rdf.Literal{Lexical: "x", Datatype: iri(xsd.String)}},
	}
	d, err := FromQuads(quads)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := d.Subject(DefaultGraph, "_:b1"); ok {
		t.Fatal("chain blank node must not become a top-level subject")
	}

	s, _ := d.Subject(DefaultGraph, "https://example.org/s")
	blanks := s.Predicates["https://example.org/p"].BlankNodes
	if len(blanks) != 1 || !blanks[0].Inline() {
		t.Fatalf("expected one inline blank node, got %v", blanks)
	}
	nested := blanks[0].Predicates["https://example.org/p2"].Literals[xsd.String]
	if !reflect.DeepEqual(nested, []string{"x"}) {
		t.Fatalf("unexpected nested literals: %v", nested)
	}
}

func TestFromQuadsSharedBlankNodeStaysOpaque(t *testing.T) {
	quads := []rdf.Quad{
		{S: iri("https://example.org/s1"), P: iri("https://example.org/p"), O: bnode("b")},
		{S: iri("https://example.org/s2"), P: iri("https://example.org/p"), O: bnode("b")},
	}
	d, err := FromQuads(quads)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s1, _ := d.Subject(DefaultGraph, "https://example.org/s1")
	s2, _ := d.Subject(DefaultGraph, "https://example.org/s2")
	b1 := s1.Predicates["https://example.org/p"].BlankNodes
	b2 := s2.Predicates["https://example.org/p"].BlankNodes
	if len(b1) != 1 || len(b2) != 1 {
		t.Fatalf("expected one blank node each, got %v / %v", b1, b2)
	}
	if b1[0].Inline() || b2[0].Inline() {
		t.Fatal("shared blank node must be opaque")
	}
	if b1[0].ID != b2[0].ID {
		t.Fatalf("both references must share one id: %s != %s", b1[0].ID, b2[0].ID)
	}
	if b1[0].ID != "_:b" {
		t.Fatalf("unexpected id: %s", b1[0].ID)
	}
}

func TestFromQuadsCyclicBlankNodes(t *testing.T) {
	quads := []rdf.Quad{
		{S: iri("https://example.org/s"), P: iri("https://example.org/p"), O: bnode("b")},
		{S: bnode("b"), P: iri("https://example.org/next"), O: bnode("c")},
		{S: bnode("c"), P: iri("https://example.org/next"), O: bnode("b")},
	}
	d, err := FromQuads(quads)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Both cycle members stay opaque and appear as top-level subjects.
	if _, ok := d.Subject(DefaultGraph, "_:b"); !ok {
		t.Fatal("cyclic blank node must be a top-level subject")
	}
	if _, ok := d.Subject(DefaultGraph, "_:c"); !ok {
		t.Fatal("cyclic blank node must be a top-level subject")
	}
	if got := len(ToQuads(d)); got != len(quads) {
		t.Fatalf("round trip must preserve quad count, got %d want %d", got, len(quads))
	}
}

func TestFromQuadsPartitionsGraphs(t *testing.T) {
	quads := []rdf.Quad{
		{S: iri("https://example.org/s"), P: iri("https://example.org/p"), O: lit("default")},
		{S: iri("https://example.org/s"), P: iri("https://example.org/p"), O: lit("named"), G: iri("https://example.org/g")},
	}
	d, err := FromQuads(quads)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := d.Graph(DefaultGraph); !ok {
		t.Fatal("default graph missing")
	}
	if _, ok := d.Graph("https://example.org/g"); !ok {
		t.Fatal("named graph missing")
	}
	named, _ := d.Subject("https://example.org/g", "https://example.org/s")
	if got := named.Predicates["https://example.org/p"].Literals[xsd.String]; !reflect.DeepEqual(got, []string{"named"}) {
		t.Fatalf("unexpected named-graph literals: %v", got)
	}
}

func TestFromQuadsRejectsUnsupportedTerms(t *testing.T) {
	tripleTerm := rdf.TripleTerm{S: iri("https://example.org/a"), P: iri("https://example.org/b"), O: lit("c")}
	cases := [][]rdf.Quad{
		// Quoted triple as subject.
		{{S: tripleTerm, P: iri("https://example.org/p"), O: lit("x")}},
		// Quoted triple as object.
		{{S: iri("https://example.org/s"), P: iri("https://example.org/p"), O: tripleTerm}},
		// Literal as graph term.
		{{S: iri("https://example.org/s"), P: iri("https://example.org/p"), O: lit("x"), G: lit("g")}},
		// Blank node as graph term.
		{{S: iri("https://example.org/s"), P: iri("https://example.org/p"), O: lit("x"), G: bnode("g")}},
	}
	for i, quads := range cases {
		d, err := FromQuads(quads)
		if !errors.Is(err, rdf.ErrUnsupportedTermKind) {
			t.Fatalf("case %d: expected ErrUnsupportedTermKind, got %v", i, err)
		}
		if len(d.Graphs) != 0 {
			t.Fatalf("case %d: a partial dataset must never be returned", i)
		}
	}
}

func TestFromQuadsIsOrderIndependent(t *testing.T) {
	quads := []rdf.Quad{
		{S: iri("https://example.org/s"), P: iri("https://example.org/p"), O: bnode("b1")},
		{S: bnode("b1"), P: iri("https://example.org/p2"), O: lit("x")},
		{S: iri("https://example.org/s"), P: iri("https://example.org/q"), O: iri("https://example.org/o")},
	}
	reversed := []rdf.Quad{quads[2], quads[1], quads[0]}

	a, err := FromQuads(quads)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := FromQuads(reversed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("ingestion must be order-independent per quad set:\n%v\n%v", a, b)
	}
}

func TestAddQuadIncremental(t *testing.T) {
	d := NewDataset()
	var err error
	d, err = AddQuad(d, rdf.Quad{S: iri("https://example.org/s"), P: iri("https://example.org/p"), O: lit("one")}, IngestOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, err = AddQuad(d, rdf.Quad{S: iri("https://example.org/s"), P: iri("https://example.org/p"), O: lit("two")}, IngestOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, _ := d.Subject(DefaultGraph, "https://example.org/s")
	got := s.Predicates["https://example.org/p"].Literals[xsd.String]
	if !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Fatalf("unexpected literals: %v", got)
	}
}
