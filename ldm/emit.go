package ldm

import (
	"sort"
	"strconv"
	"strings"

	"github.com/geoknoesis/solid-go/rdf"
	"github.com/geoknoesis/solid-go/xsd"
)

// TermFactory abstracts term and quad construction during emission, so
// alternative term implementations can be substituted. Emission never
// constructs a term through any other path.
type TermFactory interface {
	// NamedNode returns an IRI term.
	NamedNode(iri string) rdf.Term
	// BlankNode returns a blank node term. An empty id asks the factory to
	// mint a fresh, unused identifier.
	BlankNode(id string) rdf.Term
	// Literal returns a literal term. lang and datatype are mutually
	// exclusive; an empty datatype means xsd:string.
	Literal(lexical, lang, datatype string) rdf.Term
	// Quad assembles a quad. g is nil for the default graph.
	Quad(s rdf.Term, p rdf.IRI, o rdf.Term, g rdf.Term) rdf.Quad
}

// termFactory is the default TermFactory over this module's own term types.
// Fresh blank node labels come from a per-factory counter, so each emission
// call labels its minted nodes independently.
type termFactory struct {
	counter int
}

// NewTermFactory returns the default factory.
func NewTermFactory() TermFactory {
	return &termFactory{}
}

func (f *termFactory) NamedNode(iri string) rdf.Term { return rdf.IRI{Value: iri} }

func (f *termFactory) BlankNode(id string) rdf.Term {
	if id == "" {
		f.counter++
		id = "b" + strconv.Itoa(f.counter)
	}
	return rdf.BlankNode{ID: id}
}

func (f *termFactory) Literal(lexical, lang, datatype string) rdf.Term {
	if lang != "" {
		return rdf.Literal{Lexical: lexical, Lang: lang, Datatype: rdf.IRI{Value: rdf.LangString}}
	}
	if datatype == "" {
		datatype = xsd.String
	}
	return rdf.Literal{Lexical: lexical, Datatype: rdf.IRI{Value: datatype}}
}

func (f *termFactory) Quad(s rdf.Term, p rdf.IRI, o rdf.Term, g rdf.Term) rdf.Quad {
	return rdf.Quad{S: s, P: p, O: o, G: g}
}

// ToQuads re-expands a dataset into a quad stream using the default term
// factory.
func ToQuads(d Dataset) []rdf.Quad {
	return ToQuadsWith(d, NewTermFactory())
}

// ToQuadsWith re-expands a dataset into a quad stream, constructing every
// term through the supplied factory. Inline chain substructures are emitted
// recursively under freshly minted blank labels; chain nodes are anonymous
// by construction, so the new labels need not match any previous identity.
// Opaque "_:<id>" references re-expand to one shared blank node per id,
// including dangling ids with no predicates of their own. Graphs and
// subjects are visited in sorted order so output is deterministic for a
// given dataset.
func ToQuadsWith(d Dataset, factory TermFactory) []rdf.Quad {
	var quads []rdf.Quad
	for _, graphKey := range sortedGraphKeys(d) {
		var graphTerm rdf.Term
		if graphKey != DefaultGraph {
			graphTerm = factory.NamedNode(graphKey)
		}
		graph := d.Graphs[graphKey]
		subjectKeys := make([]string, 0, len(graph))
		for key := range graph {
			subjectKeys = append(subjectKeys, key)
		}
		sort.Strings(subjectKeys)
		for _, subjectKey := range subjectKeys {
			subjectTerm := subjectTermFor(subjectKey, factory)
			quads = emitPredicates(quads, factory, subjectTerm, graphTerm, graph[subjectKey].Predicates)
		}
	}
	return quads
}

func sortedGraphKeys(d Dataset) []string {
	keys := make([]string, 0, len(d.Graphs))
	for key := range d.Graphs {
		if key != DefaultGraph {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	if _, ok := d.Graphs[DefaultGraph]; ok {
		keys = append([]string{DefaultGraph}, keys...)
	}
	return keys
}

func subjectTermFor(key string, factory TermFactory) rdf.Term {
	if strings.HasPrefix(key, "_:") {
		return factory.BlankNode(key[2:])
	}
	return factory.NamedNode(key)
}

// emitPredicates appends one quad per object value, recursing into inline
// blank node substructures.
func emitPredicates(quads []rdf.Quad, factory TermFactory, subject, graph rdf.Term, predicates Predicates) []rdf.Quad {
	predicateIRIs := make([]string, 0, len(predicates))
	for predicate := range predicates {
		predicateIRIs = append(predicateIRIs, predicate)
	}
	sort.Strings(predicateIRIs)

	for _, predicateIRI := range predicateIRIs {
		predicate := rdf.IRI{Value: predicateIRI}
		objects := predicates[predicateIRI]

		datatypes := make([]string, 0, len(objects.Literals))
		for datatype := range objects.Literals {
			datatypes = append(datatypes, datatype)
		}
		sort.Strings(datatypes)
		for _, datatype := range datatypes {
			for _, lexical := range objects.Literals[datatype] {
				quads = append(quads, factory.Quad(subject, predicate, factory.Literal(lexical, "", datatype), graph))
			}
		}

		locales := make([]string, 0, len(objects.LangStrings))
		for locale := range objects.LangStrings {
			locales = append(locales, locale)
		}
		sort.Strings(locales)
		for _, locale := range locales {
			for _, lexical := range objects.LangStrings[locale] {
				quads = append(quads, factory.Quad(subject, predicate, factory.Literal(lexical, locale, ""), graph))
			}
		}

		for _, iri := range objects.NamedNodes {
			quads = append(quads, factory.Quad(subject, predicate, factory.NamedNode(iri), graph))
		}

		for _, blank := range objects.BlankNodes {
			if blank.Inline() {
				node := factory.BlankNode("")
				quads = append(quads, factory.Quad(subject, predicate, node, graph))
				quads = emitPredicates(quads, factory, node, graph, blank.Predicates)
				continue
			}
			quads = append(quads, factory.Quad(subject, predicate, factory.BlankNode(strings.TrimPrefix(blank.ID, "_:")), graph))
		}
	}
	return quads
}
