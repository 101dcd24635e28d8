package ldm

import (
	"time"

	"github.com/geoknoesis/solid-go/rdf"
	"github.com/geoknoesis/solid-go/xsd"
)

// Thing is a subject-scoped view over the default graph: the unit
// application code reads and mutates. Like every structure in this package
// it is treated as immutable; mutators return a new Thing.
type Thing struct {
	URL        string
	Predicates Predicates
}

// NewThing returns an empty Thing under a freshly minted local-node IRI. Its
// permanent IRI is assigned when the containing dataset is resolved against
// a resource IRI (see ResolveLocalIRIs).
func NewThing() Thing {
	return Thing{URL: NewLocalNode(), Predicates: Predicates{}}
}

// GetThing returns the Thing stored under url in the default graph.
func GetThing(d Dataset, url string) (Thing, bool) {
	subject, ok := d.Subject(DefaultGraph, url)
	if !ok {
		return Thing{}, false
	}
	return Thing{URL: subject.URL, Predicates: subject.Predicates}, true
}

// Literals returns the literal values of a predicate for one datatype, in
// insertion order.
func (t Thing) Literals(predicate, datatype string) []string {
	return t.Predicates[predicate].Literals[datatype]
}

// IRIs returns the named-node values of a predicate, in insertion order.
func (t Thing) IRIs(predicate string) []string {
	return t.Predicates[predicate].NamedNodes
}

// Bool returns the first xsd:boolean value of a predicate.
func (t Thing) Bool(predicate string) (bool, bool) {
	if lexical, ok := t.firstLiteral(predicate, xsd.Boolean); ok {
		return xsd.DeserializeBoolean(lexical)
	}
	return false, false
}

// Integer returns the first xsd:integer value of a predicate.
func (t Thing) Integer(predicate string) (int64, bool) {
	if lexical, ok := t.firstLiteral(predicate, xsd.Integer); ok {
		return xsd.DeserializeInteger(lexical)
	}
	return 0, false
}

// Decimal returns the first xsd:decimal value of a predicate.
func (t Thing) Decimal(predicate string) (float64, bool) {
	if lexical, ok := t.firstLiteral(predicate, xsd.Decimal); ok {
		return xsd.DeserializeDecimal(lexical)
	}
	return 0, false
}

// DateTime returns the first xsd:dateTime value of a predicate.
func (t Thing) DateTime(predicate string) (time.Time, bool) {
	if lexical, ok := t.firstLiteral(predicate, xsd.DateTime); ok {
		return xsd.DeserializeDateTime(lexical)
	}
	return time.Time{}, false
}

// String returns the first xsd:string value of a predicate.
func (t Thing) String(predicate string) (string, bool) {
	return t.firstLiteral(predicate, xsd.String)
}

// StringWithLocale returns the first language-tagged value of a predicate
// for the given locale. Locale comparison is case-insensitive per RDF.
func (t Thing) StringWithLocale(predicate, locale string) (string, bool) {
	values := t.Predicates[predicate].LangStrings[xsd.NormalizeLocale(locale)]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (t Thing) firstLiteral(predicate, datatype string) (string, bool) {
	values := t.Predicates[predicate].Literals[datatype]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// AddLiteral appends a literal value under the given datatype.
func (t Thing) AddLiteral(predicate, datatype, lexical string) Thing {
	objects := t.Predicates[predicate].withLiteral(datatype, lexical)
	t.Predicates = t.Predicates.with(predicate, objects)
	return t
}

// AddBool appends an xsd:boolean value.
func (t Thing) AddBool(predicate string, value bool) Thing {
	return t.AddLiteral(predicate, xsd.Boolean, xsd.SerializeBoolean(value))
}

// AddInteger appends an xsd:integer value.
func (t Thing) AddInteger(predicate string, value int64) Thing {
	return t.AddLiteral(predicate, xsd.Integer, xsd.SerializeInteger(value))
}

// AddDecimal appends an xsd:decimal value.
func (t Thing) AddDecimal(predicate string, value float64) Thing {
	return t.AddLiteral(predicate, xsd.Decimal, xsd.SerializeDecimal(value))
}

// AddDateTime appends an xsd:dateTime value.
func (t Thing) AddDateTime(predicate string, value time.Time) Thing {
	return t.AddLiteral(predicate, xsd.DateTime, xsd.SerializeDateTime(value))
}

// AddString appends an xsd:string value.
func (t Thing) AddString(predicate, value string) Thing {
	return t.AddLiteral(predicate, xsd.String, value)
}

// AddStringWithLocale appends a language-tagged value. The locale is
// lowercased on the way in.
func (t Thing) AddStringWithLocale(predicate, value, locale string) Thing {
	objects := t.Predicates[predicate].withLangString(xsd.NormalizeLocale(locale), value)
	t.Predicates = t.Predicates.with(predicate, objects)
	return t
}

// AddIRI appends a named-node value.
func (t Thing) AddIRI(predicate, iri string) Thing {
	objects := t.Predicates[predicate].withNamedNode(iri)
	t.Predicates = t.Predicates.with(predicate, objects)
	return t
}

// RemoveAll drops every value of a predicate.
func (t Thing) RemoveAll(predicate string) Thing {
	if _, ok := t.Predicates[predicate]; !ok {
		return t
	}
	next := make(Predicates, len(t.Predicates))
	for k, v := range t.Predicates {
		if k != predicate {
			next[k] = v
		}
	}
	t.Predicates = next
	return t
}

// TrackedDataset couples a dataset with the net change log accumulated since
// it was last synchronised with its source.
type TrackedDataset struct {
	Dataset Dataset
	Log     ChangeLog
}

// Track wraps a freshly fetched dataset with an empty change log.
func Track(d Dataset) TrackedDataset {
	return TrackedDataset{Dataset: d}
}

// ClearLog resets the change log after a successful save.
func (td TrackedDataset) ClearLog() TrackedDataset {
	td.Log = ChangeLog{}
	return td
}

// SetThing stores a Thing in the default graph, replacing whatever was
// previously stated about its URL, and records the quad delta in the change
// log. Unchanged quads cancel out, so the log stays the net difference.
func SetThing(td TrackedDataset, thing Thing) TrackedDataset {
	oldQuads := subjectQuads(td.Dataset, thing.URL)
	newQuads := predicateQuads(thing.URL, thing.Predicates)

	if len(thing.Predicates) == 0 {
		td.Dataset = td.Dataset.withoutSubject(DefaultGraph, thing.URL)
	} else {
		td.Dataset = td.Dataset.withSubject(DefaultGraph, Subject{URL: thing.URL, Predicates: thing.Predicates})
	}
	td.Log = AddDeletions(td.Log, oldQuads)
	td.Log = AddAdditions(td.Log, newQuads)
	return td
}

// RemoveThing removes every statement about url from the default graph and
// records the deletions.
func RemoveThing(td TrackedDataset, url string) TrackedDataset {
	oldQuads := subjectQuads(td.Dataset, url)
	td.Dataset = td.Dataset.withoutSubject(DefaultGraph, url)
	td.Log = AddDeletions(td.Log, oldQuads)
	return td
}

// subjectQuads emits the current default-graph statements about one subject.
func subjectQuads(d Dataset, url string) []rdf.Quad {
	subject, ok := d.Subject(DefaultGraph, url)
	if !ok {
		return nil
	}
	return predicateQuads(url, subject.Predicates)
}

func predicateQuads(url string, predicates Predicates) []rdf.Quad {
	factory := NewTermFactory()
	return emitPredicates(nil, factory, subjectTermFor(url, factory), nil, predicates)
}
