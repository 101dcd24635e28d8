package ldm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultGraph is the sentinel graph key for quads outside any named graph.
const DefaultGraph = "default"

// Dataset is the root of the immutable graph tree. It always contains a
// DefaultGraph entry, possibly empty.
type Dataset struct {
	Graphs map[string]Graph `json:"graphs"`
}

// Graph maps subject keys to subjects. A subject key is an IRI, a local-node
// IRI, or a blank node identifier of the form "_:<id>".
type Graph map[string]Subject

// Subject holds everything stated about one subject key.
type Subject struct {
	// URL is the subject key. It always equals the key under which the
	// subject is stored; Graph.with enforces that on construction.
	URL        string     `json:"url"`
	Predicates Predicates `json:"predicates"`
}

// Predicates maps predicate IRIs to their objects. Keys are always IRIs
// because RDF permits only named nodes in predicate position.
type Predicates map[string]Objects

// Objects groups the values of one predicate by object kind. Insertion order
// is preserved within each list so ordered literal values survive the round
// trip.
type Objects struct {
	// Literals groups non-language-tagged literals by datatype IRI.
	Literals map[string][]string `json:"literals,omitempty"`
	// LangStrings groups language-tagged literals by lowercased locale.
	LangStrings map[string][]string `json:"langStrings,omitempty"`
	// NamedNodes lists IRI and local-node-IRI objects.
	NamedNodes []string `json:"namedNodes,omitempty"`
	// BlankNodes lists blank node objects, inline or opaque.
	BlankNodes []BlankNodeObject `json:"blankNodes,omitempty"`
}

// BlankNodeObject is a blank node in object position: either an inline chain
// substructure (Predicates set) or an opaque "_:<id>" reference (ID set).
// Exactly one of the two fields is populated.
type BlankNodeObject struct {
	ID         string
	Predicates Predicates
}

// Inline reports whether the blank node carries an inline substructure.
func (b BlankNodeObject) Inline() bool { return b.ID == "" }

// MarshalJSON writes an opaque reference as its "_:<id>" string and an
// inline node as its predicate map, keeping the persisted form plain data.
func (b BlankNodeObject) MarshalJSON() ([]byte, error) {
	if !b.Inline() {
		return json.Marshal(b.ID)
	}
	if b.Predicates == nil {
		return json.Marshal(Predicates{})
	}
	return json.Marshal(b.Predicates)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (b *BlankNodeObject) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		if !strings.HasPrefix(id, "_:") {
			return fmt.Errorf("ldm: blank node reference %q missing \"_:\" prefix", id)
		}
		*b = BlankNodeObject{ID: id}
		return nil
	}
	var predicates Predicates
	if err := json.Unmarshal(data, &predicates); err != nil {
		return err
	}
	*b = BlankNodeObject{Predicates: predicates}
	return nil
}

// NewDataset returns an empty dataset containing the mandatory default
// graph.
func NewDataset() Dataset {
	return Dataset{Graphs: map[string]Graph{DefaultGraph: {}}}
}

// Graph returns the named graph, if present.
func (d Dataset) Graph(key string) (Graph, bool) {
	g, ok := d.Graphs[key]
	return g, ok
}

// Subject returns the subject stored under subjectKey in the given graph.
func (d Dataset) Subject(graphKey, subjectKey string) (Subject, bool) {
	g, ok := d.Graphs[graphKey]
	if !ok {
		return Subject{}, false
	}
	s, ok := g[subjectKey]
	return s, ok
}

// withGraph returns a dataset with the graph stored under key, copying the
// graph map and sharing every other graph.
func (d Dataset) withGraph(key string, g Graph) Dataset {
	graphs := make(map[string]Graph, len(d.Graphs)+1)
	for k, v := range d.Graphs {
		graphs[k] = v
	}
	graphs[key] = g
	if _, ok := graphs[DefaultGraph]; !ok {
		graphs[DefaultGraph] = Graph{}
	}
	return Dataset{Graphs: graphs}
}

// withSubject returns a dataset with the subject stored in the given graph,
// copying only the touched graph.
func (d Dataset) withSubject(graphKey string, s Subject) Dataset {
	old := d.Graphs[graphKey]
	g := make(Graph, len(old)+1)
	for k, v := range old {
		g[k] = v
	}
	g[s.URL] = s
	return d.withGraph(graphKey, g)
}

// withoutSubject returns a dataset with the subject removed from the given
// graph.
func (d Dataset) withoutSubject(graphKey, subjectKey string) Dataset {
	old, ok := d.Graphs[graphKey]
	if !ok {
		return d
	}
	if _, ok := old[subjectKey]; !ok {
		return d
	}
	g := make(Graph, len(old))
	for k, v := range old {
		if k != subjectKey {
			g[k] = v
		}
	}
	return d.withGraph(graphKey, g)
}

// with returns a graph holding the subject under its own URL. Keying by
// s.URL is what upholds the key==URL invariant.
func (g Graph) with(s Subject) Graph {
	next := make(Graph, len(g)+1)
	for k, v := range g {
		next[k] = v
	}
	next[s.URL] = s
	return next
}

// with returns a predicate map with objects stored under predicate, copying
// the map and sharing every other entry.
func (p Predicates) with(predicate string, o Objects) Predicates {
	next := make(Predicates, len(p)+1)
	for k, v := range p {
		next[k] = v
	}
	next[predicate] = o
	return next
}

// withLiteral appends a literal under its datatype, copying only the touched
// datatype list.
func (o Objects) withLiteral(datatype, lexical string) Objects {
	literals := make(map[string][]string, len(o.Literals)+1)
	for k, v := range o.Literals {
		literals[k] = v
	}
	existing := literals[datatype]
	literals[datatype] = append(existing[:len(existing):len(existing)], lexical)
	o.Literals = literals
	return o
}

// withLangString appends a language-tagged literal under its locale.
func (o Objects) withLangString(locale, lexical string) Objects {
	langStrings := make(map[string][]string, len(o.LangStrings)+1)
	for k, v := range o.LangStrings {
		langStrings[k] = v
	}
	existing := langStrings[locale]
	langStrings[locale] = append(existing[:len(existing):len(existing)], lexical)
	o.LangStrings = langStrings
	return o
}

// withNamedNode appends an IRI object.
func (o Objects) withNamedNode(iri string) Objects {
	o.NamedNodes = append(o.NamedNodes[:len(o.NamedNodes):len(o.NamedNodes)], iri)
	return o
}

// withBlankNode appends a blank node object.
func (o Objects) withBlankNode(b BlankNodeObject) Objects {
	o.BlankNodes = append(o.BlankNodes[:len(o.BlankNodes):len(o.BlankNodes)], b)
	return o
}

// isEmpty reports whether no object of any kind is present.
func (o Objects) isEmpty() bool {
	if len(o.NamedNodes) > 0 || len(o.BlankNodes) > 0 {
		return false
	}
	for _, values := range o.Literals {
		if len(values) > 0 {
			return false
		}
	}
	for _, values := range o.LangStrings {
		if len(values) > 0 {
			return false
		}
	}
	return true
}
