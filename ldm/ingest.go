package ldm

import (
	"fmt"

	"github.com/geoknoesis/solid-go/rdf"
	"github.com/geoknoesis/solid-go/xsd"
)

// IngestOptions carries the cross-quad context AddQuad needs to inline chain
// blank nodes. A streaming caller collects the full quad set first, runs
// ChainBlankNodes once, and then feeds quads one at a time.
type IngestOptions struct {
	// OtherQuads is the full quad set the current quad belongs to. Quads
	// whose subject is a chain blank node are looked up here when their
	// parent object position is visited.
	OtherQuads []rdf.Quad
	// ChainBlankNodes holds the identifiers classified as inline-eligible
	// by ChainBlankNodes.
	ChainBlankNodes map[string]struct{}
}

// FromQuads builds an immutable dataset from an unordered quad set. Quads are
// partitioned by graph term, blank nodes are classified per graph, and quads
// whose subject is a chain blank node are folded into their parent instead of
// becoming top-level subjects. Any unsupported term kind aborts the whole
// call; a partial dataset is never returned.
func FromQuads(quads []rdf.Quad) (Dataset, error) {
	var graphOrder []string
	byGraph := make(map[string][]rdf.Quad)
	for _, q := range quads {
		key, err := graphKeyOf(q)
		if err != nil {
			return Dataset{}, err
		}
		if _, ok := byGraph[key]; !ok {
			graphOrder = append(graphOrder, key)
		}
		byGraph[key] = append(byGraph[key], q)
	}

	dataset := NewDataset()
	for _, graphKey := range graphOrder {
		graphQuads := byGraph[graphKey]
		opts := IngestOptions{
			OtherQuads:      graphQuads,
			ChainBlankNodes: ChainBlankNodes(graphQuads),
		}
		for _, q := range graphQuads {
			if subject, ok := q.S.(rdf.BlankNode); ok {
				if _, chained := opts.ChainBlankNodes[subject.ID]; chained {
					// Folded into its parent's blankNodes list when the
					// parent object position is visited.
					continue
				}
			}
			var err error
			dataset, err = AddQuad(dataset, q, opts)
			if err != nil {
				return Dataset{}, err
			}
		}
	}
	return dataset, nil
}

// AddQuad returns a dataset extended with one quad. The subject must be a
// named or blank node and the graph must be nil or a named node; any other
// term kind is a fatal classification error.
func AddQuad(d Dataset, q rdf.Quad, opts IngestOptions) (Dataset, error) {
	graphKey, err := graphKeyOf(q)
	if err != nil {
		return Dataset{}, err
	}
	subjectKey, err := subjectKeyOf(q.S)
	if err != nil {
		return Dataset{}, err
	}

	subject, ok := d.Subject(graphKey, subjectKey)
	if !ok {
		subject = Subject{URL: subjectKey, Predicates: Predicates{}}
	}
	objects, err := addObject(subject.Predicates[q.P.Value], q.O, opts)
	if err != nil {
		return Dataset{}, err
	}
	subject.Predicates = subject.Predicates.with(q.P.Value, objects)
	return d.withSubject(graphKey, subject), nil
}

// graphKeyOf maps a graph term to its graph key: nil is the default graph
// and a named node is keyed by its IRI.
func graphKeyOf(q rdf.Quad) (string, error) {
	switch graph := q.G.(type) {
	case nil:
		return DefaultGraph, nil
	case rdf.IRI:
		return graph.Value, nil
	default:
		return "", fmt.Errorf("%w: graph term %s", rdf.ErrUnsupportedTermKind, graph)
	}
}

func subjectKeyOf(term rdf.Term) (string, error) {
	switch subject := term.(type) {
	case rdf.IRI:
		return subject.Value, nil
	case rdf.BlankNode:
		return subject.String(), nil
	case nil:
		return "", fmt.Errorf("%w: missing subject", rdf.ErrUnsupportedTermKind)
	default:
		return "", fmt.Errorf("%w: subject term %s", rdf.ErrUnsupportedTermKind, subject)
	}
}

// addObject dispatches one object term into the matching Objects slot.
func addObject(o Objects, term rdf.Term, opts IngestOptions) (Objects, error) {
	switch object := term.(type) {
	case rdf.IRI:
		return o.withNamedNode(object.Value), nil
	case rdf.Literal:
		if object.IsLangString() {
			return o.withLangString(xsd.NormalizeLocale(object.Lang), object.Lexical), nil
		}
		datatype := object.Datatype.Value
		if datatype == "" {
			// A plain literal carries xsd:string implicitly.
			datatype = xsd.String
		}
		return o.withLiteral(datatype, object.Lexical), nil
	case rdf.BlankNode:
		if _, chained := opts.ChainBlankNodes[object.ID]; chained {
			predicates, err := chainPredicates(object.ID, opts)
			if err != nil {
				return Objects{}, err
			}
			return o.withBlankNode(BlankNodeObject{Predicates: predicates}), nil
		}
		return o.withBlankNode(BlankNodeObject{ID: object.String()}), nil
	case nil:
		return Objects{}, fmt.Errorf("%w: missing object", rdf.ErrUnsupportedTermKind)
	default:
		return Objects{}, fmt.Errorf("%w: object term %s", rdf.ErrUnsupportedTermKind, object)
	}
}

// chainPredicates collects the substructure of a chain blank node from the
// surrounding quad set. Chain classification guarantees the recursion
// terminates: an inline node cannot reach itself.
func chainPredicates(id string, opts IngestOptions) (Predicates, error) {
	predicates := Predicates{}
	for _, q := range opts.OtherQuads {
		subject, ok := q.S.(rdf.BlankNode)
		if !ok || subject.ID != id {
			continue
		}
		objects, err := addObject(predicates[q.P.Value], q.O, opts)
		if err != nil {
			return nil, err
		}
		predicates = predicates.with(q.P.Value, objects)
	}
	return predicates, nil
}
