package ldm

import (
	"strings"

	"github.com/google/uuid"
)

// LocalNodePrefix is the reserved IRI prefix marking nodes that have not yet
// been assigned a permanent IRI. Resolving a dataset against a resource IRI
// rewrites every IRI under this prefix to "<resourceIRI>#<name>".
const LocalNodePrefix = "https://geoknoesis.com/.well-known/ld-local-node/"

// IsLocalNodeIRI reports whether the IRI carries the reserved local-node
// prefix.
func IsLocalNodeIRI(iri string) bool {
	return strings.HasPrefix(iri, LocalNodePrefix)
}

// LocalNodeIRI returns the local-node IRI for a name. It round-trips with
// LocalNodeName for any name made of IRI-legal characters.
func LocalNodeIRI(name string) string {
	return LocalNodePrefix + name
}

// LocalNodeName extracts the name from a local-node IRI. It returns the
// empty string for IRIs outside the reserved prefix.
func LocalNodeName(iri string) string {
	if !IsLocalNodeIRI(iri) {
		return ""
	}
	return iri[len(LocalNodePrefix):]
}

// NewLocalNode mints a local-node IRI with a fresh unique name.
func NewLocalNode() string {
	return LocalNodeIRI(uuid.NewString())
}

// ResolveLocalIRIs rewrites every local-node IRI in subject or object
// position to resourceIRI + "#" + name, leaving all other IRIs untouched.
// It is a pure single-pass transform returning a new dataset, and it is
// idempotent: resolved IRIs no longer carry the prefix, so a second pass
// finds nothing to rewrite.
func ResolveLocalIRIs(d Dataset, resourceIRI string) Dataset {
	graphs := make(map[string]Graph, len(d.Graphs))
	for graphKey, graph := range d.Graphs {
		next := make(Graph, len(graph))
		for subjectKey, subject := range graph {
			resolvedKey := resolveIRI(subjectKey, resourceIRI)
			next[resolvedKey] = Subject{
				URL:        resolvedKey,
				Predicates: resolvePredicates(subject.Predicates, resourceIRI),
			}
		}
		graphs[graphKey] = next
	}
	return Dataset{Graphs: graphs}
}

func resolvePredicates(predicates Predicates, resourceIRI string) Predicates {
	next := make(Predicates, len(predicates))
	for predicate, objects := range predicates {
		next[predicate] = resolveObjects(objects, resourceIRI)
	}
	return next
}

func resolveObjects(objects Objects, resourceIRI string) Objects {
	if len(objects.NamedNodes) > 0 {
		namedNodes := make([]string, len(objects.NamedNodes))
		for i, iri := range objects.NamedNodes {
			namedNodes[i] = resolveIRI(iri, resourceIRI)
		}
		objects.NamedNodes = namedNodes
	}
	if len(objects.BlankNodes) > 0 {
		blankNodes := make([]BlankNodeObject, len(objects.BlankNodes))
		for i, b := range objects.BlankNodes {
			if b.Inline() {
				b.Predicates = resolvePredicates(b.Predicates, resourceIRI)
			}
			blankNodes[i] = b
		}
		objects.BlankNodes = blankNodes
	}
	return objects
}

func resolveIRI(iri, resourceIRI string) string {
	if !IsLocalNodeIRI(iri) {
		return iri
	}
	return resourceIRI + "#" + LocalNodeName(iri)
}
