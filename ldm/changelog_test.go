package ldm

import (
	"reflect"
	"testing"

	"github.com/geoknoesis/solid-go/rdf"
)

func quadNamed(n string) rdf.Quad {
	return rdf.Quad{
		S: iri("https://example.org/s"),
		P: iri("https://example.org/p"),
		O: rdf.Literal{Lexical: n},
	}
}

func TestChangeLogRecordsAdditionsAndDeletions(t *testing.T) {
	var log ChangeLog
	log = AddAdditions(log, []rdf.Quad{quadNamed("a"), quadNamed("b")})
	log = AddDeletions(log, []rdf.Quad{quadNamed("c")})

	if len(log.Additions) != 2 || len(log.Deletions) != 1 {
		t.Fatalf("unexpected log: %+v", log)
	}
	if !reflect.DeepEqual(log.Additions, []rdf.Quad{quadNamed("a"), quadNamed("b")}) {
		t.Fatalf("additions must preserve insertion order: %v", log.Additions)
	}
}

func TestChangeLogCancellation(t *testing.T) {
	var log ChangeLog

	// An addition cancels a matching prior deletion.
	log = AddDeletions(log, []rdf.Quad{quadNamed("a")})
	log = AddAdditions(log, []rdf.Quad{quadNamed("a")})
	if !log.IsEmpty() {
		t.Fatalf("matching addition must cancel the deletion: %+v", log)
	}

	// A deletion cancels a matching prior addition.
	log = AddAdditions(log, []rdf.Quad{quadNamed("b")})
	log = AddDeletions(log, []rdf.Quad{quadNamed("b")})
	if !log.IsEmpty() {
		t.Fatalf("matching deletion must cancel the addition: %+v", log)
	}

	// Cancellation removes exactly one matching entry.
	log = AddDeletions(log, []rdf.Quad{quadNamed("c"), quadNamed("c")})
	log = AddAdditions(log, []rdf.Quad{quadNamed("c")})
	if len(log.Deletions) != 1 || len(log.Additions) != 0 {
		t.Fatalf("expected one remaining deletion: %+v", log)
	}
}

func TestChangeLogNeverHoldsMatchingPair(t *testing.T) {
	var log ChangeLog
	log = AddAdditions(log, []rdf.Quad{quadNamed("a")})
	log = AddDeletions(log, []rdf.Quad{quadNamed("b")})
	log = AddAdditions(log, []rdf.Quad{quadNamed("b")})
	log = AddDeletions(log, []rdf.Quad{quadNamed("a")})
	if !log.IsEmpty() {
		t.Fatalf("log must hold the net difference only: %+v", log)
	}
}

// Blank-node identity cannot be reconciled across re-fetches, so quads
// touching a blank node are dropped from the diff entirely. This pins the
// documented lossy behaviour: such changes never reach the log, and are
// therefore lost on save.
func TestChangeLogDropsBlankNodeQuads(t *testing.T) {
	blankObject := rdf.Quad{S: iri("https://example.org/s"), P: iri("https://example.org/p"), O: bnode("b")}
	blankSubject := rdf.Quad{S: bnode("b"), P: iri("https://example.org/p"), O: lit("x")}

	var log ChangeLog
	log = AddAdditions(log, []rdf.Quad{blankObject, blankSubject, quadNamed("kept")})
	if len(log.Additions) != 1 || log.Additions[0] != quadNamed("kept") {
		t.Fatalf("blank-node quads must be dropped from additions: %+v", log)
	}

	log = AddDeletions(log, []rdf.Quad{blankObject, blankSubject})
	if len(log.Deletions) != 0 {
		t.Fatalf("blank-node quads must be dropped from deletions: %+v", log)
	}
}

func TestChangeLogDoesNotMutateInput(t *testing.T) {
	base := AddAdditions(ChangeLog{}, []rdf.Quad{quadNamed("a")})
	_ = AddAdditions(base, []rdf.Quad{quadNamed("b")})
	_ = AddDeletions(base, []rdf.Quad{quadNamed("a")})
	if len(base.Additions) != 1 || len(base.Deletions) != 0 {
		t.Fatalf("change-log values must be immutable: %+v", base)
	}
}
