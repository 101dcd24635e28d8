package ldm

import "github.com/geoknoesis/solid-go/rdf"

// ChangeLog is the net quad delta between a dataset and its last-synced
// state: additions and deletions in insertion order, never both holding a
// matching quad at the same time. It is created empty after a successful
// fetch and reset after a successful save.
type ChangeLog struct {
	Additions []rdf.Quad
	Deletions []rdf.Quad
}

// IsEmpty reports whether the log records no changes.
func (l ChangeLog) IsEmpty() bool {
	return len(l.Additions) == 0 && len(l.Deletions) == 0
}

// AddAdditions records new quads. A quad matching a prior deletion cancels
// that deletion instead of being recorded, keeping the log minimal.
//
// Quads containing a blank node are silently skipped: blank-node identity
// cannot be reconciled across re-fetches, so blank-node diffing is
// unsupported and such changes are lost on save. This is a known limitation,
// not an error.
func AddAdditions(log ChangeLog, quads []rdf.Quad) ChangeLog {
	additions := log.Additions
	deletions := log.Deletions
	for _, q := range quads {
		if containsBlankNode(q) {
			continue
		}
		if i := indexOfQuad(deletions, q); i >= 0 {
			deletions = removeQuad(deletions, i)
			continue
		}
		additions = append(additions[:len(additions):len(additions)], q)
	}
	return ChangeLog{Additions: additions, Deletions: deletions}
}

// AddDeletions records removed quads, symmetrically to AddAdditions: a quad
// matching a prior addition cancels the addition, and blank-node quads are
// silently skipped.
func AddDeletions(log ChangeLog, quads []rdf.Quad) ChangeLog {
	additions := log.Additions
	deletions := log.Deletions
	for _, q := range quads {
		if containsBlankNode(q) {
			continue
		}
		if i := indexOfQuad(additions, q); i >= 0 {
			additions = removeQuad(additions, i)
			continue
		}
		deletions = append(deletions[:len(deletions):len(deletions)], q)
	}
	return ChangeLog{Additions: additions, Deletions: deletions}
}

func containsBlankNode(q rdf.Quad) bool {
	return isBlankTerm(q.S) || isBlankTerm(q.O) || isBlankTerm(q.G)
}

func isBlankTerm(term rdf.Term) bool {
	_, ok := term.(rdf.BlankNode)
	return ok
}

// indexOfQuad finds q by structural equality. Terms are comparable value
// types, so quad equality is plain ==.
func indexOfQuad(quads []rdf.Quad, q rdf.Quad) int {
	for i, candidate := range quads {
		if candidate == q {
			return i
		}
	}
	return -1
}

func removeQuad(quads []rdf.Quad, i int) []rdf.Quad {
	next := make([]rdf.Quad, 0, len(quads)-1)
	next = append(next, quads[:i]...)
	return append(next, quads[i+1:]...)
}
