package ldm

import "github.com/geoknoesis/solid-go/rdf"

// chainDetectionLimit bounds the number of distinct blank nodes for which
// chain classification runs. Above it, every blank node is treated as an
// opaque reference. Inlining is a readability optimisation, so the fallback
// trades precision for bounded work on blank-node-heavy inputs.
const chainDetectionLimit = 20

// ChainBlankNodes classifies the blank nodes of a quad set, returning the
// identifiers eligible for inline ("chain") representation. A blank node
// qualifies only when it is the object of exactly one quad and does not
// participate in a blank-node cycle; everything else must stay an opaque
// reference because nesting cannot represent sharing or cycles.
//
// The classification runs in two passes: the first counts object in-degree
// and records blank-to-blank subject links, the second walks those links to
// rule out cycles.
func ChainBlankNodes(quads []rdf.Quad) map[string]struct{} {
	inDegree := make(map[string]int)
	links := make(map[string][]string)
	seen := make(map[string]struct{})

	for _, q := range quads {
		subject, subjectBlank := q.S.(rdf.BlankNode)
		object, objectBlank := q.O.(rdf.BlankNode)
		if subjectBlank {
			seen[subject.ID] = struct{}{}
			if _, ok := links[subject.ID]; !ok {
				links[subject.ID] = nil
			}
		}
		if objectBlank {
			seen[object.ID] = struct{}{}
			inDegree[object.ID]++
			if subjectBlank {
				links[subject.ID] = append(links[subject.ID], object.ID)
			}
		}
	}

	if len(seen) > chainDetectionLimit {
		return map[string]struct{}{}
	}

	chains := make(map[string]struct{})
	for id := range seen {
		if inDegree[id] != 1 {
			continue
		}
		if inCycle(id, links) {
			continue
		}
		chains[id] = struct{}{}
	}
	return chains
}

// inCycle reports whether start can reach itself through blank-to-blank
// links.
func inCycle(start string, links map[string][]string) bool {
	visited := make(map[string]struct{})
	stack := append([]string(nil), links[start]...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == start {
			return true
		}
		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}
		stack = append(stack, links[id]...)
	}
	return false
}
