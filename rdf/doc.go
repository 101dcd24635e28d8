// Package rdf provides the wire-level RDF model used by the solid-go client:
// a compact term/quad representation plus streaming codecs for the formats a
// Solid server speaks.
//
// Copyright 2026 Geoknoesis LLC (www.geoknoesis.com)
//
// Terms form a closed sum over IRI, BlankNode, Literal and TripleTerm,
// discriminated by TermKind, so consumers can switch exhaustively and reject
// unsupported kinds at a single point. A Quad carries an optional graph term;
// a nil graph means the default graph.
//
// Two quad-stream producers/consumers are provided:
//   - NewNQuadsReader / NewNQuadsWriter: line-oriented N-Quads (and the
//     N-Triples subset via NewNTriplesReader / NewNTriplesWriter).
//   - DecodeJSONLD / EncodeJSONLD: JSON-LD documents, bridged through
//     github.com/piprate/json-gold.
//
// Example (decoding quads):
//
//	r := rdf.NewNQuadsReader(strings.NewReader(input))
//	defer r.Close()
//
//	for {
//	    quad, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        // handle error
//	    }
//	    // process quad.S, quad.P, quad.O, quad.G
//	}
package rdf
