// Package ldm implements the linked-data model at the heart of solid-go: an
// immutable, JSON-representable dataset tree plus the codec that round-trips
// it through an RDF quad stream.
//
// Copyright 2026 Geoknoesis LLC (www.geoknoesis.com)
//
// A Dataset nests Graph, Subject, Predicates and Objects values. Every value
// is treated as immutable: mutation helpers copy the structures along the
// edited path and share everything else, so previously obtained views remain
// valid. The whole tree is plain data (maps, slices, strings), which keeps it
// losslessly serialisable with encoding/json.
//
// FromQuads builds a Dataset from an unordered quad set, classifying blank
// nodes into inline "chains" and opaque shared references (see
// ChainBlankNodes). ToQuads is the inverse. ChangeLog tracks the net quad
// delta between a fetched dataset and local mutations, and Thing offers a
// subject-scoped read/mutate view typed via the xsd package.
//
// The package is purely synchronous and holds no global state: every
// operation is a function from its explicit arguments to a new value, safe
// to call from any number of goroutines.
package ldm
