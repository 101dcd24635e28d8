package rdf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	ld "github.com/piprate/json-gold/ld"
)

// JSONLDOptions configures the JSON-LD bridge.
type JSONLDOptions struct {
	// Base resolves relative IRIs in the document.
	Base string
	// ProcessingMode selects JSON-LD version semantics: "json-ld-1.0" or
	// "json-ld-1.1".
	ProcessingMode string
	// Context, when set, is used when serialising quads back to JSON-LD so
	// the output stays compact.
	Context interface{}
	// DocumentLoader resolves remote contexts. Nil keeps the json-gold
	// default (network-backed; callers wanting hermetic behaviour supply
	// their own).
	DocumentLoader ld.DocumentLoader
}

// DecodeJSONLD parses a JSON-LD document into quads. The conversion runs
// through json-gold's RDF serialisation; the resulting N-Quads stream is
// parsed with the package's own reader so every term goes through the same
// closed term model as any other input.
func DecodeJSONLD(ctx context.Context, r io.Reader, opts JSONLDOptions) ([]Quad, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var document interface{}
	if err := json.NewDecoder(r).Decode(&document); err != nil {
		return nil, &ParseError{Format: "jsonld", Err: err}
	}

	proc := ld.NewJsonLdProcessor()
	goldOpts := newJSONGoldOptions(opts)
	goldOpts.Format = "application/n-quads"
	result, err := proc.ToRDF(document, goldOpts)
	if err != nil {
		return nil, &ParseError{Format: "jsonld", Err: err}
	}
	nquads, ok := result.(string)
	if !ok {
		return nil, fmt.Errorf("jsonld: unexpected ToRDF result %T", result)
	}
	return ReadAll(ctx, NewNQuadsReader(strings.NewReader(nquads)))
}

// EncodeJSONLD serialises quads as a JSON-LD document. When opts.Context is
// set the output is compacted against it, otherwise the expanded form is
// written.
func EncodeJSONLD(ctx context.Context, w io.Writer, quads []Quad, opts JSONLDOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	nquads, err := quadsToNQuads(quads)
	if err != nil {
		return err
	}

	proc := ld.NewJsonLdProcessor()
	goldOpts := newJSONGoldOptions(opts)
	goldOpts.Format = "application/n-quads"
	document, err := proc.FromRDF(nquads, goldOpts)
	if err != nil {
		return fmt.Errorf("jsonld: %w", err)
	}
	if opts.Context != nil {
		document, err = proc.Compact(document, opts.Context, newJSONGoldOptions(opts))
		if err != nil {
			return fmt.Errorf("jsonld: %w", err)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(document)
}

func newJSONGoldOptions(opts JSONLDOptions) *ld.JsonLdOptions {
	goldOpts := ld.NewJsonLdOptions(opts.Base)
	if opts.ProcessingMode != "" {
		goldOpts.ProcessingMode = opts.ProcessingMode
	}
	if opts.DocumentLoader != nil {
		goldOpts.DocumentLoader = opts.DocumentLoader
	}
	return goldOpts
}

func quadsToNQuads(quads []Quad) (string, error) {
	var buf bytes.Buffer
	w := NewNQuadsWriter(&buf)
	for _, q := range quads {
		if err := w.Write(q); err != nil {
			_ = w.Close()
			return "", err
		}
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
