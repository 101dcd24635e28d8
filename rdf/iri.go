package rdf

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateIRI validates an IRI string. Named nodes in this library must be
// absolute IRIs with a scheme; relative references are rejected because the
// dataset layer keys graphs and subjects by absolute IRI.
func ValidateIRI(iri string) error {
	if iri == "" {
		return fmt.Errorf("empty IRI")
	}

	parsed, err := url.Parse(iri)
	if err != nil {
		return fmt.Errorf("invalid IRI syntax: %w", err)
	}

	if parsed.Scheme == "" {
		return fmt.Errorf("IRI is missing a scheme: %s", iri)
	}
	first := parsed.Scheme[0]
	if !((first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z')) {
		return fmt.Errorf("scheme must start with a letter: %s", iri)
	}

	for i, r := range iri {
		if r < 0x20 {
			return fmt.Errorf("invalid control character at position %d", i)
		}
		if r == ' ' || r == '<' || r == '>' || r == '"' || r == '{' || r == '}' || r == '|' || r == '\\' || r == '^' || r == '`' {
			return fmt.Errorf("character %q at position %d must be percent-encoded", r, i)
		}
	}

	if strings.Contains(iri, "##") {
		return fmt.Errorf("multiple fragment separators: %s", iri)
	}

	return nil
}

// NewIRI constructs a validated named node. It returns an *InvalidIRIError
// carrying the offending value when the string is not a valid absolute IRI.
func NewIRI(value string) (IRI, error) {
	if err := ValidateIRI(value); err != nil {
		return IRI{}, &InvalidIRIError{Value: value, Err: err}
	}
	return IRI{Value: value}, nil
}
