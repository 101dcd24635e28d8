package rdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeParseError indicates a general parse error.
	ErrCodeParseError ErrorCode = "PARSE_ERROR"
	// ErrCodeIOError indicates an I/O error.
	ErrCodeIOError ErrorCode = "IO_ERROR"
	// ErrCodeContextCanceled indicates the context was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
	// ErrCodeInvalidIRI indicates an invalid IRI was encountered.
	ErrCodeInvalidIRI ErrorCode = "INVALID_IRI"
	// ErrCodeUnsupportedTerm indicates a term kind outside the supported set.
	ErrCodeUnsupportedTerm ErrorCode = "UNSUPPORTED_TERM"
)

// ErrUnsupportedTermKind indicates a graph/subject/object term kind the
// dataset layer cannot represent. Ingestion aborts on it; partial datasets
// are never returned.
var ErrUnsupportedTermKind = errors.New("rdf: unsupported term kind")

// Code returns the error code for an error, or ErrCodeParseError if unknown.
// Returns empty string for nil errors or io.EOF (which is not an error
// condition).
func Code(err error) ErrorCode {
	if err == nil || err == io.EOF {
		return ""
	}

	if errors.Is(err, ErrUnsupportedTermKind) {
		return ErrCodeUnsupportedTerm
	}

	var iriErr *InvalidIRIError
	if errors.As(err, &iriErr) {
		return ErrCodeInvalidIRI
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		if underlying := Code(parseErr.Err); underlying != "" && underlying != ErrCodeParseError {
			return underlying
		}
		return ErrCodeParseError
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ErrCodeContextCanceled
	}

	return ErrCodeParseError
}

// ParseError provides structured context for parse failures.
type ParseError struct {
	Format    string // Format name (e.g., "nquads", "jsonld")
	Statement string // Offending statement or input excerpt
	Line      int    // 1-based line number (0 if unknown)
	Err       error  // Underlying error
}

func (e *ParseError) Error() string {
	var msg strings.Builder
	msg.WriteString(e.Format)
	if e.Line > 0 {
		fmt.Fprintf(&msg, ":%d", e.Line)
	}
	msg.WriteString(": ")
	if e.Err != nil {
		msg.WriteString(e.Err.Error())
	} else {
		msg.WriteString("parse error")
	}
	if e.Statement != "" {
		fmt.Fprintf(&msg, " in %q", excerpt(e.Statement))
	}
	return msg.String()
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error { return e.Err }

// InvalidIRIError reports an attempt to construct a named node from a string
// that is not a syntactically valid IRI. Value carries the offending string
// for diagnostics.
type InvalidIRIError struct {
	Value string
	Err   error
}

func (e *InvalidIRIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rdf: invalid IRI %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("rdf: invalid IRI %q", e.Value)
}

// Unwrap returns the underlying error.
func (e *InvalidIRIError) Unwrap() error { return e.Err }

// excerpt truncates long statements in error messages.
func excerpt(s string) string {
	const max = 80
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
