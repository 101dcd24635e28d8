package rdf

import (
	"context"
	"io"
)

// Reader streams RDF quads from an input.
type Reader interface {
	Next() (Quad, error)
	Close() error
}

// Writer streams RDF quads to an output.
type Writer interface {
	Write(Quad) error
	Flush() error
	Close() error
}

// Handler processes quads in push mode.
type Handler func(Quad) error

// Parse drains the reader and streams every quad to the handler. It stops on
// the first handler or reader error and checks ctx between quads so a caller
// can cancel a long stream. If ctx is nil, context.Background() is used.
func Parse(ctx context.Context, r Reader, handler Handler) error {
	if ctx == nil {
		ctx = context.Background()
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		quad, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := handler(quad); err != nil {
			return err
		}
	}
}

// ReadAll drains the reader into a slice.
func ReadAll(ctx context.Context, r Reader) ([]Quad, error) {
	var quads []Quad
	err := Parse(ctx, r, func(q Quad) error {
		quads = append(quads, q)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quads, nil
}
