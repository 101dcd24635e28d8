package rdf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type nqReader struct {
	reader *bufio.Reader
	format string
	quads  bool
	line   int
	err    error
}

// NewNQuadsReader returns a pull-style reader over N-Quads input.
func NewNQuadsReader(r io.Reader) Reader {
	return &nqReader{reader: bufio.NewReader(r), format: "nquads", quads: true}
}

// NewNTriplesReader returns a pull-style reader over N-Triples input. Every
// parsed quad is in the default graph; a graph term is a parse error.
func NewNTriplesReader(r io.Reader) Reader {
	return &nqReader{reader: bufio.NewReader(r), format: "ntriples"}
}

func (d *nqReader) Next() (Quad, error) {
	if d.err != nil {
		return Quad{}, d.err
	}
	for {
		line, err := d.readLine()
		if err != nil {
			if err == io.EOF {
				return Quad{}, io.EOF
			}
			d.err = &ParseError{Format: d.format, Line: d.line, Err: err}
			return Quad{}, d.err
		}
		d.line++
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		quad, err := parseNQLine(line, d.quads)
		if err != nil {
			d.err = &ParseError{Format: d.format, Statement: line, Line: d.line, Err: err}
			return Quad{}, d.err
		}
		return quad, nil
	}
}

func (d *nqReader) Close() error { return nil }

func (d *nqReader) readLine() (string, error) {
	line, err := d.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			return line, nil
		}
		return "", err
	}
	return line, nil
}

func parseNQLine(line string, quads bool) (Quad, error) {
	cursor := &nqCursor{input: line}
	subject, err := cursor.parseSubject()
	if err != nil {
		return Quad{}, err
	}
	predicate, err := cursor.parseIRI()
	if err != nil {
		return Quad{}, err
	}
	object, err := cursor.parseObject()
	if err != nil {
		return Quad{}, err
	}

	var graph Term
	if quads {
		graph, err = cursor.parseOptionalGraph()
		if err != nil {
			return Quad{}, err
		}
	}
	cursor.skipWS()
	if !cursor.consume('.') {
		return Quad{}, cursor.errorf("expected '.' at end of statement")
	}

	return Quad{S: subject, P: predicate, O: object, G: graph}, nil
}

type nqCursor struct {
	input string
	pos   int
}

func (c *nqCursor) skipWS() {
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		default:
			return
		}
	}
}

func (c *nqCursor) consume(ch byte) bool {
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

func (c *nqCursor) parseSubject() (Term, error) {
	return c.parseTerm(false)
}

func (c *nqCursor) parseObject() (Term, error) {
	return c.parseTerm(true)
}

// parseOptionalGraph parses the graph label slot, which holds an IRI, a blank
// node, or nothing.
func (c *nqCursor) parseOptionalGraph() (Term, error) {
	c.skipWS()
	if c.pos >= len(c.input) || c.input[c.pos] == '.' {
		return nil, nil
	}
	return c.parseTerm(false)
}

func (c *nqCursor) parseTerm(allowLiteral bool) (Term, error) {
	c.skipWS()
	if c.pos >= len(c.input) {
		return nil, c.errorf("unexpected end of line")
	}
	switch {
	case strings.HasPrefix(c.input[c.pos:], "<<"):
		return c.parseTripleTerm()
	case c.input[c.pos] == '<':
		return c.parseIRI()
	case strings.HasPrefix(c.input[c.pos:], "_:"):
		return c.parseBlankNode()
	case c.input[c.pos] == '"':
		if !allowLiteral {
			return nil, c.errorf("literal not allowed here")
		}
		return c.parseLiteral()
	default:
		return nil, c.errorf("unexpected token at offset %d", c.pos)
	}
}

func (c *nqCursor) parseIRI() (IRI, error) {
	c.skipWS()
	if !c.consume('<') {
		return IRI{}, c.errorf("expected IRI")
	}
	start := c.pos
	for c.pos < len(c.input) && c.input[c.pos] != '>' {
		c.pos++
	}
	if c.pos >= len(c.input) {
		return IRI{}, c.errorf("unterminated IRI")
	}
	value, err := unescapeNQ(c.input[start:c.pos])
	if err != nil {
		return IRI{}, err
	}
	c.pos++
	return IRI{Value: value}, nil
}

func (c *nqCursor) parseBlankNode() (BlankNode, error) {
	c.skipWS()
	if !strings.HasPrefix(c.input[c.pos:], "_:") {
		return BlankNode{}, c.errorf("expected blank node")
	}
	c.pos += 2
	start := c.pos
	for c.pos < len(c.input) && !isTermDelimiter(c.input[c.pos]) {
		c.pos++
	}
	if start == c.pos {
		return BlankNode{}, c.errorf("blank node id missing")
	}
	return BlankNode{ID: c.input[start:c.pos]}, nil
}

func (c *nqCursor) parseLiteral() (Literal, error) {
	c.skipWS()
	if !c.consume('"') {
		return Literal{}, c.errorf("expected literal")
	}
	start := c.pos
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case '"':
			raw := c.input[start:c.pos]
			c.pos++
			lexical, err := unescapeNQ(raw)
			if err != nil {
				return Literal{}, err
			}
			return c.parseLiteralSuffix(lexical)
		case '\\':
			c.pos += 2
		default:
			c.pos++
		}
	}
	return Literal{}, c.errorf("unterminated literal")
}

func (c *nqCursor) parseLiteralSuffix(lexical string) (Literal, error) {
	if strings.HasPrefix(c.input[c.pos:], "@") {
		c.pos++
		start := c.pos
		for c.pos < len(c.input) && !isTermDelimiter(c.input[c.pos]) {
			c.pos++
		}
		if start == c.pos {
			return Literal{}, c.errorf("language tag missing")
		}
		return Literal{Lexical: lexical, Lang: c.input[start:c.pos]}, nil
	}
	if strings.HasPrefix(c.input[c.pos:], "^^") {
		c.pos += 2
		dt, err := c.parseIRI()
		if err != nil {
			return Literal{}, err
		}
		return Literal{Lexical: lexical, Datatype: dt}, nil
	}
	return Literal{Lexical: lexical}, nil
}

func (c *nqCursor) parseTripleTerm() (Term, error) {
	if !strings.HasPrefix(c.input[c.pos:], "<<") {
		return nil, c.errorf("expected '<<'")
	}
	c.pos += 2
	subject, err := c.parseSubject()
	if err != nil {
		return nil, err
	}
	predicate, err := c.parseIRI()
	if err != nil {
		return nil, err
	}
	object, err := c.parseObject()
	if err != nil {
		return nil, err
	}
	c.skipWS()
	if !strings.HasPrefix(c.input[c.pos:], ">>") {
		return nil, c.errorf("expected '>>'")
	}
	c.pos += 2
	return TripleTerm{S: subject, P: predicate, O: object}, nil
}

func (c *nqCursor) errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

func isTermDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '.':
		return true
	default:
		return false
	}
}

// unescapeNQ resolves the N-Triples string escapes, including \uXXXX and
// \UXXXXXXXX numeric escapes, which json-gold's serializer emits for any
// non-ASCII content.
func unescapeNQ(s string) (string, error) {
	if !strings.Contains(s, "\\") {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		ch := s[i]
		if ch != '\\' {
			b.WriteByte(ch)
			i++
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("unterminated escape")
		}
		switch s[i+1] {
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'b':
			b.WriteByte('\b')
			i += 2
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case 'f':
			b.WriteByte('\f')
			i += 2
		case '"':
			b.WriteByte('"')
			i += 2
		case '\'':
			b.WriteByte('\'')
			i += 2
		case '\\':
			b.WriteByte('\\')
			i += 2
		case 'u':
			r, err := parseHexEscape(s, i+2, 4)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += 6
		case 'U':
			r, err := parseHexEscape(s, i+2, 8)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += 10
		default:
			return "", fmt.Errorf("invalid escape \\%c", s[i+1])
		}
	}
	return b.String(), nil
}

func parseHexEscape(s string, start, width int) (rune, error) {
	if start+width > len(s) {
		return 0, fmt.Errorf("truncated numeric escape")
	}
	v, err := strconv.ParseUint(s[start:start+width], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric escape: %w", err)
	}
	return rune(v), nil
}

type nqWriter struct {
	writer *bufio.Writer
	quads  bool
	err    error
}

// NewNQuadsWriter returns a push-style N-Quads writer.
func NewNQuadsWriter(w io.Writer) Writer {
	return &nqWriter{writer: bufio.NewWriter(w), quads: true}
}

// NewNTriplesWriter returns a push-style N-Triples writer. Graph terms are
// dropped from written quads.
func NewNTriplesWriter(w io.Writer) Writer {
	return &nqWriter{writer: bufio.NewWriter(w)}
}

func (e *nqWriter) Write(q Quad) error {
	if e.err != nil {
		return e.err
	}
	if q.S == nil || q.P.Value == "" || q.O == nil {
		return fmt.Errorf("nquads: missing statement fields")
	}
	var line strings.Builder
	line.WriteString(renderTerm(q.S))
	line.WriteByte(' ')
	line.WriteString(renderIRI(q.P))
	line.WriteByte(' ')
	line.WriteString(renderTerm(q.O))
	if e.quads && q.G != nil {
		line.WriteByte(' ')
		line.WriteString(renderTerm(q.G))
	}
	line.WriteString(" .\n")
	if _, err := e.writer.WriteString(line.String()); err != nil {
		e.err = err
		return err
	}
	return nil
}

func (e *nqWriter) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.writer.Flush()
}

func (e *nqWriter) Close() error { return e.Flush() }

func renderIRI(iri IRI) string {
	return "<" + escapeNQ(iri.Value) + ">"
}

func renderTerm(term Term) string {
	switch value := term.(type) {
	case IRI:
		return renderIRI(value)
	case BlankNode:
		return value.String()
	case Literal:
		quoted := "\"" + escapeNQ(value.Lexical) + "\""
		if value.Lang != "" {
			return quoted + "@" + value.Lang
		}
		if value.Datatype.Value != "" {
			return quoted + "^^" + renderIRI(value.Datatype)
		}
		return quoted
	case TripleTerm:
		return "<<" + renderTerm(value.S) + " " + renderIRI(value.P) + " " + renderTerm(value.O) + ">>"
	default:
		return ""
	}
}

// escapeNQ applies the N-Triples string escapes.
func escapeNQ(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
