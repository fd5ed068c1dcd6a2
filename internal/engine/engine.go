// Package engine resolves a token path against a value by reacting to the
// value's shape emission. It never asks for a child's shape unless the child
// is on the path, and it stops the emission as soon as the answer is known.
package engine

import (
	"errors"
	"strconv"

	"github.com/reoring/goiq/internal/render"
	"github.com/reoring/goiq/internal/sizer"
	"github.com/reoring/goiq/shape"
)

type state uint8

const (
	seeking state = iota
	capturing
)

var errCaptureTwice = errors.New("engine: capture entered twice")

// Diver walks down a value along a token path. It is single-use: one Diver
// resolves one path against one value.
type Diver struct {
	tokens []string
	next   int
	mode   Mode
	state  state
}

// Resolve looks up tokens in value. An empty token list never matches.
func Resolve(value any, tokens []string, mode Mode) Outcome {
	if len(tokens) == 0 {
		return Outcome{}
	}
	d := &Diver{tokens: tokens, mode: mode}
	err := shape.Emit(value, d)
	if err == nil {
		return Outcome{}
	}
	var h *halt
	if errors.As(err, &h) {
		return h.out
	}
	return Outcome{Status: StatusFailed, Failure: FailureEmission, Err: err}
}

func (d *Diver) token() string { return d.tokens[d.next] }

// advance consumes the current token and reports whether it was the last.
func (d *Diver) advance() bool {
	d.next++
	return d.next == len(d.tokens)
}

// descend enters a child whose token just matched. A child that returns
// without halting could not complete the path, and no sibling can either.
func (d *Diver) descend(v any) error {
	if d.advance() {
		return d.capture(v)
	}
	if err := shape.Emit(v, d); err != nil {
		return err
	}
	return notFound()
}

// capture handles the value at the end of the path.
func (d *Diver) capture(v any) error {
	if d.state == capturing {
		return failed(FailureEmission, errCaptureTwice)
	}
	switch d.mode {
	case ModeText:
		return rendered(render.JSON(v))
	case ModeTextPretty:
		return rendered(render.JSONPretty(v))
	case ModeYAML:
		return rendered(render.YAML(v))
	case ModeSize:
		n, ok, err := sizer.Count(v)
		switch {
		case err != nil:
			return failed(FailureEmission, err)
		case !ok:
			return notFound()
		}
		return foundCount(n)
	}
	d.state = capturing
	if err := shape.Emit(v, d); err != nil {
		return err
	}
	return notFound()
}

func rendered(text string, err error) error {
	if err != nil {
		return failed(FailureRender, err)
	}
	return found(text)
}

func (d *Diver) Scalar(s shape.Scalar) error {
	if d.state == capturing {
		return found(s.String())
	}
	// a leaf where the path still expects a container
	return nil
}

func (d *Diver) Some(v any) error { return shape.Emit(v, d) }

func (d *Diver) Seq(n int) (shape.SeqVisitor, error) {
	if d.state == capturing {
		return nil, notFound()
	}
	want, err := strconv.ParseUint(d.token(), 10, strconv.IntSize-1)
	if err != nil {
		return nil, notFound()
	}
	if n >= 0 && want >= uint64(n) {
		return nil, notFound()
	}
	return &seqFrame{d: d, want: int(want)}, nil
}

func (d *Diver) Map(int) (shape.MapVisitor, error) {
	if d.state == capturing {
		return nil, notFound()
	}
	return &mapFrame{d: d, token: trimQuotes(d.token())}, nil
}

func (d *Diver) Record(string, int) (shape.RecordVisitor, error) {
	if d.state == capturing {
		return nil, notFound()
	}
	return &recordFrame{d: d}, nil
}

// Variants match their name against the current token like a single-key
// mapping, which is how they render. Captured as primitives, a newtype
// variant is transparent and the others yield the variant name.

func (d *Diver) NewtypeVariant(_, variant string, v any) error {
	if d.state == capturing {
		return shape.Emit(v, d)
	}
	if variant != d.token() {
		return notFound()
	}
	return d.descend(v)
}

func (d *Diver) TupleVariant(_, variant string, n int) (shape.SeqVisitor, error) {
	if d.state == capturing {
		return nil, found(variant)
	}
	if variant != d.token() {
		return nil, notFound()
	}
	if d.advance() {
		return &tupleCapture{d: d, elems: make(shape.Tuple, 0, max(n, 0))}, nil
	}
	return d.Seq(n)
}

func (d *Diver) RecordVariant(typ, variant string, n int) (shape.RecordVisitor, error) {
	if d.state == capturing {
		return nil, found(variant)
	}
	if variant != d.token() {
		return nil, notFound()
	}
	if d.advance() {
		return &recordCapture{d: d, rec: shape.Record{Name: typ, Fields: make([]shape.Field, 0, max(n, 0))}}, nil
	}
	return d.Record(typ, n)
}

// trimQuotes strips one layer of surrounding double quotes.
func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
