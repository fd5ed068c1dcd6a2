package engine

import (
	"github.com/reoring/goiq/internal/render"
	"github.com/reoring/goiq/shape"
)

// seqFrame selects one element of a sequence by position.
type seqFrame struct {
	d    *Diver
	want int
	pos  int
}

func (f *seqFrame) Elem(v any) error {
	pos := f.pos
	f.pos++
	if pos != f.want {
		return nil
	}
	return f.d.descend(v)
}

func (f *seqFrame) End() error { return nil }

// mapFrame selects the value whose key text equals the token. Keys are
// compared through their compact JSON form with one layer of quotes removed,
// so composite keys only match when that form happens to equal the token.
type mapFrame struct {
	d      *Diver
	token  string
	accept bool
}

func (f *mapFrame) Key(k any) error {
	text, err := render.JSON(k)
	if err != nil {
		return failed(FailureRender, err)
	}
	f.accept = trimQuotes(text) == f.token
	return nil
}

func (f *mapFrame) Value(v any) error {
	if !f.accept {
		return nil
	}
	return f.d.descend(v)
}

func (f *mapFrame) End() error { return nil }

// recordFrame selects a field by name.
type recordFrame struct {
	d *Diver
}

func (f *recordFrame) Field(name string, v any) error {
	if name != f.d.token() {
		return nil
	}
	return f.d.descend(v)
}

func (f *recordFrame) End() error { return nil }

// tupleCapture gathers the element handles of a tuple variant payload so the
// payload can be captured as one value.
type tupleCapture struct {
	d     *Diver
	elems shape.Tuple
}

func (c *tupleCapture) Elem(v any) error {
	c.elems = append(c.elems, v)
	return nil
}

func (c *tupleCapture) End() error { return c.d.capture(c.elems) }

// recordCapture does the same for record variant payloads.
type recordCapture struct {
	d   *Diver
	rec shape.Record
}

func (c *recordCapture) Field(name string, v any) error {
	c.rec.Fields = append(c.rec.Fields, shape.Field{Name: name, Value: v})
	return nil
}

func (c *recordCapture) End() error { return c.d.capture(c.rec) }
