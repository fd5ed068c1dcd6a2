// Package render turns shape emissions into structured text. It is the
// capture step of an extraction: it renders whatever subtree it is given,
// in full.
package render

import (
	"bytes"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/reoring/goiq/shape"
)

const prettyIndent = "  "

// JSON renders v as compact JSON. Field and entry order follow the emission
// order; variants are externally tagged.
func JSON(v any) (string, error) {
	b, err := appendJSON(nil, v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// JSONPretty renders v as JSON indented by two spaces.
func JSONPretty(v any) (string, error) {
	b, err := appendJSON(nil, v)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, b, "", prettyIndent); err != nil {
		return "", err
	}
	return out.String(), nil
}

func appendJSON(dst []byte, v any) ([]byte, error) {
	w := &jsonWriter{buf: bytes.NewBuffer(dst)}
	if err := shape.Emit(v, w); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

type jsonWriter struct {
	buf *bytes.Buffer
}

func (w *jsonWriter) Scalar(s shape.Scalar) error {
	switch s.Kind {
	case shape.KindBool:
		w.buf.WriteString(strconv.FormatBool(s.Bool))
	case shape.KindInt:
		w.buf.WriteString(strconv.FormatInt(s.Int, 10))
	case shape.KindUint:
		w.buf.WriteString(strconv.FormatUint(s.Uint, 10))
	case shape.KindFloat:
		var (
			b   []byte
			err error
		)
		if s.Bits == 32 {
			b, err = json.Marshal(float32(s.Float))
		} else {
			b, err = json.Marshal(s.Float)
		}
		if err != nil {
			return err
		}
		w.buf.Write(b)
	case shape.KindChar:
		return w.str(string(s.Rune))
	case shape.KindString, shape.KindUnitVariant:
		return w.str(s.Str)
	case shape.KindBytes:
		b, err := json.Marshal(s.Bytes)
		if err != nil {
			return err
		}
		w.buf.Write(b)
	case shape.KindUnit, shape.KindNone:
		w.buf.WriteString("null")
	}
	return nil
}

func (w *jsonWriter) str(s string) error {
	b, err := json.MarshalNoEscape(s)
	if err != nil {
		return err
	}
	w.buf.Write(b)
	return nil
}

func (w *jsonWriter) Some(v any) error { return shape.Emit(v, w) }

func (w *jsonWriter) Seq(int) (shape.SeqVisitor, error) {
	w.buf.WriteByte('[')
	return &jsonSeq{w: w, close: "]"}, nil
}

func (w *jsonWriter) Map(int) (shape.MapVisitor, error) {
	w.buf.WriteByte('{')
	return &jsonObject{w: w, close: "}"}, nil
}

func (w *jsonWriter) Record(string, int) (shape.RecordVisitor, error) {
	w.buf.WriteByte('{')
	return &jsonObject{w: w, close: "}"}, nil
}

func (w *jsonWriter) NewtypeVariant(_, variant string, v any) error {
	if err := w.tag(variant); err != nil {
		return err
	}
	if err := shape.Emit(v, w); err != nil {
		return err
	}
	w.buf.WriteByte('}')
	return nil
}

func (w *jsonWriter) TupleVariant(_, variant string, _ int) (shape.SeqVisitor, error) {
	if err := w.tag(variant); err != nil {
		return nil, err
	}
	w.buf.WriteByte('[')
	return &jsonSeq{w: w, close: "]}"}, nil
}

func (w *jsonWriter) RecordVariant(_, variant string, _ int) (shape.RecordVisitor, error) {
	if err := w.tag(variant); err != nil {
		return nil, err
	}
	w.buf.WriteByte('{')
	return &jsonObject{w: w, close: "}}"}, nil
}

// tag opens the single-key object wrapping a variant payload.
func (w *jsonWriter) tag(variant string) error {
	w.buf.WriteByte('{')
	if err := w.str(variant); err != nil {
		return err
	}
	w.buf.WriteByte(':')
	return nil
}

type jsonSeq struct {
	w     *jsonWriter
	n     int
	close string
}

func (s *jsonSeq) Elem(v any) error {
	if s.n > 0 {
		s.w.buf.WriteByte(',')
	}
	s.n++
	return shape.Emit(v, s.w)
}

func (s *jsonSeq) End() error {
	s.w.buf.WriteString(s.close)
	return nil
}

// jsonObject serves both mappings and records.
type jsonObject struct {
	w     *jsonWriter
	n     int
	close string
}

func (o *jsonObject) Key(k any) error {
	key, err := Key(k)
	if err != nil {
		return err
	}
	return o.name(key)
}

func (o *jsonObject) Value(v any) error { return shape.Emit(v, o.w) }

func (o *jsonObject) Field(name string, v any) error {
	if err := o.name(name); err != nil {
		return err
	}
	return shape.Emit(v, o.w)
}

func (o *jsonObject) name(key string) error {
	if o.n > 0 {
		o.w.buf.WriteByte(',')
	}
	o.n++
	if err := o.w.str(key); err != nil {
		return err
	}
	o.w.buf.WriteByte(':')
	return nil
}

func (o *jsonObject) End() error {
	o.w.buf.WriteString(o.close)
	return nil
}
