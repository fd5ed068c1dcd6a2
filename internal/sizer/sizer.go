// Package sizer counts the immediate children of a value through its shape
// emission, stopping as soon as the count is known.
package sizer

import (
	"errors"
	"unicode/utf8"

	"github.com/reoring/goiq/shape"
)

// result stops the emission once the answer is known. It is never seen
// outside Count.
type result struct {
	n  int
	ok bool
}

func (r *result) Error() string { return "sizer: result" }

func counted(n int) error { return &result{n: n, ok: true} }

func uncountable() error { return &result{} }

// Count reports the number of immediate children of v: characters of a
// string, elements of a sequence, entries of a mapping, fields of a record.
// ok is false for values without children (numbers, booleans, chars, bytes,
// none and unit variants). Unit counts as zero. err is set only when the
// emission itself fails.
func Count(v any) (n int, ok bool, err error) {
	s := &sizer{}
	err = shape.Emit(v, s)
	if err == nil {
		// the emitter returned without ending a container
		return s.n, true, nil
	}
	var r *result
	if errors.As(err, &r) {
		return r.n, r.ok, nil
	}
	return 0, false, err
}

type sizer struct {
	n int
}

func (s *sizer) Scalar(sc shape.Scalar) error {
	switch sc.Kind {
	case shape.KindString:
		return counted(utf8.RuneCountInString(sc.Str))
	case shape.KindUnit:
		return counted(0)
	}
	return uncountable()
}

func (s *sizer) Some(v any) error { return shape.Emit(v, s) }

func (s *sizer) Seq(n int) (shape.SeqVisitor, error) {
	if n >= 0 {
		return nil, counted(n)
	}
	return s, nil
}

func (s *sizer) Map(n int) (shape.MapVisitor, error) {
	if n >= 0 {
		return nil, counted(n)
	}
	return s, nil
}

func (s *sizer) Record(_ string, n int) (shape.RecordVisitor, error) {
	return nil, counted(n)
}

func (s *sizer) NewtypeVariant(_, _ string, v any) error { return shape.Emit(v, s) }

func (s *sizer) TupleVariant(_, _ string, n int) (shape.SeqVisitor, error) {
	return nil, counted(n)
}

func (s *sizer) RecordVariant(_, _ string, n int) (shape.RecordVisitor, error) {
	return nil, counted(n)
}

// sizer doubles as the element visitor for containers of unknown size.

func (s *sizer) Elem(any) error { s.n++; return nil }

func (s *sizer) Key(any) error { s.n++; return nil }

func (s *sizer) Value(any) error { return nil }

func (s *sizer) End() error { return counted(s.n) }
