package shape

import "iter"

// Unit is the value carrying no information.
type Unit struct{}

func (Unit) EmitShape(v Visitor) error { return v.Scalar(Scalar{Kind: KindUnit}) }

// Char is a single character. Go runes are plain int32 values, so a
// character must be marked explicitly to be emitted as one.
type Char rune

func (c Char) EmitShape(v Visitor) error { return v.Scalar(Scalar{Kind: KindChar, Rune: rune(c)}) }

// Tuple is a fixed-arity sequence of heterogeneous values.
type Tuple []any

func (t Tuple) EmitShape(v Visitor) error {
	s, err := v.Seq(len(t))
	if err != nil {
		return err
	}
	for _, e := range t {
		if err := s.Elem(e); err != nil {
			return err
		}
	}
	return s.End()
}

// Iter is a sequence whose size is not known until it has been walked.
type Iter iter.Seq[any]

func (it Iter) EmitShape(v Visitor) error {
	s, err := v.Seq(-1)
	if err != nil {
		return err
	}
	for e := range it {
		if err := s.Elem(e); err != nil {
			return err
		}
	}
	return s.End()
}

// Field is one named member of a Record or RecordVariant.
type Field struct {
	Name  string
	Value any
}

// Record is a struct-like value built at runtime.
type Record struct {
	Name   string
	Fields []Field
}

func (r Record) EmitShape(v Visitor) error {
	rec, err := v.Record(r.Name, len(r.Fields))
	if err != nil {
		return err
	}
	return emitFields(rec, r.Fields)
}

// Entry is one key/value pair of an Ordered mapping.
type Entry struct {
	Key   any
	Value any
}

// Ordered is a mapping that keeps its insertion order and allows keys of any
// shape.
type Ordered []Entry

func (o Ordered) EmitShape(v Visitor) error {
	m, err := v.Map(len(o))
	if err != nil {
		return err
	}
	for _, e := range o {
		if err := m.Key(e.Key); err != nil {
			return err
		}
		if err := m.Value(e.Value); err != nil {
			return err
		}
	}
	return m.End()
}

// UnitVariant is a tag-only enum value. It is comparable and can be used as
// a map key.
type UnitVariant struct {
	Type string
	Name string
}

func (u UnitVariant) EmitShape(v Visitor) error {
	return v.Scalar(Scalar{Kind: KindUnitVariant, Str: u.Name, Type: u.Type})
}

// NewtypeVariant is an enum value wrapping a single payload.
type NewtypeVariant struct {
	Type  string
	Name  string
	Value any
}

func (n NewtypeVariant) EmitShape(v Visitor) error {
	return v.NewtypeVariant(n.Type, n.Name, n.Value)
}

// TupleVariant is an enum value carrying positional fields.
type TupleVariant struct {
	Type  string
	Name  string
	Elems []any
}

func (t TupleVariant) EmitShape(v Visitor) error {
	s, err := v.TupleVariant(t.Type, t.Name, len(t.Elems))
	if err != nil {
		return err
	}
	for _, e := range t.Elems {
		if err := s.Elem(e); err != nil {
			return err
		}
	}
	return s.End()
}

// RecordVariant is an enum value carrying named fields.
type RecordVariant struct {
	Type   string
	Name   string
	Fields []Field
}

func (r RecordVariant) EmitShape(v Visitor) error {
	rec, err := v.RecordVariant(r.Type, r.Name, len(r.Fields))
	if err != nil {
		return err
	}
	return emitFields(rec, r.Fields)
}

func emitFields(rec RecordVisitor, fields []Field) error {
	for _, f := range fields {
		if err := rec.Field(f.Name, f.Value); err != nil {
			return err
		}
	}
	return rec.End()
}
