// Package shape defines the protocol through which a value announces its own
// structure to a passive visitor, and adapters that make ordinary Go values,
// raw JSON and YAML nodes speak it.
//
// A value emits exactly one event: a scalar, an optional wrapper, or the
// start of a container. Containers hand each direct child to the visitor as
// an opaque handle, in native order. The visitor decides whether to descend
// into a child by calling Emit on the handle; children it does not descend
// into cost nothing beyond the handle itself.
//
// Any error returned by a visitor must be returned unchanged (or wrapped) by
// the emitter, and the emitter must stop emitting immediately. Visitors rely
// on this to stop a traversal early.
package shape

// Visitor receives the top-level shape of one value.
type Visitor interface {
	// Scalar receives a leaf value.
	Scalar(s Scalar) error
	// Some receives a present optional value. Most visitors treat it as
	// transparent and Emit v into themselves.
	Some(v any) error
	// Seq starts a sequence of n elements; n < 0 when the size is unknown.
	Seq(n int) (SeqVisitor, error)
	// Map starts a mapping of n entries; n < 0 when the size is unknown.
	Map(n int) (MapVisitor, error)
	// Record starts a struct-like value with n named fields.
	Record(name string, n int) (RecordVisitor, error)
	// NewtypeVariant receives a tagged variant wrapping a single value.
	NewtypeVariant(typ, variant string, v any) error
	// TupleVariant starts a tagged variant carrying n positional fields.
	TupleVariant(typ, variant string, n int) (SeqVisitor, error)
	// RecordVariant starts a tagged variant carrying n named fields.
	RecordVariant(typ, variant string, n int) (RecordVisitor, error)
}

// SeqVisitor receives the elements of a sequence.
type SeqVisitor interface {
	Elem(v any) error
	End() error
}

// MapVisitor receives alternating keys and values of a mapping.
type MapVisitor interface {
	Key(k any) error
	Value(v any) error
	End() error
}

// RecordVisitor receives the named fields of a record.
type RecordVisitor interface {
	Field(name string, v any) error
	End() error
}

// Emitter is implemented by values that describe their own shape. Types that
// do not implement it are emitted by reflection.
type Emitter interface {
	EmitShape(v Visitor) error
}

// Emit announces the shape of value to v.
func Emit(value any, v Visitor) error {
	if value == nil {
		return v.Scalar(None())
	}
	if e, ok := value.(Emitter); ok {
		return e.EmitShape(v)
	}
	return emitReflect(value, v)
}
