package render

import (
	"errors"
	"fmt"

	"github.com/reoring/goiq/shape"
)

// ErrKeyMustBeString is returned when a mapping key has no string form.
var ErrKeyMustBeString = errors.New("render: key must be a string")

// Key returns the object-key form of a mapping key: strings, chars and unit
// variants verbatim, numbers and booleans by their display text.
func Key(k any) (string, error) {
	kv := &keyVisitor{}
	if err := shape.Emit(k, kv); err != nil {
		return "", err
	}
	if !kv.set {
		return "", ErrKeyMustBeString
	}
	return kv.text, nil
}

type keyVisitor struct {
	text string
	set  bool
}

func (kv *keyVisitor) Scalar(s shape.Scalar) error {
	switch s.Kind {
	case shape.KindString, shape.KindChar, shape.KindUnitVariant,
		shape.KindBool, shape.KindInt, shape.KindUint, shape.KindFloat:
		kv.text, kv.set = s.String(), true
		return nil
	}
	return fmt.Errorf("%w: got %s", ErrKeyMustBeString, s.Kind)
}

func (kv *keyVisitor) Some(v any) error { return shape.Emit(v, kv) }

func (kv *keyVisitor) Seq(int) (shape.SeqVisitor, error) {
	return nil, fmt.Errorf("%w: got sequence", ErrKeyMustBeString)
}

func (kv *keyVisitor) Map(int) (shape.MapVisitor, error) {
	return nil, fmt.Errorf("%w: got mapping", ErrKeyMustBeString)
}

func (kv *keyVisitor) Record(name string, _ int) (shape.RecordVisitor, error) {
	return nil, fmt.Errorf("%w: got record %s", ErrKeyMustBeString, name)
}

func (kv *keyVisitor) NewtypeVariant(_, variant string, _ any) error {
	return fmt.Errorf("%w: got variant %s", ErrKeyMustBeString, variant)
}

func (kv *keyVisitor) TupleVariant(_, variant string, _ int) (shape.SeqVisitor, error) {
	return nil, fmt.Errorf("%w: got variant %s", ErrKeyMustBeString, variant)
}

func (kv *keyVisitor) RecordVariant(_, variant string, _ int) (shape.RecordVisitor, error) {
	return nil, fmt.Errorf("%w: got variant %s", ErrKeyMustBeString, variant)
}
