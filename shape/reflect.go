package shape

import (
	"cmp"
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	emitterType       = reflect.TypeFor[Emitter]()
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

func emitReflect(value any, vis Visitor) error {
	switch n := value.(type) {
	case *yaml.Node:
		return emitYAML(n, vis)
	case yaml.Node:
		return emitYAML(&n, vis)
	}
	return emitValue(reflect.ValueOf(value), vis)
}

func emitValue(rv reflect.Value, vis Visitor) error {
	if !rv.IsValid() {
		return vis.Scalar(None())
	}
	if k := rv.Kind(); (k == reflect.Pointer || k == reflect.Interface) && rv.IsNil() {
		return vis.Scalar(None())
	}
	if ok, err := emitMarshaler(rv, vis); ok {
		return err
	}
	switch rv.Kind() {
	case reflect.Bool:
		return vis.Scalar(Bool(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return vis.Scalar(Int(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return vis.Scalar(Uint(rv.Uint()))
	case reflect.Float32:
		return vis.Scalar(Float32(float32(rv.Float())))
	case reflect.Float64:
		return vis.Scalar(Float(rv.Float()))
	case reflect.String:
		return vis.Scalar(Str(rv.String()))
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return vis.Scalar(Bytes(rv.Bytes()))
		}
		return emitSeq(rv, vis)
	case reflect.Array:
		return emitSeq(rv, vis)
	case reflect.Map:
		return emitMap(rv, vis)
	case reflect.Struct:
		return emitStruct(rv, vis)
	case reflect.Pointer:
		return vis.Some(handle(rv.Elem()))
	case reflect.Interface:
		return Emit(rv.Elem().Interface(), vis)
	}
	return &UnsupportedTypeError{Type: rv.Type()}
}

// emitMarshaler re-emits values that already know how to encode
// themselves. JSON output is replayed through RawJSON, text output becomes a
// string scalar.
func emitMarshaler(rv reflect.Value, vis Visitor) (bool, error) {
	if !rv.CanInterface() {
		return false, nil
	}
	switch m := rv.Interface().(type) {
	case json.Marshaler:
		b, err := m.MarshalJSON()
		if err != nil {
			return true, &MarshalerError{Type: rv.Type(), Err: err}
		}
		return true, RawJSON(b).EmitShape(vis)
	case encoding.TextMarshaler:
		b, err := m.MarshalText()
		if err != nil {
			return true, &MarshalerError{Type: rv.Type(), Err: err}
		}
		return true, vis.Scalar(Str(string(b)))
	}
	return false, nil
}

// handle boxes a child for the visitor. Addressable children whose pointer
// type carries one of the recognised methods are handed out by address so
// pointer receivers still apply.
func handle(rv reflect.Value) any {
	if rv.Kind() != reflect.Pointer && rv.CanAddr() {
		pt := rv.Addr().Type()
		if pt.Implements(emitterType) || pt.Implements(jsonMarshalerType) || pt.Implements(textMarshalerType) {
			return rv.Addr().Interface()
		}
	}
	return rv.Interface()
}

func emitSeq(rv reflect.Value, vis Visitor) error {
	n := rv.Len()
	s, err := vis.Seq(n)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := s.Elem(handle(rv.Index(i))); err != nil {
			return err
		}
	}
	return s.End()
}

func emitMap(rv reflect.Value, vis Visitor) error {
	keys := rv.MapKeys()
	slices.SortFunc(keys, compareKeys)
	m, err := vis.Map(len(keys))
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := m.Key(k.Interface()); err != nil {
			return err
		}
		if err := m.Value(rv.MapIndex(k).Interface()); err != nil {
			return err
		}
	}
	return m.End()
}

// compareKeys gives maps a deterministic emission order: numeric and string
// keys by value, anything else by its fmt representation.
func compareKeys(a, b reflect.Value) int {
	switch a.Kind() {
	case reflect.String:
		return strings.Compare(a.String(), b.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.Bool:
		switch {
		case a.Bool() == b.Bool():
			return 0
		case b.Bool():
			return -1
		}
		return 1
	}
	return strings.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
}

func emitStruct(rv reflect.Value, vis Visitor) error {
	fields := structFields(rv.Type())
	n := 0
	for _, f := range fields {
		if !f.omitEmpty || !isEmptyValue(rv.Field(f.index)) {
			n++
		}
	}
	rec, err := vis.Record(rv.Type().Name(), n)
	if err != nil {
		return err
	}
	for _, f := range fields {
		fv := rv.Field(f.index)
		if f.omitEmpty && isEmptyValue(fv) {
			continue
		}
		if err := rec.Field(f.name, handle(fv)); err != nil {
			return err
		}
	}
	return rec.End()
}
