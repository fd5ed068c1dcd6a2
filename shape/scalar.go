package shape

import (
	"encoding/base64"
	"strconv"
)

// Kind identifies the type of a scalar.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt
	KindUint
	KindFloat
	KindChar
	KindString
	KindBytes
	KindUnit
	KindNone
	KindUnitVariant
)

var kindNames = [...]string{
	KindBool:        "bool",
	KindInt:         "int",
	KindUint:        "uint",
	KindFloat:       "float",
	KindChar:        "char",
	KindString:      "string",
	KindBytes:       "bytes",
	KindUnit:        "unit",
	KindNone:        "none",
	KindUnitVariant: "unit_variant",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Scalar is a leaf value. Only the field matching Kind is meaningful; Str
// holds the text of strings and the variant name of unit variants.
type Scalar struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Uint  uint64
	Float float64
	// Bits is 32 for values that originate from a float32.
	Bits  int
	Rune  rune
	Str   string
	Bytes []byte
	// Type names the enum of a unit variant.
	Type string
}

func Bool(b bool) Scalar       { return Scalar{Kind: KindBool, Bool: b} }
func Int(i int64) Scalar       { return Scalar{Kind: KindInt, Int: i} }
func Uint(u uint64) Scalar     { return Scalar{Kind: KindUint, Uint: u} }
func Float(f float64) Scalar   { return Scalar{Kind: KindFloat, Float: f, Bits: 64} }
func Float32(f float32) Scalar { return Scalar{Kind: KindFloat, Float: float64(f), Bits: 32} }
func Str(s string) Scalar      { return Scalar{Kind: KindString, Str: s} }
func Bytes(b []byte) Scalar    { return Scalar{Kind: KindBytes, Bytes: b} }
func None() Scalar             { return Scalar{Kind: KindNone} }

// EmitShape makes a Scalar usable as a value of its own.
func (s Scalar) EmitShape(v Visitor) error { return v.Scalar(s) }

// String returns the display form of the scalar: booleans as true/false,
// numbers in plain decimal, strings verbatim, unit as "unit", none as "none"
// and unit variants by name. Bytes display as standard base64.
func (s Scalar) String() string {
	switch s.Kind {
	case KindBool:
		return strconv.FormatBool(s.Bool)
	case KindInt:
		return strconv.FormatInt(s.Int, 10)
	case KindUint:
		return strconv.FormatUint(s.Uint, 10)
	case KindFloat:
		bits := s.Bits
		if bits != 32 {
			bits = 64
		}
		return strconv.FormatFloat(s.Float, 'f', -1, bits)
	case KindChar:
		return string(s.Rune)
	case KindString, KindUnitVariant:
		return s.Str
	case KindBytes:
		return base64.StdEncoding.EncodeToString(s.Bytes)
	case KindUnit:
		return "unit"
	case KindNone:
		return "none"
	}
	return ""
}
