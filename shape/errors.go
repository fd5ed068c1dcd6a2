package shape

import (
	"errors"
	"reflect"
)

var (
	// ErrMalformedJSON indicates a RawJSON value that is not valid JSON.
	ErrMalformedJSON = errors.New("shape: malformed JSON")

	// ErrMalformedYAML indicates a YAML node of an unknown kind.
	ErrMalformedYAML = errors.New("shape: malformed YAML node")
)

// UnsupportedTypeError is returned when a Go value has no shape, such as a
// channel, a function or a complex number.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return "shape: unsupported type " + e.Type.String()
}

// MarshalerError wraps a failure of a MarshalJSON or MarshalText method.
type MarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *MarshalerError) Error() string {
	return "shape: error calling marshaler for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *MarshalerError) Unwrap() error { return e.Err }
