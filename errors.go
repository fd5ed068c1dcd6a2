package goiq

import (
	"errors"
	"fmt"
)

// Error codes carried by *Error.
const (
	// CodeEmission: the value failed while describing its own shape.
	CodeEmission = "emission_failed"
	// CodeRender: the target was found but could not be rendered.
	CodeRender = "render_failed"
	// CodeDecode: the rendered target could not be decoded into the requested type.
	CodeDecode = "decode_failed"
)

// Error is a hard extraction failure. A path that simply does not resolve is
// never an Error.
type Error struct {
	Code  string
	Path  string // dotted path that was being resolved
	Cause error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("goiq: %s at %q", e.Code, e.Path)
	}
	return fmt.Sprintf("goiq: %s at %q: %v", e.Code, e.Path, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// AsError extracts *Error from err using errors.As.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
