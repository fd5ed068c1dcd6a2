package goiq

import (
	json "github.com/goccy/go-json"

	"github.com/reoring/goiq/internal/engine"
	"github.com/reoring/goiq/internal/sizer"
)

// ExtractStringChecked resolves path in src and renders the target in the
// given format. It reports (text, true, nil) when found, ("", false, nil)
// when the path does not resolve, and an *Error when emission or rendering
// fails.
func ExtractStringChecked[P PathLike](src any, path P, format Format) (string, bool, error) {
	p := toPath(path)
	out := engine.Resolve(src, p.tokens, format.mode())
	switch out.Status {
	case engine.StatusFound:
		return out.Text, true, nil
	case engine.StatusFailed:
		return "", false, failure(p, out)
	}
	return "", false, nil
}

// ExtractString is ExtractStringChecked with failures reported as not found.
func ExtractString[P PathLike](src any, path P, format Format) (string, bool) {
	s, ok, err := ExtractStringChecked(src, path, format)
	if err != nil {
		return "", false
	}
	return s, ok
}

// ExtractPrimitive returns the display text of the scalar at path.
func ExtractPrimitive[P PathLike](src any, path P) (string, bool) {
	return ExtractString(src, path, FormatPrimitive)
}

// ExtractJSON returns the target rendered as compact JSON.
func ExtractJSON[P PathLike](src any, path P) (string, bool) {
	return ExtractString(src, path, FormatJSON)
}

// ExtractJSONPretty returns the target rendered as indented JSON.
func ExtractJSONPretty[P PathLike](src any, path P) (string, bool) {
	return ExtractString(src, path, FormatJSONPretty)
}

// ExtractYAML returns the target rendered as YAML.
func ExtractYAML[P PathLike](src any, path P) (string, bool) {
	return ExtractString(src, path, FormatYAML)
}

// ExtractValue decodes the target into T by way of its compact JSON text.
// A found target that does not fit T is a CodeDecode error.
func ExtractValue[T any, P PathLike](src any, path P) (T, bool, error) {
	var zero T
	text, ok, err := ExtractStringChecked(src, path, FormatJSON)
	if err != nil || !ok {
		return zero, false, err
	}
	var v T
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return zero, false, &Error{Code: CodeDecode, Path: toPath(path).String(), Cause: err}
	}
	return v, true, nil
}

// ExtractSizeChecked counts the immediate children of the target: runes of a
// string, elements of a sequence, entries of a mapping, fields of a record.
// An empty path, given either as no tokens or as "", counts src itself.
func ExtractSizeChecked[P PathLike](src any, path P) (int, bool, error) {
	p := toPath(path)
	if p.isRoot() {
		n, ok, err := sizer.Count(src)
		if err != nil {
			return 0, false, &Error{Code: CodeEmission, Cause: err}
		}
		return n, ok, nil
	}
	out := engine.Resolve(src, p.tokens, engine.ModeSize)
	switch out.Status {
	case engine.StatusFound:
		return out.Count, true, nil
	case engine.StatusFailed:
		return 0, false, failure(p, out)
	}
	return 0, false, nil
}

// ExtractSize is ExtractSizeChecked with failures reported as not found.
func ExtractSize[P PathLike](src any, path P) (int, bool) {
	n, ok, err := ExtractSizeChecked(src, path)
	if err != nil {
		return 0, false
	}
	return n, ok
}

// SizeOf counts the immediate children of src.
func SizeOf(src any) (int, bool) {
	return ExtractSize(src, PathOf())
}

func failure(p Path, out engine.Outcome) *Error {
	code := CodeEmission
	if out.Failure == engine.FailureRender {
		code = CodeRender
	}
	return &Error{Code: code, Path: p.String(), Cause: out.Err}
}
