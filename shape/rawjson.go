package shape

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RawJSON is an encoded JSON value emitted without being decoded first.
// The document is validated as a whole once, then objects are emitted as
// mappings in document order and arrays as sequences; their members are
// handed out undecoded and only parsed when a visitor descends into them.
type RawJSON []byte

func (r RawJSON) EmitShape(v Visitor) error {
	if err := validJSON(r); err != nil {
		return err
	}
	return emitJSON(bytes.TrimSpace(r), v)
}

// jsonMember is one member of an already validated document.
type jsonMember []byte

func (m jsonMember) EmitShape(v Visitor) error { return emitJSON(m, v) }

func emitJSON(data []byte, v Visitor) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty input", ErrMalformedJSON)
	}
	switch data[0] {
	case '{':
		return emitJSONObject(data, v)
	case '[':
		return emitJSONArray(data, v)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
		}
		return v.Scalar(Str(s))
	}
	switch string(data) {
	case "true":
		return v.Scalar(Bool(true))
	case "false":
		return v.Scalar(Bool(false))
	case "null":
		return v.Scalar(None())
	}
	s, err := jsonNumber(string(data))
	if err != nil {
		return err
	}
	return v.Scalar(s)
}

func jsonNumber(text string) (Scalar, error) {
	if !strings.ContainsAny(text, ".eE") {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Int(i), nil
		}
		if u, err := strconv.ParseUint(text, 10, 64); err == nil {
			return Uint(u), nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Scalar{}, fmt.Errorf("%w: invalid literal %q", ErrMalformedJSON, text)
	}
	return Float(f), nil
}

func emitJSONObject(data []byte, v Visitor) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	m, err := v.Map(-1)
	if err != nil {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: object key %v", ErrMalformedJSON, tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
		}
		if err := m.Key(key); err != nil {
			return err
		}
		if err := m.Value(jsonMember(raw)); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return m.End()
}

func emitJSONArray(data []byte, v Visitor) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	s, err := v.Seq(-1)
	if err != nil {
		return err
	}
	for dec.More() {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
		}
		if err := s.Elem(jsonMember(raw)); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return s.End()
}
