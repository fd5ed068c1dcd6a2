package render

import (
	"bytes"
	"encoding/base64"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/goiq/shape"
)

// YAML renders v as a block-style YAML document with two-space indentation.
// Unlike JSON, mapping keys may be of any shape.
func YAML(v any) (string, error) {
	node, err := build(v)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// yamlBuilder materialises the emitted subtree as a yaml.Node tree so the
// encoder can keep emission order.
type yamlBuilder struct {
	node *yaml.Node
}

func build(v any) (*yaml.Node, error) {
	b := &yamlBuilder{}
	if err := shape.Emit(v, b); err != nil {
		return nil, err
	}
	if b.node == nil {
		return yamlScalar(shape.None()), nil
	}
	return b.node, nil
}

func (b *yamlBuilder) Scalar(s shape.Scalar) error {
	b.node = yamlScalar(s)
	return nil
}

func yamlScalar(s shape.Scalar) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode}
	switch s.Kind {
	case shape.KindBool:
		n.Tag, n.Value = "!!bool", strconv.FormatBool(s.Bool)
	case shape.KindInt, shape.KindUint:
		n.Tag, n.Value = "!!int", s.String()
	case shape.KindFloat:
		n.Tag, n.Value = "!!float", yamlFloat(s)
	case shape.KindBytes:
		n.Tag, n.Value = "!!binary", base64.StdEncoding.EncodeToString(s.Bytes)
	case shape.KindUnit, shape.KindNone:
		n.Tag, n.Value = "!!null", "null"
	default:
		n.Tag, n.Value = "!!str", s.String()
	}
	return n
}

func yamlFloat(s shape.Scalar) string {
	switch {
	case math.IsNaN(s.Float):
		return ".nan"
	case math.IsInf(s.Float, 1):
		return ".inf"
	case math.IsInf(s.Float, -1):
		return "-.inf"
	}
	bits := 64
	if s.Bits == 32 {
		bits = 32
	}
	text := strconv.FormatFloat(s.Float, 'g', -1, bits)
	if !strings.ContainsAny(text, ".eE") {
		text += ".0"
	}
	return text
}

func (b *yamlBuilder) Some(v any) error { return shape.Emit(v, b) }

func (b *yamlBuilder) Seq(n int) (shape.SeqVisitor, error) {
	b.node = newYAMLSeq(n)
	return &yamlSeq{node: b.node}, nil
}

func (b *yamlBuilder) Map(n int) (shape.MapVisitor, error) {
	b.node = newYAMLMap(n)
	return &yamlMap{node: b.node}, nil
}

func (b *yamlBuilder) Record(_ string, n int) (shape.RecordVisitor, error) {
	b.node = newYAMLMap(n)
	return &yamlMap{node: b.node}, nil
}

func (b *yamlBuilder) NewtypeVariant(_, variant string, v any) error {
	payload, err := build(v)
	if err != nil {
		return err
	}
	b.node = newYAMLMap(1)
	b.node.Content = append(b.node.Content, yamlScalar(shape.Str(variant)), payload)
	return nil
}

func (b *yamlBuilder) TupleVariant(_, variant string, n int) (shape.SeqVisitor, error) {
	seq := newYAMLSeq(n)
	b.node = newYAMLMap(1)
	b.node.Content = append(b.node.Content, yamlScalar(shape.Str(variant)), seq)
	return &yamlSeq{node: seq}, nil
}

func (b *yamlBuilder) RecordVariant(_, variant string, n int) (shape.RecordVisitor, error) {
	fields := newYAMLMap(n)
	b.node = newYAMLMap(1)
	b.node.Content = append(b.node.Content, yamlScalar(shape.Str(variant)), fields)
	return &yamlMap{node: fields}, nil
}

func newYAMLSeq(n int) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: make([]*yaml.Node, 0, max(n, 0))}
}

func newYAMLMap(n int) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: make([]*yaml.Node, 0, 2*max(n, 0))}
}

type yamlSeq struct {
	node *yaml.Node
}

func (s *yamlSeq) Elem(v any) error {
	n, err := build(v)
	if err != nil {
		return err
	}
	s.node.Content = append(s.node.Content, n)
	return nil
}

func (s *yamlSeq) End() error { return nil }

type yamlMap struct {
	node *yaml.Node
}

func (m *yamlMap) Key(k any) error   { return m.Elem(k) }
func (m *yamlMap) Value(v any) error { return m.Elem(v) }

func (m *yamlMap) Elem(v any) error {
	n, err := build(v)
	if err != nil {
		return err
	}
	m.node.Content = append(m.node.Content, n)
	return nil
}

func (m *yamlMap) Field(name string, v any) error {
	n, err := build(v)
	if err != nil {
		return err
	}
	m.node.Content = append(m.node.Content, yamlScalar(shape.Str(name)), n)
	return nil
}

func (m *yamlMap) End() error { return nil }
