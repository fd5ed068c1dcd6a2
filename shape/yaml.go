package shape

import (
	"encoding/base64"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// emitYAML walks a yaml.v3 node tree. Scalars are typed by their resolved
// tag so that `2` emits an integer while `"2"` emits a string.
func emitYAML(n *yaml.Node, v Visitor) error {
	if n == nil {
		return v.Scalar(None())
	}
	switch n.Kind {
	case 0:
		// zero node of an empty document
		return v.Scalar(None())
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return v.Scalar(None())
		}
		return emitYAML(n.Content[0], v)
	case yaml.AliasNode:
		return emitYAML(n.Alias, v)
	case yaml.SequenceNode:
		s, err := v.Seq(len(n.Content))
		if err != nil {
			return err
		}
		for _, c := range n.Content {
			if err := s.Elem(c); err != nil {
				return err
			}
		}
		return s.End()
	case yaml.MappingNode:
		m, err := v.Map(len(n.Content) / 2)
		if err != nil {
			return err
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			if err := m.Key(n.Content[i]); err != nil {
				return err
			}
			if err := m.Value(n.Content[i+1]); err != nil {
				return err
			}
		}
		return m.End()
	case yaml.ScalarNode:
		s, err := yamlScalar(n)
		if err != nil {
			return err
		}
		return v.Scalar(s)
	}
	return fmt.Errorf("%w: kind %d", ErrMalformedYAML, n.Kind)
}

func yamlScalar(n *yaml.Node) (Scalar, error) {
	switch n.ShortTag() {
	case "!!null":
		return None(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Scalar{}, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err != nil {
			return Scalar{}, err
		}
		return Uint(u), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Scalar{}, err
		}
		return Float(f), nil
	case "!!binary":
		b, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(n.Value), ""))
		if err != nil {
			return Scalar{}, err
		}
		return Bytes(b), nil
	}
	return Str(n.Value), nil
}
