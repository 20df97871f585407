package props

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ResourceTag marks a scalar as an external resource handle in YAML input:
//
//	image: !resource images/aytekin.jpg
const ResourceTag = "!resource"

// LoadFile reads a root bundle from a YAML or JSON file. Mapping order is
// preserved.
func LoadFile(path string) (Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return Bundle{}, err
	}
	defer f.Close()

	b, err := Decode(f)
	if err != nil {
		return Bundle{}, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Decode reads a single YAML (or JSON) document whose root is a mapping.
func Decode(r io.Reader) (Bundle, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Bundle{}, nil
		}
		return Bundle{}, err
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return Bundle{}, fmt.Errorf("line %d: root must be a mapping", root.Line)
	}
	return bundleFromNode(root)
}

func bundleFromNode(n *yaml.Node) (Bundle, error) {
	fields := make([]Field, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, vn := n.Content[i], n.Content[i+1]
		v, err := valueFromNode(vn)
		if err != nil {
			return Bundle{}, fmt.Errorf("%s: %w", k.Value, err)
		}
		fields = append(fields, F(k.Value, v))
	}
	return New(fields...), nil
}

func valueFromNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return valueFromNode(n.Alias)
	case yaml.MappingNode:
		b, err := bundleFromNode(n)
		if err != nil {
			return Value{}, err
		}
		return Nested(b), nil
	case yaml.SequenceNode:
		items := make([]Value, len(n.Content))
		for i, c := range n.Content {
			v, err := valueFromNode(c)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = v
		}
		return Value{kind: KindList, items: items}, nil
	case yaml.ScalarNode:
		return scalarFromNode(n)
	default:
		return Value{}, fmt.Errorf("line %d: unsupported node", n.Line)
	}
}

func scalarFromNode(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case ResourceTag:
		return Resource(n.Value), nil
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return Number(f), nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return Value{}, err
		}
		return Time(t), nil
	default:
		return String(n.Value), nil
	}
}
