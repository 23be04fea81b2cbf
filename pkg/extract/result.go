package extract

import (
	"encoding/base64"
	"math/big"

	"gopkg.in/yaml.v3"
)

// Field is one extracted value.
type Field struct {
	Name      string
	Value     any
	Defaulted bool
}

// Result holds the fields extracted from one record, in schema order.
type Result struct {
	Fields []Field
}

// Get returns the value of the named field.
func (r Result) Get(name string) (any, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Map returns the fields keyed by name.
func (r Result) Map() map[string]any {
	m := make(map[string]any, len(r.Fields))
	for _, f := range r.Fields {
		m[f.Name] = f.Value
	}
	return m
}

// MarshalYAML renders the result as a mapping in schema order. Integers keep
// every digit and byte values are emitted as !!binary.
func (r Result) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range r.Fields {
		value, err := yamlValue(f.Value)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name},
			value,
		)
	}
	return node, nil
}

func yamlValue(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case *big.Int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: x.String()}, nil
	case []byte:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!binary", Value: base64.StdEncoding.EncodeToString(x)}, nil
	}
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return &n, nil
}
