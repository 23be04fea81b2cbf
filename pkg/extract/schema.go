// Package extract applies declarative field schemas to decoded records.
//
// A schema names the fields to pull out of each record, where to find
// them and how to coerce them:
//
//	name: erc20-transfer
//	fields:
//	  - name: to
//	    path: args.to
//	    type: hex
//	    prefix: true
//	  - name: value
//	    path: [args, value]
//	    type: int
//	    default: 0
//	  - name: topic
//	    path: event.signature
//	    type: keccak256
//	    required: true
//
// Paths use the fieldpath syntax or a YAML list of keys. Missing fields take
// the default (coerced like a found value); missing required fields fail
// the record.
package extract

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/forta-toolkit/fieldnorm-go/pkg/fieldpath"
)

// Schema errors.
var (
	ErrEmptySchema    = errors.New("schema has no fields")
	ErrEmptyName      = errors.New("field name is empty")
	ErrDuplicateField = errors.New("duplicate field name")
	ErrUnknownType    = errors.New("unknown field type")
	ErrMissingPath    = errors.New("field path is missing")
)

// Type is the coercion applied to a field value.
type Type string

const (
	TypeHex     Type = "hex"
	TypeBytes   Type = "bytes"
	TypeInt     Type = "int"
	TypeUint64  Type = "uint64"
	TypeRaw     Type = "raw"
	TypeKeccak  Type = "keccak256"
	defaultType      = TypeRaw
)

// ParseType parses a type name. The empty string means TypeRaw.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case "":
		return defaultType, nil
	case TypeHex, TypeBytes, TypeInt, TypeUint64, TypeRaw, TypeKeccak:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

// Schema is a named list of field specifications.
type Schema struct {
	Name   string
	Fields []FieldSpec
}

// FieldSpec describes one field to extract.
type FieldSpec struct {
	// Name is the key of the field in the result.
	Name string

	// Path locates the field in the record.
	Path fieldpath.Path

	// Type is the coercion applied to the value.
	Type Type

	// Default replaces a missing value. nil leaves the field nil.
	Default any

	// Required fails the record when the field is missing or cannot be coerced.
	Required bool

	// Prefix adds "0x" to hex and keccak256 results.
	Prefix bool

	// Line is the schema file line the field was declared on (0 if unknown).
	Line int
}

// yamlSchema represents the YAML structure of a schema file.
type yamlSchema struct {
	Name   string      `yaml:"name"`
	Fields []yaml.Node `yaml:"fields"`
}

// yamlField represents one entry of the fields list.
type yamlField struct {
	Name     string    `yaml:"name"`
	Path     yaml.Node `yaml:"path"`
	Type     string    `yaml:"type"`
	Default  any       `yaml:"default"`
	Required bool      `yaml:"required"`
	Prefix   bool      `yaml:"prefix"`
}

// LoadSchema reads and parses the schema file at path.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseSchema(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseSchema parses a YAML schema document.
func ParseSchema(data []byte) (*Schema, error) {
	var y yamlSchema
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}

	s := &Schema{Name: y.Name}
	for i := range y.Fields {
		node := &y.Fields[i]
		spec, err := parseField(node)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		s.Fields = append(s.Fields, spec)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseField(node *yaml.Node) (FieldSpec, error) {
	var f yamlField
	if err := node.Decode(&f); err != nil {
		return FieldSpec{}, err
	}

	t, err := ParseType(f.Type)
	if err != nil {
		return FieldSpec{}, err
	}

	p, err := parsePathNode(&f.Path)
	if err != nil {
		return FieldSpec{}, fmt.Errorf("field %q: %w", f.Name, err)
	}

	return FieldSpec{
		Name:     f.Name,
		Path:     p,
		Type:     t,
		Default:  f.Default,
		Required: f.Required,
		Prefix:   f.Prefix,
		Line:     node.Line,
	}, nil
}

// parsePathNode accepts a fieldpath string or a list of string/int keys.
func parsePathNode(node *yaml.Node) (fieldpath.Path, error) {
	switch node.Kind {
	case 0:
		return nil, ErrMissingPath
	case yaml.ScalarNode:
		return fieldpath.Parse(node.Value)
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			return nil, ErrMissingPath
		}
		var keys []any
		if err := node.Decode(&keys); err != nil {
			return nil, err
		}
		p := make(fieldpath.Path, len(keys))
		for i, k := range keys {
			switch k.(type) {
			case string, int:
				p[i] = k
			default:
				return nil, fmt.Errorf("%w: path key %v must be a string or integer", fieldpath.ErrInvalidPath, k)
			}
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: path must be a string or a list", fieldpath.ErrInvalidPath)
	}
}

// Validate checks that field names are present and unique, types are known
// and every field has a path.
func (s *Schema) Validate() error {
	if len(s.Fields) == 0 {
		return ErrEmptySchema
	}

	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		var err error
		switch {
		case f.Name == "":
			err = ErrEmptyName
		case seen[f.Name]:
			err = fmt.Errorf("%w: %q", ErrDuplicateField, f.Name)
		case len(f.Path) == 0:
			err = fmt.Errorf("field %q: %w", f.Name, ErrMissingPath)
		}
		if err == nil {
			_, err = ParseType(string(f.Type))
		}
		if err != nil {
			if f.Line > 0 {
				return fmt.Errorf("line %d: %w", f.Line, err)
			}
			return err
		}
		seen[f.Name] = true
	}
	return nil
}
