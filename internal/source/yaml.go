package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jptrs93/structproto/internal/ir"
)

type descriptorFile struct {
	Namespace string           `yaml:"namespace"`
	Types     []typeDescriptor `yaml:"types"`
}

type typeDescriptor struct {
	Name      string            `yaml:"name"`
	Namespace string            `yaml:"namespace"`
	Fields    []fieldDescriptor `yaml:"fields"`
}

type fieldDescriptor struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

var scalarKinds = map[string]ir.Kind{
	"string":   ir.KindString,
	"int32":    ir.KindInt32,
	"int64":    ir.KindInt64,
	"bool":     ir.KindBool,
	"float":    ir.KindFloat,
	"double":   ir.KindDouble,
	"bytes":    ir.KindBytes,
	"datetime": ir.KindDateTime,
	"char":     ir.KindChar,
}

func LoadFile(path string) ([]ir.TypeDescriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	types, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return types, nil
}

// Load reads a YAML descriptor document. Field types are written as
// expressions such as "string", "optional<int32>", "list<string>" or
// "ref<Address>".
func Load(r io.Reader) ([]ir.TypeDescriptor, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var file descriptorFile
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode descriptors: %w", err)
	}

	result := make([]ir.TypeDescriptor, 0, len(file.Types))
	for _, t := range file.Types {
		if t.Name == "" {
			return nil, fmt.Errorf("type without a name")
		}
		td := ir.TypeDescriptor{Name: t.Name, Namespace: t.Namespace}
		if td.Namespace == "" {
			td.Namespace = file.Namespace
		}
		for _, f := range t.Fields {
			if f.Name == "" {
				return nil, fmt.Errorf("type %s: field without a name", t.Name)
			}
			shape, err := ParseShape(f.Type)
			if err != nil {
				return nil, fmt.Errorf("type %s: field %s: %w", t.Name, f.Name, err)
			}
			td.Fields = append(td.Fields, ir.FieldDescriptor{Name: f.Name, Shape: shape})
		}
		result = append(result, td)
	}
	return result, nil
}

// ParseShape parses a field type expression. Unknown bare names become
// scalars of ir.KindOther so that generation reports them as unsupported.
func ParseShape(expr string) (ir.Shape, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty type")
	}
	if expr == "list" {
		return ir.Collection{TypeName: expr}, nil
	}
	if name, arg, ok := splitGeneric(expr); ok {
		if arg == "" {
			return nil, fmt.Errorf("%s: missing type argument", expr)
		}
		switch name {
		case "optional":
			inner, err := ParseShape(arg)
			if err != nil {
				return nil, err
			}
			return ir.Optional{Inner: inner}, nil
		case "list":
			elem, err := ParseShape(arg)
			if err != nil {
				return nil, err
			}
			return ir.Collection{Elem: elem, TypeName: expr}, nil
		case "ref":
			return ir.NestedObject{Ref: ir.TypeRef{Name: arg}}, nil
		default:
			return ir.Scalar{Kind: ir.KindOther, TypeName: expr}, nil
		}
	}
	if strings.ContainsAny(expr, "<>") {
		return nil, fmt.Errorf("malformed type %q", expr)
	}
	if kind, ok := scalarKinds[expr]; ok {
		return ir.Scalar{Kind: kind, TypeName: expr}, nil
	}
	return ir.Scalar{Kind: ir.KindOther, TypeName: expr}, nil
}

// splitGeneric splits "name<arg>" into name and arg.
func splitGeneric(expr string) (string, string, bool) {
	open := strings.IndexByte(expr, '<')
	if open <= 0 || !strings.HasSuffix(expr, ">") {
		return "", "", false
	}
	return strings.TrimSpace(expr[:open]), strings.TrimSpace(expr[open+1 : len(expr)-1]), true
}
