package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jptrs93/structproto/internal/ir"

	"github.com/bufbuild/protocompile"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// Message is a compiled message with its fields in declaration order.
type Message struct {
	Package string
	Name    string
	Fields  []ir.ResolvedField
}

// Parser compiles proto3 sources. Sources holds in-memory files by path;
// anything else is read from ImportPaths.
type Parser struct {
	ImportPaths []string
	Sources     map[string]string
}

// ParseSource compiles a single in-memory file.
func ParseSource(ctx context.Context, path, content string) ([]Message, error) {
	p := Parser{Sources: map[string]string{path: content}}
	return p.Parse(ctx, []string{path})
}

func (p *Parser) Parse(ctx context.Context, filePaths []string) ([]Message, error) {
	resolver := &protocompile.SourceResolver{
		ImportPaths: p.ImportPaths,
		Accessor: func(path string) (io.ReadCloser, error) {
			if src, ok := p.Sources[path]; ok {
				return io.NopCloser(strings.NewReader(src)), nil
			}
			return os.Open(path)
		},
	}
	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(resolver),
	}
	files, err := compiler.Compile(ctx, filePaths...)
	if err != nil {
		return nil, err
	}

	var result []Message
	for _, file := range files {
		if file.Syntax() != protoreflect.Proto3 {
			return nil, fmt.Errorf("only proto3 is supported: %s", file.Path())
		}
		msgs, err := collectMessages(file.Package(), file.Messages())
		if err != nil {
			return nil, err
		}
		result = append(result, msgs...)
	}
	return result, nil
}

func collectMessages(pkg protoreflect.FullName, messages protoreflect.MessageDescriptors) ([]Message, error) {
	var result []Message
	for i := 0; i < messages.Len(); i++ {
		msg := messages.Get(i)
		if msg.IsMapEntry() {
			continue
		}
		fields, err := collectFields(pkg, msg.Fields())
		if err != nil {
			return nil, err
		}
		result = append(result, Message{
			Package: string(pkg),
			Name:    string(msg.Name()),
			Fields:  fields,
		})
	}
	return result, nil
}

func collectFields(pkg protoreflect.FullName, fields protoreflect.FieldDescriptors) ([]ir.ResolvedField, error) {
	var result []ir.ResolvedField
	for i := 0; i < fields.Len(); i++ {
		field := fields.Get(i)
		if field.IsMap() {
			return nil, fmt.Errorf("map fields are not supported: %s", field.FullName())
		}
		typ, err := typeName(pkg, field)
		if err != nil {
			return nil, err
		}
		if field.IsList() {
			typ = "repeated " + typ
		}
		result = append(result, ir.ResolvedField{
			Name:   string(field.Name()),
			Number: int(field.Number()),
			Type:   typ,
		})
	}
	return result, nil
}

// typeName returns the field type as written in source. Messages in pkg are
// reported by their relative name.
func typeName(pkg protoreflect.FullName, field protoreflect.FieldDescriptor) (string, error) {
	switch field.Kind() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return relativeName(pkg, field.Message().FullName()), nil
	case protoreflect.EnumKind:
		return relativeName(pkg, field.Enum().FullName()), nil
	case protoreflect.BoolKind, protoreflect.Int32Kind, protoreflect.Int64Kind,
		protoreflect.Uint32Kind, protoreflect.Uint64Kind, protoreflect.Sint32Kind,
		protoreflect.Sint64Kind, protoreflect.Fixed32Kind, protoreflect.Fixed64Kind,
		protoreflect.Sfixed32Kind, protoreflect.Sfixed64Kind, protoreflect.FloatKind,
		protoreflect.DoubleKind, protoreflect.StringKind, protoreflect.BytesKind:
		return field.Kind().String(), nil
	default:
		return "", fmt.Errorf("unsupported field kind: %s", field.Kind())
	}
}

func relativeName(pkg, name protoreflect.FullName) string {
	if pkg != "" && strings.HasPrefix(string(name), string(pkg)+".") {
		return string(name[len(pkg)+1:])
	}
	return string(name)
}
