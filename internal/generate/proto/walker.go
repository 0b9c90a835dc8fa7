package protogen

import (
	"errors"
	"fmt"

	"github.com/jptrs93/structproto/internal/ir"
)

var scalarTypes = map[ir.Kind]string{
	ir.KindString: "string",
	ir.KindInt32:  "int32",
	ir.KindInt64:  "int64",
	ir.KindBool:   "bool",
	ir.KindFloat:  "float",
	ir.KindDouble: "double",
	ir.KindBytes:  "bytes",
	// proto3 has no plain date type; the value is carried as text.
	ir.KindDateTime: "string",
}

// Walk maps every field of td in order. Numbers start at 1 and follow field
// order, so reordering source fields changes the wire format.
func Walk(td ir.TypeDescriptor) ([]ir.ResolvedField, error) {
	fields := make([]ir.ResolvedField, 0, len(td.Fields))
	for i, field := range td.Fields {
		protoType, err := MapField(field)
		if err != nil {
			return nil, err
		}
		fields = append(fields, ir.ResolvedField{
			Name:   ir.ToSnakeCase(field.Name),
			Number: i + 1,
			Type:   protoType,
		})
	}
	return fields, nil
}

// MapField returns the proto3 type of a field, e.g. "int32" or
// "repeated string".
func MapField(field ir.FieldDescriptor) (string, error) {
	protoType, err := mapShape(field.Shape)
	if err != nil {
		var fe *FieldError
		if errors.As(err, &fe) {
			fe.Field = field.Name
		}
		return "", err
	}
	return protoType, nil
}

func mapShape(shape ir.Shape) (string, error) {
	switch s := shape.(type) {
	case ir.Optional:
		return mapShape(s.Inner)
	case ir.Collection:
		return mapCollection(s)
	case ir.Scalar:
		if protoType, ok := scalarTypes[s.Kind]; ok {
			return protoType, nil
		}
		return "", &FieldError{TypeName: s.Name(), Err: ErrUnsupportedType}
	case ir.NestedObject:
		if s.Ref.Name == "" {
			return "", &FieldError{TypeName: "unnamed object", Err: ErrUnsupportedType}
		}
		return s.Ref.Name, nil
	default:
		return "", &FieldError{TypeName: fmt.Sprintf("%T", shape), Err: ErrUnsupportedType}
	}
}

func mapCollection(c ir.Collection) (string, error) {
	if c.Elem == nil {
		return "", &FieldError{TypeName: collectionName(c), Err: ErrUnresolvedElementType}
	}
	if isText(c) {
		return "string", nil
	}
	if inner, ok := unwrapOptional(c.Elem).(ir.Collection); ok && !isText(inner) {
		return "", &FieldError{TypeName: collectionName(c), Err: ErrUnsupportedType}
	}
	elemType, err := mapShape(c.Elem)
	if err != nil {
		return "", err
	}
	return "repeated " + elemType, nil
}

// isText reports whether a collection is a character string.
func isText(c ir.Collection) bool {
	s, ok := c.Elem.(ir.Scalar)
	return ok && s.Kind == ir.KindChar
}

func unwrapOptional(shape ir.Shape) ir.Shape {
	for {
		opt, ok := shape.(ir.Optional)
		if !ok {
			return shape
		}
		shape = opt.Inner
	}
}

func collectionName(c ir.Collection) string {
	if c.TypeName != "" {
		return c.TypeName
	}
	return "collection"
}
