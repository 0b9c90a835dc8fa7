// Package source builds type descriptors from Go types and from YAML
// descriptor files.
package source

import (
	"fmt"
	"path"
	"reflect"
	"strings"
	"time"

	"github.com/jptrs93/structproto/internal/ir"
)

var timeType = reflect.TypeOf(time.Time{})

// DescribeOf is Describe for the type parameter.
func DescribeOf[T any]() (ir.TypeDescriptor, error) {
	return Describe(reflect.TypeOf((*T)(nil)).Elem())
}

// Describe builds a descriptor from the exported fields of a struct type,
// including fields promoted from embedded structs. Fields tagged `proto:"-"`
// are skipped; `proto:"Name"` overrides the field name. A tagged embedded
// struct is kept as a single field instead of being flattened.
func Describe(t reflect.Type) (ir.TypeDescriptor, error) {
	if t == nil {
		return ir.TypeDescriptor{}, fmt.Errorf("nil type")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return ir.TypeDescriptor{}, fmt.Errorf("%s is not a struct", t)
	}
	if t.Name() == "" {
		return ir.TypeDescriptor{}, fmt.Errorf("anonymous struct %s has no name", t)
	}

	td := ir.TypeDescriptor{
		Name:      t.Name(),
		Namespace: namespace(t.PkgPath()),
	}
	for _, field := range reflect.VisibleFields(t) {
		if !promoted(t, field.Index) || flattened(field) || !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("proto"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		td.Fields = append(td.Fields, ir.FieldDescriptor{
			Name:  name,
			Shape: shapeOf(field.Type),
		})
	}
	return td, nil
}

func shapeOf(t reflect.Type) ir.Shape {
	if t == timeType {
		return ir.Scalar{Kind: ir.KindDateTime, TypeName: t.String()}
	}
	switch t.Kind() {
	case reflect.String:
		return ir.Scalar{Kind: ir.KindString, TypeName: t.String()}
	case reflect.Int32:
		return ir.Scalar{Kind: ir.KindInt32, TypeName: t.String()}
	case reflect.Int, reflect.Int64:
		return ir.Scalar{Kind: ir.KindInt64, TypeName: t.String()}
	case reflect.Bool:
		return ir.Scalar{Kind: ir.KindBool, TypeName: t.String()}
	case reflect.Float32:
		return ir.Scalar{Kind: ir.KindFloat, TypeName: t.String()}
	case reflect.Float64:
		return ir.Scalar{Kind: ir.KindDouble, TypeName: t.String()}
	case reflect.Pointer:
		return ir.Optional{Inner: shapeOf(t.Elem())}
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return ir.Scalar{Kind: ir.KindBytes, TypeName: t.String()}
		}
		if t.Elem().Kind() == reflect.Interface && t.Elem().NumMethod() == 0 {
			// []any says nothing about its elements
			return ir.Collection{TypeName: t.String()}
		}
		return ir.Collection{Elem: shapeOf(t.Elem()), TypeName: t.String()}
	case reflect.Struct:
		if t.Name() != "" {
			return ir.NestedObject{Ref: ir.TypeRef{Name: t.Name()}}
		}
	}
	return ir.Scalar{Kind: ir.KindOther, TypeName: t.String()}
}

// flattened reports whether an embedded field contributes its own fields
// rather than appearing as one.
func flattened(field reflect.StructField) bool {
	if !field.Anonymous {
		return false
	}
	if _, ok := field.Tag.Lookup("proto"); ok {
		return false
	}
	ft := field.Type
	if ft.Kind() == reflect.Pointer {
		ft = ft.Elem()
	}
	return ft.Kind() == reflect.Struct && ft != timeType
}

// promoted reports whether every embedded field on the path to index is
// flattened.
func promoted(t reflect.Type, index []int) bool {
	for i := 1; i < len(index); i++ {
		if !flattened(t.FieldByIndex(index[:i])) {
			return false
		}
	}
	return true
}

// namespace turns a Go import path into a proto package name.
func namespace(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}
	return strings.NewReplacer(".", "_", "-", "_").Replace(path.Base(pkgPath))
}
