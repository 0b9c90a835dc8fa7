package ir

// TypeDescriptor describes one source type to convert into a message.
type TypeDescriptor struct {
	Name      string
	Namespace string
	Fields    []FieldDescriptor
}

type FieldDescriptor struct {
	Name  string
	Shape Shape
}

// Shape classifies a field. Exactly one of Scalar, Optional, Collection or
// NestedObject.
type Shape interface {
	isShape()
}

type Scalar struct {
	Kind Kind
	// TypeName is the source type's name, reported when Kind has no mapping.
	TypeName string
}

type Optional struct {
	Inner Shape
}

// Collection is a sequence of Elem. A nil Elem means the element type could
// not be determined.
type Collection struct {
	Elem     Shape
	TypeName string
}

type NestedObject struct {
	Ref TypeRef
}

type TypeRef struct {
	Name string
}

func (Scalar) isShape()       {}
func (Optional) isShape()     {}
func (Collection) isShape()   {}
func (NestedObject) isShape() {}

// ResolvedField is one emitted field line.
type ResolvedField struct {
	Name   string
	Number int
	Type   string
}

type Kind int

const (
	KindOther Kind = iota
	KindString
	KindInt32
	KindInt64
	KindBool
	KindFloat
	KindDouble
	KindBytes
	KindDateTime
	// KindChar is a single character. A collection of characters is text.
	KindChar
)

var kindNames = [...]string{
	KindOther:    "other",
	KindString:   "string",
	KindInt32:    "int32",
	KindInt64:    "int64",
	KindBool:     "bool",
	KindFloat:    "float",
	KindDouble:   "double",
	KindBytes:    "bytes",
	KindDateTime: "datetime",
	KindChar:     "char",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Name returns the descriptive name of the scalar's source type.
func (s Scalar) Name() string {
	if s.TypeName != "" {
		return s.TypeName
	}
	return s.Kind.String()
}
