package protogen

import (
	"strconv"
	"strings"

	"github.com/jptrs93/structproto/internal/ir"
)

// Render writes a proto3 file holding a single message. Fields are written
// as given; duplicate names are not detected.
func Render(typeName, namespace string, fields []ir.ResolvedField) string {
	var b strings.Builder
	b.WriteString("syntax = \"proto3\";\n")
	if namespace != "" {
		b.WriteString("package " + namespace + ";\n")
	}
	b.WriteString("\n")
	b.WriteString("message " + typeName + " {\n")
	for _, field := range fields {
		b.WriteString("  " + field.Type + " " + field.Name + " = " + strconv.Itoa(field.Number) + ";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// Generate returns the schema for td, or the error of the first field that
// could not be mapped.
func Generate(td ir.TypeDescriptor) (string, error) {
	fields, err := Walk(td)
	if err != nil {
		return "", err
	}
	return Render(td.Name, td.Namespace, fields), nil
}

// DuplicateNames returns emitted names used by more than one field, in the
// order they first repeat.
func DuplicateNames(fields []ir.ResolvedField) []string {
	seen := make(map[string]int, len(fields))
	var dups []string
	for _, field := range fields {
		seen[field.Name]++
		if seen[field.Name] == 2 {
			dups = append(dups, field.Name)
		}
	}
	return dups
}
