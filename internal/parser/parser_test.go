package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/jptrs93/structproto/internal/ir"
)

const addressBook = `syntax = "proto3";
package demo.book;

message Person {
  string name = 1;
  repeated string emails = 2;
  Address home = 3;
}

message Address {
  string street = 1;
  int64 number = 2;
}
`

func TestParseSource(t *testing.T) {
	msgs, err := ParseSource(context.Background(), "book.proto", addressBook)
	require.NoError(t, err)

	want := []Message{
		{
			Package: "demo.book",
			Name:    "Person",
			Fields: []ir.ResolvedField{
				{Name: "name", Number: 1, Type: "string"},
				{Name: "emails", Number: 2, Type: "repeated string"},
				{Name: "home", Number: 3, Type: "Address"},
			},
		},
		{
			Package: "demo.book",
			Name:    "Address",
			Fields: []ir.ResolvedField{
				{Name: "street", Number: 1, Type: "string"},
				{Name: "number", Number: 2, Type: "int64"},
			},
		},
	}
	if diff := cmp.Diff(want, msgs); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFromImportPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book.proto"), []byte(addressBook), 0o644))

	p := Parser{ImportPaths: []string{dir}}
	msgs, err := p.Parse(context.Background(), []string{"book.proto"})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, "Person", msgs[0].Name)
}

func TestParseRejectsInvalidSource(t *testing.T) {
	_, err := ParseSource(context.Background(), "bad.proto", "syntax = \"proto3\";\nmessage A {\n  repeated repeated string x = 1;\n}\n")
	require.Error(t, err)
}

func TestParseRejectsProto2(t *testing.T) {
	_, err := ParseSource(context.Background(), "old.proto", "syntax = \"proto2\";\nmessage A {\n  optional string x = 1;\n}\n")
	require.ErrorContains(t, err, "only proto3")
}

func TestParseRejectsMaps(t *testing.T) {
	_, err := ParseSource(context.Background(), "m.proto", "syntax = \"proto3\";\nmessage A {\n  map<string, int32> x = 1;\n}\n")
	require.ErrorContains(t, err, "map fields are not supported")
}
