package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const descriptors = `namespace: MyApp
types:
  - name: UserProfile
    fields:
      - name: FullName
        type: string
      - name: Age
        type: optional<int32>
      - name: IsActive
        type: bool
      - name: Roles
        type: list<string>
      - name: Tags
        type: list<string>
`

const userProfileProto = `syntax = "proto3";
package MyApp;

message UserProfile {
  string full_name = 1;
  int32 age = 2;
  bool is_active = 3;
  repeated string roles = 4;
  repeated string tags = 5;
}
`

func writeDescriptors(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "types.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func TestRunWritesFiles(t *testing.T) {
	out := t.TempDir()
	var logs bytes.Buffer
	err := run([]string{"-out", out, writeDescriptors(t, descriptors)}, io.Discard, io.Discard, testLogger(&logs))
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(out, "user_profile.proto"))
	require.NoError(t, err)
	assert.Equal(t, userProfileProto, string(got))
	assert.Contains(t, logs.String(), "wrote schema")
}

func TestRunOutFromEnv(t *testing.T) {
	out := t.TempDir()
	t.Setenv("STRUCTPROTO_OUT", out)
	err := run([]string{writeDescriptors(t, descriptors)}, io.Discard, io.Discard, testLogger(&bytes.Buffer{}))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "user_profile.proto"))
}

func TestRunStdout(t *testing.T) {
	var stdout bytes.Buffer
	err := run([]string{"-stdout", writeDescriptors(t, descriptors)}, &stdout, io.Discard, testLogger(&bytes.Buffer{}))
	require.NoError(t, err)
	assert.Equal(t, userProfileProto, stdout.String())
}

func TestRunWarnsOnDuplicateNames(t *testing.T) {
	doc := "types:\n  - name: Dup\n    fields:\n      - name: UserId\n        type: string\n      - name: userId\n        type: string\n"
	var logs bytes.Buffer
	var stdout bytes.Buffer
	err := run([]string{"-stdout", writeDescriptors(t, doc)}, &stdout, io.Discard, testLogger(&logs))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "duplicate field name")
	assert.Contains(t, logs.String(), "field=user_id")
}

func TestRunErrors(t *testing.T) {
	logger := testLogger(&bytes.Buffer{})

	err := run(nil, io.Discard, io.Discard, logger)
	require.ErrorContains(t, err, "no descriptor files")

	var stderr bytes.Buffer
	err = run([]string{"-bogus"}, io.Discard, &stderr, logger)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "usage: structproto")

	err = run([]string{"-stdout", writeDescriptors(t, "types: []\n")}, io.Discard, io.Discard, logger)
	require.ErrorContains(t, err, "no types found")

	doc := "types:\n  - name: Bad\n    fields:\n      - name: Lookup\n        type: map<string,int32>\n"
	err = run([]string{"-stdout", writeDescriptors(t, doc)}, io.Discard, io.Discard, logger)
	require.ErrorContains(t, err, "unsupported type: map<string,int32>")
}

func TestRunHelp(t *testing.T) {
	var stderr, logs bytes.Buffer
	err := run([]string{"-h"}, io.Discard, &stderr, testLogger(&logs))
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "usage: structproto")
	assert.Contains(t, stderr.String(), "-out")
	assert.Contains(t, stderr.String(), "STRUCTPROTO_OUT")
	assert.Empty(t, logs.String())
}
