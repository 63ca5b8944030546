package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCLI(t, "", "version")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "udmi "+libVersion+" (schema "+schemaVersion+")\n", out)
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"unknown command", []string{"explode"}},
		{"unknown flag", []string{"canon", "--bogus", "Basic"}},
		{"missing type", []string{"canon"}},
		{"unknown type", []string{"canon", "NoSuchType"}},
		{"missing file", []string{"canon", "Basic", filepath.Join(t.TempDir(), "absent.json")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCLI(t, "{}", tt.args...)
			assert.Equal(t, exitUsage, code)
		})
	}
}

func TestRun_Types(t *testing.T) {
	code, out, _ := runCLI(t, "", "types")
	require.Equal(t, exitOK, code)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines, "BlobsetConfig")
	assert.Contains(t, lines, "Entry")
	assert.Contains(t, lines, "enum BlobPhase")

	code, out, _ = runCLI(t, "", "types", "-v")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "BlobBlobsetConfig struct{\n  phase: enum BlobPhase [required]\n")
	assert.Contains(t, out, "enum Transport {ssl tcp}\n")
}

func TestRun_Canon(t *testing.T) {
	code, out, _ := runCLI(t, `{"url":"u","extra":1,"phase":"final"}`, "canon", "BlobBlobsetConfig")
	require.Equal(t, exitOK, code)
	assert.Equal(t, `{"phase":"final","url":"u"}`+"\n", out)

	code, out, _ = runCLI(t, `{"phase":"apply"}`, "canon", "--pretty", "BlobBlobsetConfig", "-")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "{\n  \"phase\": \"apply\"\n}\n", out)
}

func TestRun_CanonFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basic.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"password":"p","username":"u"}`), 0o644))

	code, out, _ := runCLI(t, "", "canon", "Basic", path)
	require.Equal(t, exitOK, code)
	assert.Equal(t, `{"username":"u","password":"p"}`+"\n", out)
}

func TestRun_Validate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  int
		want  string
	}{
		{"valid", `{"phase":"final"}`, exitOK, "ok BlobBlobsetConfig"},
		{"missing required", `{"url":"u"}`, exitInvalid, "invalid BlobBlobsetConfig: [required_field]"},
		{"unknown enum", `{"phase":"later"}`, exitInvalid, "[unrecognized_enum]"},
		{"wrong type", `{"phase":"final","url":5}`, exitInvalid, "[type_mismatch]"},
		{"malformed", `{"phase":`, exitInvalid, "[malformed]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, _ := runCLI(t, tt.input, "validate", "BlobBlobsetConfig")
			assert.Equal(t, tt.code, code)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestRun_Hash(t *testing.T) {
	code, out, _ := runCLI(t, `{"username":"alice"}`, "hash", "Basic")
	require.Equal(t, exitOK, code)
	assert.Equal(t,
		"hash   -1414972095\n"+
			"sha256 04c4be721c109ac0f746bb00d3906ebf1b396457615f213ffee6e3cb6019bf64\n",
		out)
}

func TestRun_Metrics(t *testing.T) {
	code, _, errOut := runCLI(t, `{"phase":"final"}`, "canon", "--metrics", "BlobBlobsetConfig")
	require.Equal(t, exitOK, code)
	assert.Contains(t, errOut, "counter udmi.codec.decoded")
	assert.Contains(t, errOut, "counter udmi.codec.encoded")

	_, _, errOut = runCLI(t, `{"phase":"final"}`, "canon", "BlobBlobsetConfig")
	assert.NotContains(t, errOut, "udmi.codec")
}

func TestRun_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "udmi.toml")
	require.NoError(t, os.WriteFile(path, []byte("LogLevel = \"debug\"\nIndent = \"\\t\"\n"), 0o644))

	code, out, errOut := runCLI(t, `{"phase":"final"}`, "canon", "--config="+path, "BlobBlobsetConfig")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "{\n\t\"phase\": \"final\"\n}\n", out)
	assert.Contains(t, errOut, "level=DEBUG")
	assert.Contains(t, errOut, "type=BlobBlobsetConfig")
}

func TestRun_HashUsesConfiguredCodec(t *testing.T) {
	code, out, errOut := runCLI(t, `{"username":"alice"}`, "hash", "--metrics", "--pretty", "Basic")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "sha256 04c4be721c109ac0f746bb00d3906ebf1b396457615f213ffee6e3cb6019bf64\n")
	assert.Contains(t, errOut, fmt.Sprintf("counter %s\n  count:       %9d\n", "udmi.codec.encoded", 1))
}
