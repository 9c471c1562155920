package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCode_SendsFileInPrompt(t *testing.T) {
	for _, sub := range []string{"analyze", "fix", "review"} {
		t.Run(sub, func(t *testing.T) {
			var got string
			url := newEndpoint(t, "looks fine", &got)
			src := writeSource(t, "package main\n\nfunc main() {}\n")
			cfg := filepath.Join(t.TempDir(), "config.json")

			out, err := execute(t, "--config", cfg, "--api-key", "key", "--base-url", url, "code", sub, src)

			require.NoError(t, err)
			assert.Equal(t, "looks fine\n", out)
			assert.Contains(t, got, "File: "+src)
			assert.Contains(t, got, "func main() {}")
		})
	}
}

func TestCode_MissingFile(t *testing.T) {
	var got string
	url := newEndpoint(t, "unused", &got)
	cfg := filepath.Join(t.TempDir(), "config.json")
	missing := filepath.Join(t.TempDir(), "nope.go")

	_, err := execute(t, "--config", cfg, "--api-key", "key", "--base-url", url, "code", "analyze", missing)

	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, got)
}

func TestCode_FixApply(t *testing.T) {
	url := newEndpoint(t, "Fixed the typo.\n```go\npackage main\n\nfunc main() {}\n```\n", nil)
	src := writeSource(t, "package main\n\nfunc mian() {}\n")
	cfg := filepath.Join(t.TempDir(), "config.json")

	out, err := execute(t, "--config", cfg, "--api-key", "key", "--base-url", url, "code", "fix", "--apply", src)

	require.NoError(t, err)
	assert.Contains(t, out, "applied fix to "+src)

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "package main\n\nfunc main() {}\n", string(data))
}

func TestCode_FixApplyWithoutCodeBlock(t *testing.T) {
	url := newEndpoint(t, "nothing to fix", nil)
	src := writeSource(t, "package main\n")
	cfg := filepath.Join(t.TempDir(), "config.json")

	_, err := execute(t, "--config", cfg, "--api-key", "key", "--base-url", url, "code", "fix", "--apply", src)

	assert.ErrorIs(t, err, ErrNoCodeBlock)

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(data))
}

func TestCodeBlock(t *testing.T) {
	tests := []struct {
		in   string
		code string
		ok   bool
	}{
		{"```\nx := 1\n```", "x := 1\n", true},
		{"intro\n```go\na\n```\nmore\n```\nb\n```", "a\n```\nmore\n```\nb\n", true},
		{"no fences", "", false},
		{"```go only one fence", "", false},
		{"```go\nunterminated", "", false},
	}

	for _, tt := range tests {
		code, ok := codeBlock(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.code, code, tt.in)
	}
}
