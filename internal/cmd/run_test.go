package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snipsync/snipsync/internal/cmd"
)

func run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer

	code := cmd.Execute(args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func read(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

const tenLines = "line 1\nline 2\nline 3\nline 4\nline 5\nline 6\nline 7\nline 8\nline 9\nline 10\n"

func docWithMarker(t *testing.T, dir, marker string) string {
	t.Helper()

	doc := filepath.Join(dir, "guide.md")
	write(t, doc, "# Guide\n\n<!-- code_snippet_start:"+marker+" -->\n<!-- code_snippet_end -->\n")

	return doc
}

func TestUpdateRewritesDocument(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "example.c"), tenLines)
	doc := docWithMarker(t, dir, "example.c:4:8")

	code, _, _ := run("-q", "-i", doc)
	require.Equal(t, 0, code)

	assert.Contains(t, read(t, doc), "```c\nline 4\nline 5\nline 6\nline 7\n```")
}

func TestPositionalInputs(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "example.c"), tenLines)
	doc := docWithMarker(t, dir, "example.c:1:3")

	code, _, _ := run("-q", doc)
	require.Equal(t, 0, code)

	assert.Contains(t, read(t, doc), "line 1\nline 2\n")
}

func TestCheckUpToDate(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "example.c"), tenLines)
	doc := docWithMarker(t, dir, "example.c:4:8")

	code, _, _ := run("-q", "-i", doc)
	require.Equal(t, 0, code)

	before := read(t, doc)

	code, _, stderr := run("--check", "-i", doc)
	assert.Equal(t, 0, code)
	assert.Empty(t, stderr)
	assert.Equal(t, before, read(t, doc))
}

func TestCheckStale(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "example.c"), tenLines)
	doc := docWithMarker(t, dir, "example.c:4:8")

	before := read(t, doc)

	code, _, stderr := run("--check", "-i", doc)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Changes required in "+doc)
	assert.Contains(t, stderr, "+line 4")

	// Check mode never writes.
	assert.Equal(t, before, read(t, doc))
}

func TestUnresolvableMarker(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "example.c"), tenLines)
	doc := docWithMarker(t, dir, "example.c:r/^nope/:3")

	before := read(t, doc)

	code, _, stderr := run("-i", doc)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "r/^nope/")
	assert.Equal(t, before, read(t, doc))
}

func TestMissingSourceFile(t *testing.T) {
	dir := t.TempDir()
	doc := docWithMarker(t, dir, "missing.c:1:2")

	code, _, stderr := run("-i", doc)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "missing.c")
}

func TestUnreadableDocument(t *testing.T) {
	code, _, _ := run("-i", filepath.Join(t.TempDir(), "nope.md"))
	assert.Equal(t, 1, code)
}

func TestNoInputs(t *testing.T) {
	code, _, stderr := run()
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no input files")
}

func TestFailureDoesNotBlockOtherFiles(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "example.c"), tenLines)

	good := filepath.Join(dir, "good.md")
	write(t, good, "<!-- code_snippet_start:example.c:1:3 -->\n<!-- code_snippet_end -->\n")

	bad := filepath.Join(dir, "bad.md")
	write(t, bad, "<!-- code_snippet_start:example.c:r/^nope/:3 -->\n<!-- code_snippet_end -->\n")

	code, _, stderr := run("-q", "-i", good, "-i", bad)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "r/^nope/")

	// The resolvable document is still updated.
	assert.Contains(t, read(t, good), "```c\nline 1\nline 2\n```")
}

func TestVersionFlag(t *testing.T) {
	code, stdout, _ := run("--version")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "snipsync "+cmd.Version)
}

func TestConfigOverridesLanguageMap(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "data.xyz"), "alpha\nbeta\n")

	cfg := filepath.Join(dir, "langs.yaml")
	write(t, cfg, "languages:\n  .xyz: foo\n")

	doc := docWithMarker(t, dir, "data.xyz:1:3")

	code, _, _ := run("-q", "--config", cfg, "-i", doc)
	require.Equal(t, 0, code)

	assert.Contains(t, read(t, doc), "```foo\nalpha\nbeta\n```")
}

func TestListCommand(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "example.c"), tenLines)
	doc := docWithMarker(t, dir, "example.c:4:8")

	code, stdout, _ := run("list", "-i", doc)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "example.c")
	assert.Contains(t, stdout, "4:8")
	assert.Contains(t, stdout, "ok")
}

func TestListReportsUnresolvableMarkers(t *testing.T) {
	dir := t.TempDir()
	doc := docWithMarker(t, dir, "missing.c:1:2")

	code, stdout, _ := run("list", "-i", doc)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "missing.c")
}
