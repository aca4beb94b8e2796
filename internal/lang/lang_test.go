package lang

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	m := NewMap()

	cases := map[string]string{
		"foo.c":               "c",
		"bar.py":              "python",
		"baz.h":               "c",
		"lib/util.cc":         "cpp",
		"web/app.ts":          "typescript",
		"Makefile":            "makefile",
		"build/GNUmakefile":   "makefile",
		"CMakeLists.txt":      "cmake",
		"deploy/Dockerfile":   "dockerfile",
		"Kconfig":             "kconfig",
		"drivers/Kconfig.usb": "kconfig",
		"config.yml":          "yaml",
		"file.xyz":            "",
		"README":              "",
	}

	for path, want := range cases {
		assert.Equal(t, want, m.Detect(path), "path %s", path)
	}
}

func TestDetectIsCaseExact(t *testing.T) {
	m := NewMap()

	assert.Equal(t, "", m.Detect("FOO.C"))
	assert.Equal(t, "makefile", m.Detect("makefile"))
}

func TestAddOverrides(t *testing.T) {
	m := NewMap()
	m.Add(".proto", "protobuf")
	m.Add("BUILD", "starlark")

	assert.Equal(t, "protobuf", m.Detect("api/v1/service.proto"))
	assert.Equal(t, "starlark", m.Detect("pkg/BUILD"))

	// Built-ins stay intact.
	assert.Equal(t, "go", m.Detect("main.go"))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snipsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte("languages:\n  .proto: protobuf\n  BUILD: starlark\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	m := NewMap()
	m.Apply(cfg)

	assert.Equal(t, "protobuf", m.Detect("service.proto"))
	assert.Equal(t, "starlark", m.Detect("BUILD"))
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("languages: [\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
