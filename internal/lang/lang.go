// Package lang maps source file names to the language tags used when
// rendering code blocks.
package lang

import (
	"path/filepath"
	"strings"
)

var defaultExtensions = map[string]string{
	".py":    "python",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".cxx":   "cpp",
	".cc":    "cpp",
	".hpp":   "hpp",
	".java":  "java",
	".js":    "javascript",
	".ts":    "typescript",
	".rs":    "rust",
	".go":    "go",
	".rb":    "ruby",
	".sh":    "bash",
	".bash":  "bash",
	".zsh":   "zsh",
	".yml":   "yaml",
	".yaml":  "yaml",
	".json":  "json",
	".toml":  "toml",
	".xml":   "xml",
	".html":  "html",
	".css":   "css",
	".sql":   "sql",
	".md":    "markdown",
	".cmake": "cmake",
	".mk":    "makefile",
}

var defaultFilenames = map[string]string{
	"Makefile":       "makefile",
	"makefile":       "makefile",
	"GNUmakefile":    "makefile",
	"CMakeLists.txt": "cmake",
	"Dockerfile":     "dockerfile",
	"Kconfig":        "kconfig",
}

// Map resolves a file name to a language tag. Filename entries take
// precedence over extension entries; unknown files get an empty tag.
type Map struct {
	extensions map[string]string
	filenames  map[string]string
}

// NewMap returns a Map preloaded with the built-in table.
func NewMap() *Map {
	m := &Map{
		extensions: make(map[string]string, len(defaultExtensions)),
		filenames:  make(map[string]string, len(defaultFilenames)),
	}

	for ext, tag := range defaultExtensions {
		m.extensions[ext] = tag
	}

	for name, tag := range defaultFilenames {
		m.filenames[name] = tag
	}

	return m
}

// Add registers a mapping. Keys beginning with a dot are extensions,
// anything else is an exact basename.
func (m *Map) Add(key, tag string) {
	if strings.HasPrefix(key, ".") {
		m.extensions[key] = tag
	} else {
		m.filenames[key] = tag
	}
}

// Detect returns the language tag for the given path, or an empty string
// when the file is not recognized.
func (m *Map) Detect(path string) string {
	base := filepath.Base(path)

	if tag, ok := m.filenames[base]; ok {
		return tag
	}

	// Kconfig fragments carry the variant after a dot: Kconfig.debug etc.
	if strings.HasPrefix(base, "Kconfig.") {
		return "kconfig"
	}

	return m.extensions[filepath.Ext(base)]
}
