package docsync

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Dialect knows one documentation format's marker comment syntax and code
// block form. Marker matching works on whitespace-trimmed lines; a Dialect
// may carry per-document scanning state (Markdown fence tracking), so
// dialectFor returns a fresh value for each document.
type Dialect interface {
	Name() string

	// Start reports whether the line is a snippet start marker and returns
	// its raw payload (path:start:end).
	Start(trimmed string) (payload string, ok bool)

	// End reports whether the line is a snippet end marker.
	End(trimmed string) bool

	// Passthrough reports whether the line sits inside a literal block
	// where marker comments must be ignored.
	Passthrough(trimmed string) bool

	// Render produces the dialect's code block for the extracted lines,
	// including the blank lines that separate it from the markers.
	Render(langTag string, lines []string) []byte
}

// dialectFor picks a dialect by scanning the basename's dot-separated parts
// right to left, so names like guide.md.in still count as Markdown.
// Markdown is the default.
func dialectFor(path string) Dialect {
	parts := strings.Split(strings.ToLower(filepath.Base(path)), ".")

	for i := len(parts) - 1; i >= 0; i-- {
		switch parts[i] {
		case "rst":
			return &rstDialect{}
		case "md":
			return &markdownDialect{}
		}
	}

	return &markdownDialect{}
}

var (
	reMarkdownStart = regexp.MustCompile(`^<!--\s*code_snippet_start:(.*?)\s*-->`)
	reMarkdownEnd   = regexp.MustCompile(`^<!--\s*code_snippet_end\s*-->`)
	reRSTStart      = regexp.MustCompile(`^\.\.\s+code_snippet_start:(.*?)\s*$`)
	reRSTEnd        = regexp.MustCompile(`^\.\.\s+code_snippet_end\s*$`)
)
