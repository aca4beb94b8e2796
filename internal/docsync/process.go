// Package docsync rewrites the regions between snippet marker comments in
// documentation files with freshly extracted source code.
//
// A document is processed in a single forward scan: lines outside marker
// regions are copied byte-for-byte, each start marker's address expression
// is resolved against the referenced source file, and the region up to the
// matching end marker is replaced with a rendered code block. The rewrite
// happens entirely in memory; callers decide whether to write the result
// back.
package docsync

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/snipsync/snipsync/internal/lang"
	"github.com/snipsync/snipsync/internal/snippet"
)

// Processor rewrites snippet regions in documentation files.
type Processor struct {
	// Languages maps source file names to code block language tags.
	// Defaults to the built-in table.
	Languages *lang.Map

	// ReadFile loads referenced source files. Defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)
}

// MarkerError ties a failure to the document and line of the marker that
// caused it.
type MarkerError struct {
	Doc  string
	Line int
	Err  error
}

func (e *MarkerError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Doc, e.Line, e.Err)
}

func (e *MarkerError) Unwrap() error {
	return e.Err
}

// SourceFileNotFoundError reports a referenced source file that could not
// be read.
type SourceFileNotFoundError struct {
	Path string
	Err  error
}

func (e *SourceFileNotFoundError) Error() string {
	return fmt.Sprintf("source file %s: %v", e.Path, e.Err)
}

func (e *SourceFileNotFoundError) Unwrap() error {
	return e.Err
}

var errMissingEnd = errors.New("code_snippet_start without matching code_snippet_end")

// Rewrite processes one document and returns the rewritten text plus a flag
// that is true iff the text differs from the input. The first failing
// marker aborts the whole document, so a caller never writes a partial
// update.
func (p *Processor) Rewrite(docPath string, source []byte) ([]byte, bool, error) {
	d := dialectFor(docPath)

	var out bytes.Buffer

	out.Grow(len(source))

	inSnippet := false
	markerLine := 0
	lineno := 0

	for _, raw := range docLines(source) {
		lineno++
		trimmed := strings.TrimSpace(string(raw))

		if inSnippet {
			if d.End(trimmed) {
				out.Write(raw)

				inSnippet = false
			}

			continue
		}

		out.Write(raw)

		if d.Passthrough(trimmed) {
			continue
		}

		payload, ok := d.Start(trimmed)
		if !ok {
			continue
		}

		block, err := p.expand(d, docPath, payload)
		if err != nil {
			return nil, false, &MarkerError{Doc: docPath, Line: lineno, Err: err}
		}

		out.Write(block)

		inSnippet = true
		markerLine = lineno
	}

	if inSnippet {
		return nil, false, &MarkerError{Doc: docPath, Line: markerLine, Err: errMissingEnd}
	}

	res := out.Bytes()

	return res, !bytes.Equal(res, source), nil
}

// expand turns one marker payload into a rendered code block.
func (p *Processor) expand(d Dialect, docPath, payload string) ([]byte, error) {
	addr, err := snippet.ParseAddress(payload)
	if err != nil {
		return nil, err
	}

	src := resolveSourcePath(docPath, addr.Path)

	data, err := p.readFile(src)
	if err != nil {
		return nil, &SourceFileNotFoundError{Path: src, Err: err}
	}

	lines := SplitLines(data)

	rng, err := addr.Resolve(lines)
	if err != nil {
		return nil, err
	}

	code, err := snippet.Extract(lines, rng)
	if err != nil {
		return nil, err
	}

	return d.Render(p.languages().Detect(src), code), nil
}

// Marker is one located snippet marker, resolved as far as possible.
// Err carries the first failure hit while parsing or resolving it.
type Marker struct {
	Doc     string
	Line    int
	Address *snippet.Address
	Source  string
	Range   snippet.Range
	Err     error
}

// Markers scans one document and reports every snippet marker it finds,
// including ones that fail to parse or resolve.
func (p *Processor) Markers(docPath string, source []byte) []Marker {
	d := dialectFor(docPath)

	var found []Marker

	inSnippet := false
	lineno := 0

	for _, raw := range docLines(source) {
		lineno++
		trimmed := strings.TrimSpace(string(raw))

		if inSnippet {
			if d.End(trimmed) {
				inSnippet = false
			}

			continue
		}

		if d.Passthrough(trimmed) {
			continue
		}

		payload, ok := d.Start(trimmed)
		if !ok {
			continue
		}

		found = append(found, p.inspect(docPath, lineno, payload))
		inSnippet = true
	}

	if inSnippet && len(found) > 0 && found[len(found)-1].Err == nil {
		found[len(found)-1].Err = errMissingEnd
	}

	return found
}

func (p *Processor) inspect(docPath string, line int, payload string) Marker {
	m := Marker{Doc: docPath, Line: line}

	addr, err := snippet.ParseAddress(payload)
	if err != nil {
		m.Err = err

		return m
	}

	m.Address = addr
	m.Source = resolveSourcePath(docPath, addr.Path)

	data, err := p.readFile(m.Source)
	if err != nil {
		m.Err = &SourceFileNotFoundError{Path: m.Source, Err: err}

		return m
	}

	rng, err := addr.Resolve(SplitLines(data))
	if err != nil {
		m.Err = err

		return m
	}

	m.Range = rng

	return m
}

func (p *Processor) languages() *lang.Map {
	if p.Languages != nil {
		return p.Languages
	}

	return lang.NewMap()
}

func (p *Processor) readFile(name string) ([]byte, error) {
	if p.ReadFile != nil {
		return p.ReadFile(name)
	}

	return os.ReadFile(name)
}

// resolveSourcePath resolves a marker's path field against the document's
// directory. Absolute paths pass through.
func resolveSourcePath(docPath, src string) string {
	if filepath.IsAbs(src) {
		return filepath.Clean(src)
	}

	return filepath.Join(filepath.Dir(docPath), src)
}

// SplitLines splits a source file into lines for matching and extraction.
// Trailing \n and \r\n terminators are stripped; a trailing newline on the
// file does not produce a phantom empty line.
func SplitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}

	lines := strings.Split(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

// docLines splits a document into lines that keep their terminators, so
// untouched lines round-trip byte-for-byte.
func docLines(source []byte) [][]byte {
	var lines [][]byte

	for len(source) > 0 {
		i := bytes.IndexByte(source, '\n')
		if i < 0 {
			return append(lines, source)
		}

		lines = append(lines, source[:i+1])
		source = source[i+1:]
	}

	return lines
}
