// Package snippet parses snippet marker address expressions and resolves
// them against a source file's lines.
//
// An address expression has three colon-separated fields: a file path, a
// start spec and an end spec. A spec is a 1-based line number, a /glob/
// pattern or an r/regex/ pattern; a literal colon inside a field is written
// \:. A trailing + on the end spec includes the matched end line in the
// range.
package snippet

import (
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/gobwas/glob"
)

// Address is a parsed marker payload: which lines of which file.
type Address struct {
	Path         string
	Start        LineSpec
	End          LineSpec
	InclusiveEnd bool
}

// LineSpec is one way of naming a line in a source file. The set of
// implementations is closed: AbsoluteLine, GlobPattern and RegexPattern.
type LineSpec interface {
	String() string

	// resolve returns the 1-based line number the spec names, scanning
	// forward from line `from` when the spec is a pattern.
	resolve(a *Address, which string, lines []string, from int) (int, error)
}

// AbsoluteLine names a fixed 1-based line number.
type AbsoluteLine int

func (n AbsoluteLine) String() string {
	return strconv.Itoa(int(n))
}

func (n AbsoluteLine) resolve(a *Address, which string, lines []string, _ int) (int, error) {
	if int(n) < 1 || int(n) > len(lines)+1 {
		return 0, &LineOutOfRangeError{File: a.Path, Which: which, Line: int(n), Total: len(lines)}
	}

	return int(n), nil
}

// GlobPattern names the first line whose text contains a match of a
// shell-glob pattern.
type GlobPattern struct {
	raw string
	g   glob.Glob
}

func (p *GlobPattern) String() string {
	return p.raw
}

func (p *GlobPattern) resolve(a *Address, which string, lines []string, from int) (int, error) {
	for i := max(from, 1) - 1; i < len(lines); i++ {
		if p.g.Match(lines[i]) {
			return i + 1, nil
		}
	}

	return 0, &PatternNotFoundError{File: a.Path, Which: which, Pattern: p.raw}
}

// RegexPattern names the first line the regular expression finds a match in.
// Anchors bind to line boundaries because matching is done one line at a
// time.
type RegexPattern struct {
	raw string
	re  *regexp2.Regexp
}

func (p *RegexPattern) String() string {
	return p.raw
}

func (p *RegexPattern) resolve(a *Address, which string, lines []string, from int) (int, error) {
	for i := max(from, 1) - 1; i < len(lines); i++ {
		ok, err := p.re.MatchString(lines[i])
		if err != nil {
			return 0, err
		}

		if ok {
			return i + 1, nil
		}
	}

	return 0, &PatternNotFoundError{File: a.Path, Which: which, Pattern: p.raw}
}

// matchTimeout bounds regex backtracking on a single line.
const matchTimeout = time.Second

// ParseAddress parses the payload of a snippet start marker into an Address.
// It fails with MalformedMarkerError when the payload does not split into
// exactly three fields or a spec field is neither a pattern nor an integer.
func ParseAddress(payload string) (*Address, error) {
	fields := splitPayload(payload)
	if len(fields) != 3 {
		return nil, &MalformedMarkerError{
			Payload: payload,
			Reason:  "expected path:start:end, got " + strconv.Itoa(len(fields)) + " field(s)",
		}
	}

	for _, f := range fields {
		if f == "" {
			return nil, &MalformedMarkerError{Payload: payload, Reason: "empty field"}
		}
	}

	addr := &Address{Path: unescapeColons(fields[0])}

	endField := fields[2]
	if strings.HasSuffix(endField, "+") {
		addr.InclusiveEnd = true
		endField = endField[:len(endField)-1]
	}

	var err error

	if addr.Start, err = parseLineSpec(payload, fields[1]); err != nil {
		return nil, err
	}

	if addr.End, err = parseLineSpec(payload, endField); err != nil {
		return nil, err
	}

	return addr, nil
}

func parseLineSpec(payload, field string) (LineSpec, error) {
	switch {
	case len(field) > 2 && strings.HasPrefix(field, "r/") && strings.HasSuffix(field, "/"):
		pattern := unescapeColons(field[2 : len(field)-1])

		re, err := regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			return nil, &MalformedMarkerError{Payload: payload, Reason: "invalid regex in " + field + ": " + err.Error()}
		}

		re.MatchTimeout = matchTimeout

		return &RegexPattern{raw: field, re: re}, nil

	case len(field) > 1 && strings.HasPrefix(field, "/") && strings.HasSuffix(field, "/"):
		pattern := unescapeColons(field[1 : len(field)-1])

		// The pattern matches anywhere in the line, as with fnmatch("*pat*").
		g, err := glob.Compile("*" + pattern + "*")
		if err != nil {
			return nil, &MalformedMarkerError{Payload: payload, Reason: "invalid glob in " + field + ": " + err.Error()}
		}

		return &GlobPattern{raw: field, g: g}, nil

	default:
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, &MalformedMarkerError{
				Payload: payload,
				Reason:  "spec " + strconv.Quote(field) + " is not a line number, /glob/ or r/regex/",
			}
		}

		return AbsoluteLine(n), nil
	}
}

// splitPayload splits on unescaped colons. Backslash escapes the following
// character for splitting purposes; the escape itself is preserved and only
// \: is unescaped later, per field.
func splitPayload(payload string) []string {
	var (
		fields []string
		cur    strings.Builder
	)

	for i := 0; i < len(payload); i++ {
		switch c := payload[i]; c {
		case '\\':
			cur.WriteByte(c)

			if i+1 < len(payload) {
				i++
				cur.WriteByte(payload[i])
			}
		case ':':
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}

	return append(fields, cur.String())
}

func unescapeColons(s string) string {
	return strings.ReplaceAll(s, `\:`, ":")
}
