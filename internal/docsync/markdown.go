package docsync

import (
	"bytes"
	"regexp"
	"strings"
)

var reFence = regexp.MustCompile("^(`{3,}|~{3,})")

// markdownDialect handles HTML-comment markers and fenced code blocks.
type markdownDialect struct {
	inFence   bool
	fenceChar string
}

func (d *markdownDialect) Name() string {
	return "markdown"
}

func (d *markdownDialect) Start(trimmed string) (string, bool) {
	m := reMarkdownStart.FindStringSubmatch(trimmed)
	if m == nil {
		return "", false
	}

	return m[1], true
}

func (d *markdownDialect) End(trimmed string) bool {
	return reMarkdownEnd.MatchString(trimmed)
}

// Passthrough tracks ``` and ~~~ fences so marker comments shown inside a
// fenced block are left alone. A fence closes only on a run of the same
// character that opened it.
func (d *markdownDialect) Passthrough(trimmed string) bool {
	m := reFence.FindStringSubmatch(trimmed)
	if m != nil {
		if !d.inFence {
			d.inFence = true
			d.fenceChar = m[1][:1]
		} else if strings.HasPrefix(trimmed, d.fenceChar) && strings.Trim(trimmed, d.fenceChar) == "" {
			d.inFence = false
		}

		return true
	}

	return d.inFence
}

func (d *markdownDialect) Render(langTag string, lines []string) []byte {
	var b bytes.Buffer

	b.WriteString("\n```")
	b.WriteString(langTag)
	b.WriteByte('\n')

	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString("```\n\n")

	return b.Bytes()
}
