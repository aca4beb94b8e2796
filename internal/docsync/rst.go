package docsync

import (
	"bytes"
	"strings"
)

// rstDialect handles directive-comment markers and code-block directives.
type rstDialect struct{}

func (rstDialect) Name() string {
	return "rst"
}

func (rstDialect) Start(trimmed string) (string, bool) {
	m := reRSTStart.FindStringSubmatch(trimmed)
	if m == nil {
		return "", false
	}

	return m[1], true
}

func (rstDialect) End(trimmed string) bool {
	return reRSTEnd.MatchString(trimmed)
}

func (rstDialect) Passthrough(string) bool {
	return false
}

// Render emits a code-block directive with a three-space body indent.
// Blank source lines become bare newlines so the directive body carries no
// trailing whitespace.
func (rstDialect) Render(langTag string, lines []string) []byte {
	var b bytes.Buffer

	b.WriteString("\n.. code-block:: ")
	b.WriteString(langTag)
	b.WriteString("\n\n")

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			b.WriteByte('\n')
		} else {
			b.WriteString("   ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	b.WriteByte('\n')

	return b.Bytes()
}
