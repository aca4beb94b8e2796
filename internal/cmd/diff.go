package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	diffDel = color.New(color.FgRed)
	diffIns = color.New(color.FgGreen)
)

// printDiff writes a line-granular diff of a rewrite, changed lines only,
// with -/+ prefixes.
func printDiff(w io.Writer, before, after string) {
	dmp := diffmatchpatch.New()

	a, b, lineArr := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArr)

	for _, d := range diffs {
		var (
			prefix string
			c      *color.Color
		)

		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, c = "-", diffDel
		case diffmatchpatch.DiffInsert:
			prefix, c = "+", diffIns
		default:
			continue
		}

		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			fmt.Fprintln(w, c.Sprint(prefix+line))
		}
	}
}
