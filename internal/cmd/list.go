package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
)

func listCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "list [flags] [file ...]",
		Aliases: []string{"ls"},
		Short:   "List snippet markers found in documentation files",
		Long: `List every snippet marker in the given documentation files with its
source file and resolved line range. Markers that fail to parse or
resolve are listed with the failure instead of a range.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return runList(opts, append(opts.inputs, args...))
		},

		DisableAutoGenTag: true,
	}
}

func runList(opts *options, inputs []string) error {
	if len(inputs) == 0 {
		return errors.New("no input files specified")
	}

	proc, err := newProcessor(opts)
	if err != nil {
		return err
	}

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()

	tbl := table.New("FILE", "LINE", "SOURCE", "RANGE", "LINES", "STATUS").
		WithWriter(opts.stdout).
		WithHeaderFormatter(headerFmt)

	var unreadable int

	for _, path := range inputs {
		src, err := os.ReadFile(path)
		if err != nil {
			unreadable++

			fmt.Fprintln(opts.stderr, errColor.Sprint("snipsync: ")+err.Error())

			continue
		}

		for _, m := range proc.Markers(path, src) {
			if m.Err != nil {
				tbl.AddRow(m.Doc, m.Line, m.Source, "", "", m.Err)

				continue
			}

			rng := fmt.Sprintf("%d:%d", m.Range.Start, m.Range.End)
			tbl.AddRow(m.Doc, m.Line, m.Source, rng, m.Range.Len(), "ok")
		}
	}

	tbl.Print()

	if unreadable > 0 {
		return fmt.Errorf("%d file(s) could not be read", unreadable)
	}

	return nil
}
