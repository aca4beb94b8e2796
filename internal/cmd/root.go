// Package cmd implements the snipsync command line interface.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/snipsync/snipsync/internal/docsync"
	"github.com/snipsync/snipsync/internal/lang"
)

const defaultConfigFile = ".snipsync.yaml"

type options struct {
	inputs []string
	check  bool
	config string
	jobs   int
	quiet  bool

	stdout io.Writer
	stderr io.Writer
}

func (o *options) status(format string, args ...any) {
	if !o.quiet {
		fmt.Fprintf(o.stderr, format, args...)
	}
}

var (
	// errChangesNeeded signals that --check found out-of-date files.
	errChangesNeeded = errors.New("changes needed")

	// errMarkerFailed signals marker parse/resolution failures; details
	// are reported per file before it is returned.
	errMarkerFailed = errors.New("snippet markers could not be resolved")
)

const rootLongDesc = `
snipsync keeps code examples embedded in documentation in sync with the
source files they were taken from.

A documentation file declares a snippet with a pair of marker comments:

  <!-- code_snippet_start:../src/sample.c:r/^#include/:r/^\}/+ -->
  <!-- code_snippet_end -->

The address names a source file (relative to the documentation file), a
start spec and an end spec. A spec is a 1-based line number, a /glob/
pattern or an r/regex/ pattern; the end line is excluded unless the end
spec carries a trailing +. snipsync replaces everything between the two
markers with a fenced code block holding the current source lines.

Markdown files use HTML comment markers as above; reStructuredText files
use directive comments (.. code_snippet_start:...) and get an indented
code-block directive instead of a fence.
`

// Execute runs the CLI and returns the process exit code: 0 on success,
// 2 when --check found stale files or a snippet marker could not be
// resolved, 1 for I/O and usage failures.
func Execute(args []string, stdout, stderr io.Writer) int {
	opts := &options{stdout: stdout, stderr: stderr}

	root := newRootCmd(opts)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errChangesNeeded):
		return 2
	case errors.Is(err, errMarkerFailed):
		return 2
	default:
		fmt.Fprintln(stderr, "snipsync:", err)

		return 1
	}
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "snipsync [flags] [file ...]",
		Short:         "Keep documentation code snippets in sync with their source files",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return runSync(opts, append(opts.inputs, args...))
		},

		DisableAutoGenTag: true,
	}

	cmd.Version = Version
	cmd.SetVersionTemplate("snipsync {{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.StringArrayVarP(&opts.inputs, "input", "i", nil, "documentation file to update (repeatable)")
	flags.StringVar(&opts.config, "config", "", "YAML file with language-map overrides")
	flags.IntVarP(&opts.jobs, "jobs", "j", runtime.NumCPU(), "maximum number of files processed concurrently")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress status output")

	cmd.Flags().BoolVar(&opts.check, "check", false, "report files that would change without modifying them; exit 2 if any would")

	cmd.AddCommand(listCmd(opts))

	return cmd
}

// newProcessor builds the rewriter, loading language-map overrides from
// --config or, when present, the default config file.
func newProcessor(opts *options) (*docsync.Processor, error) {
	langs := lang.NewMap()

	path := opts.config
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}

	if path != "" {
		cfg, err := lang.LoadConfig(path)
		if err != nil {
			return nil, err
		}

		langs.Apply(cfg)
	}

	return &docsync.Processor{Languages: langs}, nil
}
