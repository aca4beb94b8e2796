package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/snipsync/snipsync/internal/docsync"
)

const fileMode = 0o644

var errColor = color.New(color.FgRed)

// result is one file's outcome. Files are processed concurrently but
// reported in input order.
type result struct {
	path    string
	src     []byte
	out     []byte
	changed bool
	err     error
}

func runSync(opts *options, inputs []string) error {
	if len(inputs) == 0 {
		return errors.New("no input files specified")
	}

	proc, err := newProcessor(opts)
	if err != nil {
		return err
	}

	results := make([]result, len(inputs))

	g := new(errgroup.Group)
	g.SetLimit(max(opts.jobs, 1))

	for i, path := range inputs {
		i, path := i, path
		g.Go(func() error {
			results[i] = processFile(proc, path)

			return nil
		})
	}

	// Workers record their outcome instead of failing the group: one
	// file's failure must not block the others.
	_ = g.Wait()

	var markerFailures, ioFailures, changed int

	for _, res := range results {
		switch {
		case res.err != nil:
			var me *docsync.MarkerError
			if errors.As(res.err, &me) {
				markerFailures++
			} else {
				ioFailures++
			}

			fmt.Fprintln(opts.stderr, errColor.Sprint("snipsync: ")+res.err.Error())
		case !res.changed:
		case opts.check:
			changed++

			fmt.Fprintf(opts.stderr, "Changes required in %s:\n", res.path)
			printDiff(opts.stderr, string(res.src), string(res.out))
		default:
			if err := os.WriteFile(res.path, res.out, fileMode); err != nil {
				ioFailures++

				fmt.Fprintln(opts.stderr, errColor.Sprint("snipsync: ")+err.Error())

				continue
			}

			changed++

			opts.status("Updating %s...\n", res.path)
		}
	}

	switch {
	case ioFailures > 0:
		return fmt.Errorf("%d file(s) failed", ioFailures+markerFailures)
	case markerFailures > 0:
		return errMarkerFailed
	case opts.check && changed > 0:
		return errChangesNeeded
	}

	return nil
}

func processFile(proc *docsync.Processor, path string) result {
	res := result{path: path}

	src, err := os.ReadFile(path)
	if err != nil {
		res.err = err

		return res
	}

	res.src = src

	out, changed, err := proc.Rewrite(path, src)
	if err != nil {
		res.err = err

		return res
	}

	res.out = out
	res.changed = changed

	return res
}
