package sizer

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"filesize/pkg/bytefmt"
)

// Run measures every path in order and renders one report line per path. A
// failing path contributes an error line and never interrupts its siblings;
// only context cancellation or a formatting failure aborts the run.
func Run(ctx context.Context, paths []string, opts Options, updates chan<- Progress) (Summary, []Outcome, error) {
	summary := Summary{}
	outcomes := make([]Outcome, 0, len(paths))

	for _, raw := range paths {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return summary, outcomes, err
			}
		}

		path := filepath.Clean(raw)
		if updates != nil {
			updates <- Progress{Current: path}
		}

		res, err := Compute(ctx, path, opts.Recursive, updates)
		if err != nil {
			if ctx != nil && ctx.Err() != nil {
				return summary, outcomes, ctx.Err()
			}
			summary.Paths++
			summary.Failed++
			outcomes = append(outcomes, Outcome{
				Path: path,
				Err:  err,
				Line: fmt.Sprintf("%s: Error - %v", path, err),
			})
			if updates != nil {
				updates <- Progress{PathsDelta: 1, ErrorsDelta: 1}
			}
			continue
		}

		line, err := renderLine(path, res, opts)
		if err != nil {
			return summary, outcomes, err
		}

		summary.Paths++
		summary.Files += res.Files
		summary.Bytes += res.Size
		outcomes = append(outcomes, Outcome{Path: path, Res: res, Line: line})
		if updates != nil {
			updates <- Progress{PathsDelta: 1}
		}
	}

	return summary, outcomes, nil
}

// renderLine produces the report line for one successful measurement.
func renderLine(path string, res Result, opts Options) (string, error) {
	if opts.Clean {
		return strconv.FormatInt(res.Size, 10), nil
	}

	var text string
	var err error
	if opts.Unit != nil {
		text, err = bytefmt.FormatUnit(res.Size, *opts.Unit)
	} else {
		text, err = bytefmt.Format(res.Size)
	}
	if err != nil {
		return "", fmt.Errorf("format size of %s: %w", path, err)
	}

	label := "files"
	if res.Files == 1 {
		label = "file"
	}
	return fmt.Sprintf("%s: %s (%d %s)", path, text, res.Files, label), nil
}

// Text joins the per-path lines into a single report block.
func Text(outcomes []Outcome) string {
	lines := make([]string, len(outcomes))
	for i, o := range outcomes {
		lines[i] = o.Line
	}
	return strings.Join(lines, "\n")
}
