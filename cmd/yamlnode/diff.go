package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// lineDiff compares from and to line by line.
func lineDiff(from, to string) []diffpatch.Diff {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// writeDiff prints diffs as "+"/"-"/" " prefixed lines and reports whether
// anything changed.
func writeDiff(w io.Writer, diffs []diffpatch.Diff) bool {
	var (
		added   = color.New(color.FgGreen)
		removed = color.New(color.FgRed)
		changed bool
	)
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			switch d.Type {
			case diffpatch.DiffInsert:
				changed = true
				added.Fprintf(w, "+%s\n", line)
			case diffpatch.DiffDelete:
				changed = true
				removed.Fprintf(w, "-%s\n", line)
			case diffpatch.DiffEqual:
				fmt.Fprintf(w, " %s\n", line)
			}
		}
	}
	return changed
}
