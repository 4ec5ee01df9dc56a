// Package changes reports what a repair did to a file as a line diff.
package changes

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a diff line.
type Op int8

const (
	Equal Op = iota
	Insert
	Delete
)

// Line is one line of a line-level diff.
type Line struct {
	Op   Op
	Text string
}

// Report is the diff between the original and repaired file.
type Report struct {
	Path    string
	Lines   []Line
	Added   int
	Removed int
}

// Changed reports whether the two versions differ.
func (r *Report) Changed() bool {
	return r.Added > 0 || r.Removed > 0
}

// Compute diffs before and after line by line.
func Compute(path, before, after string) *Report {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	rep := &Report{Path: path}
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = Insert
		case diffmatchpatch.DiffDelete:
			op = Delete
		}
		for _, text := range splitKeep(d.Text) {
			rep.Lines = append(rep.Lines, Line{Op: op, Text: text})
			switch op {
			case Insert:
				rep.Added++
			case Delete:
				rep.Removed++
			}
		}
	}
	return rep
}

// splitKeep splits text into lines without their terminators.
func splitKeep(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{""}
	}
	return strings.Split(text, "\n")
}

// Stat is the one-line summary: "path +N -M".
func (r *Report) Stat() string {
	return fmt.Sprintf("%s +%d -%d", r.Path, r.Added, r.Removed)
}

var (
	headerColor = color.New(color.FgYellow, color.Bold)
	addColor    = color.New(color.FgGreen)
	delColor    = color.New(color.FgRed)
)

// Write prints the changed lines with context lines of context around them.
func (r *Report) Write(w io.Writer, context int) error {
	if _, err := headerColor.Fprintf(w, "--- %s\n+++ %s (repaired)\n", r.Path, r.Path); err != nil {
		return err
	}
	keep := make([]bool, len(r.Lines))
	for i, l := range r.Lines {
		if l.Op == Equal {
			continue
		}
		for j := max(0, i-context); j <= min(len(r.Lines)-1, i+context); j++ {
			keep[j] = true
		}
	}
	gap := false
	for i, l := range r.Lines {
		if !keep[i] {
			gap = true
			continue
		}
		if gap {
			if _, err := fmt.Fprintln(w, "  ..."); err != nil {
				return err
			}
			gap = false
		}
		var err error
		switch l.Op {
		case Insert:
			_, err = addColor.Fprintf(w, "+ %s\n", l.Text)
		case Delete:
			_, err = delColor.Fprintf(w, "- %s\n", l.Text)
		default:
			_, err = fmt.Fprintf(w, "  %s\n", l.Text)
		}
		if err != nil {
			return err
		}
	}
	if gap {
		_, err := fmt.Fprintln(w, "  ...")
		return err
	}
	return nil
}
