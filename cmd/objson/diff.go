package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// lineDiff renders the line level differences between from and to, one
// line per output line prefixed by "- ", "+ " or "  ". It returns "" when
// the texts are equal.
func lineDiff(from, to string, colored bool) string {
	if from == to {
		return ""
	}
	from, to = withNL(from), withNL(to)
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	del, ins := paint(color.FgRed, colored), paint(color.FgGreen, colored)
	sb := &strings.Builder{}
	for _, d := range diffs {
		prefix, p := "  ", fmt.Sprint
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, p = "- ", del
		case diffpatch.DiffInsert:
			prefix, p = "+ ", ins
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(p(prefix + strings.TrimSuffix(line, "\n")))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func paint(attr color.Attribute, on bool) func(...any) string {
	if !on {
		return fmt.Sprint
	}
	c := color.New(attr)
	c.EnableColor()
	return c.SprintFunc()
}

func withNL(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
