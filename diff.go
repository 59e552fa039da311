package inifile

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Dirty returns true if the config was changed since it was loaded or last
// saved.
func (c *Config) Dirty() bool {
	return c.doc.String() != c.saved
}

// Diff returns the lines changed since the config was loaded or last saved.
// Removed lines are prefixed with "-", added lines with "+". Unchanged lines
// are omitted. An unchanged config yields an empty string.
func (c *Config) Diff() string {
	cur := c.doc.String()
	if cur == c.saved {
		return ""
	}

	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(c.saved, cur)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "-"
		case diffpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, l := range splitLines(d.Text) {
			sb.WriteString(prefix)
			sb.WriteString(strings.TrimRight(l, "\r\n"))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
