package inifile

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var keyValueTpl = "%-*s = %s\n"

// Format writes a fully reserialized rendering of the config to w: every
// section header followed by its keys in declaration order, with the '='
// aligned per section. Comments, blank lines, inert lines and shadowed
// duplicate keys are dropped. Values are written as they appear in the file.
//
// Format is a separate formatter. It does not change the config and Save
// never uses it.
func (c *Config) Format(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for i, name := range c.sections.order {
		s := c.sections.byName[name]
		if i > 0 {
			_, _ = bw.WriteString("\n")
		}
		_, _ = fmt.Fprintf(bw, "[%s]\n", name)

		if c.opts.SectionOnly {
			for _, l := range s.body {
				_, _ = bw.WriteString(l)
				_, _ = bw.WriteString("\n")
			}

			continue
		}

		keys := make([]string, 0, len(s.keys))
		width := 0
		for _, k := range s.keys {
			ek := c.escapeKey(k)
			keys = append(keys, ek)
			width = max(width, utf8.RuneCountInString(ek))
		}
		for j, k := range s.keys {
			_, _ = fmt.Fprintf(bw, keyValueTpl, width, keys[j], s.refs[k].Read())
		}
	}

	return bw.Flush()
}

// escapeKey protects characters that would otherwise end the key early when
// the formatted output is parsed again.
func (c *Config) escapeKey(key string) string {
	esc := string(c.opts.EscapeChar)
	var sb strings.Builder
	for _, r := range key {
		if r == '=' || r == c.opts.CommentChar || r == c.opts.EscapeChar {
			sb.WriteString(esc)
		}
		sb.WriteRune(r)
	}

	return sb.String()
}
