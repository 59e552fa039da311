package inifile

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gopasspw/gopass/pkg/debug"
)

// section is one [name] block. Depending on the parse mode either keys and
// refs or body is populated.
type section struct {
	name string
	keys []string // declaration order, without duplicates
	refs map[string]*ValueRef
	body []string // section-only mode
}

func (s *section) set(key string, ref *ValueRef) {
	if _, found := s.refs[key]; !found {
		s.keys = append(s.keys, key)
	}
	s.refs[key] = ref
}

// sectionTable holds the sections of a document in declaration order.
type sectionTable struct {
	order  []string
	byName map[string]*section
}

// parseConfig walks the lines once and builds the section table. The lines
// themselves are never altered, only a comment-stripped view of each line is
// used to detect headers and assignments. Since the view is a prefix of the
// line, offsets found in the view are valid in the line, too.
//
// Assignments split at the first unescaped '=', so each line yields at most
// one ValueRef. Later assignments of a key replace earlier ones.
func parseConfig(lines []string, opts Options) (*document, *sectionTable, error) {
	doc := &document{lines: lines}
	tbl := &sectionTable{
		byName: make(map[string]*section, 8),
	}

	var cur *section
	for i, line := range lines {
		view := stripComment(line, opts.CommentChar, opts.EscapeChar)
		trimmed := strings.TrimSpace(view)

		if len(trimmed) >= 2 && trimmed[0] == '[' && trimmed[len(trimmed)-1] == ']' {
			name := trimmed[1 : len(trimmed)-1]
			if _, found := tbl.byName[name]; found {
				return nil, nil, fmt.Errorf("%w %q on line %d", ErrDuplicateSection, name, i+1)
			}
			cur = &section{
				name: name,
				refs: make(map[string]*ValueRef, 8),
			}
			tbl.byName[name] = cur
			tbl.order = append(tbl.order, name)
			debug.V(3).Log("line %d: section %q", i+1, name)

			continue
		}

		if opts.SectionOnly {
			if trimmed == "" {
				continue
			}
			if cur == nil {
				return nil, nil, fmt.Errorf("%w: line %d: %q", ErrNoSection, i+1, trimmed)
			}
			cur.body = append(cur.body, trimmed)

			continue
		}

		eq := indexUnescaped(view, '=', opts.EscapeChar)
		if eq < 0 {
			debug.V(3).Log("line %d: no assignment in %q", i+1, trimmed)

			continue
		}

		key := unescape(strings.TrimSpace(view[:eq]), opts.EscapeChar)
		if cur == nil {
			return nil, nil, fmt.Errorf("%w: line %d: key %q", ErrNoSection, i+1, key)
		}

		rhs := view[eq+1:]
		value := strings.TrimSpace(rhs)
		from := eq + 1 + len(rhs) - len(strings.TrimLeftFunc(rhs, unicode.IsSpace))
		if value == "" {
			// place an empty value right after the blanks following the '=',
			// but in front of the line terminator.
			from = eq + 1 + len(rhs) - len(strings.TrimLeft(rhs, " \t"))
		}

		ref := &ValueRef{
			doc:  doc,
			line: i,
			from: from,
			to:   from + len(value),
		}
		cur.set(key, ref)
		debug.V(3).Log("line %d: %s.%s = %q [%d:%d]", i+1, cur.name, key, value, ref.from, ref.to)
	}

	return doc, tbl, nil
}

// stripComment cuts line at the first unescaped comment character. The
// escape character and the character following it are kept as they are.
func stripComment(line string, comment, escape rune) string {
	escaped := false
	for i, r := range line {
		switch {
		case escaped:
			escaped = false
		case r == escape:
			escaped = true
		case r == comment:
			return line[:i]
		}
	}

	return line
}

// indexUnescaped returns the byte offset of the first unescaped target or -1.
func indexUnescaped(s string, target, escape rune) int {
	escaped := false
	for i, r := range s {
		switch {
		case escaped:
			escaped = false
		case r == escape:
			escaped = true
		case r == target:
			return i
		}
	}

	return -1
}

// unescape removes escape characters, keeping the characters they protect.
func unescape(s string, escape rune) string {
	if !strings.ContainsRune(s, escape) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	escaped := false
	for _, r := range s {
		if !escaped && r == escape {
			escaped = true

			continue
		}
		escaped = false
		sb.WriteRune(r)
	}

	return sb.String()
}
