package inifile

import (
	"strconv"
	"strings"

	"github.com/gopasspw/gopass/pkg/debug"
)

// Decode converts a literal into a Value. It never fails: text that is not
// a recognized literal decodes to a String holding the trimmed text.
//
// Recognized literals, in the order they are tried:
//
//   - "..." or '...' (matching quotes, no escape processing) -> String
//   - (a, b) -> Tuple, [a, b] -> List, {a, b} -> Set, {k: v} -> Map
//   - true, false, none (any case) -> Bool, Bool, None
//   - anything containing a dot -> Float (a trailing f is ignored, e.g. 1.5f)
//   - base 10 integers -> Int
//
// Composite literals are split at top-level commas only, so nested
// containers and quoted strings keep their commas. A malformed composite
// (unbalanced brackets, unterminated quote, empty element, map element
// without a colon, nesting deeper than maxNesting) decodes to a String of
// the whole text.
func Decode(text string) Value {
	s := strings.TrimSpace(text)
	if len(s) < 2 {
		return decodeScalar(s)
	}

	first, last := s[0], s[len(s)-1]
	switch {
	case (first == '"' || first == '\'') && last == first:
		return NewString(s[1 : len(s)-1])
	case first == '(' && last == ')', first == '[' && last == ']', first == '{' && last == '}':
		v, ok := decodeComposite(s)
		if !ok {
			debug.V(3).Log("malformed composite literal %q, using it as a string", s)

			return NewString(s)
		}

		return v
	}

	return decodeScalar(s)
}

func decodeScalar(s string) Value {
	switch strings.ToLower(s) {
	case "true":
		return NewBool(true)
	case "false":
		return NewBool(false)
	case "none":
		return None()
	}

	if strings.Contains(s, ".") {
		num := strings.TrimSuffix(strings.TrimSuffix(s, "f"), "F")
		if f, err := strconv.ParseFloat(num, 64); err == nil {
			return NewFloat(f)
		}

		return NewString(s)
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewInt(i)
	}

	return NewString(s)
}

func decodeComposite(s string) (Value, bool) {
	parts, ok := splitElements(s[1 : len(s)-1])
	if !ok {
		return Value{}, false
	}

	switch s[0] {
	case '(':
		return NewTuple(decodeAll(parts)...), true
	case '[':
		return NewList(decodeAll(parts)...), true
	}

	// {} is ambiguous, it's an empty map like in most languages with
	// this literal syntax.
	if len(parts) == 0 {
		return NewMap(), true
	}

	isMap := false
	for _, p := range parts {
		if _, _, found := cutTopLevel(p, ':'); found {
			isMap = true

			break
		}
	}
	if !isMap {
		return NewSet(decodeAll(parts)...), true
	}

	entries := make([]Entry, 0, len(parts))
	for _, p := range parts {
		k, v, found := cutTopLevel(p, ':')
		if !found {
			return Value{}, false
		}
		entries = append(entries, Entry{Key: Decode(k), Value: Decode(v)})
	}

	return NewMap(entries...), true
}

func decodeAll(parts []string) []Value {
	out := make([]Value, 0, len(parts))
	for _, p := range parts {
		out = append(out, Decode(p))
	}

	return out
}

// splitElements splits the interior of a composite literal at its top-level
// commas. An empty interior has no elements and a single trailing comma is
// allowed.
func splitElements(s string) ([]string, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, true
	}

	idx, ok := topLevel(s, ',')
	if !ok {
		return nil, false
	}

	parts := make([]string, 0, len(idx)+1)
	start := 0
	for _, i := range idx {
		parts = append(parts, s[start:i])
		start = i + 1
	}
	parts = append(parts, s[start:])

	if len(parts) > 1 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return nil, false
		}
	}

	return parts, true
}

// cutTopLevel slices s around the first top-level sep.
func cutTopLevel(s string, sep byte) (before, after string, found bool) { //nolint:nonamedreturns
	idx, ok := topLevel(s, sep)
	if !ok || len(idx) == 0 {
		return s, "", false
	}

	return s[:idx[0]], s[idx[0]+1:], true
}

// maxNesting is the deepest bracket nesting Decode accepts. Every level
// rescans its interior, so the limit bounds the decoding work to a constant
// number of passes over the text.
const maxNesting = 64

// topLevel returns the offsets of sep outside of any brackets or quoted
// strings. A quote only opens a string at the start of an element, i.e.
// after an opening bracket, a comma or a colon, so apostrophes inside bare
// words are ordinary characters. ok is false if brackets don't match, are
// nested deeper than maxNesting or a quote is not terminated.
func topLevel(s string, sep byte) ([]int, bool) {
	var idx []int
	var stack []byte
	var quote byte
	prev := byte(',')

	for i := range len(s) {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
				prev = c
			}

			continue
		}

		switch c {
		case '"', '\'':
			if strings.IndexByte("([{,:", prev) >= 0 {
				quote = c
			}
		case '(', '[', '{':
			if len(stack) == maxNesting {
				return nil, false
			}
			stack = append(stack, closerOf(c))
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return nil, false
			}
			stack = stack[:len(stack)-1]
		case sep:
			if len(stack) == 0 {
				idx = append(idx, i)
			}
		}

		if !isSpace(c) {
			prev = c
		}
	}

	return idx, len(stack) == 0 && quote == 0
}

func closerOf(c byte) byte {
	switch c {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

// Encode renders v as a literal that Decode turns back into an equal Value.
// Strings are always quoted. The output is not necessarily identical to the
// text a value was decoded from (e.g. 1.5f encodes as 1.5).
//
// Some values have no literal form: strings containing both quote
// characters, NaN and infinite floats, containers nested more than
// maxNesting+1 levels deep, and the empty set, which encodes as {} and
// therefore decodes as an empty map.
func Encode(v Value) string {
	var sb strings.Builder
	encodeTo(&sb, v)

	return sb.String()
}

func encodeTo(sb *strings.Builder, v Value) {
	switch v.kind {
	case KindString:
		q := `"`
		if strings.Contains(v.s, `"`) {
			q = `'`
		}
		sb.WriteString(q)
		sb.WriteString(v.s)
		sb.WriteString(q)
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		sb.WriteString(formatFloat(v.f))
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindNone:
		sb.WriteString("none")
	case KindList:
		encodeItems(sb, "[", "]", v.items)
	case KindTuple:
		encodeItems(sb, "(", ")", v.items)
	case KindSet:
		encodeItems(sb, "{", "}", v.items)
	case KindMap:
		sb.WriteString("{")
		for i := range v.items {
			if i > 0 {
				sb.WriteString(", ")
			}
			encodeTo(sb, v.items[i])
			sb.WriteString(": ")
			encodeTo(sb, v.vals[i])
		}
		sb.WriteString("}")
	}
}

func encodeItems(sb *strings.Builder, open, closer string, items []Value) {
	sb.WriteString(open)
	for i, it := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		encodeTo(sb, it)
	}
	sb.WriteString(closer)
}

// formatFloat uses the shortest representation but always includes a dot,
// otherwise the literal would decode as an int.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".NI") {
		return s
	}
	if e := strings.IndexByte(s, 'e'); e >= 0 {
		return s[:e] + ".0" + s[e:]
	}

	return s + ".0"
}
