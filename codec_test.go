package inifile

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		in   string
		want Value
	}{
		{in: "42", want: NewInt(42)},
		{in: "  -7 ", want: NewInt(-7)},
		{in: "+3", want: NewInt(3)},
		{in: "1.5", want: NewFloat(1.5)},
		{in: "2.5f", want: NewFloat(2.5)},
		{in: "1.0F", want: NewFloat(1)},
		{in: ".5", want: NewFloat(0.5)},
		{in: "true", want: NewBool(true)},
		{in: "TRUE", want: NewBool(true)},
		{in: "False", want: NewBool(false)},
		{in: "nOnE", want: None()},
		{in: `"quoted"`, want: NewString("quoted")},
		{in: `'single'`, want: NewString("single")},
		{in: `""`, want: NewString("")},
		{in: `"  padded  "`, want: NewString("  padded  ")},
		{in: `"42"`, want: NewString("42")},
		{in: `"no \"escapes\""`, want: NewString(`no \"escapes\"`)},
		{in: `"mixed'`, want: NewString(`"mixed'`)},
		{in: "foo-bar", want: NewString("foo-bar")},
		{in: "1.2.3", want: NewString("1.2.3")},
		{in: "0x10", want: NewString("0x10")},
		{in: "99999999999999999999", want: NewString("99999999999999999999")},
		{in: "", want: NewString("")},
		{in: "x", want: NewString("x")},
		{in: "[]", want: NewList()},
		{in: "( )", want: NewTuple()},
		{in: "{}", want: NewMap()},
		{in: "[1, 2,]", want: NewList(NewInt(1), NewInt(2))},
		{in: "(1, 'a')", want: NewTuple(NewInt(1), NewString("a"))},
		{in: "(1)", want: NewTuple(NewInt(1))},
		{in: "{1, 2, 2}", want: NewSet(NewInt(1), NewInt(2))},
		{
			in: "[1, [2, 3], {4: 5}]",
			want: NewList(
				NewInt(1),
				NewList(NewInt(2), NewInt(3)),
				NewMap(Entry{Key: NewInt(4), Value: NewInt(5)}),
			),
		},
		{
			in: `{"a": [1, 2], "b": none}`,
			want: NewMap(
				Entry{Key: NewString("a"), Value: NewList(NewInt(1), NewInt(2))},
				Entry{Key: NewString("b"), Value: None()},
			),
		},
		{
			in:   "{1: {2: (3, 4)}}",
			want: NewMap(Entry{Key: NewInt(1), Value: NewMap(Entry{Key: NewInt(2), Value: NewTuple(NewInt(3), NewInt(4))})}),
		},
		{
			in:   "{{1: 2}}",
			want: NewSet(NewMap(Entry{Key: NewInt(1), Value: NewInt(2)})),
		},
		{in: `["a,b", "c"]`, want: NewList(NewString("a,b"), NewString("c"))},
		{in: `['x]', "(y"]`, want: NewList(NewString("x]"), NewString("(y"))},
		{in: `{"k:x": 1}`, want: NewMap(Entry{Key: NewString("k:x"), Value: NewInt(1)})},
		{in: "[foo, 1]", want: NewList(NewString("foo"), NewInt(1))},
		{in: "[don't, 2]", want: NewList(NewString("don't"), NewInt(2))},
		// malformed composites stay strings
		{in: "[1, (2]", want: NewString("[1, (2]")},
		{in: "[1] + [2]", want: NewString("[1] + [2]")},
		{in: "[1,,2]", want: NewString("[1,,2]")},
		{in: "{a: 1, b}", want: NewString("{a: 1, b}")},
		{in: `["open]`, want: NewString(`["open]`)},
		{in: "[1, 2] extra", want: NewString("[1, 2] extra")},
	} {
		got := Decode(tc.in)
		assert.True(t, got.Equal(tc.want), "Decode(%q) = %s (%s), want %s (%s)", tc.in, got, got.Kind(), tc.want, tc.want.Kind())
	}
}

func TestDecodeNestedKinds(t *testing.T) {
	t.Parallel()

	v := Decode("[1, [2, 3], {4: 5}]")
	assert.Equal(t, KindList, v.Kind())
	items := v.Items()
	assert.Len(t, items, 3)
	assert.Equal(t, KindInt, items[0].Kind())
	assert.Equal(t, KindList, items[1].Kind())
	assert.Equal(t, 2, items[1].Len())
	assert.Equal(t, KindMap, items[2].Kind())

	five, found := items[2].Lookup(NewInt(4))
	assert.True(t, found)
	assert.True(t, five.Equal(NewInt(5)))
}

func TestDecodeNestingLimit(t *testing.T) {
	t.Parallel()

	nested := func(depth int) string {
		return strings.Repeat("[", depth) + "1" + strings.Repeat("]", depth)
	}

	v := Decode(nested(maxNesting + 1))
	for range maxNesting + 1 {
		assert.Equal(t, KindList, v.Kind())
		assert.Equal(t, 1, v.Len())
		v = v.Items()[0]
	}
	assert.True(t, v.Equal(NewInt(1)))

	for _, depth := range []int{maxNesting + 2, 20000} {
		in := nested(depth)
		assert.True(t, Decode(in).Equal(NewString(in)), depth)
	}

	// the limit applies to every element, not only the outermost one
	in := "[1, " + nested(maxNesting+1) + "]"
	assert.True(t, Decode(in).Equal(NewString(in)))
}

func TestEncode(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		in   Value
		want string
	}{
		{in: NewString("a"), want: `"a"`},
		{in: NewString(`say "hi"`), want: `'say "hi"'`},
		{in: NewString(""), want: `""`},
		{in: NewInt(-12), want: "-12"},
		{in: NewFloat(1.5), want: "1.5"},
		{in: NewFloat(2), want: "2.0"},
		{in: NewFloat(1e21), want: "1.0e+21"},
		{in: NewFloat(1.5e-7), want: "1.5e-07"},
		{in: NewBool(true), want: "true"},
		{in: NewBool(false), want: "false"},
		{in: None(), want: "none"},
		{in: NewList(), want: "[]"},
		{in: NewList(NewInt(1), NewString("a")), want: `[1, "a"]`},
		{in: NewTuple(NewInt(1)), want: "(1)"},
		{in: NewSet(NewInt(1), NewInt(1), NewInt(2)), want: "{1, 2}"},
		{in: NewMap(Entry{Key: NewString("a"), Value: NewList(NewInt(1))}), want: `{"a": [1]}`},
	} {
		assert.Equal(t, tc.want, Encode(tc.in))
		assert.Equal(t, tc.want, tc.in.String())
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, v := range []Value{
		NewString("plain"),
		NewString(""),
		NewString("  padded  "),
		NewString("true"),
		NewString("42"),
		NewString("1.5"),
		NewString("[1, 2]"),
		NewString("a,b:c"),
		NewString(`say "hi"`),
		NewString("it's"),
		NewInt(0),
		NewInt(math.MaxInt64),
		NewInt(math.MinInt64),
		NewFloat(0),
		NewFloat(-0.25),
		NewFloat(3),
		NewFloat(1e21),
		NewFloat(1.5e-300),
		NewBool(true),
		NewBool(false),
		None(),
		NewList(),
		NewTuple(),
		NewMap(),
		NewList(NewInt(1), NewList(NewInt(2), NewInt(3)), NewMap(Entry{Key: NewInt(4), Value: NewInt(5)})),
		NewTuple(NewString("a,b"), NewString("x]"), NewString("y:z")),
		NewSet(NewString("a"), NewTuple(NewInt(1), NewInt(2)), None()),
		NewMap(
			Entry{Key: NewTuple(NewInt(1), NewInt(2)), Value: NewString("pair")},
			Entry{Key: NewString("k:v"), Value: NewSet(NewInt(1))},
			Entry{Key: NewBool(true), Value: NewMap(Entry{Key: NewString("deep"), Value: NewList(NewFloat(0.5))})},
		),
		NewList(NewString(`q"uote`), NewString("don't")),
	} {
		got := Decode(Encode(v))
		assert.True(t, got.Equal(v), "round trip of %s (%s) gave %s (%s)", v, v.Kind(), got, got.Kind())
	}
}

func TestTopLevel(t *testing.T) {
	t.Parallel()

	idx, ok := topLevel(`1, [2, 3], {4: 5}, "6,7"`, ',')
	assert.True(t, ok)
	assert.Equal(t, []int{1, 9, 17}, idx)

	idx, ok = topLevel(`"a:b": c`, ':')
	assert.True(t, ok)
	assert.Equal(t, []int{5}, idx)

	_, ok = topLevel("(]", ',')
	assert.False(t, ok)

	_, ok = topLevel("[[", ',')
	assert.False(t, ok)

	_, ok = topLevel(`"abc`, ',')
	assert.False(t, ok)
}
