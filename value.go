package inifile

import (
	"fmt"
	"math"
)

// Kind is the type tag of a Value.
type Kind int

// The value kinds. The zero Value is a String.
const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindNone
	KindList
	KindTuple
	KindSet
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindNone:
		return "none"
	case KindList:
		return "list"
	case KindTuple:
		return "tuple"
	case KindSet:
		return "set"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a decoded config value. Values are immutable; containers hold
// other Values and may be nested arbitrarily.
//
// Construct values with NewString, NewInt, NewFloat, NewBool, None, NewList,
// NewTuple, NewSet and NewMap, or obtain them from Decode.
type Value struct {
	kind  Kind
	s     string
	i     int64
	f     float64
	b     bool
	items []Value // list, tuple and set elements, map keys
	vals  []Value // map values, parallel to items
}

// Entry is a single key-value pair of a map Value.
type Entry struct {
	Key   Value
	Value Value
}

// NewString returns a string value.
func NewString(s string) Value { return Value{kind: KindString, s: s} }

// NewInt returns an integer value.
func NewInt(i int64) Value { return Value{kind: KindInt, i: i} }

// NewFloat returns a float value.
func NewFloat(f float64) Value { return Value{kind: KindFloat, f: f} }

// NewBool returns a boolean value.
func NewBool(b bool) Value { return Value{kind: KindBool, b: b} }

// None returns the none value.
func None() Value { return Value{kind: KindNone} }

// NewList returns an ordered list value.
func NewList(items ...Value) Value {
	return Value{kind: KindList, items: clone(items)}
}

// NewTuple returns an ordered tuple value.
func NewTuple(items ...Value) Value {
	return Value{kind: KindTuple, items: clone(items)}
}

// NewSet returns a set value. Duplicates collapse into the first occurrence.
func NewSet(items ...Value) Value {
	out := make([]Value, 0, len(items))
	for _, it := range items {
		if indexOf(out, it) < 0 {
			out = append(out, it)
		}
	}

	return Value{kind: KindSet, items: out}
}

// NewMap returns a map value. A repeated key keeps its first position but
// takes the last value.
func NewMap(entries ...Entry) Value {
	v := Value{
		kind:  KindMap,
		items: make([]Value, 0, len(entries)),
		vals:  make([]Value, 0, len(entries)),
	}
	for _, e := range entries {
		if i := indexOf(v.items, e.Key); i >= 0 {
			v.vals[i] = e.Value

			continue
		}
		v.items = append(v.items, e.Key)
		v.vals = append(v.vals, e.Value)
	}

	return v
}

// Kind returns the type tag.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string if v is a string.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// Int returns the integer if v is an int.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

// Float returns the float if v is a float. Ints are converted.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// Bool returns the boolean if v is a bool.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// IsNone reports whether v is the none value.
func (v Value) IsNone() bool { return v.kind == KindNone }

// IsContainer reports whether v is a list, tuple, set or map.
func (v Value) IsContainer() bool {
	switch v.kind {
	case KindList, KindTuple, KindSet, KindMap:
		return true
	default:
		return false
	}
}

// Len returns the number of elements of a container and 0 otherwise.
func (v Value) Len() int { return len(v.items) }

// Items returns the elements of a list, tuple or set. For maps it returns
// the keys.
func (v Value) Items() []Value { return clone(v.items) }

// Entries returns the key-value pairs of a map in insertion order.
func (v Value) Entries() []Entry {
	if v.kind != KindMap {
		return nil
	}
	out := make([]Entry, 0, len(v.items))
	for i := range v.items {
		out = append(out, Entry{Key: v.items[i], Value: v.vals[i]})
	}

	return out
}

// Lookup returns the map value stored under key.
func (v Value) Lookup(key Value) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	i := indexOf(v.items, key)
	if i < 0 {
		return Value{}, false
	}

	return v.vals[i], true
}

// Contains reports whether a list, tuple or set holds elem, or a map holds
// the key elem.
func (v Value) Contains(elem Value) bool {
	return v.IsContainer() && indexOf(v.items, elem) >= 0
}

// Equal reports whether both values have the same kind and content. Sets and
// maps compare without regard to order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindString:
		return v.s == o.s
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	case KindBool:
		return v.b == o.b
	case KindNone:
		return true
	case KindList, KindTuple:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}

		return true
	case KindSet:
		if len(v.items) != len(o.items) {
			return false
		}
		for _, it := range v.items {
			if indexOf(o.items, it) < 0 {
				return false
			}
		}

		return true
	case KindMap:
		if len(v.items) != len(o.items) {
			return false
		}
		for i, k := range v.items {
			ov, found := o.Lookup(k)
			if !found || !v.vals[i].Equal(ov) {
				return false
			}
		}

		return true
	}

	return false
}

// String implements fmt.Stringer and returns the encoded literal.
func (v Value) String() string {
	return Encode(v)
}

// Interface converts v to plain Go values: string, int64, float64, bool,
// nil, []any for lists, tuples and sets and map[string]any for maps. Map keys
// that are not strings are rendered with Encode.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindNone:
		return nil
	case KindMap:
		out := make(map[string]any, len(v.items))
		for i, k := range v.items {
			ks, ok := k.Str()
			if !ok {
				ks = Encode(k)
			}
			out[ks] = v.vals[i].Interface()
		}

		return out
	default:
		out := make([]any, 0, len(v.items))
		for _, it := range v.items {
			out = append(out, it.Interface())
		}

		return out
	}
}

func indexOf(vs []Value, v Value) int {
	for i := range vs {
		if vs[i].Equal(v) {
			return i
		}
	}

	return -1
}

func clone(vs []Value) []Value {
	if vs == nil {
		return []Value{}
	}

	return append(make([]Value, 0, len(vs)), vs...)
}
