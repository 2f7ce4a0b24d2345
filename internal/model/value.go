// Package model defines the data structures for concise test-set generation.
package model

import (
	"encoding/gob"
	"sort"
	"strconv"
	"strings"
)

// Values travel through gob-encoded disk spills, so every concrete kind
// must be registered for the Value interface.
func init() {
	gob.Register(IntValue{})
	gob.Register(FloatValue{})
	gob.Register(BoolValue{})
	gob.Register(StrValue{})
	gob.Register(ListValue{})
	gob.Register(TupleValue{})
	gob.Register(SetValue{})
	gob.Register(DictValue{})
}

// Path represents a file system path.
type Path string

// ValueKind discriminates the concrete kind of a generated Value.
type ValueKind string

const (
	// KindInt is a Python int.
	KindInt ValueKind = "int"
	// KindFloat is a Python float.
	KindFloat ValueKind = "float"
	// KindBool is a Python bool.
	KindBool ValueKind = "bool"
	// KindStr is a Python str.
	KindStr ValueKind = "str"
	// KindList is a Python list.
	KindList ValueKind = "list"
	// KindTuple is a Python tuple.
	KindTuple ValueKind = "tuple"
	// KindSet is a Python set.
	KindSet ValueKind = "set"
	// KindDict is a Python dict.
	KindDict ValueKind = "dict"
)

// Value is one generated Python argument value.
//
// Key is a canonical identity string: two values are equal iff their keys
// are equal. Set and dict keys are order-insensitive so {1,2} and {2,1}
// collapse. Literal is valid Python source for the value, used to build the
// call expression handed to an implementation runner.
type Value interface {
	Kind() ValueKind
	Key() string
	Literal() string
}

// IntValue is a Python int.
type IntValue struct {
	V int
}

// NewInt creates an IntValue.
func NewInt(v int) IntValue { return IntValue{V: v} }

// Kind implements Value.
func (v IntValue) Kind() ValueKind { return KindInt }

// Key implements Value.
func (v IntValue) Key() string { return "int:" + strconv.Itoa(v.V) }

// Literal implements Value.
func (v IntValue) Literal() string { return strconv.Itoa(v.V) }

// FloatValue is a Python float.
type FloatValue struct {
	V float64
}

// NewFloat creates a FloatValue.
func NewFloat(v float64) FloatValue { return FloatValue{V: v} }

// Kind implements Value.
func (v FloatValue) Kind() ValueKind { return KindFloat }

// Key implements Value.
func (v FloatValue) Key() string {
	return "float:" + strconv.FormatFloat(v.V, 'g', -1, 64)
}

// Literal implements Value.
func (v FloatValue) Literal() string {
	s := strconv.FormatFloat(v.V, 'g', -1, 64)
	// Keep the literal a Python float even for whole numbers.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}

	return s
}

// BoolValue is a Python bool.
type BoolValue struct {
	V bool
}

// NewBool creates a BoolValue.
func NewBool(v bool) BoolValue { return BoolValue{V: v} }

// Kind implements Value.
func (v BoolValue) Kind() ValueKind { return KindBool }

// Key implements Value.
func (v BoolValue) Key() string {
	if v.V {
		return "bool:1"
	}

	return "bool:0"
}

// Literal implements Value.
func (v BoolValue) Literal() string {
	if v.V {
		return "True"
	}

	return "False"
}

// StrValue is a Python str.
type StrValue struct {
	V string
}

// NewStr creates a StrValue.
func NewStr(v string) StrValue { return StrValue{V: v} }

// Kind implements Value.
func (v StrValue) Kind() ValueKind { return KindStr }

// Key implements Value.
func (v StrValue) Key() string { return "str:" + strconv.Quote(v.V) }

// Literal implements Value.
func (v StrValue) Literal() string { return strconv.Quote(v.V) }

// ListValue is a Python list.
type ListValue struct {
	Elems []Value
}

// NewList creates a ListValue preserving element order.
func NewList(elems []Value) ListValue { return ListValue{Elems: elems} }

// Kind implements Value.
func (v ListValue) Kind() ValueKind { return KindList }

// Key implements Value.
func (v ListValue) Key() string { return "list:[" + joinKeys(v.Elems) + "]" }

// Literal implements Value.
func (v ListValue) Literal() string { return "[" + joinLiterals(v.Elems) + "]" }

// TupleValue is a Python tuple.
type TupleValue struct {
	Elems []Value
}

// NewTuple creates a TupleValue preserving element order.
func NewTuple(elems []Value) TupleValue { return TupleValue{Elems: elems} }

// Kind implements Value.
func (v TupleValue) Kind() ValueKind { return KindTuple }

// Key implements Value.
func (v TupleValue) Key() string { return "tuple:(" + joinKeys(v.Elems) + ")" }

// Literal implements Value.
func (v TupleValue) Literal() string {
	// A one-element Python tuple needs a trailing comma.
	if len(v.Elems) == 1 {
		return "(" + v.Elems[0].Literal() + ",)"
	}

	return "(" + joinLiterals(v.Elems) + ")"
}

// SetValue is a Python set. Elements are kept deduplicated and sorted by
// key so identity is order-insensitive.
type SetValue struct {
	Elems []Value
}

// NewSet creates a SetValue, collapsing duplicates and canonicalizing order.
func NewSet(elems []Value) SetValue {
	return SetValue{Elems: dedupSorted(elems)}
}

// Kind implements Value.
func (v SetValue) Kind() ValueKind { return KindSet }

// Key implements Value.
func (v SetValue) Key() string { return "set:{" + joinKeys(v.Elems) + "}" }

// Literal implements Value.
func (v SetValue) Literal() string {
	// There is no empty set literal in Python.
	if len(v.Elems) == 0 {
		return "set()"
	}

	return "{" + joinLiterals(v.Elems) + "}"
}

// DictEntry is one key/value pair of a DictValue.
type DictEntry struct {
	Key Value
	Val Value
}

// DictValue is a Python dict. Entries are kept sorted by the key's
// canonical key so identity is order-insensitive.
type DictValue struct {
	Entries []DictEntry
}

// NewDict creates a DictValue, canonicalizing entry order. Later duplicate
// keys overwrite earlier ones, matching Python dict construction.
func NewDict(entries []DictEntry) DictValue {
	byKey := make(map[string]DictEntry, len(entries))
	for _, entry := range entries {
		byKey[entry.Key.Key()] = entry
	}

	canonical := make([]DictEntry, 0, len(byKey))
	for _, entry := range byKey {
		canonical = append(canonical, entry)
	}

	sort.Slice(canonical, func(i, j int) bool {
		return canonical[i].Key.Key() < canonical[j].Key.Key()
	})

	return DictValue{Entries: canonical}
}

// Kind implements Value.
func (v DictValue) Kind() ValueKind { return KindDict }

// Key implements Value.
func (v DictValue) Key() string {
	parts := make([]string, 0, len(v.Entries))
	for _, entry := range v.Entries {
		parts = append(parts, entry.Key.Key()+"="+entry.Val.Key())
	}

	return "dict:{" + strings.Join(parts, ",") + "}"
}

// Literal implements Value.
func (v DictValue) Literal() string {
	parts := make([]string, 0, len(v.Entries))
	for _, entry := range v.Entries {
		parts = append(parts, entry.Key.Literal()+": "+entry.Val.Literal())
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

func joinKeys(elems []Value) string {
	parts := make([]string, 0, len(elems))
	for _, elem := range elems {
		parts = append(parts, elem.Key())
	}

	return strings.Join(parts, ",")
}

func joinLiterals(elems []Value) string {
	parts := make([]string, 0, len(elems))
	for _, elem := range elems {
		parts = append(parts, elem.Literal())
	}

	return strings.Join(parts, ", ")
}

func dedupSorted(elems []Value) []Value {
	seen := make(map[string]Value, len(elems))
	for _, elem := range elems {
		seen[elem.Key()] = elem
	}

	out := make([]Value, 0, len(seen))
	for _, elem := range seen {
		out = append(out, elem)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })

	return out
}
