package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarValues_Literal(t *testing.T) {
	require.Equal(t, "42", NewInt(42).Literal())
	require.Equal(t, "-7", NewInt(-7).Literal())
	require.Equal(t, "True", NewBool(true).Literal())
	require.Equal(t, "False", NewBool(false).Literal())
	require.Equal(t, `"ab"`, NewStr("ab").Literal())
	require.Equal(t, `""`, NewStr("").Literal())
}

func TestFloatValue_LiteralIsAlwaysAFloat(t *testing.T) {
	require.Equal(t, "1.5", NewFloat(1.5).Literal())
	require.Equal(t, "3.0", NewFloat(3).Literal())
	require.Equal(t, "-0.25", NewFloat(-0.25).Literal())
}

func TestScalarValues_KeyDistinguishesKinds(t *testing.T) {
	// 1 as int, float and bool must not collide.
	require.NotEqual(t, NewInt(1).Key(), NewFloat(1).Key())
	require.NotEqual(t, NewInt(1).Key(), NewBool(true).Key())
	require.NotEqual(t, NewInt(0).Key(), NewBool(false).Key())
}

func TestListValue_OrderSensitive(t *testing.T) {
	ab := NewList([]Value{NewInt(1), NewInt(2)})
	ba := NewList([]Value{NewInt(2), NewInt(1)})

	require.NotEqual(t, ab.Key(), ba.Key())
	require.Equal(t, "[1, 2]", ab.Literal())
}

func TestTupleValue_SingleElementLiteral(t *testing.T) {
	require.Equal(t, "(1,)", NewTuple([]Value{NewInt(1)}).Literal())
	require.Equal(t, "(1, 2)", NewTuple([]Value{NewInt(1), NewInt(2)}).Literal())
	require.Equal(t, "()", NewTuple(nil).Literal())
}

func TestSetValue_OrderInsensitive(t *testing.T) {
	ab := NewSet([]Value{NewInt(1), NewInt(2)})
	ba := NewSet([]Value{NewInt(2), NewInt(1)})

	require.Equal(t, ab.Key(), ba.Key())
	require.Equal(t, ab.Literal(), ba.Literal())
}

func TestSetValue_CollapsesDuplicates(t *testing.T) {
	s := NewSet([]Value{NewInt(1), NewInt(1), NewInt(2)})
	require.Len(t, s.Elems, 2)
}

func TestSetValue_EmptyLiteral(t *testing.T) {
	require.Equal(t, "set()", NewSet(nil).Literal())
}

func TestDictValue_OrderInsensitive(t *testing.T) {
	ab := NewDict([]DictEntry{
		{Key: NewInt(1), Val: NewStr("a")},
		{Key: NewInt(2), Val: NewStr("b")},
	})
	ba := NewDict([]DictEntry{
		{Key: NewInt(2), Val: NewStr("b")},
		{Key: NewInt(1), Val: NewStr("a")},
	})

	require.Equal(t, ab.Key(), ba.Key())
	require.Equal(t, ab.Literal(), ba.Literal())
}

func TestDictValue_LaterDuplicateKeyWins(t *testing.T) {
	d := NewDict([]DictEntry{
		{Key: NewInt(1), Val: NewStr("old")},
		{Key: NewInt(1), Val: NewStr("new")},
	})

	require.Len(t, d.Entries, 1)
	require.Equal(t, `{1: "new"}`, d.Literal())
}

func TestDictValue_EmptyLiteral(t *testing.T) {
	require.Equal(t, "{}", NewDict(nil).Literal())
}

func TestNestedValue_KeyAndLiteral(t *testing.T) {
	v := NewList([]Value{
		NewSet([]Value{NewInt(2), NewInt(1)}),
		NewSet([]Value{NewInt(1), NewInt(2)}),
	})

	// Both elements canonicalize to the same set.
	require.Equal(t, "[{1, 2}, {1, 2}]", v.Literal())
}
