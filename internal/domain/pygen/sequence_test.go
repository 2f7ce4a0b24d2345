package pygen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	m "winnow.dev/pkg/winnow/internal/model"
)

func intNodeWith(ex, ran []float64) *IntNode {
	n := NewIntNode()
	n.SetExDomain(ex)
	n.SetRanDomain(ran)

	return n
}

func TestListNode_ExhaustiveValues(t *testing.T) {
	n := NewListNode(intNodeWith([]float64{1, 2}, nil))
	n.SetExDomain([]float64{2})

	values, err := n.ExhaustiveValues()
	require.NoError(t, err)

	got := make([]string, 0, len(values))
	for _, v := range values {
		got = append(got, v.Literal())
	}

	// Ordered pairs with repetition, in element-domain order.
	require.Equal(t, []string{"[1, 1]", "[1, 2]", "[2, 1]", "[2, 2]"}, got)
}

func TestListNode_LengthZeroYieldsEmptyList(t *testing.T) {
	n := NewListNode(intNodeWith([]float64{1, 2}, nil))
	n.SetExDomain([]float64{0})

	values, err := n.ExhaustiveValues()
	require.NoError(t, err)
	require.Equal(t, []m.Value{m.NewList(nil)}, values)
}

func TestListNode_MultipleLengths(t *testing.T) {
	n := NewListNode(intNodeWith([]float64{1, 2}, nil))
	n.SetExDomain([]float64{0, 1, 2})

	values, err := n.ExhaustiveValues()
	require.NoError(t, err)
	// 1 empty + 2 singletons + 4 pairs.
	require.Len(t, values, 7)
}

func TestTupleNode_ExhaustiveValues(t *testing.T) {
	n := NewTupleNode(intNodeWith([]float64{1, 2}, nil))
	n.SetExDomain([]float64{1})

	values, err := n.ExhaustiveValues()
	require.NoError(t, err)

	got := make([]string, 0, len(values))
	for _, v := range values {
		got = append(got, v.Literal())
	}

	require.Equal(t, []string{"(1,)", "(2,)"}, got)
}

func TestSetNode_ExhaustiveValuesCollapseOrderAndRepetition(t *testing.T) {
	n := NewSetNode(intNodeWith([]float64{1, 2}, nil))
	n.SetExDomain([]float64{2})

	values, err := n.ExhaustiveValues()
	require.NoError(t, err)

	got := make([]string, 0, len(values))
	for _, v := range values {
		got = append(got, v.Literal())
	}

	// [1,1] and [2,2] collapse to singletons, [1,2] and [2,1] to one pair.
	require.ElementsMatch(t, []string{"{1}", "{2}", "{1, 2}"}, got)
}

func TestSetNode_SizeZeroYieldsEmptySet(t *testing.T) {
	n := NewSetNode(intNodeWith([]float64{1, 2}, nil))
	n.SetExDomain([]float64{0})

	values, err := n.ExhaustiveValues()
	require.NoError(t, err)
	require.Len(t, values, 1)
	require.Equal(t, "set()", values[0].Literal())
}

func TestListNode_SampleRespectsDomains(t *testing.T) {
	n := NewListNode(intNodeWith(nil, []float64{5, 6}))
	n.SetRanDomain([]float64{0, 3})

	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 1000; i++ {
		v, err := n.Sample(rng)
		require.NoError(t, err)

		elems := v.(m.ListValue).Elems
		require.Contains(t, []int{0, 3}, len(elems))

		for _, e := range elems {
			require.Contains(t, []int{5, 6}, e.(m.IntValue).V)
		}
	}
}

func TestSetNode_SampleDistinctElements(t *testing.T) {
	n := NewSetNode(intNodeWith(nil, []float64{1, 2, 3, 4}))
	n.SetRanDomain([]float64{3})

	rng := rand.New(rand.NewSource(9))

	for i := 0; i < 500; i++ {
		v, err := n.Sample(rng)
		require.NoError(t, err)

		elems := v.(m.SetValue).Elems
		require.Len(t, elems, 3)

		seen := map[string]bool{}
		for _, e := range elems {
			require.False(t, seen[e.Key()])
			seen[e.Key()] = true
		}
	}
}

func TestSetNode_SampleShortWhenElementDomainTooSmall(t *testing.T) {
	// The element domain holds two distinct values but five are requested;
	// the retry bound kicks in and the set comes back with two elements.
	n := NewSetNode(intNodeWith(nil, []float64{1, 2}))
	n.SetRanDomain([]float64{5})

	v, err := n.Sample(rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	require.Len(t, v.(m.SetValue).Elems, 2)
}

func TestSequenceNodes_ChildAccess(t *testing.T) {
	elem := NewIntNode()

	require.Same(t, Node(elem), NewListNode(elem).Left())
	require.Same(t, Node(elem), NewTupleNode(elem).Left())
	require.Same(t, Node(elem), NewSetNode(elem).Left())
	require.Nil(t, NewListNode(elem).Right())
}

func TestListNode_EmptyElementDomain(t *testing.T) {
	n := NewListNode(NewIntNode())
	n.SetExDomain([]float64{1})

	_, err := n.ExhaustiveValues()
	require.ErrorIs(t, err, ErrEmptyDomain)
}

func TestNestedList_ExhaustiveValues(t *testing.T) {
	inner := NewListNode(intNodeWith([]float64{7}, nil))
	inner.SetExDomain([]float64{1})

	outer := NewListNode(inner)
	outer.SetExDomain([]float64{2})

	values, err := outer.ExhaustiveValues()
	require.NoError(t, err)
	require.Len(t, values, 1)
	require.Equal(t, "[[7], [7]]", values[0].Literal())
}
