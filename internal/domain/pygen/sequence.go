package pygen

import (
	"fmt"
	"math/rand"

	m "winnow.dev/pkg/winnow/internal/model"
)

// ListNode generates Python lists of a single element type. Its domains
// are list lengths.
type ListNode struct {
	domains

	elem Node
}

// NewListNode creates a ListNode over the given element node.
func NewListNode(elem Node) *ListNode { return &ListNode{elem: elem} }

// ExhaustiveValues implements Node. For each length in the exhaustive
// domain it produces every ordered tuple over the element's exhaustive
// values, with repetition; length 0 yields exactly the empty list.
func (n *ListNode) ExhaustiveValues() ([]m.Value, error) {
	tuples, err := exhaustiveTuples(&n.domains, n.elem, "list")
	if err != nil {
		return nil, err
	}

	values := make([]m.Value, 0, len(tuples))
	for _, tuple := range tuples {
		values = append(values, m.NewList(tuple))
	}

	return dedupValues(values), nil
}

// Sample implements Node.
func (n *ListNode) Sample(rng *rand.Rand) (m.Value, error) {
	elems, err := sampleTuple(&n.domains, n.elem, rng, "list")
	if err != nil {
		return nil, err
	}

	return m.NewList(elems), nil
}

// Left implements Node.
func (n *ListNode) Left() Node { return n.elem }

// Right implements Node.
func (n *ListNode) Right() Node { return nil }

// TupleNode generates Python tuples of a single element type. Its domains
// are tuple lengths.
type TupleNode struct {
	domains

	elem Node
}

// NewTupleNode creates a TupleNode over the given element node.
func NewTupleNode(elem Node) *TupleNode { return &TupleNode{elem: elem} }

// ExhaustiveValues implements Node.
func (n *TupleNode) ExhaustiveValues() ([]m.Value, error) {
	tuples, err := exhaustiveTuples(&n.domains, n.elem, "tuple")
	if err != nil {
		return nil, err
	}

	values := make([]m.Value, 0, len(tuples))
	for _, tuple := range tuples {
		values = append(values, m.NewTuple(tuple))
	}

	return dedupValues(values), nil
}

// Sample implements Node.
func (n *TupleNode) Sample(rng *rand.Rand) (m.Value, error) {
	elems, err := sampleTuple(&n.domains, n.elem, rng, "tuple")
	if err != nil {
		return nil, err
	}

	return m.NewTuple(elems), nil
}

// Left implements Node.
func (n *TupleNode) Left() Node { return n.elem }

// Right implements Node.
func (n *TupleNode) Right() Node { return nil }

// SetNode generates Python sets of a single element type. Its domains are
// set sizes.
type SetNode struct {
	domains

	elem Node
}

// NewSetNode creates a SetNode over the given element node.
func NewSetNode(elem Node) *SetNode { return &SetNode{elem: elem} }

// ExhaustiveValues implements Node. Generation mirrors ListNode, then
// collapses each tuple to a set; tuples that differ only in order or
// repetition produce the same set and are deduplicated.
func (n *SetNode) ExhaustiveValues() ([]m.Value, error) {
	tuples, err := exhaustiveTuples(&n.domains, n.elem, "set")
	if err != nil {
		return nil, err
	}

	values := make([]m.Value, 0, len(tuples))
	for _, tuple := range tuples {
		values = append(values, m.NewSet(tuple))
	}

	return dedupValues(values), nil
}

// Sample implements Node. Element collisions are resampled up to
// maxDrawRetries consecutive misses; on a finite element domain the set
// may come back smaller than the drawn size.
func (n *SetNode) Sample(rng *rand.Rand) (m.Value, error) {
	size, err := n.ranPickInt(rng)
	if err != nil {
		return nil, fmt.Errorf("set node: %w", err)
	}

	seen := make(map[string]struct{}, size)
	elems := make([]m.Value, 0, size)
	misses := 0

	for len(elems) < size && misses < maxDrawRetries {
		elem, err := n.elem.Sample(rng)
		if err != nil {
			return nil, fmt.Errorf("set node: %w", err)
		}

		if _, dup := seen[elem.Key()]; dup {
			misses++
			continue
		}

		seen[elem.Key()] = struct{}{}

		elems = append(elems, elem)
		misses = 0
	}

	return m.NewSet(elems), nil
}

// Left implements Node.
func (n *SetNode) Left() Node { return n.elem }

// Right implements Node.
func (n *SetNode) Right() Node { return nil }

// exhaustiveTuples enumerates, for every length in the exhaustive domain,
// each ordered tuple over the element's exhaustive values.
func exhaustiveTuples(d *domains, elem Node, kind string) ([][]m.Value, error) {
	lengths, err := d.exInts()
	if err != nil {
		return nil, fmt.Errorf("%s node: %w", kind, err)
	}

	elemValues, err := elem.ExhaustiveValues()
	if err != nil {
		return nil, fmt.Errorf("%s node: %w", kind, err)
	}

	var tuples [][]m.Value
	for _, length := range lengths {
		tuples = append(tuples, cartesianPower(elemValues, length)...)
	}

	return tuples, nil
}

// sampleTuple draws a length from the random domain and samples that many
// element values, with repetition.
func sampleTuple(d *domains, elem Node, rng *rand.Rand, kind string) ([]m.Value, error) {
	length, err := d.ranPickInt(rng)
	if err != nil {
		return nil, fmt.Errorf("%s node: %w", kind, err)
	}

	elems := make([]m.Value, 0, length)

	for i := 0; i < length; i++ {
		v, err := elem.Sample(rng)
		if err != nil {
			return nil, fmt.Errorf("%s node: %w", kind, err)
		}

		elems = append(elems, v)
	}

	return elems, nil
}
