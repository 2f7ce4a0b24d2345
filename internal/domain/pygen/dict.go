package pygen

import (
	"fmt"
	"math/rand"

	m "winnow.dev/pkg/winnow/internal/model"
)

// DictNode generates Python dicts from a key node and a value node. Its
// domains are entry counts.
type DictNode struct {
	domains

	key Node
	val Node
}

// NewDictNode creates a DictNode over the given key and value nodes.
func NewDictNode(key, val Node) *DictNode {
	return &DictNode{key: key, val: val}
}

// ExhaustiveValues implements Node. For each entry count n it produces
// every dict of exactly n distinct keys drawn from the key child's
// exhaustive values, each paired with an independently chosen value from
// the value child's exhaustive values. Counts exceeding the number of
// distinct keys are infeasible and skipped; count 0 yields the empty dict.
func (n *DictNode) ExhaustiveValues() ([]m.Value, error) {
	counts, err := n.exInts()
	if err != nil {
		return nil, fmt.Errorf("dict node: %w", err)
	}

	keyValues, err := n.key.ExhaustiveValues()
	if err != nil {
		return nil, fmt.Errorf("dict node: %w", err)
	}

	keyValues = dedupValues(keyValues)

	valValues, err := n.val.ExhaustiveValues()
	if err != nil {
		return nil, fmt.Errorf("dict node: %w", err)
	}

	var values []m.Value

	for _, count := range counts {
		if count > len(keyValues) {
			continue
		}

		for _, keyCombo := range combinations(keyValues, count) {
			for _, valTuple := range cartesianPower(valValues, count) {
				entries := make([]m.DictEntry, 0, count)
				for i, k := range keyCombo {
					entries = append(entries, m.DictEntry{Key: k, Val: valTuple[i]})
				}

				values = append(values, m.NewDict(entries))
			}
		}
	}

	return dedupValues(values), nil
}

// Sample implements Node. Key collisions are discarded and redrawn up to
// maxDrawRetries consecutive misses; values are sampled independently per
// accepted key. On a finite key domain the dict may come back smaller than
// the drawn entry count.
func (n *DictNode) Sample(rng *rand.Rand) (m.Value, error) {
	count, err := n.ranPickInt(rng)
	if err != nil {
		return nil, fmt.Errorf("dict node: %w", err)
	}

	seen := make(map[string]struct{}, count)
	entries := make([]m.DictEntry, 0, count)
	misses := 0

	for len(entries) < count && misses < maxDrawRetries {
		k, err := n.key.Sample(rng)
		if err != nil {
			return nil, fmt.Errorf("dict node: %w", err)
		}

		if _, dup := seen[k.Key()]; dup {
			misses++
			continue
		}

		v, err := n.val.Sample(rng)
		if err != nil {
			return nil, fmt.Errorf("dict node: %w", err)
		}

		seen[k.Key()] = struct{}{}

		entries = append(entries, m.DictEntry{Key: k, Val: v})
		misses = 0
	}

	return m.NewDict(entries), nil
}

// Left implements Node.
func (n *DictNode) Left() Node { return n.key }

// Right implements Node.
func (n *DictNode) Right() Node { return n.val }
