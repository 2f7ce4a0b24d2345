package pygen

import (
	"fmt"
	"math/rand"

	m "winnow.dev/pkg/winnow/internal/model"
)

// IntNode generates Python ints. Its domains hold the literal values.
type IntNode struct {
	domains
}

// NewIntNode creates an IntNode with unset domains.
func NewIntNode() *IntNode { return &IntNode{} }

// ExhaustiveValues implements Node. The exhaustive value set is exactly
// the literal exhaustive domain.
func (n *IntNode) ExhaustiveValues() ([]m.Value, error) {
	lits, err := n.exInts()
	if err != nil {
		return nil, fmt.Errorf("int node: %w", err)
	}

	values := make([]m.Value, 0, len(lits))
	for _, lit := range lits {
		values = append(values, m.NewInt(lit))
	}

	return values, nil
}

// Sample implements Node.
func (n *IntNode) Sample(rng *rand.Rand) (m.Value, error) {
	v, err := n.ranPickInt(rng)
	if err != nil {
		return nil, fmt.Errorf("int node: %w", err)
	}

	return m.NewInt(v), nil
}

// Left implements Node.
func (n *IntNode) Left() Node { return nil }

// Right implements Node.
func (n *IntNode) Right() Node { return nil }

// FloatNode generates Python floats. Its domains hold the literal values.
type FloatNode struct {
	domains
}

// NewFloatNode creates a FloatNode with unset domains.
func NewFloatNode() *FloatNode { return &FloatNode{} }

// ExhaustiveValues implements Node.
func (n *FloatNode) ExhaustiveValues() ([]m.Value, error) {
	if len(n.ex) == 0 {
		return nil, fmt.Errorf("float node: %w", ErrEmptyDomain)
	}

	values := make([]m.Value, 0, len(n.ex))
	for _, lit := range n.ex {
		values = append(values, m.NewFloat(lit))
	}

	return values, nil
}

// Sample implements Node.
func (n *FloatNode) Sample(rng *rand.Rand) (m.Value, error) {
	v, err := n.ranPick(rng)
	if err != nil {
		return nil, fmt.Errorf("float node: %w", err)
	}

	return m.NewFloat(v), nil
}

// Left implements Node.
func (n *FloatNode) Left() Node { return nil }

// Right implements Node.
func (n *FloatNode) Right() Node { return nil }

// BoolNode generates Python bools. Its domains are restricted to 0 and 1,
// mapped to False and True.
type BoolNode struct {
	domains
}

// NewBoolNode creates a BoolNode with unset domains.
func NewBoolNode() *BoolNode { return &BoolNode{} }

// ExhaustiveValues implements Node.
func (n *BoolNode) ExhaustiveValues() ([]m.Value, error) {
	lits, err := n.exInts()
	if err != nil {
		return nil, fmt.Errorf("bool node: %w", err)
	}

	values := make([]m.Value, 0, len(lits))
	for _, lit := range lits {
		values = append(values, m.NewBool(lit != 0))
	}

	return values, nil
}

// Sample implements Node.
func (n *BoolNode) Sample(rng *rand.Rand) (m.Value, error) {
	v, err := n.ranPickInt(rng)
	if err != nil {
		return nil, fmt.Errorf("bool node: %w", err)
	}

	return m.NewBool(v != 0), nil
}

// Left implements Node.
func (n *BoolNode) Left() Node { return nil }

// Right implements Node.
func (n *BoolNode) Right() Node { return nil }
