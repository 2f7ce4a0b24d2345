package pygen

import (
	"fmt"
	"math/rand"

	m "winnow.dev/pkg/winnow/internal/model"
)

// StringNode generates Python strs over a fixed character domain. Its
// exhaustive and random domains are string lengths, not literal values.
type StringNode struct {
	domains

	chars []rune
}

// NewStringNode creates a StringNode over the given character domain.
func NewStringNode(chars string) *StringNode {
	return &StringNode{chars: []rune(chars)}
}

// Chars returns the character domain.
func (n *StringNode) Chars() string { return string(n.chars) }

// ExhaustiveValues implements Node. For each length in the exhaustive
// domain it produces every string of that length over the character
// domain, with repetition; length 0 yields the empty string.
func (n *StringNode) ExhaustiveValues() ([]m.Value, error) {
	lengths, err := n.exInts()
	if err != nil {
		return nil, fmt.Errorf("str node: %w", err)
	}

	charValues := make([]m.Value, 0, len(n.chars))
	for _, c := range n.chars {
		charValues = append(charValues, m.NewStr(string(c)))
	}

	charValues = dedupValues(charValues)

	var values []m.Value

	for _, length := range lengths {
		for _, tuple := range cartesianPower(charValues, length) {
			s := make([]rune, 0, length)
			for _, cv := range tuple {
				s = append(s, []rune(cv.(m.StrValue).V)...)
			}

			values = append(values, m.NewStr(string(s)))
		}
	}

	return dedupValues(values), nil
}

// Sample implements Node. It draws a length uniformly from the random
// domain, then draws that many characters uniformly with repetition.
func (n *StringNode) Sample(rng *rand.Rand) (m.Value, error) {
	length, err := n.ranPickInt(rng)
	if err != nil {
		return nil, fmt.Errorf("str node: %w", err)
	}

	if len(n.chars) == 0 && length > 0 {
		return nil, fmt.Errorf("str node: character %w", ErrEmptyDomain)
	}

	s := make([]rune, 0, length)
	for i := 0; i < length; i++ {
		s = append(s, n.chars[rng.Intn(len(n.chars))])
	}

	return m.NewStr(string(s)), nil
}

// Left implements Node.
func (n *StringNode) Left() Node { return nil }

// Right implements Node.
func (n *StringNode) Right() Node { return nil }
