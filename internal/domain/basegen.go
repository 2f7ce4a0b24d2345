// Package domain contains the core concise test-set generation logic:
// base-set assembly, the oracle that evaluates implementations, and the
// greedy set-cover minimizer.
package domain

import (
	"fmt"
	"math/rand"

	"winnow.dev/pkg/winnow/internal/domain/pygen"
	m "winnow.dev/pkg/winnow/internal/model"
)

// BaseGen assembles the base test set from per-parameter generator nodes.
type BaseGen struct {
	rng *rand.Rand
}

// NewBaseGen creates a BaseGen drawing random tuples from the given
// source. A single shared source per run keeps seeded runs reproducible.
func NewBaseGen(rng *rand.Rand) *BaseGen {
	return &BaseGen{rng: rng}
}

// GenBaseSet returns the exhaustive portion (the Cartesian product across
// parameters of each node's exhaustive values) followed by exactly
// numRandom independently sampled tuples. If any parameter's exhaustive
// value set is empty the exhaustive portion is empty; that is not an
// error. No deduplication is performed between or within the portions.
func (g *BaseGen) GenBaseSet(nodes []pygen.Node, numRandom int) ([]m.TestCase, error) {
	exhaustive, err := g.genExhaustive(nodes)
	if err != nil {
		return nil, err
	}

	random, err := g.genRandom(nodes, numRandom)
	if err != nil {
		return nil, err
	}

	return append(exhaustive, random...), nil
}

func (g *BaseGen) genExhaustive(nodes []pygen.Node) ([]m.TestCase, error) {
	perParam := make([][]m.Value, 0, len(nodes))

	for i, node := range nodes {
		values, err := node.ExhaustiveValues()
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}

		if len(values) == 0 {
			return nil, nil
		}

		perParam = append(perParam, values)
	}

	tuples := [][]m.Value{{}}

	for _, values := range perParam {
		next := make([][]m.Value, 0, len(tuples)*len(values))

		for _, prefix := range tuples {
			for _, v := range values {
				args := make([]m.Value, len(prefix), len(prefix)+1)
				copy(args, prefix)
				next = append(next, append(args, v))
			}
		}

		tuples = next
	}

	cases := make([]m.TestCase, 0, len(tuples))
	for _, args := range tuples {
		cases = append(cases, m.NewTestCase(args))
	}

	return cases, nil
}

func (g *BaseGen) genRandom(nodes []pygen.Node, numRandom int) ([]m.TestCase, error) {
	cases := make([]m.TestCase, 0, numRandom)

	for i := 0; i < numRandom; i++ {
		args := make([]m.Value, 0, len(nodes))

		for j, node := range nodes {
			v, err := node.Sample(g.rng)
			if err != nil {
				return nil, fmt.Errorf("parameter %d: %w", j, err)
			}

			args = append(args, v)
		}

		cases = append(cases, m.NewTestCase(args))
	}

	return cases, nil
}

// EstimateExhaustive returns per-parameter exhaustive value counts without
// assembling the full product. Used by the list command.
func EstimateExhaustive(nodes []pygen.Node) ([]int, int, error) {
	counts := make([]int, 0, len(nodes))
	total := 1

	for i, node := range nodes {
		values, err := node.ExhaustiveValues()
		if err != nil {
			return nil, 0, fmt.Errorf("parameter %d: %w", i, err)
		}

		counts = append(counts, len(values))
		total *= len(values)
	}

	if len(nodes) == 0 {
		total = 0
	}

	return counts, total, nil
}
