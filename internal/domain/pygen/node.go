// Package pygen contains the Python value generators. Each parameter of
// the function under test is described by a tree of nodes; a node knows how
// to enumerate every representable value of its type (exhaustive
// generation) and how to draw one value at random from its declared random
// domain.
package pygen

import (
	"errors"
	"math/rand"

	m "winnow.dev/pkg/winnow/internal/model"
)

// ErrEmptyDomain is returned when generation is requested from a node
// whose required domain was never set or is empty.
var ErrEmptyDomain = errors.New("domain is empty or unset")

// maxDrawRetries bounds the collision-retry loops of set and dict
// sampling. When the element or key domain is too small to reach the
// requested size, sampling gives up after this many consecutive duplicate
// draws and returns the container short rather than spinning forever.
const maxDrawRetries = 64

// Node generates Python values for a single parameter type.
//
// ExhaustiveValues is pure and deterministic given the node's domain
// state. Sample draws a single fresh value per call from the injected
// random source; repeated calls are independent.
type Node interface {
	ExhaustiveValues() ([]m.Value, error)
	Sample(rng *rand.Rand) (m.Value, error)
	SetExDomain(domain []float64)
	SetRanDomain(domain []float64)
	ExDomain() []float64
	RanDomain() []float64
	// Left is the element child for lists, tuples and sets, the key child
	// for dicts, and nil for scalars and strings.
	Left() Node
	// Right is the value child for dicts and nil otherwise.
	Right() Node
}

// domains holds the exhaustive and random domains shared by all node
// variants. Scalar nodes interpret the entries as literal values;
// strings, containers and dicts interpret them as lengths or entry counts.
type domains struct {
	ex  []float64
	ran []float64
}

func (d *domains) SetExDomain(domain []float64)  { d.ex = domain }
func (d *domains) SetRanDomain(domain []float64) { d.ran = domain }
func (d *domains) ExDomain() []float64           { return d.ex }
func (d *domains) RanDomain() []float64          { return d.ran }

// exInts returns the exhaustive domain as integers, failing fast when the
// domain was never set.
func (d *domains) exInts() ([]int, error) {
	if len(d.ex) == 0 {
		return nil, ErrEmptyDomain
	}

	out := make([]int, len(d.ex))
	for i, v := range d.ex {
		out[i] = int(v)
	}

	return out, nil
}

// ranPick draws one entry of the random domain uniformly.
func (d *domains) ranPick(rng *rand.Rand) (float64, error) {
	if len(d.ran) == 0 {
		return 0, ErrEmptyDomain
	}

	return d.ran[rng.Intn(len(d.ran))], nil
}

// ranPickInt draws one entry of the random domain uniformly as an int.
func (d *domains) ranPickInt(rng *rand.Rand) (int, error) {
	v, err := d.ranPick(rng)
	if err != nil {
		return 0, err
	}

	return int(v), nil
}

// cartesianPower enumerates every ordered n-tuple over values, with
// repetition. n == 0 yields exactly one empty tuple.
func cartesianPower(values []m.Value, n int) [][]m.Value {
	result := [][]m.Value{{}}

	for i := 0; i < n; i++ {
		next := make([][]m.Value, 0, len(result)*len(values))

		for _, prefix := range result {
			for _, v := range values {
				tuple := make([]m.Value, len(prefix), len(prefix)+1)
				copy(tuple, prefix)
				next = append(next, append(tuple, v))
			}
		}

		result = next
	}

	return result
}

// combinations enumerates every k-element subset of values, preserving the
// input order within each subset.
func combinations(values []m.Value, k int) [][]m.Value {
	if k == 0 {
		return [][]m.Value{{}}
	}

	if k > len(values) {
		return nil
	}

	var result [][]m.Value

	rest := combinations(values[1:], k-1)
	for _, tail := range rest {
		combo := make([]m.Value, 0, k)
		combo = append(combo, values[0])
		result = append(result, append(combo, tail...))
	}

	return append(result, combinations(values[1:], k)...)
}

// dedupValues collapses values with equal canonical keys, preserving the
// first occurrence order.
func dedupValues(values []m.Value) []m.Value {
	seen := make(map[string]struct{}, len(values))
	out := make([]m.Value, 0, len(values))

	for _, v := range values {
		if _, ok := seen[v.Key()]; ok {
			continue
		}

		seen[v.Key()] = struct{}{}

		out = append(out, v)
	}

	return out
}
