package domain

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"winnow.dev/pkg/winnow/internal/adapter"
	m "winnow.dev/pkg/winnow/internal/model"
	pkg "winnow.dev/pkg/winnow/pkg"
)

// CaseProgress is invoked after each test case finishes evaluation.
type CaseProgress func(completed, total, kills int)

// Oracle runs every test case through the reference and all candidate
// implementations and derives the kill set of each case.
type Oracle interface {
	// Evaluate returns one Evaluation per test case whose reference run
	// succeeded, in input order, plus the number of reference failures.
	Evaluate(ctx context.Context, funcName string, cases pkg.FileSpill[m.TestCase], reference m.Path, candidates []m.Candidate) ([]m.Evaluation, int, error)
}

type oracle struct {
	runner  adapter.ImplRunner
	threads int
	timeout time.Duration
	onCase  CaseProgress
}

// NewOracle constructs an Oracle evaluating up to threads test cases
// concurrently with the given per-invocation timeout. onCase may be nil.
func NewOracle(runner adapter.ImplRunner, threads int, timeout time.Duration, onCase CaseProgress) Oracle {
	if threads <= 0 {
		threads = 1
	}

	return &oracle{
		runner:  runner,
		threads: threads,
		timeout: timeout,
		onCase:  onCase,
	}
}

// Evaluate implements Oracle. Test cases are independent, so evaluation is
// parallel across cases with a worker limit; a hung candidate only stalls
// its own invocation thanks to the per-invocation timeout. Results are
// reassembled in input order so downstream minimization is deterministic.
func (o *oracle) Evaluate(ctx context.Context, funcName string, cases pkg.FileSpill[m.TestCase], reference m.Path, candidates []m.Candidate) ([]m.Evaluation, int, error) {
	total := int(cases.Len())
	results := make([]*m.Evaluation, total)

	var (
		completed int
		mu        sync.Mutex
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(o.threads)

	err := cases.Range(func(index uint64, tc m.TestCase) error {
		if err := groupCtx.Err(); err != nil {
			return err
		}

		group.Go(func() error {
			eval := o.evaluateCase(groupCtx, funcName, tc, reference, candidates)
			results[index] = eval

			mu.Lock()
			completed++
			done := completed
			mu.Unlock()

			if o.onCase != nil {
				kills := 0
				if eval != nil {
					kills = eval.KillCount()
				}

				o.onCase(done, total, kills)
			}

			return nil
		})

		return nil
	})

	if waitErr := group.Wait(); waitErr != nil {
		return nil, 0, waitErr
	}

	if err != nil {
		return nil, 0, err
	}

	evals := make([]m.Evaluation, 0, total)
	refFailures := 0

	for _, eval := range results {
		if eval == nil {
			refFailures++
			continue
		}

		evals = append(evals, *eval)
	}

	return evals, refFailures, nil
}

// evaluateCase runs one test case through the reference and, when the
// reference produced a ground truth, through every candidate. A reference
// failure abandons the case: there is nothing to compare against, and a
// broken oracle input must not count as a kill.
func (o *oracle) evaluateCase(ctx context.Context, funcName string, tc m.TestCase, reference m.Path, candidates []m.Candidate) *m.Evaluation {
	call := tc.CallExpr(funcName)

	expected, err := o.runWithTimeout(ctx, reference, call)
	if err != nil {
		slog.Warn("reference failed, excluding test case", "call", call, "error", err)
		return nil
	}

	kills := make(map[string]struct{})

	for _, candidate := range candidates {
		got, err := o.runWithTimeout(ctx, candidate.FullPath, call)
		if err != nil {
			// An implementation that crashes or times out is incorrect.
			kills[candidate.ID] = struct{}{}
			continue
		}

		if !outputsMatch(expected, got) {
			kills[candidate.ID] = struct{}{}
		}
	}

	return &m.Evaluation{Case: tc, Expected: expected, Kills: kills}
}

func (o *oracle) runWithTimeout(ctx context.Context, impl m.Path, call string) (string, error) {
	runCtx := ctx

	if o.timeout > 0 {
		var cancel context.CancelFunc

		runCtx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	return o.runner.RunFunction(runCtx, impl, call)
}

// outputsMatch compares two canonical output lines by value. Both sides
// come from the runner's canonical JSON encoding; decoding before
// comparing makes the check robust to formatting differences.
func outputsMatch(expected, got string) bool {
	var a, b any

	if json.Unmarshal([]byte(expected), &a) != nil || json.Unmarshal([]byte(got), &b) != nil {
		return expected == got
	}

	return cmp.Equal(a, b)
}
