package domain

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"winnow.dev/pkg/winnow/internal/adapter"
	"winnow.dev/pkg/winnow/internal/controller"
	m "winnow.dev/pkg/winnow/internal/model"
	pkg "winnow.dev/pkg/winnow/pkg"
)

// RunArgs contains the arguments for a full concise-set generation run.
type RunArgs struct {
	Config     m.Path
	Reference  m.Path
	Candidates m.Path
	Reports    m.Path
	Threads    int
	Timeout    time.Duration
	Seed       int64
}

// EstimateArgs contains the arguments for estimating the base set.
type EstimateArgs struct {
	Config m.Path
}

// Workflow is the top-level entry point: it wires configuration parsing,
// base-set assembly, oracle evaluation and minimization.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	Estimate(ctx context.Context, args EstimateArgs) error
}

type workflow struct {
	adapter.ConfigParser
	adapter.ImplFSAdapter
	adapter.ReportStore
	controller.UI

	runner adapter.ImplRunner
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(
	parser adapter.ConfigParser,
	fsAdapter adapter.ImplFSAdapter,
	reportStore adapter.ReportStore,
	runner adapter.ImplRunner,
	ui controller.UI,
) Workflow {
	return &workflow{
		ConfigParser:  parser,
		ImplFSAdapter: fsAdapter,
		ReportStore:   reportStore,
		UI:            ui,
		runner:        runner,
	}
}

// Run executes the full pipeline. The base set is spilled to disk between
// assembly and evaluation so exhaustive products do not pin two copies in
// memory.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	cfg, err := w.ParseFile(args.Config)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if err := w.Exists(args.Reference); err != nil {
		return fmt.Errorf("reference: %w", err)
	}

	candidates, err := w.ListCandidates(args.Candidates)
	if err != nil {
		return fmt.Errorf("list candidates: %w", err)
	}

	seed := args.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	slog.Info("generating base test set", "func", cfg.FuncName, "numRandom", cfg.NumRandom, "seed", seed)

	baseSet, err := NewBaseGen(rand.New(rand.NewSource(seed))).GenBaseSet(cfg.Nodes, cfg.NumRandom)
	if err != nil {
		return fmt.Errorf("generate base set: %w", err)
	}

	spill, err := pkg.NewFileSpill[m.TestCase]()
	if err != nil {
		return fmt.Errorf("spill base set: %w", err)
	}

	defer func() {
		if err := spill.Close(); err != nil {
			slog.Error("failed to close base set spill", "error", err)
		}
	}()

	if err := spill.AppendBatch(baseSet); err != nil {
		return fmt.Errorf("spill base set: %w", err)
	}

	if err := w.Start(ctx, controller.WithRunMode()); err != nil {
		return err
	}

	defer w.UI.Close(ctx)

	w.DisplayEvaluationStart(ctx, len(baseSet), len(candidates), args.Threads)

	orc := NewOracle(w.runner, args.Threads, args.Timeout, func(completed, total, kills int) {
		w.DisplayCaseProgress(ctx, completed, total, kills)
	})

	evals, refFailures, err := orc.Evaluate(ctx, cfg.FuncName, spill, args.Reference, candidates)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	w.DisplayRefFailures(ctx, refFailures)

	if len(evals) == 0 && len(baseSet) > 0 {
		return fmt.Errorf("reference failed on every test case")
	}

	concise := SetCover(evals)
	report := buildReport(cfg.FuncName, len(baseSet), cfg.NumRandom, refFailures, candidates, evals, concise)

	path, err := w.SaveReport(args.Reports, report)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	slog.Info("saved run report", "path", path, "conciseCases", len(report.ConciseCases))

	if err := w.DisplayConcise(ctx, report); err != nil {
		return err
	}

	w.Wait(ctx)

	return nil
}

// Estimate parses the configuration and reports the base-set size without
// running any implementation.
func (w *workflow) Estimate(ctx context.Context, args EstimateArgs) error {
	if err := w.Start(ctx, controller.WithEstimateMode()); err != nil {
		return err
	}

	defer w.UI.Close(ctx)

	cfg, err := w.ParseFile(args.Config)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	counts, total, err := EstimateExhaustive(cfg.Nodes)

	est := controller.Estimation{
		FuncName:        cfg.FuncName,
		ParamTypes:      cfg.TypeSpecs,
		ParamCounts:     counts,
		ExhaustiveTotal: total,
		NumRandom:       cfg.NumRandom,
	}

	if displayErr := w.DisplayEstimation(ctx, est, err); displayErr != nil {
		return fmt.Errorf("display: %w", displayErr)
	}

	w.Wait(ctx)

	return nil
}

func buildReport(funcName string, baseSetSize, numRandom, refFailures int, candidates []m.Candidate, evals []m.Evaluation, concise []m.Evaluation) m.RunReport {
	candidateIDs := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		candidateIDs = append(candidateIDs, candidate.ID)
	}

	conciseCases := make([]m.ConciseCase, 0, len(concise))
	for _, eval := range concise {
		conciseCases = append(conciseCases, m.ConciseCase{
			Args:     eval.Case.ArgsLiteral(),
			Expected: eval.Expected,
			Kills:    SortedKills(eval),
		})
	}

	return m.RunReport{
		RunID:        uuid.NewString(),
		FuncName:     funcName,
		GeneratedAt:  time.Now().UTC(),
		BaseSetSize:  baseSetSize,
		NumRandom:    numRandom,
		RefFailures:  refFailures,
		Candidates:   candidateIDs,
		Unreachable:  UnreachableCandidates(evals, candidates),
		ConciseCases: conciseCases,
	}
}
