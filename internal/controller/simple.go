package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "winnow.dev/pkg/winnow/internal/model"
)

// SimpleUI implements UI using cobra Command's Println.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayEstimation prints the base-set estimation or error.
func (s *SimpleUI) DisplayEstimation(ctx context.Context, est Estimation, err error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err != nil {
		s.printf("estimation error: %v\n", err)
		return err
	}

	s.printf("\n%s", renderEstimationTable(est))

	return nil
}

// DisplayEvaluationStart shows the size of the evaluation about to run.
func (s *SimpleUI) DisplayEvaluationStart(ctx context.Context, cases, candidates, threads int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Evaluating %d test case(s) against %d candidate(s) with %d worker(s)\n", cases, candidates, threads)
}

// DisplayCaseProgress reports one completed test-case evaluation.
func (s *SimpleUI) DisplayCaseProgress(ctx context.Context, completed, total, kills int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Evaluated %d/%d (killed %d)\n", completed, total, kills)
}

// DisplayRefFailures warns about test cases lost to reference failures.
func (s *SimpleUI) DisplayRefFailures(ctx context.Context, failures int) {
	if err := ctx.Err(); err != nil {
		return
	}

	if failures > 0 {
		s.printf("Warning: reference failed on %d test case(s); they were excluded\n", failures)
	}
}

// DisplayConcise prints the concise test set.
func (s *SimpleUI) DisplayConcise(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\nConcise test set for %s:\n\n%s", report.FuncName, renderConciseTable(report))

	if len(report.Unreachable) > 0 {
		s.printf("Unreachable candidates (never killed): %s\n", strings.Join(report.Unreachable, ", "))
	}

	return nil
}

func renderEstimationTable(est Estimation) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Parameter", "Type", "Exhaustive Values"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for i, count := range est.ParamCounts {
		typ := ""
		if i < len(est.ParamTypes) {
			typ = est.ParamTypes[i]
		}

		table.Append([]string{fmt.Sprintf("%d", i), typ, fmt.Sprintf("%d", count)})
	}

	table.SetFooter([]string{
		est.FuncName,
		fmt.Sprintf("+%d random", est.NumRandom),
		fmt.Sprintf("%d exhaustive", est.ExhaustiveTotal),
	})

	table.Render()

	return tableBuffer.String()
}

func renderConciseTable(report m.RunReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Args", "Expected", "Kills"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, c := range report.ConciseCases {
		table.Append([]string{c.Args, c.Expected, strings.Join(c.Kills, ", ")})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total cases %d", len(report.ConciseCases)),
		"",
		fmt.Sprintf("%d candidates", len(report.Candidates)),
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...any) {
	s.cmd.Printf(format, args...)
}
