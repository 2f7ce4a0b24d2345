// Package controller provides output adapters for displaying concise
// test-set generation results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "winnow.dev/pkg/winnow/internal/model"
)

// Estimation summarizes the base test set implied by a configuration,
// without generating or running anything.
type Estimation struct {
	FuncName        string
	ParamTypes      []string
	ParamCounts     []int
	ExhaustiveTotal int
	NumRandom       int
}

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeEstimate StartMode = iota
	ModeRun
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithEstimateMode sets the UI to estimation mode.
func WithEstimateMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeEstimate
	}
}

// WithRunMode sets the UI to full run mode.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// UI defines the interface for displaying progress and results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayEstimation(ctx context.Context, est Estimation, err error) error
	DisplayEvaluationStart(ctx context.Context, cases, candidates, threads int)
	DisplayCaseProgress(ctx context.Context, completed, total, kills int)
	DisplayRefFailures(ctx context.Context, failures int)
	DisplayConcise(ctx context.Context, report m.RunReport) error
}

// NewUI picks the TUI when stdout is a terminal, the plain printer
// otherwise.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
