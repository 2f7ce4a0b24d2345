package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"winnow.dev/pkg/winnow/internal/domain"
)

type fakeWorkflow struct {
	runArgs      *domain.RunArgs
	estimateArgs *domain.EstimateArgs
	err          error
}

func (w *fakeWorkflow) Run(_ context.Context, args domain.RunArgs) error {
	w.runArgs = &args
	return w.err
}

func (w *fakeWorkflow) Estimate(_ context.Context, args domain.EstimateArgs) error {
	w.estimateArgs = &args
	return w.err
}

func swapWorkflow(t *testing.T, fake domain.Workflow) {
	t.Helper()

	original := workflow
	workflow = fake
	t.Cleanup(func() { workflow = original })
}

func newTestRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	return cmd
}

func TestRunCmd_ForwardsArguments(t *testing.T) {
	fake := &fakeWorkflow{}
	swapWorkflow(t, fake)

	cmd := newTestRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetArgs([]string{
		"run", "config.json",
		"--reference", "ref.py",
		"--candidates", "impls",
		"--parallel", "4",
		"--timeout", "10",
		"--seed", "99",
	})

	require.NoError(t, cmd.Execute())
	require.NotNil(t, fake.runArgs)

	require.Equal(t, "config.json", string(fake.runArgs.Config))
	require.Equal(t, "ref.py", string(fake.runArgs.Reference))
	require.Equal(t, "impls", string(fake.runArgs.Candidates))
	require.Equal(t, 4, fake.runArgs.Threads)
	require.Equal(t, 10*time.Second, fake.runArgs.Timeout)
	require.Equal(t, int64(99), fake.runArgs.Seed)
}

func TestRunCmd_RequiresReferenceAndCandidates(t *testing.T) {
	fake := &fakeWorkflow{}
	swapWorkflow(t, fake)

	cmd := newTestRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetArgs([]string{"run", "config.json"})

	require.Error(t, cmd.Execute())
	require.Nil(t, fake.runArgs)
}

func TestRunCmd_RequiresConfigArgument(t *testing.T) {
	fake := &fakeWorkflow{}
	swapWorkflow(t, fake)

	cmd := newTestRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetArgs([]string{"run", "--reference", "ref.py", "--candidates", "impls"})

	require.Error(t, cmd.Execute())
}

func TestRunCmd_DefaultReportsDir(t *testing.T) {
	fake := &fakeWorkflow{}
	swapWorkflow(t, fake)

	cmd := newTestRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetArgs([]string{"run", "config.json", "-r", "ref.py", "-c", "impls"})

	require.NoError(t, cmd.Execute())
	require.NotNil(t, fake.runArgs)
	require.Equal(t, defaultReportsDir, string(fake.runArgs.Reports))
}

func TestRunCmd_ConfigFileCanBeAbsolute(t *testing.T) {
	fake := &fakeWorkflow{}
	swapWorkflow(t, fake)

	abs := filepath.Join(string(os.PathSeparator), "tmp", "config.json")

	cmd := newTestRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetArgs([]string{"run", abs, "-r", "ref.py", "-c", "impls"})

	require.NoError(t, cmd.Execute())
	require.Equal(t, abs, string(fake.runArgs.Config))
}
