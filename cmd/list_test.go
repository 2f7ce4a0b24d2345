package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListCmd_ForwardsConfigPath(t *testing.T) {
	fake := &fakeWorkflow{}
	swapWorkflow(t, fake)

	cmd := newTestRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetArgs([]string{"list", "config.json"})

	require.NoError(t, cmd.Execute())
	require.NotNil(t, fake.estimateArgs)
	require.Equal(t, "config.json", string(fake.estimateArgs.Config))
}

func TestListCmd_RequiresConfigArgument(t *testing.T) {
	fake := &fakeWorkflow{}
	swapWorkflow(t, fake)

	cmd := newTestRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetArgs([]string{"list"})

	require.Error(t, cmd.Execute())
	require.Nil(t, fake.estimateArgs)
}
