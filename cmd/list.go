package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"winnow.dev/pkg/winnow/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <config>",
		Short: "Show the base test set sizes",
		Long:  listLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Estimate(context.Background(), domain.EstimateArgs{
				Config: parsePath(args[0]),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
