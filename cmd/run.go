package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"winnow.dev/pkg/winnow/internal/domain"
	m "winnow.dev/pkg/winnow/internal/model"
)

var runReferenceFlag string
var runCandidatesFlag string
var runParallelFlag int
var runTimeoutFlag int
var runSeedFlag int64

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <config>",
		Short: "Generate the concise test set",
		Long:  runLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Run(context.Background(), domain.RunArgs{
				Config:     parsePath(args[0]),
				Reference:  parsePath(runReferenceFlag),
				Candidates: parsePath(runCandidatesFlag),
				Reports:    m.Path(viper.GetString(outputFlagName)),
				Threads:    viper.GetInt(runParallelConfigKey),
				Timeout:    time.Duration(viper.GetInt(runTimeoutConfigKey)) * time.Second,
				Seed:       viper.GetInt64(runSeedConfigKey),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&runReferenceFlag, "reference", "r", "", "path to the reference implementation")
	cmd.Flags().StringVarP(&runCandidatesFlag, "candidates", "c", "", "directory of candidate implementations")
	cobra.CheckErr(cmd.MarkFlagRequired("reference"))
	cobra.CheckErr(cmd.MarkFlagRequired("candidates"))

	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of parallel workers for evaluation")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.Flags().IntVarP(&runTimeoutFlag, runTimeoutFlagName, "t", viper.GetInt(runTimeoutConfigKey), "per-invocation timeout in seconds")
	bindFlagToConfig(cmd.Flags().Lookup(runTimeoutFlagName), runTimeoutConfigKey)

	cmd.Flags().Int64VarP(&runSeedFlag, runSeedFlagName, "s", viper.GetInt64(runSeedConfigKey), "random seed (0 picks a fresh seed)")
	bindFlagToConfig(cmd.Flags().Lookup(runSeedFlagName), runSeedConfigKey)
}
