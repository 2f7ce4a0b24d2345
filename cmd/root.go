// Package cmd provides the root command and CLI setup for winnow.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"winnow.dev/pkg/winnow/internal/adapter"
	"winnow.dev/pkg/winnow/internal/controller"
	"winnow.dev/pkg/winnow/internal/domain"
	m "winnow.dev/pkg/winnow/internal/model"
)

var configParser adapter.ConfigParser
var implFSAdapter adapter.ImplFSAdapter
var reportStore adapter.ReportStore
var implRunner adapter.ImplRunner
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// pythonFlag selects the Python interpreter used to run implementations.
var pythonFlag string

// verboseFlag switches the log level to debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	configParser = adapter.NewJSONConfigParser()
	implFSAdapter = adapter.NewLocalImplFSAdapter()
	reportStore = adapter.NewYAMLReportStore()
	implRunner = adapter.NewPyRunnerAdapter(viper.GetString(pythonConfigKey))
	workflow = domain.NewWorkflow(
		configParser,
		implFSAdapter,
		reportStore,
		implRunner,
		ui,
	)
}

const rootLongDescription = `Winnow generates a concise test set for a Python function: it builds the
base test set from the declared parameter domains, runs every test case
against a trusted reference implementation and a directory of candidate
implementations, and reduces the cases to a minimal subset that still
distinguishes every faulty candidate from the reference.`

const runLongDescription = `Run concise test-set generation for the given configuration file.

The configuration declares the function name, its parameter types, the
exhaustive and random domains, and the number of random test cases.`

const listLongDescription = `Show the base test set a configuration would produce, per parameter,
without running any implementation.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "winnow",
		Short: "Concise test-set generator for Python functions",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for run reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVar(&pythonFlag, pythonFlagName, viper.GetString(pythonConfigKey), "python interpreter used to run implementations")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(pythonFlagName), pythonConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log at debug level")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePath(arg string) m.Path {
	return m.Path(arg)
}
