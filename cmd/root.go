// Package cmd provides the root command and CLI setup for mockhoist.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"mockhoist.dev/pkg/mockhoist/internal/adapter"
	"mockhoist.dev/pkg/mockhoist/internal/controller"
	"mockhoist.dev/pkg/mockhoist/internal/domain"
	m "mockhoist.dev/pkg/mockhoist/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var jsFileAdapter adapter.JSFileAdapter
var reportStore adapter.ReportStore
var streamer domain.SourceStreamer
var transformer domain.Transformer
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// noCacheFlag disables incremental caching when set.
var noCacheFlag bool

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

var verboseFlag bool

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter(
		adapter.WithExtensions(viper.GetStringSlice(extensionsConfigKey)...),
		adapter.WithTestsOnly(viper.GetBool(testsOnlyConfigKey)),
	)
	jsFileAdapter = adapter.NewLocalJSFileAdapter()
	reportStore = adapter.NewReportStore()
	streamer = domain.NewSourceStreamer(fsAdapter)
	transformer = domain.NewTransformer(fsAdapter, jsFileAdapter)
	workflow = domain.NewWorkflow(
		fsAdapter,
		reportStore,
		ui,
		streamer,
		transformer,
	)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...            recursively scan current directory
  - ./src/...        recursively scan src directory
  - ./a.test.js      a single file, whatever its name
  - ./src ./test     scan multiple directories`

const rootLongDescription = `Mockhoist rewrites JavaScript test files so that jest.mock() and
related calls run before the imports they affect, the same transform
babel-plugin-jest-hoist applies at test time, and reports every file
it could not rewrite safely.

` + pathPatternsHelp

const runLongDescription = `Hoist jest mock calls in the given paths (default: current directory).

Without --write the run is a dry run: files are left untouched and
reports record what would change.

` + pathPatternsHelp

const checkLongDescription = `Check that no file in the given paths needs hoisting.

Exits with an error when a file would be rewritten, was rejected or
could not be parsed. Never writes files or reports.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mockhoist",
		Short: "Hoist jest mock calls in JavaScript tests",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for hoisting reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVar(&noCacheFlag, noCacheFlagName, viper.GetBool(noCacheFlagName), "disable cached incremental runs (re-process everything)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(noCacheFlagName), noCacheFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
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
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
