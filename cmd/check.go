package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mockhoist.dev/pkg/mockhoist/internal/domain"
)

var checkParallelFlag int
var checkDiffFlag bool

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "check [paths...]",
		Short:        "Check that no file needs hoisting",
		Long:         checkLongDescription,
		SilenceUsage: true,
		// run binds the same key at construction
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Check(cmd.Context(), domain.CheckArgs{
				Paths:   parsePaths(args),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Threads: viper.GetInt(runParallelConfigKey),
				Diff:    checkDiffFlag,
			})
		},
	}

	cmd.Flags().IntVarP(&checkParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of parallel workers")
	cmd.Flags().BoolVarP(&checkDiffFlag, "diff", "d", false, "show the diff a run would write")

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
