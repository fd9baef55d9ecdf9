package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mockhoist.dev/pkg/mockhoist/internal/domain"
	m "mockhoist.dev/pkg/mockhoist/internal/model"
)

var runParallelFlag int
var runShardFlag string
var runWriteFlag bool
var runDiffFlag bool

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "run [paths...]",
		Short:        "Hoist jest mock calls",
		Long:         runLongDescription,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			shardIndex, totalShards := parseShardFlag(runShardFlag)

			return workflow.Run(cmd.Context(), domain.RunArgs{
				CheckArgs: domain.CheckArgs{
					Paths:   parsePaths(args),
					Exclude: viper.GetStringSlice(excludeConfigKey),
					Threads: viper.GetInt(runParallelConfigKey),
					Diff:    runDiffFlag,
				},
				Reports:         m.Path(viper.GetString(outputFlagName)),
				UseCache:        !viper.GetBool(noCacheFlagName),
				Write:           viper.GetBool(runWriteConfigKey),
				ShardIndex:      shardIndex,
				TotalShardCount: totalShards,
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
	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of parallel workers")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)
	cmd.Flags().StringVarP(&runShardFlag, "shard", "s", "", "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")
	cmd.Flags().BoolVarP(&runWriteFlag, runWriteFlagName, "w", viper.GetBool(runWriteConfigKey), "write rewritten files in place")
	bindFlagToConfig(cmd.Flags().Lookup(runWriteFlagName), runWriteConfigKey)
	cmd.Flags().BoolVarP(&runDiffFlag, "diff", "d", false, "show a unified diff of every rewrite")
}

func parseShardFlag(shard string) (int, int) {
	if shard == "" {
		return 0, 1
	}

	var index, total int

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1
	}

	return index, total
}
