package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mockhoist.dev/pkg/mockhoist/internal/domain"
	m "mockhoist.dev/pkg/mockhoist/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously generated hoisting reports",
		Long:  "View previously generated hoisting reports from a reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))
			return workflow.View(cmd.Context(), domain.ViewArgs{Reports: reportsPath})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
