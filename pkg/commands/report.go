package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/runner/report"
	"tableflip.dev/planner/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	var last string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the tasks completed and money spent recently",
		Long: `Report lists the tasks of the selected event completed within the time
window, grouped by project, and the expenses dated in it.

Examples:
  planner report
  planner report --last 3d
  planner report --last 1w2d`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			window, err := timeutil.Last(last, time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			return run(cmd, false, func(s *session) runner {
				return &report.Report{Planner: s.planner, Window: window, Output: s.format}
			})
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow, "time window to include (for example 3d, 1w)")
	topLevel.AddCommand(cmd)
}
