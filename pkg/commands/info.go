package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the planner data and where it is stored.",
		Example: `
planner info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, false, func(s *session) runner {
				return &info.Info{Config: s.config, Planner: s.planner, Output: s.format}
			})
		},
	}

	topLevel.AddCommand(cmd)
}
