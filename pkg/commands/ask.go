package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/assistant"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/ask"
)

func addAsk(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: options.Wrap80("Ask the planning assistant to add a task or analyze progress."),
		Long:  assistant.Help,
		Example: `
planner ask add task Book photographer with priority high
planner ask how is my progress
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, true, func(s *session) runner {
				return &ask.Ask{Planner: s.planner, Message: strings.Join(args, " "), Output: s.format}
			})
		},
	}

	topLevel.AddCommand(cmd)
}
