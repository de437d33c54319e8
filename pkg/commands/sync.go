package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/remote"
	"tableflip.dev/planner/pkg/runner/remotesync"
)

func addSync(topLevel *cobra.Command) {
	var push, watch bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull from the remote backend, optionally pushing and watching.",
		Long: `Sync merges the remote events, projects, tasks and budget into the local
store, a pulled row replacing the local one. With --push every local record
is uploaded first, so local edits win. With --watch the command stays
running, pushing local changes and merging remote event updates as they
happen.`,
		Example: `
planner sync
planner sync --push --watch
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, false, func(s *session) runner {
				s.client = remote.NewClient(s.config)
				return &remotesync.Sync{Planner: s.planner, Client: s.client, Push: push, Watch: watch, Output: s.format}
			})
		},
	}

	cmd.Flags().BoolVar(&push, "push", false, "Upload every local record before pulling.")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep syncing until interrupted.")
	topLevel.AddCommand(cmd)
}

func addRemote(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Manage the remote backend.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Create the remote tables, indexes and realtime trigger.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			format, err := output.Format()
			if err != nil {
				return output.HandleError(err)
			}
			cfg, err := loadConfig()
			if err != nil {
				return output.HandleError(err)
			}
			m := remotesync.Migrate{DSN: cfg.RemoteDSN(), User: cfg.RemoteUser(), Output: format}
			return output.HandleError(m.Do(cmd.Context()))
		},
	}

	cmd.AddCommand(migrate)
	topLevel.AddCommand(cmd)
}
