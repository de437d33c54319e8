package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/runner/projects"
)

func addProject(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage projects, the groups tasks belong to.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addProjectAdd(cmd)
	addProjectList(cmd)
	addProjectShare(cmd)
	addProjectDelete(cmd)

	topLevel.AddCommand(cmd)
}

func addProjectAdd(parent *cobra.Command) {
	po := &options.ProjectOptions{}

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a project to the selected event.",
		Example: `
planner project add Ceremony
planner project add Honeymoon --unscoped --share bob
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a project name")
			}
			if po.Unscoped && po.Event != "" {
				return errors.New("--event and --unscoped are exclusive")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			in := model.ProjectInput{
				Name:       strings.Join(args, " "),
				Color:      po.Color,
				Icon:       po.Icon,
				SharedWith: po.Share,
			}
			return run(cmd, true, func(s *session) runner {
				return &projects.Add{Planner: s.planner, Input: in, Event: po.Event, Unscoped: po.Unscoped, Output: s.format}
			})
		},
	}

	options.AddProjectArgs(cmd, po)
	parent.AddCommand(cmd)
}

func addProjectList(parent *cobra.Command) {
	io := &options.IDOptions{}
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the projects of the selected event.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, false, func(s *session) runner {
				return &projects.List{Planner: s.planner, All: all, ShowID: io.ShowID, Output: s.format}
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	cmd.Flags().BoolVarP(&all, "all", "A", false, "List the projects of every event.")
	parent.AddCommand(cmd)
}

func addProjectShare(parent *cobra.Command) {
	var with []string

	cmd := &cobra.Command{
		Use:   "share [project]",
		Short: "Share a project with other users.",
		Example: `
planner project share Ceremony --with bob,carol
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a project id or name")
			}
			if len(with) == 0 {
				return errors.New("requires --with")
			}
			return nil
		},
		ValidArgsFunction: projectCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, true, func(s *session) runner {
				return &projects.Share{Planner: s.planner, Ref: strings.Join(args, " "), Users: with, Output: s.format}
			})
		},
	}

	cmd.Flags().StringSliceVar(&with, "with", nil, "User ids to share with.")
	parent.AddCommand(cmd)
}

func addProjectDelete(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "delete [project]",
		Aliases:           []string{"rm"},
		Short:             "Delete a project. Its tasks are kept.",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: projectCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, true, func(s *session) runner {
				return &projects.Delete{Planner: s.planner, Ref: strings.Join(args, " ")}
			})
		},
	}

	parent.AddCommand(cmd)
}
