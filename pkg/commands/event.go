package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/runner/events"
)

func addEvent(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"events"},
		Short:   options.Wrap80("Manage events. The selected event scopes projects, tasks and expenses."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEventAdd(cmd)
	addEventList(cmd)
	addEventSelect(cmd)
	addEventUpdate(cmd)
	addEventDelete(cmd)
	addEventTypes(cmd)

	topLevel.AddCommand(cmd)
}

func addEventAdd(parent *cobra.Command) {
	eo := &options.EventOptions{}

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add an event and select it.",
		Example: `
planner event add Our Wedding --type wedding --budget 25000
planner event add Offsite --type corporate --keep-selection
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires an event name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			in := model.EventInput{
				Name:  strings.Join(args, " "),
				Color: eo.Color,
			}
			if eo.Type != "" {
				et, err := model.ParseEventType(eo.Type)
				if err != nil {
					return output.HandleError(err)
				}
				in.Type = et
			}
			if cmd.Flags().Changed("budget") {
				budget := eo.Budget
				in.Budget = &budget
			}
			return run(cmd, true, func(s *session) runner {
				return &events.Add{Planner: s.planner, Input: in, Keep: eo.Keep, Output: s.format}
			})
		},
	}

	options.AddEventArgs(cmd, eo)
	options.AddEventKeepArgs(cmd, eo)
	parent.AddCommand(cmd)
}

func addEventList(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List events, marking the selected one.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, false, func(s *session) runner {
				return &events.List{Planner: s.planner, ShowID: io.ShowID, Output: s.format}
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	parent.AddCommand(cmd)
}

func addEventSelect(parent *cobra.Command) {
	var clearSelection bool

	cmd := &cobra.Command{
		Use:   "select [event]",
		Short: "Select the event to work on, by id or name.",
		Example: `
planner event select "Our Wedding"
planner event select --clear
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if !clearSelection && len(args) < 1 {
				return errors.New("requires an event id or name, or --clear")
			}
			return nil
		},
		ValidArgsFunction: eventCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, true, func(s *session) runner {
				return &events.Select{Planner: s.planner, Ref: strings.Join(args, " "), Clear: clearSelection, Output: s.format}
			})
		},
	}

	cmd.Flags().BoolVar(&clearSelection, "clear", false, "Clear the selection so every project is in scope.")
	parent.AddCommand(cmd)
}

func addEventUpdate(parent *cobra.Command) {
	eo := &options.EventOptions{}
	var name string

	cmd := &cobra.Command{
		Use:               "update [event]",
		Short:             "Change the name, type, color or budget of an event.",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: eventCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.EventPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("type") {
				et, err := model.ParseEventType(eo.Type)
				if err != nil {
					return output.HandleError(err)
				}
				patch.Type = &et
			}
			if flags.Changed("color") {
				patch.Color = &eo.Color
			}
			if flags.Changed("budget") {
				patch.Budget = &eo.Budget
			}
			patch.ClearBudget = eo.NoBudget
			return run(cmd, true, func(s *session) runner {
				return &events.Update{Planner: s.planner, Ref: strings.Join(args, " "), Patch: patch, Output: s.format}
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name.")
	options.AddEventArgs(cmd, eo)
	options.AddNoBudgetArgs(cmd, eo)
	parent.AddCommand(cmd)
}

func addEventDelete(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "delete [event]",
		Aliases:           []string{"rm"},
		Short:             "Delete an event. Its projects are kept and become unscoped.",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: eventCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, true, func(s *session) runner {
				return &events.Delete{Planner: s.planner, Ref: strings.Join(args, " ")}
			})
		},
	}

	parent.AddCommand(cmd)
}

func addEventTypes(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the event types.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			format, err := output.Format()
			if err != nil {
				return output.HandleError(err)
			}
			types := model.EventTypes()
			pp := printers.PrettyPrint{}
			return output.HandleError(pp.Render(format, types, func() {
				pp.NewLine()
				pp.EventTypes(types)
			}))
		},
	}

	parent.AddCommand(cmd)
}
