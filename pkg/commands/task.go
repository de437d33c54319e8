package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/derive"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/runner/tasks"
	"tableflip.dev/planner/pkg/timeutil"
)

func addTask(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage the tasks of the selected event.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTaskAdd(cmd)
	addTaskList(cmd)
	addTaskShow(cmd)
	addTaskToggle(cmd)
	addTaskUpdate(cmd)
	addTaskDelete(cmd)
	addTaskUpcoming(cmd)
	addTaskRecent(cmd)
	addTaskCalendar(cmd)
	addTaskSuggest(cmd)

	topLevel.AddCommand(cmd)
}

// taskFields reads the task flags shared by add and update.
func taskFields(flags *pflag.FlagSet, to *options.TaskOptions, due *options.OnOptions) (model.TaskPatch, error) {
	var patch model.TaskPatch
	if flags.Changed("description") {
		patch.Description = &to.Description
	}
	if flags.Changed("status") {
		st, err := model.ParseStatus(to.Status)
		if err != nil {
			return patch, err
		}
		patch.Status = &st
	}
	if flags.Changed("priority") {
		pr, err := model.ParsePriority(to.Priority)
		if err != nil {
			return patch, err
		}
		patch.Priority = &pr
	}
	if flags.Changed("price") {
		patch.Price = &to.Price
	}
	if flags.Changed("assign") {
		patch.AssignedTo = to.AssignTo
	}
	on, err := due.GetOn()
	if err != nil {
		return patch, err
	}
	if on != nil {
		patch.DueDate = model.Ptr(*on)
	}
	return patch, nil
}

func addTaskAdd(parent *cobra.Command) {
	to := &options.TaskOptions{}
	due := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task to a project of the selected event.",
		Example: `
planner task add Book florist --price 1200 --priority high --due 2026-5-1
planner task add Send invitations --project Ceremony
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a task title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := taskFields(cmd.Flags(), to, due)
			if err != nil {
				return output.HandleError(err)
			}
			in := model.TaskInput{
				Title:          strings.Join(args, " "),
				Description:    to.Description,
				DueDate:        patch.DueDate,
				AssignedTo:     to.AssignTo,
				AllowDuplicate: to.AllowDuplicate,
			}
			if patch.Status != nil {
				in.Status = *patch.Status
			}
			if patch.Priority != nil {
				in.Priority = *patch.Priority
			}
			if patch.Price != nil {
				in.Price = patch.Price
			}
			return run(cmd, true, func(s *session) runner {
				return &tasks.Add{Planner: s.planner, Input: in, Project: to.Project, Output: s.format}
			})
		},
	}

	options.AddTaskArgs(cmd, to)
	options.AddDueArgs(cmd, due)
	options.AddAllowDuplicateArgs(cmd, &to.AllowDuplicate)
	parent.AddCommand(cmd)
}

func addTaskList(parent *cobra.Command) {
	lo := &options.ListOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks, newest first.",
		Example: `
planner task list --filter todo
planner task list --search venue --page-size 5 --page 2
planner task list --shared
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := taskFilter(lo.Filter)
			if err != nil {
				return output.HandleError(err)
			}
			return run(cmd, false, func(s *session) runner {
				return &tasks.List{
					Planner:  s.planner,
					Filter:   derive.TaskFilter{Filter: filter, Search: lo.Search},
					Page:     lo.Page,
					PageSize: lo.PageSize,
					All:      lo.All,
					Shared:   lo.Shared,
					ShowID:   io.ShowID,
					Output:   s.format,
				}
			})
		},
	}

	options.AddListArgs(cmd, lo)
	options.AddShowIDArgs(cmd, io)
	parent.AddCommand(cmd)
}

// taskFilter accepts the filter names plus the status spellings
// understood by ParseStatus.
func taskFilter(v string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, f := range derive.Filters() {
		if v == f {
			return f, nil
		}
	}
	st, err := model.ParseStatus(v)
	if err != nil {
		return "", fmt.Errorf("unknown filter %q, expected one of %s", v, strings.Join(derive.Filters(), ", "))
	}
	return string(st), nil
}

func addTaskShow(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "show [task]",
		Short:             "Show one task, by id, id prefix or title.",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: taskCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, false, func(s *session) runner {
				return &tasks.Show{Planner: s.planner, Ref: strings.Join(args, " "), Output: s.format}
			})
		},
	}

	parent.AddCommand(cmd)
}

func addTaskToggle(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "toggle [task]",
		Short: "Move a task to its next status: todo, in progress, completed, todo.",
		Example: `
planner task toggle "Book florist"
`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: taskCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, true, func(s *session) runner {
				return &tasks.Toggle{Planner: s.planner, Ref: strings.Join(args, " "), Output: s.format}
			})
		},
	}

	parent.AddCommand(cmd)
}

func addTaskUpdate(parent *cobra.Command) {
	to := &options.TaskOptions{}
	due := &options.OnOptions{}
	var title string

	cmd := &cobra.Command{
		Use:   "update [task]",
		Short: "Change a task.",
		Example: `
planner task update "Book florist" --price 950 --status in_progress
planner task update 3f2a --no-due --price 0
`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: taskCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := taskFields(cmd.Flags(), to, due)
			if err != nil {
				return output.HandleError(err)
			}
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			patch.ClearDueDate = to.NoDue
			return run(cmd, true, func(s *session) runner {
				return &tasks.Update{Planner: s.planner, Ref: strings.Join(args, " "), Patch: patch, Project: to.Project, Output: s.format}
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title.")
	options.AddTaskArgs(cmd, to)
	options.AddDueArgs(cmd, due)
	options.AddNoDueArgs(cmd, to)
	parent.AddCommand(cmd)
}

func addTaskDelete(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "delete [task]",
		Aliases:           []string{"rm"},
		Short:             "Delete a task and its budget expense.",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: taskCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, true, func(s *session) runner {
				return &tasks.Delete{Planner: s.planner, Ref: strings.Join(args, " ")}
			})
		},
	}

	parent.AddCommand(cmd)
}

func addTaskUpcoming(parent *cobra.Command) {
	io := &options.IDOptions{}
	var (
		limit  int
		within string
	)

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List open tasks by due date.",
		Example: `
planner task upcoming
planner task upcoming --within 2w --limit 20
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var window *timeutil.Window
			if within != "" {
				w, err := timeutil.Next(within, time.Now())
				if err != nil {
					return output.HandleError(err)
				}
				window = &w
			}
			return run(cmd, false, func(s *session) runner {
				return &tasks.Upcoming{Planner: s.planner, Limit: limit, Within: window, ShowID: io.ShowID, Output: s.format}
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", derive.DefaultUpcomingLimit, "Number of tasks to show.")
	cmd.Flags().StringVar(&within, "within", "", "Only tasks due in this window, for example 3d or 2w.")
	options.AddShowIDArgs(cmd, io)
	parent.AddCommand(cmd)
}

func addTaskRecent(parent *cobra.Command) {
	io := &options.IDOptions{}
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the most recently created tasks.",
		Example: `
planner task recent -n 3
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, false, func(s *session) runner {
				return &tasks.Recent{Planner: s.planner, Limit: limit, ShowID: io.ShowID, Output: s.format}
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", derive.DefaultRecentLimit, "Number of tasks to show.")
	options.AddShowIDArgs(cmd, io)
	parent.AddCommand(cmd)
}

func addTaskCalendar(parent *cobra.Command) {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show the month with the open tasks due each day.",
		Example: `
planner task calendar
planner task calendar --date 2026-6-1
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := on.GetOn()
			if err != nil {
				return output.HandleError(err)
			}
			month := time.Now()
			if t != nil {
				month = *t
			}
			return run(cmd, false, func(s *session) runner {
				return &tasks.Calendar{Planner: s.planner, On: month, Output: s.format}
			})
		},
	}

	options.AddDateArgs(cmd, on)
	parent.AddCommand(cmd)
}

func addTaskSuggest(parent *cobra.Command) {
	var (
		add     []int
		project string
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest common tasks for the selected event type.",
		Example: `
planner task suggest
planner task suggest --add 1,4,7 --project Ceremony
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, len(add) > 0, func(s *session) runner {
				return &tasks.Suggest{Planner: s.planner, Add: add, Project: project, Output: s.format}
			})
		},
	}

	cmd.Flags().IntSliceVar(&add, "add", nil, "Add the suggestions at these positions as tasks.")
	cmd.Flags().StringVar(&project, "project", "", "Project for added suggestions.")
	parent.AddCommand(cmd)
}
