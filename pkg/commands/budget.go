package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/runner/budget"
)

func addBudget(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Show the budget totals and every category.",
		Long:  options.Wrap80(`Show the budget totals and every category. While no category has an allocation the allocated total falls back to the sum of the task prices.`),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, false, func(s *session) runner {
				return &budget.Summary{Planner: s.planner, ShowID: io.ShowID, Output: s.format}
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

func addStats(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var by string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task progress for the selected event.",
		Example: `
planner stats
planner stats --by priority
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, false, func(s *session) runner {
				return &budget.Stats{Planner: s.planner, By: by, ShowID: io.ShowID, Output: s.format}
			})
		},
	}

	cmd.Flags().StringVar(&by, "by", "", "Also list tasks grouped by status or priority.")
	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

func addCategory(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories"},
		Short:   "Manage budget categories.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addCategoryList(cmd)
	addCategoryAllocate(cmd)
	addCategoryAdd(cmd)
	addCategoryDelete(cmd)

	topLevel.AddCommand(cmd)
}

func addCategoryList(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories with allocated, spent and remaining amounts.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, false, func(s *session) runner {
				return &budget.Categories{Planner: s.planner, ShowID: io.ShowID, Output: s.format}
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	parent.AddCommand(cmd)
}

func addCategoryAllocate(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "allocate [category] [amount]",
		Short: "Set the amount allocated to a category.",
		Example: `
planner category allocate venue 8000
planner category allocate Flowers 1500
`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: categoryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := model.ParseAmount(args[1])
			if err != nil {
				return output.HandleError(err)
			}
			return run(cmd, true, func(s *session) runner {
				return &budget.Allocate{Planner: s.planner, Ref: args[0], Amount: amount, Output: s.format}
			})
		},
	}

	parent.AddCommand(cmd)
}

func addCategoryAdd(parent *cobra.Command) {
	var (
		icon, color string
		allocated   float64
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a budget category.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a category name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			in := model.CategoryInput{Name: strings.Join(args, " "), Icon: icon, Color: color, Allocated: allocated}
			return run(cmd, true, func(s *session) runner {
				return &budget.AddCategory{Planner: s.planner, Input: in, Output: s.format}
			})
		},
	}

	cmd.Flags().StringVar(&icon, "icon", "", "Icon name.")
	cmd.Flags().StringVar(&color, "color", "", "Hex color.")
	cmd.Flags().Float64Var(&allocated, "allocate", 0, "Amount allocated.")
	parent.AddCommand(cmd)
}

func addCategoryDelete(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "delete [category]",
		Aliases:           []string{"rm"},
		Short:             "Delete a budget category. Its expenses stop counting towards any category.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: categoryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, true, func(s *session) runner {
				return &budget.DeleteCategory{Planner: s.planner, Ref: args[0]}
			})
		},
	}

	parent.AddCommand(cmd)
}
