package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/runner/budget"
)

func addExpense(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"expenses"},
		Short:   options.Wrap80("Manage budget expenses. Expenses mirrored from priced tasks follow their task and are edited through it."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addExpenseAdd(cmd)
	addExpenseList(cmd)
	addExpensePay(cmd)
	addExpenseDelete(cmd)

	topLevel.AddCommand(cmd)
}

func addExpenseAdd(parent *cobra.Command) {
	eo := &options.ExpenseOptions{}
	date := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Record an expense.",
		Example: `
planner expense add Venue deposit --amount 2500 --vendor "Rose Hall" --paid
planner expense add Cake tasting -a 60 -c catering --date 3/14
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires an expense title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := date.GetOn()
			if err != nil {
				return output.HandleError(err)
			}
			in := model.ExpenseInput{
				Title:          strings.Join(args, " "),
				Amount:         eo.Amount,
				Vendor:         eo.Vendor,
				Notes:          eo.Notes,
				IsPaid:         eo.Paid,
				AllowDuplicate: eo.AllowDuplicate,
			}
			if on != nil {
				in.Date = model.Ptr(*on)
			}
			return run(cmd, true, func(s *session) runner {
				return &budget.AddExpense{Planner: s.planner, Input: in, Category: eo.Category, Output: s.format}
			})
		},
	}

	options.AddExpenseArgs(cmd, eo)
	options.AddDateArgs(cmd, date)
	options.AddAllowDuplicateArgs(cmd, &eo.AllowDuplicate)
	parent.AddCommand(cmd)
}

func addExpenseList(parent *cobra.Command) {
	io := &options.IDOptions{}
	var category string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the expenses of the selected event.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, false, func(s *session) runner {
				return &budget.Expenses{Planner: s.planner, Category: category, ShowID: io.ShowID, Output: s.format}
			})
		},
	}

	options.AddShowIDArgs(cmd, io)
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only expenses of this category.")
	parent.AddCommand(cmd)
}

func addExpensePay(parent *cobra.Command) {
	var unpaid bool

	cmd := &cobra.Command{
		Use:   "pay [id]",
		Short: "Mark an expense paid.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, true, func(s *session) runner {
				return &budget.Pay{Planner: s.planner, ID: args[0], Paid: !unpaid, Output: s.format}
			})
		},
	}

	cmd.Flags().BoolVar(&unpaid, "undo", false, "Mark the expense unpaid instead.")
	parent.AddCommand(cmd)
}

func addExpenseDelete(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm"},
		Short:   "Delete an expense.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, true, func(s *session) runner {
				return &budget.DeleteExpense{Planner: s.planner, ID: args[0]}
			})
		},
	}

	parent.AddCommand(cmd)
}
