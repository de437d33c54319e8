package options

import (
	"github.com/spf13/cobra"
)

// ExpenseOptions
type ExpenseOptions struct {
	Category       string
	Amount         float64
	Vendor         string
	Notes          string
	Paid           bool
	AllowDuplicate bool
}

func AddExpenseArgs(cmd *cobra.Command, o *ExpenseOptions) {
	cmd.Flags().StringVarP(&o.Category, "category", "c", "",
		"Budget category id. Defaults to the category guessed from the title.")
	cmd.Flags().Float64VarP(&o.Amount, "amount", "a", 0,
		"Amount spent.")
	cmd.Flags().StringVar(&o.Vendor, "vendor", "",
		"Vendor name.")
	cmd.Flags().StringVar(&o.Notes, "notes", "",
		"Free form notes.")
	cmd.Flags().BoolVar(&o.Paid, "paid", false,
		"Mark the expense as paid.")
}
