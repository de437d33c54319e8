package options

import (
	"github.com/spf13/cobra"
)

// TaskOptions
type TaskOptions struct {
	Description    string
	Status         string
	Priority       string
	Project        string
	Price          float64
	AssignTo       []string
	AllowDuplicate bool
	NoDue          bool
}

func AddTaskArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Task description.")
	cmd.Flags().StringVar(&o.Status, "status", "",
		"Status. One of todo, in_progress or completed.")
	cmd.Flags().StringVarP(&o.Priority, "priority", "p", "",
		"Priority. One of low, medium or high.")
	cmd.Flags().StringVar(&o.Project, "project", "",
		"Project id. Defaults to the first project of the selected event.")
	cmd.Flags().Float64Var(&o.Price, "price", 0,
		Wrap80("Price of the task. A priced task is mirrored as an expense in the budget; 0 clears it on update."))
	cmd.Flags().StringSliceVar(&o.AssignTo, "assign", nil,
		"User ids the task is assigned to.")
}

func AddAllowDuplicateArgs(cmd *cobra.Command, allow *bool) {
	cmd.Flags().BoolVar(allow, "allow-duplicate", false,
		"Accept a title similar to an existing one.")
}

func AddNoDueArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().BoolVar(&o.NoDue, "no-due", false,
		"Clear the due date.")
}

// ListOptions
type ListOptions struct {
	Filter   string
	Search   string
	Page     int
	PageSize int
	All      bool
	Shared   bool
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().StringVarP(&o.Filter, "filter", "f", "all",
		"Filter. One of all, todo, in_progress, completed, priced or unpriced.")
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only tasks whose title or description contains this text.")
	cmd.Flags().IntVar(&o.Page, "page", 1,
		"Page to show.")
	cmd.Flags().IntVar(&o.PageSize, "page-size", 0,
		"Tasks per page. 0 shows every match.")
	cmd.Flags().BoolVarP(&o.All, "all", "A", false,
		"Ignore the selected event and list every task.")
	cmd.Flags().BoolVar(&o.Shared, "shared", false,
		"Only tasks of projects shared with someone.")
}
