package budget

import (
	"context"
	"io"

	"tableflip.dev/planner/pkg/derive"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/printers"
)

type Expenses struct {
	Planner *planner.Planner
	Out     io.Writer
	// Category limits the list to one category id or name.
	Category string
	ShowID   bool
	Output   string
}

func (e *Expenses) Do(ctx context.Context) error {
	if e.Planner == nil {
		return errNoPlanner
	}
	expenses := e.Planner.ExpensesForSelectedEvent()
	if e.Category != "" {
		c, err := FindCategory(e.Planner, e.Category)
		if err != nil {
			return err
		}
		var in []model.BudgetExpense
		for _, x := range expenses {
			if x.CategoryID == c.ID {
				in = append(in, x)
			}
		}
		expenses = in
	}
	pp := printers.PrettyPrint{ShowID: e.ShowID, Out: e.Out}
	return pp.Render(e.Output, expenses, func() {
		pp.NewLine()
		pp.Expenses(expenses, categoryNames(e.Planner))
	})
}

type AddExpense struct {
	Planner *planner.Planner
	Out     io.Writer
	Input   model.ExpenseInput
	// Category is a category id or name. Empty picks one from the title.
	Category string
	Output   string
}

func (a *AddExpense) Do(ctx context.Context) error {
	if a.Planner == nil {
		return errNoPlanner
	}
	if a.Category == "" {
		a.Input.CategoryID = derive.CategoryFromTitle(a.Input.Title)
	} else {
		c, err := FindCategory(a.Planner, a.Category)
		if err != nil {
			return err
		}
		a.Input.CategoryID = c.ID
	}
	x, err := a.Planner.AddExpense(a.Input)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: a.Out}
	return pp.Render(a.Output, x, func() {
		pp.Printf("Added %s %q under %s (%s)\n", printers.Money(x.Amount), x.Title, categoryNames(a.Planner)[x.CategoryID], x.ID)
	})
}

// Pay marks an expense paid or unpaid.
type Pay struct {
	Planner *planner.Planner
	Out     io.Writer
	ID      string
	Paid    bool
	Output  string
}

func (p *Pay) Do(ctx context.Context) error {
	if p.Planner == nil {
		return errNoPlanner
	}
	paid := p.Paid
	x, err := p.Planner.UpdateExpense(p.ID, model.ExpensePatch{IsPaid: &paid})
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: p.Out}
	return pp.Render(p.Output, x, func() {
		state := "unpaid"
		if x.IsPaid {
			state = "paid"
		}
		pp.Printf("%q marked %s\n", x.Title, state)
	})
}

type DeleteExpense struct {
	Planner *planner.Planner
	Out     io.Writer
	ID      string
}

func (d *DeleteExpense) Do(ctx context.Context) error {
	if d.Planner == nil {
		return errNoPlanner
	}
	if err := d.Planner.DeleteExpense(d.ID); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: d.Out}
	pp.Printf("Deleted expense %s\n", d.ID)
	return nil
}
