// Package report summarizes what got done in a recent time window.
package report

import (
	"context"
	"errors"
	"io"
	"sort"

	"github.com/shopspring/decimal"

	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/timeutil"
)

// Section groups the tasks completed in one project.
type Section struct {
	Project string       `json:"project"`
	Tasks   []model.Task `json:"tasks"`
}

// Result is a completed-work report for a window.
type Result struct {
	Window   timeutil.Window       `json:"window"`
	Sections []Section             `json:"sections"`
	Expenses []model.BudgetExpense `json:"expenses"`
	Spent    float64               `json:"spent"`
	Total    int                   `json:"total"`
}

// Build collects the tasks completed and the expenses dated inside w.
func Build(tasks []model.Task, projects []model.Project, expenses []model.BudgetExpense, w timeutil.Window) Result {
	names := map[string]string{}
	for _, p := range projects {
		names[p.ID] = p.Name
	}

	grouped := map[string][]model.Task{}
	res := Result{Window: w}
	for _, t := range tasks {
		if t.Status != model.StatusCompleted || t.CompletedAt == nil || !w.Contains(t.CompletedAt.Time) {
			continue
		}
		name := names[t.ProjectID]
		grouped[name] = append(grouped[name], t)
		res.Total++
	}
	for name, in := range grouped {
		sort.SliceStable(in, func(i, j int) bool {
			return in[i].CompletedAt.Before(in[j].CompletedAt.Time)
		})
		res.Sections = append(res.Sections, Section{Project: name, Tasks: in})
	}
	sort.Slice(res.Sections, func(i, j int) bool {
		return res.Sections[i].Project < res.Sections[j].Project
	})

	spent := decimal.Zero
	for _, e := range expenses {
		if w.Contains(e.Date.Time) {
			res.Expenses = append(res.Expenses, e)
			spent = spent.Add(decimal.NewFromFloat(e.Amount))
		}
	}
	res.Spent = spent.InexactFloat64()
	return res
}

type Report struct {
	Planner *planner.Planner
	Out     io.Writer
	Window  timeutil.Window
	Output  string
}

func (r *Report) Do(ctx context.Context) error {
	if r.Planner == nil {
		return errors.New("no planner")
	}
	res := Build(r.Planner.TasksForSelectedEvent(), r.Planner.Projects(), r.Planner.ExpensesForSelectedEvent(), r.Window)

	pp := printers.PrettyPrint{Out: r.Out}
	return pp.Render(r.Output, res, func() {
		since := res.Window.Since.Local().Format("2006-01-02 15:04")
		until := res.Window.Until.Local().Format("2006-01-02 15:04")
		pp.Printf("Report · last %s (%s → %s)\n", res.Window.Label, since, until)

		if res.Total == 0 {
			pp.Printf("  No tasks completed in this window.\n")
		}
		for _, section := range res.Sections {
			name := section.Project
			if name == "" {
				name = "No project"
			}
			pp.Printf("\n%s\n", name)
			for _, t := range section.Tasks {
				pp.Printf("  %s %s %s  (completed %s)\n", printers.Signifier(t.Priority), printers.Bullet(t.Status), t.Title, t.CompletedAt.Local().Format("2006-01-02 15:04"))
			}
		}
		if len(res.Expenses) > 0 {
			pp.Printf("\nSpent %s across %d expenses\n", printers.Money(res.Spent), len(res.Expenses))
		}
		pp.NewLine()
	})
}
