// Package budget holds the CLI runners for the budget: categories,
// expenses and the summary views.
package budget

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/planner/pkg/derive"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/printers"
)

var errNoPlanner = errors.New("no planner")

// FindCategory resolves ref as a category id or a case-insensitive name.
func FindCategory(p *planner.Planner, ref string) (model.BudgetCategory, error) {
	ref = strings.TrimSpace(ref)
	if c, err := p.Category(ref); err == nil {
		return c, nil
	}
	for _, c := range p.Categories() {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return model.BudgetCategory{}, fmt.Errorf("%w: category %q", planner.ErrNotFound, ref)
}

func categoryNames(p *planner.Planner) map[string]string {
	names := map[string]string{}
	for _, c := range p.Categories() {
		names[c.ID] = c.Name
	}
	return names
}

// Summary is the overview shown by `planner budget`.
type Summary struct {
	Planner *planner.Planner
	Out     io.Writer
	ShowID  bool
	Output  string
}

// SummaryResult is the structured output of Summary.
type SummaryResult struct {
	Totals     derive.BudgetTotals    `json:"totals"`
	Categories []model.BudgetCategory `json:"categories"`
	Event      *model.Event           `json:"event,omitempty"`
	// PricedTasks counts the in-scope tasks that carry a price.
	PricedTasks int `json:"pricedTasks"`
}

func (s *Summary) Do(ctx context.Context) error {
	if s.Planner == nil {
		return errNoPlanner
	}
	res := SummaryResult{
		Totals:      s.Planner.BudgetTotals(),
		Categories:  s.Planner.Categories(),
		PricedTasks: len(derive.TasksWithPrices(s.Planner.TasksForSelectedEvent())),
	}
	if e, ok := s.Planner.SelectedEvent(); ok {
		res.Event = &e
	}
	pp := printers.PrettyPrint{ShowID: s.ShowID, Out: s.Out}
	return pp.Render(s.Output, res, func() {
		pp.NewLine()
		if res.Event != nil && res.Event.Budget != nil {
			pp.Printf("%s budget: %s\n\n", res.Event.Name, printers.Money(*res.Event.Budget))
		}
		pp.Budget(res.Totals)
		if res.PricedTasks > 0 {
			pp.Printf("%d priced tasks\n", res.PricedTasks)
		}
		pp.Categories(res.Categories)
	})
}

// Stats groupings.
const (
	ByStatus   = "status"
	ByPriority = "priority"
)

// Stats prints task progress for the selected event.
type Stats struct {
	Planner *planner.Planner
	Out     io.Writer
	// By, when set, also lists the tasks grouped by status or priority.
	By     string
	ShowID bool
	Output string
}

// TaskGroup is one bucket of a grouped stats breakdown.
type TaskGroup struct {
	Name  string       `json:"name"`
	Tasks []model.Task `json:"tasks"`
}

// StatsResult is the structured output of a grouped Stats.
type StatsResult struct {
	Stats  derive.TaskStats `json:"stats"`
	By     string           `json:"by"`
	Groups []TaskGroup      `json:"groups"`
}

func (s *Stats) Do(ctx context.Context) error {
	if s.Planner == nil {
		return errNoPlanner
	}
	stats := s.Planner.TaskStats()
	pp := printers.PrettyPrint{ShowID: s.ShowID, Out: s.Out}
	if s.By == "" {
		return pp.Render(s.Output, stats, func() {
			pp.NewLine()
			pp.Stats(stats)
		})
	}
	groups, err := groupTasks(s.Planner.TasksForSelectedEvent(), s.By)
	if err != nil {
		return err
	}
	names := map[string]string{}
	for _, pr := range s.Planner.Projects() {
		names[pr.ID] = pr.Name
	}
	res := StatsResult{Stats: stats, By: s.By, Groups: groups}
	return pp.Render(s.Output, res, func() {
		pp.NewLine()
		pp.Stats(stats)
		for _, g := range groups {
			if len(g.Tasks) > 0 {
				pp.Tasks(g.Name, g.Tasks, names)
			}
		}
	})
}

func groupTasks(tasks []model.Task, by string) ([]TaskGroup, error) {
	switch by {
	case ByStatus:
		m := derive.GroupByStatus(tasks)
		var out []TaskGroup
		for _, st := range []model.Status{model.StatusTodo, model.StatusInProgress, model.StatusCompleted} {
			out = append(out, TaskGroup{Name: string(st), Tasks: m[st]})
		}
		return out, nil
	case ByPriority:
		m := derive.GroupByPriority(tasks)
		var out []TaskGroup
		for _, pr := range []model.Priority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow} {
			out = append(out, TaskGroup{Name: string(pr), Tasks: m[pr]})
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown grouping %q, want %s or %s", by, ByStatus, ByPriority)
}

type Categories struct {
	Planner *planner.Planner
	Out     io.Writer
	ShowID  bool
	Output  string
}

func (c *Categories) Do(ctx context.Context) error {
	if c.Planner == nil {
		return errNoPlanner
	}
	cats := c.Planner.Categories()
	pp := printers.PrettyPrint{ShowID: c.ShowID, Out: c.Out}
	return pp.Render(c.Output, cats, func() {
		pp.NewLine()
		pp.Categories(cats)
	})
}

// Allocate sets the manual allocation of a category.
type Allocate struct {
	Planner *planner.Planner
	Out     io.Writer
	Ref     string
	Amount  float64
	Output  string
}

func (a *Allocate) Do(ctx context.Context) error {
	if a.Planner == nil {
		return errNoPlanner
	}
	c, err := FindCategory(a.Planner, a.Ref)
	if err != nil {
		return err
	}
	amount := a.Amount
	c, err = a.Planner.UpdateCategory(c.ID, model.CategoryPatch{Allocated: &amount})
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: a.Out}
	return pp.Render(a.Output, c, func() {
		pp.Printf("%s: %s allocated, %s remaining\n", c.Name, printers.Money(c.Allocated), printers.Money(c.Remaining()))
	})
}

type AddCategory struct {
	Planner *planner.Planner
	Out     io.Writer
	Input   model.CategoryInput
	Output  string
}

func (a *AddCategory) Do(ctx context.Context) error {
	if a.Planner == nil {
		return errNoPlanner
	}
	c, err := a.Planner.AddCategory(a.Input)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: a.Out}
	return pp.Render(a.Output, c, func() {
		pp.Printf("Added category %q (%s)\n", c.Name, c.ID)
	})
}

type DeleteCategory struct {
	Planner *planner.Planner
	Out     io.Writer
	Ref     string
}

func (d *DeleteCategory) Do(ctx context.Context) error {
	if d.Planner == nil {
		return errNoPlanner
	}
	c, err := FindCategory(d.Planner, d.Ref)
	if err != nil {
		return err
	}
	if err := d.Planner.DeleteCategory(c.ID); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: d.Out}
	pp.Printf("Deleted category %q\n", c.Name)
	if n := len(d.Planner.ExpensesByCategory()[c.ID]); n > 0 {
		pp.Printf("%d expenses still reference it\n", n)
	}
	return nil
}
