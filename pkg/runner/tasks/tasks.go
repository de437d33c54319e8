package tasks

import (
	"context"
	"io"

	"tableflip.dev/planner/pkg/derive"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/printers"
)

type List struct {
	Planner *planner.Planner
	Out     io.Writer
	Filter  derive.TaskFilter
	// Page and PageSize paginate the result; PageSize 0 shows everything.
	Page     int
	PageSize int
	// All ignores the selected event.
	All bool
	// Shared keeps only tasks of projects shared with someone.
	Shared bool
	ShowID bool
	Output string
}

func (l *List) Do(ctx context.Context) error {
	if l.Planner == nil {
		return errNoPlanner
	}
	var tasks []model.Task
	if l.All {
		tasks = derive.FilterTasks(l.Planner.Tasks(), l.Filter)
	} else {
		tasks = l.Planner.FilterTasks(l.Filter)
	}
	if l.Shared {
		tasks = keepShared(l.Planner, tasks)
	}

	title := "Tasks"
	if e, ok := l.Planner.SelectedEvent(); ok && !l.All {
		title = e.Name
	}

	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: l.Out}
	if l.PageSize <= 0 {
		return pp.Render(l.Output, tasks, func() {
			pp.NewLine()
			pp.Tasks(title, tasks, projectNames(l.Planner))
		})
	}
	page := derive.Paginate(tasks, l.Page, l.PageSize)
	return pp.Render(l.Output, page, func() {
		pp.NewLine()
		pp.Tasks(title, page.Items, projectNames(l.Planner))
		if page.TotalPages > 1 {
			pp.Printf("page %d of %d, %d tasks\n", page.Page, page.TotalPages, page.TotalItems)
		}
	})
}

func keepShared(p *planner.Planner, tasks []model.Task) []model.Task {
	shared := make(map[string]bool)
	for _, t := range p.SharedTasks() {
		shared[t.ID] = true
	}
	out := []model.Task{}
	for _, t := range tasks {
		if shared[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

// Recent lists the most recently created tasks of the selected event.
type Recent struct {
	Planner *planner.Planner
	Out     io.Writer
	Limit   int
	ShowID  bool
	Output  string
}

func (r *Recent) Do(ctx context.Context) error {
	if r.Planner == nil {
		return errNoPlanner
	}
	tasks := r.Planner.RecentTasks(r.Limit)
	pp := printers.PrettyPrint{ShowID: r.ShowID, Out: r.Out}
	return pp.Render(r.Output, tasks, func() {
		pp.NewLine()
		pp.Tasks("Recent", tasks, projectNames(r.Planner))
	})
}

type Show struct {
	Planner *planner.Planner
	Out     io.Writer
	Ref     string
	Output  string
}

func (s *Show) Do(ctx context.Context) error {
	if s.Planner == nil {
		return errNoPlanner
	}
	t, err := Find(s.Planner, s.Ref)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: s.Out}
	return pp.Render(s.Output, t, func() {
		pp.NewLine()
		pp.Task(t, projectNames(s.Planner)[t.ProjectID])
	})
}

type Add struct {
	Planner *planner.Planner
	Out     io.Writer
	Input   model.TaskInput
	// Project is a project id or name; empty picks the first project of
	// the selected event.
	Project string
	Output  string
}

func (a *Add) Do(ctx context.Context) error {
	if a.Planner == nil {
		return errNoPlanner
	}
	id, err := resolveProject(a.Planner, a.Project)
	if err != nil {
		return err
	}
	a.Input.ProjectID = id
	t, err := a.Planner.AddTask(a.Input)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: a.Out}
	return pp.Render(a.Output, t, func() {
		pp.Printf("Added %q to %q (%s)\n", t.Title, projectNames(a.Planner)[t.ProjectID], t.ID)
		if t.HasPrice() {
			pp.Printf("Budget: %s under %s\n", printers.Money(t.PriceValue()), derive.CategoryFromTitle(t.Title))
		}
	})
}

// Toggle advances a task to its next status.
type Toggle struct {
	Planner *planner.Planner
	Out     io.Writer
	Ref     string
	Output  string
}

func (tg *Toggle) Do(ctx context.Context) error {
	if tg.Planner == nil {
		return errNoPlanner
	}
	t, err := Find(tg.Planner, tg.Ref)
	if err != nil {
		return err
	}
	t, err = tg.Planner.ToggleTaskStatus(t.ID)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: tg.Out}
	return pp.Render(tg.Output, t, func() {
		pp.Printf("%s %s is now %s\n", printers.Bullet(t.Status), t.Title, t.Status.Label())
	})
}

type Update struct {
	Planner *planner.Planner
	Out     io.Writer
	Ref     string
	Patch   model.TaskPatch
	// Project, when set, moves the task.
	Project string
	Output  string
}

func (u *Update) Do(ctx context.Context) error {
	if u.Planner == nil {
		return errNoPlanner
	}
	t, err := Find(u.Planner, u.Ref)
	if err != nil {
		return err
	}
	if u.Project != "" {
		id, err := resolveProject(u.Planner, u.Project)
		if err != nil {
			return err
		}
		u.Patch.ProjectID = &id
	}
	t, err = u.Planner.UpdateTask(t.ID, u.Patch)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: u.Out}
	return pp.Render(u.Output, t, func() {
		pp.Printf("Updated %q\n", t.Title)
	})
}

type Delete struct {
	Planner *planner.Planner
	Out     io.Writer
	Ref     string
}

func (d *Delete) Do(ctx context.Context) error {
	if d.Planner == nil {
		return errNoPlanner
	}
	t, err := Find(d.Planner, d.Ref)
	if err != nil {
		return err
	}
	if err := d.Planner.DeleteTask(t.ID); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: d.Out}
	pp.Printf("Deleted %q\n", t.Title)
	return nil
}
