package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"tableflip.dev/planner/pkg/derive"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/templates"
	"tableflip.dev/planner/pkg/timeutil"
)

// ErrNoEvent is returned by commands that need a selected event.
var ErrNoEvent = errors.New("no event selected, pick one with `planner event select`")

// Upcoming lists open tasks by due date.
type Upcoming struct {
	Planner *planner.Planner
	Out     io.Writer
	Limit   int
	// Within, when set, keeps only tasks due inside the window.
	Within *timeutil.Window
	ShowID bool
	Output string
}

func (u *Upcoming) Do(ctx context.Context) error {
	if u.Planner == nil {
		return errNoPlanner
	}
	var tasks []model.Task
	if u.Within == nil {
		tasks = u.Planner.UpcomingTasks(u.Limit)
	} else {
		for _, t := range u.Planner.UpcomingTasks(len(u.Planner.Tasks()) + 1) {
			if u.Within.Contains(t.DueDate.Time) {
				tasks = append(tasks, t)
			}
		}
		if u.Limit > 0 && len(tasks) > u.Limit {
			tasks = tasks[:u.Limit]
		}
	}
	pp := printers.PrettyPrint{ShowID: u.ShowID, Out: u.Out}
	return pp.Render(u.Output, tasks, func() {
		pp.NewLine()
		pp.Tasks("Upcoming", tasks, projectNames(u.Planner))
	})
}

// Calendar prints the month around On with the tasks due each day.
type Calendar struct {
	Planner *planner.Planner
	Out     io.Writer
	On      time.Time
	Output  string
}

func (c *Calendar) Do(ctx context.Context) error {
	if c.Planner == nil {
		return errNoPlanner
	}
	on := c.On
	if on.IsZero() {
		on = time.Now()
	}
	var tasks []model.Task
	for _, t := range c.Planner.TasksForSelectedEvent() {
		if t.Status != model.StatusCompleted {
			tasks = append(tasks, t)
		}
	}
	pp := printers.PrettyPrint{Out: c.Out}
	month := time.Date(on.Year(), on.Month(), 1, 1, 0, 0, 0, time.Local)
	out := struct {
		Month string `json:"month"`
		Due   []int  `json:"due"`
	}{Month: month.Format("2006-01"), Due: printers.DueCounts(month, tasks)}
	return pp.Render(c.Output, out, func() {
		pp.NewLine()
		pp.Calendar(on, tasks...)
	})
}

// Suggest lists the template tasks for the selected event's type. Add holds
// 1-based positions in that list to create as tasks.
type Suggest struct {
	Planner *planner.Planner
	Out     io.Writer
	Add     []int
	Project string
	Output  string
}

// SuggestResult is the structured output of Suggest.
type SuggestResult struct {
	Event       string                 `json:"eventId"`
	Suggestions []templates.Suggestion `json:"suggestions"`
	Added       []model.Task           `json:"added,omitempty"`
	Skipped     []string               `json:"skipped,omitempty"`
}

func (s *Suggest) Do(ctx context.Context) error {
	if s.Planner == nil {
		return errNoPlanner
	}
	e, ok := s.Planner.SelectedEvent()
	if !ok {
		return ErrNoEvent
	}
	suggestions := templates.Suggest(e.Type, s.Planner.TasksForSelectedEvent())
	res := SuggestResult{Event: e.ID, Suggestions: suggestions}

	if len(s.Add) > 0 {
		projectID, err := resolveProject(s.Planner, s.Project)
		if err != nil {
			return err
		}
		for _, n := range s.Add {
			if n < 1 || n > len(suggestions) {
				return fmt.Errorf("no suggestion %d, pick 1-%d", n, len(suggestions))
			}
			sg := suggestions[n-1]
			if sg.Duplicate() {
				res.Skipped = append(res.Skipped, sg.Title)
				continue
			}
			t, err := s.Planner.AddTask(sg.Input(projectID))
			if errors.Is(err, planner.ErrDuplicate) || errors.Is(err, planner.ErrPossibleDuplicate) {
				res.Skipped = append(res.Skipped, sg.Title)
				continue
			}
			if err != nil {
				return err
			}
			res.Added = append(res.Added, t)
		}
	}

	pp := printers.PrettyPrint{Out: s.Out}
	return pp.Render(s.Output, res, func() {
		if len(s.Add) == 0 {
			pp.NewLine()
			pp.Suggestions(e, suggestions)
			return
		}
		for _, t := range res.Added {
			pp.Printf("Added %q\n", t.Title)
		}
		for _, title := range res.Skipped {
			pp.Printf("Skipped %q, already planned\n", title)
		}
		if totals := derive.ComputeTaskStats(res.Added); totals.TotalPrice > 0 {
			pp.Printf("Budget: %s added\n", printers.Money(totals.TotalPrice))
		}
	})
}
