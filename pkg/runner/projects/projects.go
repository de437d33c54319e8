// Package projects holds the CLI runners for projects.
package projects

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/runner/events"
)

var errNoPlanner = errors.New("no planner")

// Find resolves ref as a project id, then as a case-insensitive project
// name among the projects in scope.
func Find(p *planner.Planner, ref string) (model.Project, error) {
	ref = strings.TrimSpace(ref)
	if pr, err := p.Project(ref); err == nil {
		return pr, nil
	}
	var found []model.Project
	for _, pr := range p.ProjectsForSelectedEvent() {
		if strings.EqualFold(pr.Name, ref) {
			found = append(found, pr)
		}
	}
	switch len(found) {
	case 0:
		return model.Project{}, fmt.Errorf("%w: project %q", planner.ErrNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return model.Project{}, fmt.Errorf("%d projects are named %q, use the id", len(found), ref)
	}
}

// EventNames maps event ids to names for display.
func EventNames(p *planner.Planner) map[string]string {
	names := map[string]string{}
	for _, e := range p.Events() {
		names[e.ID] = e.Name
	}
	return names
}

type List struct {
	Planner *planner.Planner
	Out     io.Writer
	// All lists projects of every event instead of the selection.
	All    bool
	ShowID bool
	Output string
}

func (l *List) Do(ctx context.Context) error {
	if l.Planner == nil {
		return errNoPlanner
	}
	projects := l.Planner.ProjectsForSelectedEvent()
	if l.All {
		projects = l.Planner.Projects()
	}
	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: l.Out}
	return pp.Render(l.Output, projects, func() {
		pp.NewLine()
		pp.Projects(projects, EventNames(l.Planner))
	})
}

type Add struct {
	Planner *planner.Planner
	Out     io.Writer
	Input   model.ProjectInput
	// Event is an event id or name. Empty links the selected event unless
	// Unscoped is set.
	Event    string
	Unscoped bool
	Output   string
}

func (a *Add) Do(ctx context.Context) error {
	if a.Planner == nil {
		return errNoPlanner
	}
	switch {
	case a.Unscoped:
		a.Input.EventID = ""
	case a.Event != "":
		e, err := events.Find(a.Planner, a.Event)
		if err != nil {
			return err
		}
		a.Input.EventID = e.ID
	default:
		a.Input.EventID = a.Planner.SelectedEventID()
	}
	pr, err := a.Planner.AddProject(a.Input)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: a.Out}
	return pp.Render(a.Output, pr, func() {
		if pr.EventID == "" {
			pp.Printf("Added project %q (%s)\n", pr.Name, pr.ID)
			return
		}
		pp.Printf("Added project %q (%s) to %q\n", pr.Name, pr.ID, EventNames(a.Planner)[pr.EventID])
	})
}

type Share struct {
	Planner *planner.Planner
	Out     io.Writer
	Ref     string
	Users   []string
	Output  string
}

func (s *Share) Do(ctx context.Context) error {
	if s.Planner == nil {
		return errNoPlanner
	}
	pr, err := Find(s.Planner, s.Ref)
	if err != nil {
		return err
	}
	pr, err = s.Planner.ShareProject(pr.ID, s.Users...)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: s.Out}
	return pp.Render(s.Output, pr, func() {
		if len(pr.SharedWith) == 0 {
			pp.Printf("%q is not shared\n", pr.Name)
			return
		}
		pp.Printf("%q is shared with %s\n", pr.Name, strings.Join(pr.SharedWith, ", "))
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
	pr, err := Find(d.Planner, d.Ref)
	if err != nil {
		return err
	}
	if err := d.Planner.DeleteProject(pr.ID); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: d.Out}
	pp.Printf("Deleted project %q\n", pr.Name)
	if n := len(d.Planner.TasksByProject(pr.ID)); n > 0 {
		pp.Printf("%d tasks still reference it\n", n)
	}
	return nil
}
