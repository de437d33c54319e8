// Package events holds the CLI runners for events and the event selection.
package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/printers"
)

var errNoPlanner = errors.New("no planner")

// Find resolves ref as an event id, then as a case-insensitive event name.
func Find(p *planner.Planner, ref string) (model.Event, error) {
	ref = strings.TrimSpace(ref)
	if e, err := p.Event(ref); err == nil {
		return e, nil
	}
	var found []model.Event
	for _, e := range p.Events() {
		if strings.EqualFold(e.Name, ref) {
			found = append(found, e)
		}
	}
	switch len(found) {
	case 0:
		return model.Event{}, fmt.Errorf("%w: event %q", planner.ErrNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return model.Event{}, fmt.Errorf("%d events are named %q, use the id", len(found), ref)
	}
}

type List struct {
	Planner *planner.Planner
	Out     io.Writer
	ShowID  bool
	Output  string
}

func (l *List) Do(ctx context.Context) error {
	if l.Planner == nil {
		return errNoPlanner
	}
	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: l.Out}
	events := l.Planner.Events()
	selected := l.Planner.SelectedEventID()
	out := struct {
		Events   []model.Event `json:"events"`
		Selected string        `json:"selectedEventId,omitempty"`
	}{Events: events, Selected: selected}
	return pp.Render(l.Output, out, func() {
		pp.NewLine()
		pp.Events(events, selected)
	})
}

type Add struct {
	Planner *planner.Planner
	Out     io.Writer
	Input   model.EventInput
	// Keep restores the previous selection after the new event is created.
	Keep   bool
	Output string
}

func (a *Add) Do(ctx context.Context) error {
	if a.Planner == nil {
		return errNoPlanner
	}
	previous := a.Planner.SelectedEventID()
	e, err := a.Planner.AddEvent(a.Input)
	if err != nil {
		return err
	}
	if a.Keep {
		if previous == "" {
			err = a.Planner.ClearSelection()
		} else {
			err = a.Planner.SelectEvent(previous)
		}
		if err != nil {
			return err
		}
	}
	pp := printers.PrettyPrint{Out: a.Out}
	return pp.Render(a.Output, e, func() {
		pp.Printf("Added %s %q (%s)\n", strings.ToLower(e.Type.Info().Name), e.Name, e.ID)
		if !a.Keep {
			pp.Printf("Selected %q\n", e.Name)
		}
	})
}

type Select struct {
	Planner *planner.Planner
	Out     io.Writer
	Ref     string
	// Clear drops the selection so every project is in scope.
	Clear  bool
	Output string
}

func (s *Select) Do(ctx context.Context) error {
	if s.Planner == nil {
		return errNoPlanner
	}
	pp := printers.PrettyPrint{Out: s.Out}
	if s.Clear {
		if err := s.Planner.ClearSelection(); err != nil {
			return err
		}
		return pp.Render(s.Output, map[string]string{"selectedEventId": ""}, func() {
			pp.Printf("Selection cleared, showing all events\n")
		})
	}
	e, err := Find(s.Planner, s.Ref)
	if err != nil {
		return err
	}
	if err := s.Planner.SelectEvent(e.ID); err != nil {
		return err
	}
	return pp.Render(s.Output, e, func() {
		pp.Printf("Selected %q\n", e.Name)
	})
}

type Update struct {
	Planner *planner.Planner
	Out     io.Writer
	Ref     string
	Patch   model.EventPatch
	Output  string
}

func (u *Update) Do(ctx context.Context) error {
	if u.Planner == nil {
		return errNoPlanner
	}
	e, err := Find(u.Planner, u.Ref)
	if err != nil {
		return err
	}
	e, err = u.Planner.UpdateEvent(e.ID, u.Patch)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: u.Out}
	return pp.Render(u.Output, e, func() {
		pp.Printf("Updated %q\n", e.Name)
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
	e, err := Find(d.Planner, d.Ref)
	if err != nil {
		return err
	}
	if err := d.Planner.DeleteEvent(e.ID); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: d.Out}
	pp.Printf("Deleted %q, its projects are kept\n", e.Name)
	return nil
}
