// Package tasks holds the CLI runners for tasks.
package tasks

import (
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/runner/projects"
)

var (
	errNoPlanner = errors.New("no planner")
	// ErrNoProject is returned when a task needs a project and the selected
	// event has none.
	ErrNoProject = errors.New("no project to add the task to, create one with `planner project add`")
)

// Find resolves ref as a task id, a unique id prefix or a case-insensitive
// title of a task in scope.
func Find(p *planner.Planner, ref string) (model.Task, error) {
	ref = strings.TrimSpace(ref)
	if t, err := p.Task(ref); err == nil {
		return t, nil
	}
	var byTitle, byPrefix []model.Task
	for _, t := range p.TasksForSelectedEvent() {
		if strings.EqualFold(t.Title, ref) {
			byTitle = append(byTitle, t)
		}
		if len(ref) >= 4 && strings.HasPrefix(t.ID, ref) {
			byPrefix = append(byPrefix, t)
		}
	}
	for _, found := range [][]model.Task{byTitle, byPrefix} {
		switch len(found) {
		case 0:
			continue
		case 1:
			return found[0], nil
		default:
			return model.Task{}, fmt.Errorf("%d tasks match %q, use the id", len(found), ref)
		}
	}
	return model.Task{}, fmt.Errorf("%w: task %q", planner.ErrNotFound, ref)
}

// resolveProject returns the id of ref, or the first project in scope when
// ref is empty.
func resolveProject(p *planner.Planner, ref string) (string, error) {
	if ref != "" {
		pr, err := projects.Find(p, ref)
		if err != nil {
			return "", err
		}
		return pr.ID, nil
	}
	in := p.ProjectsForSelectedEvent()
	if len(in) == 0 {
		return "", ErrNoProject
	}
	return in[0].ID, nil
}

func projectNames(p *planner.Planner) map[string]string {
	names := map[string]string{}
	for _, pr := range p.Projects() {
		names[pr.ID] = pr.Name
	}
	return names
}
