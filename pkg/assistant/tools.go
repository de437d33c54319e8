// Package assistant turns short chat messages into planner operations.
package assistant

import (
	"context"
	"fmt"
	"math"

	"tableflip.dev/planner/pkg/derive"
	"tableflip.dev/planner/pkg/model"
)

// Planner is the part of *planner.Planner the tools drive.
type Planner interface {
	AddTask(in model.TaskInput) (model.Task, error)
	ProjectsForSelectedEvent() []model.Project
	TasksForSelectedEvent() []model.Task
}

// AddTaskArgs are the inputs of the add-task tool. Empty fields take the
// defaults: the first in-scope project and medium priority.
type AddTaskArgs struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	ProjectID   string         `json:"projectId,omitempty"`
	Priority    model.Priority `json:"priority,omitempty"`
}

// NoProjects is returned by AddTask when there is nowhere to put the task.
const NoProjects = "No projects available. Please create a project first."

type Tools struct {
	Planner Planner
}

// AddTask creates a todo task and returns a confirmation for the user.
func (t *Tools) AddTask(_ context.Context, args AddTaskArgs) (string, error) {
	projects := t.Planner.ProjectsForSelectedEvent()
	projectID := args.ProjectID
	if projectID == "" && len(projects) > 0 {
		projectID = projects[0].ID
	}
	if projectID == "" {
		return NoProjects, nil
	}
	priority := args.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	task, err := t.Planner.AddTask(model.TaskInput{
		Title:       args.Title,
		Description: args.Description,
		ProjectID:   projectID,
		Priority:    priority,
		Status:      model.StatusTodo,
	})
	if err != nil {
		return "", err
	}
	for _, p := range projects {
		if p.ID == projectID {
			return fmt.Sprintf("Task %q added successfully to project %q.", task.Title, p.Name), nil
		}
	}
	return fmt.Sprintf("Task %q added successfully.", task.Title), nil
}

// AnalyzeTasks summarizes the in-scope tasks, optionally narrowed to one
// project.
func (t *Tools) AnalyzeTasks(_ context.Context, projectID string) (string, error) {
	tasks := t.Planner.TasksForSelectedEvent()
	if projectID != "" {
		filtered := tasks[:0]
		for _, task := range tasks {
			if task.ProjectID == projectID {
				filtered = append(filtered, task)
			}
		}
		tasks = filtered
	}
	s := derive.ComputeTaskStats(tasks)
	return fmt.Sprintf("Task Analysis:\n- Total: %d\n- Completed: %d (%d%%)\n- In Progress: %d\n- Todo: %d\n- High Priority: %d",
		s.Total, s.Completed, int(math.Round(s.PercentComplete)), s.InProgress, s.Todo, s.HighPriority), nil
}
