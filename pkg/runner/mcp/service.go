// Package mcp provides the Model Context Protocol server integration for the planner.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/planner/pkg/assistant"
	"tableflip.dev/planner/pkg/derive"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/planner"
)

// Service coordinates planner-backed operations that are shared by the MCP server.
type Service struct {
	Planner   *planner.Planner
	Assistant *assistant.Assistant
}

// TaskDTO is a transport-friendly projection of a task.
type TaskDTO struct {
	model.Task
	StatusLabel string `json:"statusLabel"`
	ProjectName string `json:"projectName,omitempty"`
}

// TaskList is one page of tasks after filtering.
type TaskList struct {
	Filter     string    `json:"filter"`
	Search     string    `json:"search,omitempty"`
	Items      []TaskDTO `json:"items"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalItems int       `json:"totalItems"`
	TotalPages int       `json:"totalPages"`
}

// EventList describes every event and the current selection.
type EventList struct {
	Events   []model.Event `json:"events"`
	Selected string        `json:"selectedEventId,omitempty"`
	Count    int           `json:"count"`
}

// CategoryDTO adds the derived figures to a budget category.
type CategoryDTO struct {
	model.BudgetCategory
	Remaining    float64 `json:"remaining"`
	PercentUsed  float64 `json:"percentUsed"`
	ExpenseCount int     `json:"expenseCount"`
}

// BudgetSummary is the budget overview of the selected event.
type BudgetSummary struct {
	EventID    string              `json:"eventId,omitempty"`
	Totals     derive.BudgetTotals `json:"totals"`
	Categories []CategoryDTO       `json:"categories"`
}

// ListTasksOptions captures the parameters of a task listing.
type ListTasksOptions struct {
	Filter   string
	Search   string
	Page     int
	PageSize int
}

// NewService builds a service wrapper around p.
func NewService(p *planner.Planner) *Service {
	return &Service{Planner: p, Assistant: assistant.New(p)}
}

func (s *Service) ready() error {
	if s.Planner == nil {
		return errors.New("planner is not configured")
	}
	return nil
}

// ListTasks filters and paginates the tasks of the selected event.
func (s *Service) ListTasks(ctx context.Context, opts ListTasksOptions) (TaskList, error) {
	if err := s.ready(); err != nil {
		return TaskList{}, err
	}
	filter := strings.TrimSpace(opts.Filter)
	if filter == "" {
		filter = derive.FilterAll
	}
	if !validFilter(filter) {
		return TaskList{}, fmt.Errorf("unknown filter %q (want one of %s)", filter, strings.Join(derive.Filters(), ", "))
	}
	tasks := s.Planner.FilterTasks(derive.TaskFilter{Filter: filter, Search: opts.Search})
	page := derive.Paginate(tasks, opts.Page, opts.PageSize)

	names := s.projectNames()
	items := make([]TaskDTO, 0, len(page.Items))
	for _, t := range page.Items {
		items = append(items, toTaskDTO(t, names))
	}
	return TaskList{
		Filter:     filter,
		Search:     opts.Search,
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}, nil
}

func validFilter(f string) bool {
	for _, known := range derive.Filters() {
		if f == known {
			return true
		}
	}
	return false
}

// ToggleTask advances a task to its next status.
func (s *Service) ToggleTask(ctx context.Context, id string) (TaskDTO, error) {
	if err := s.ready(); err != nil {
		return TaskDTO{}, err
	}
	t, err := s.Planner.ToggleTaskStatus(id)
	if err != nil {
		return TaskDTO{}, err
	}
	return toTaskDTO(t, s.projectNames()), nil
}

// AddTask runs the assistant's add-task tool.
func (s *Service) AddTask(ctx context.Context, args assistant.AddTaskArgs) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	if strings.TrimSpace(args.Title) == "" {
		return "", errors.New("title is required")
	}
	return s.Assistant.Tools.AddTask(ctx, args)
}

// AnalyzeTasks runs the assistant's analysis tool.
func (s *Service) AnalyzeTasks(ctx context.Context, projectID string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	return s.Assistant.Tools.AnalyzeTasks(ctx, projectID)
}

// Ask sends a free-form message through the keyword interpreter.
func (s *Service) Ask(ctx context.Context, message string) (assistant.Reply, error) {
	if err := s.ready(); err != nil {
		return assistant.Reply{}, err
	}
	return s.Assistant.Send(ctx, message), nil
}

// BudgetSummary reports totals and per-category figures.
func (s *Service) BudgetSummary(ctx context.Context) (BudgetSummary, error) {
	if err := s.ready(); err != nil {
		return BudgetSummary{}, err
	}
	byCategory := s.Planner.ExpensesByCategory()
	cats := s.Planner.Categories()
	out := BudgetSummary{
		EventID:    s.Planner.SelectedEventID(),
		Totals:     s.Planner.BudgetTotals(),
		Categories: make([]CategoryDTO, 0, len(cats)),
	}
	for _, c := range cats {
		out.Categories = append(out.Categories, CategoryDTO{
			BudgetCategory: c,
			Remaining:      c.Remaining(),
			PercentUsed:    c.PercentUsed(),
			ExpenseCount:   len(byCategory[c.ID]),
		})
	}
	return out, nil
}

// ListEvents returns every event and the selection.
func (s *Service) ListEvents(ctx context.Context) (EventList, error) {
	if err := s.ready(); err != nil {
		return EventList{}, err
	}
	events := s.Planner.Events()
	return EventList{Events: events, Selected: s.Planner.SelectedEventID(), Count: len(events)}, nil
}

// SelectEvent scopes later reads to id; an empty id clears the selection.
func (s *Service) SelectEvent(ctx context.Context, id string) (EventList, error) {
	if err := s.ready(); err != nil {
		return EventList{}, err
	}
	if err := s.Planner.SelectEvent(strings.TrimSpace(id)); err != nil {
		return EventList{}, err
	}
	return s.ListEvents(ctx)
}

func (s *Service) projectNames() map[string]string {
	names := map[string]string{}
	for _, p := range s.Planner.Projects() {
		names[p.ID] = p.Name
	}
	return names
}

func toTaskDTO(t model.Task, projects map[string]string) TaskDTO {
	return TaskDTO{
		Task:        t,
		StatusLabel: t.Status.Label(),
		ProjectName: projects[t.ProjectID],
	}
}
