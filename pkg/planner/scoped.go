package planner

import (
	"tableflip.dev/planner/pkg/derive"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/scope"
)

// TasksForSelectedEvent returns the tasks in scope of the selected event,
// or every task when nothing is selected.
func (p *Planner) TasksForSelectedEvent() []model.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneTasks(p.scopedTasks())
}

func (p *Planner) scopedTasks() []model.Task {
	return scope.TasksForEvent(p.tasks, p.projects, p.selected)
}

func (p *Planner) ProjectsForSelectedEvent() []model.Project {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneProjects(scope.ProjectsForEvent(p.projects, p.selected))
}

func (p *Planner) ExpensesForSelectedEvent() []model.BudgetExpense {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.BudgetExpense{}, scope.ExpensesForEvent(p.expenses, p.tasks, p.projects, p.selected)...)
}

// TaskStats summarizes the in-scope tasks.
func (p *Planner) TaskStats() derive.TaskStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return derive.ComputeTaskStats(p.scopedTasks())
}

// BudgetTotals combines the categories with the in-scope task prices.
func (p *Planner) BudgetTotals() derive.BudgetTotals {
	p.mu.Lock()
	defer p.mu.Unlock()
	return derive.ComputeBudgetTotals(p.categories, p.scopedTasks())
}

func (p *Planner) UpcomingTasks(limit int) []model.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneTasks(derive.UpcomingTasks(p.scopedTasks(), limit))
}

func (p *Planner) RecentTasks(limit int) []model.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneTasks(derive.RecentTasks(p.scopedTasks(), limit))
}

// FilterTasks applies f to the in-scope tasks, newest first.
func (p *Planner) FilterTasks(f derive.TaskFilter) []model.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneTasks(derive.FilterTasks(p.scopedTasks(), f))
}
