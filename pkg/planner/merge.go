package planner

import (
	"slices"

	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/store"
)

// Merge upserts remote data by id, keeping remote ids and timestamps, then
// runs derivation once. Changes are reported with OriginRemote. Last write
// wins: a merged record replaces the local one wholesale.
func (p *Planner) Merge(in Collections) {
	p.mu.Lock()
	var b batch
	defer p.release(&b)

	if mergeInto(&p.events, in.Events, func(e model.Event) string { return e.ID }, eventsEqual, func(a Action, e model.Event) {
		e = e.Clone()
		b.add(Change{Kind: KindEvent, Action: a, ID: e.ID, Origin: OriginRemote, Event: &e})
	}) {
		p.save(store.KeyEvents, p.events)
	}
	if mergeInto(&p.projects, in.Projects, func(pr model.Project) string { return pr.ID }, projectsEqual, func(a Action, pr model.Project) {
		pr = pr.Clone()
		b.add(Change{Kind: KindProject, Action: a, ID: pr.ID, Origin: OriginRemote, Project: &pr})
	}) {
		p.save(store.KeyProjects, p.projects)
	}
	if mergeInto(&p.tasks, in.Tasks, func(t model.Task) string { return t.ID }, tasksEqual, func(a Action, t model.Task) {
		t = t.Clone()
		b.add(Change{Kind: KindTask, Action: a, ID: t.ID, Origin: OriginRemote, Task: &t})
	}) {
		p.save(store.KeyTasks, p.tasks)
	}
	// Spent is local derived state; keep ours so an upsert does not
	// report a change that aggregation immediately reverts.
	cats := make([]model.BudgetCategory, len(in.Categories))
	for i, c := range in.Categories {
		if j := p.categoryIndex(c.ID); j >= 0 {
			c.Spent = p.categories[j].Spent
		}
		cats[i] = c
	}
	if mergeInto(&p.categories, cats, func(c model.BudgetCategory) string { return c.ID }, sameValue[model.BudgetCategory], func(a Action, c model.BudgetCategory) {
		b.add(Change{Kind: KindCategory, Action: a, ID: c.ID, Origin: OriginRemote, Category: &c})
	}) {
		p.save(store.KeyBudgetCategories, p.categories)
	}
	if mergeInto(&p.expenses, in.Expenses, func(e model.BudgetExpense) string { return e.ID }, sameValue[model.BudgetExpense], func(a Action, e model.BudgetExpense) {
		b.add(Change{Kind: KindExpense, Action: a, ID: e.ID, Origin: OriginRemote, Expense: &e})
	}) {
		p.save(store.KeyBudgetExpenses, p.expenses)
	}

	p.rederive(OriginRemote, &b)
}

// MergeEvent upserts a single remote event.
func (p *Planner) MergeEvent(e model.Event) {
	p.Merge(Collections{Events: []model.Event{e}})
}

// mergeInto upserts incoming into *dst and reports whether anything
// changed. New records are appended in incoming order.
func mergeInto[T any](dst *[]T, incoming []T, id func(T) string, equal func(a, b T) bool, report func(Action, T)) bool {
	changed := false
	for _, in := range incoming {
		key := id(in)
		if key == "" {
			continue
		}
		found := false
		for i := range *dst {
			if id((*dst)[i]) != key {
				continue
			}
			found = true
			if !equal((*dst)[i], in) {
				(*dst)[i] = in
				report(ActionUpdate, in)
				changed = true
			}
			break
		}
		if !found {
			*dst = append(*dst, in)
			report(ActionCreate, in)
			changed = true
		}
	}
	return changed
}

func sameValue[T comparable](a, b T) bool {
	return a == b
}

func eventsEqual(a, b model.Event) bool {
	return a.ID == b.ID && a.Name == b.Name && a.Type == b.Type && a.Color == b.Color &&
		a.CreatedAt.Equal(b.CreatedAt.Time) && floatPtrEqual(a.Budget, b.Budget)
}

func projectsEqual(a, b model.Project) bool {
	return a.ID == b.ID && a.Name == b.Name && a.Color == b.Color && a.Icon == b.Icon &&
		a.EventID == b.EventID && a.CreatedAt.Equal(b.CreatedAt.Time) && slices.Equal(a.SharedWith, b.SharedWith)
}

func tasksEqual(a, b model.Task) bool {
	return a.ID == b.ID && a.Title == b.Title && a.Description == b.Description &&
		a.Status == b.Status && a.Priority == b.Priority && a.ProjectID == b.ProjectID &&
		a.CreatedAt.Equal(b.CreatedAt.Time) && timePtrEqual(a.DueDate, b.DueDate) &&
		timePtrEqual(a.CompletedAt, b.CompletedAt) && floatPtrEqual(a.Price, b.Price) &&
		slices.Equal(a.AssignedTo, b.AssignedTo)
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func timePtrEqual(a, b *model.Timestamp) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b.Time)
}
