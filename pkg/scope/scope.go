// Package scope narrows planner collections to a single event. An empty
// event id means no selection and returns everything.
package scope

import "tableflip.dev/planner/pkg/model"

// ProjectsForEvent returns the projects linked to eventID.
func ProjectsForEvent(projects []model.Project, eventID string) []model.Project {
	if eventID == "" {
		return projects
	}
	var out []model.Project
	for _, p := range projects {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out
}

// TasksForEvent returns tasks whose project belongs to eventID. Tasks of
// unknown or unlinked projects are out of every event's scope.
func TasksForEvent(tasks []model.Task, projects []model.Project, eventID string) []model.Task {
	if eventID == "" {
		return tasks
	}
	in := projectSet(ProjectsForEvent(projects, eventID))
	var out []model.Task
	for _, t := range tasks {
		if in[t.ProjectID] {
			out = append(out, t)
		}
	}
	return out
}

// ExpensesForEvent returns the mirrored expenses of in-scope tasks plus every
// user-entered expense, which carries no event link.
func ExpensesForEvent(expenses []model.BudgetExpense, tasks []model.Task, projects []model.Project, eventID string) []model.BudgetExpense {
	if eventID == "" {
		return expenses
	}
	inScope := make(map[string]bool)
	for _, t := range TasksForEvent(tasks, projects, eventID) {
		inScope[t.ID] = true
	}
	var out []model.BudgetExpense
	for _, e := range expenses {
		taskID, mirrored := model.MirrorTaskID(e.ID)
		if !mirrored || inScope[taskID] {
			out = append(out, e)
		}
	}
	return out
}

func projectSet(projects []model.Project) map[string]bool {
	out := make(map[string]bool, len(projects))
	for _, p := range projects {
		out[p.ID] = true
	}
	return out
}
