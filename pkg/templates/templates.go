// Package templates holds the suggested tasks offered for each event type.
package templates

import (
	"slices"

	"tableflip.dev/planner/pkg/derive"
	"tableflip.dev/planner/pkg/model"
)

// Template is a suggested task. Price is 0 when the template has no
// typical cost.
type Template struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Price       float64           `json:"price,omitempty"`
	Priority    model.Priority    `json:"priority"`
	Category    string            `json:"category"`
	Icon        string            `json:"icon"`
	EventTypes  []model.EventType `json:"eventTypes"`
}

// Input turns the template into a task for projectID.
func (t Template) Input(projectID string) model.TaskInput {
	in := model.TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      model.StatusTodo,
		ProjectID:   projectID,
	}
	if t.Price > 0 {
		price := t.Price
		in.Price = &price
	}
	return in
}

// All returns every template.
func All() []Template {
	return slices.Clone(catalog)
}

// ForEventType returns the templates that apply to eventType, plus any
// marked for every event.
func ForEventType(eventType model.EventType) []Template {
	var out []Template
	for _, t := range catalog {
		if slices.Contains(t.EventTypes, eventType) || slices.Contains(t.EventTypes, model.EventCustom) {
			out = append(out, t)
		}
	}
	return out
}

// Suggestion is a template annotated with the existing task it would
// duplicate, if any.
type Suggestion struct {
	Template
	DuplicateOf string `json:"duplicateOf,omitempty"`
}

func (s Suggestion) Duplicate() bool {
	return s.DuplicateOf != ""
}

// Suggest lists the templates for eventType against the tasks already
// planned.
func Suggest(eventType model.EventType, existing []model.Task) []Suggestion {
	templates := ForEventType(eventType)
	out := make([]Suggestion, 0, len(templates))
	for _, t := range templates {
		s := Suggestion{Template: t}
		for _, task := range existing {
			if derive.IsDuplicate(t.Title, task.Title) {
				s.DuplicateOf = task.ID
				break
			}
		}
		out = append(out, s)
	}
	return out
}
