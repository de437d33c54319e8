// Package model defines the planner entities and their validation rules.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Status is the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Next returns the following status in the todo → in_progress → completed
// → todo cycle.
func (s Status) Next() Status {
	switch s {
	case StatusTodo:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	default:
		return StatusTodo
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

func (s Status) Label() string {
	switch s {
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return "To Do"
	}
}

// ParseStatus accepts the canonical names plus a few spellings used on the
// command line ("in-progress", "done").
func ParseStatus(v string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "todo", "to-do", "to_do":
		return StatusTodo, nil
	case "in_progress", "in-progress", "inprogress", "doing":
		return StatusInProgress, nil
	case "completed", "complete", "done":
		return StatusCompleted, nil
	}
	return "", invalid("unknown status %q", v)
}

// Priority orders tasks by urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func ParsePriority(v string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(v)))
	if !p.Valid() {
		return "", invalid("unknown priority %q", v)
	}
	return p, nil
}

// Task is a unit of planning work, optionally priced.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	ProjectID   string     `json:"projectId"`
	DueDate     *Timestamp `json:"dueDate,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	CreatedAt   Timestamp  `json:"createdAt"`
	CompletedAt *Timestamp `json:"completedAt,omitempty"`
	AssignedTo  []string   `json:"assignedTo,omitempty"`
}

// PriceValue returns the price, or 0 when unset.
func (t Task) PriceValue() float64 {
	if t.Price == nil {
		return 0
	}
	return *t.Price
}

// HasPrice reports whether the task qualifies for a mirrored expense.
func (t Task) HasPrice() bool {
	return t.PriceValue() > 0
}

func (t Task) Clone() Task {
	out := t
	if t.DueDate != nil {
		d := *t.DueDate
		out.DueDate = &d
	}
	if t.Price != nil {
		p := *t.Price
		out.Price = &p
	}
	if t.CompletedAt != nil {
		c := *t.CompletedAt
		out.CompletedAt = &c
	}
	if t.AssignedTo != nil {
		out.AssignedTo = append([]string(nil), t.AssignedTo...)
	}
	return out
}

// Project groups tasks and may be linked to an Event.
type Project struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	Icon       string    `json:"icon"`
	CreatedAt  Timestamp `json:"createdAt"`
	SharedWith []string  `json:"sharedWith"`
	EventID    string    `json:"eventId,omitempty"`
}

func (p Project) Clone() Project {
	out := p
	out.SharedWith = append([]string{}, p.SharedWith...)
	return out
}

// SharedWithUser reports whether userID is in the share list.
func (p Project) SharedWithUser(userID string) bool {
	for _, id := range p.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}

// Event is a top-level planning occasion that scopes projects.
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      EventType `json:"type"`
	Color     string    `json:"color"`
	CreatedAt Timestamp `json:"createdAt"`
	Budget    *float64  `json:"budget,omitempty"`
}

func (e Event) Clone() Event {
	out := e
	if e.Budget != nil {
		b := *e.Budget
		out.Budget = &b
	}
	return out
}

// BudgetCategory holds a manual allocation and the derived spent total.
type BudgetCategory struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Icon      string  `json:"icon"`
	Allocated float64 `json:"allocated"`
	Spent     float64 `json:"spent"`
	Color     string  `json:"color"`
}

// Remaining is allocated minus spent.
func (c BudgetCategory) Remaining() float64 {
	return c.Allocated - c.Spent
}

// PercentUsed is spent/allocated as a percentage, 0 when nothing is allocated.
func (c BudgetCategory) PercentUsed() float64 {
	if c.Allocated <= 0 {
		return 0
	}
	return c.Spent / c.Allocated * 100
}

// BudgetExpense is a single cost, either user-entered or mirrored from a
// priced task.
type BudgetExpense struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"categoryId"`
	Title      string    `json:"title"`
	Amount     float64   `json:"amount"`
	Vendor     string    `json:"vendor,omitempty"`
	Date       Timestamp `json:"date"`
	Notes      string    `json:"notes,omitempty"`
	IsPaid     bool      `json:"isPaid"`
	CreatedAt  Timestamp `json:"createdAt"`
}

// Mirrored reports whether the expense was generated from a task.
func (e BudgetExpense) Mirrored() bool {
	return IsMirrorID(e.ID)
}

const (
	mirrorIDPrefix    = "task-"
	mirrorTitlePrefix = "Task: "
)

// MirrorID is the reserved expense id for the task's mirrored expense.
func MirrorID(taskID string) string {
	return mirrorIDPrefix + taskID
}

// MirrorTitle is the title given to a mirrored expense.
func MirrorTitle(taskTitle string) string {
	return mirrorTitlePrefix + taskTitle
}

func IsMirrorID(id string) bool {
	return strings.HasPrefix(id, mirrorIDPrefix)
}

// MirrorTaskID extracts the source task id from a mirrored expense id.
func MirrorTaskID(expenseID string) (string, bool) {
	if !IsMirrorID(expenseID) {
		return "", false
	}
	return strings.TrimPrefix(expenseID, mirrorIDPrefix), true
}
