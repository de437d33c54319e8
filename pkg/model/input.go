package model

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// TaskInput carries the caller-supplied fields of a new task.
type TaskInput struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
	ProjectID   string
	DueDate     *Timestamp
	Price       *float64
	AssignedTo  []string

	// AllowDuplicate accepts a title that is similar, but not identical, to
	// an existing task.
	AllowDuplicate bool
}

// Validate normalizes defaults in place and rejects bad input.
func (in *TaskInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return invalid("task title is required")
	}
	if in.Status == "" {
		in.Status = StatusTodo
	}
	if !in.Status.Valid() {
		return invalid("unknown status %q", in.Status)
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if !in.Priority.Valid() {
		return invalid("unknown priority %q", in.Priority)
	}
	if err := checkPrice(in.Price); err != nil {
		return err
	}
	in.Price = normalizePrice(in.Price)
	return nil
}

// TaskPatch is a partial task update; nil fields are left untouched.
type TaskPatch struct {
	Title        *string
	Description  *string
	Status       *Status
	Priority     *Priority
	ProjectID    *string
	DueDate      *Timestamp
	ClearDueDate bool
	// Price set to zero clears the price.
	Price      *float64
	AssignedTo []string
}

func (p *TaskPatch) Validate() error {
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			return invalid("task title is required")
		}
		p.Title = &t
	}
	if p.Status != nil && !p.Status.Valid() {
		return invalid("unknown status %q", *p.Status)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return invalid("unknown priority %q", *p.Priority)
	}
	return checkPrice(p.Price)
}

// Apply merges the patch into t. Status transitions keep CompletedAt in
// step: it is set on entering completed and cleared on leaving it.
func (p TaskPatch) Apply(t Task, now Timestamp) Task {
	out := t.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = strings.TrimSpace(*p.Description)
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.ProjectID != nil {
		out.ProjectID = *p.ProjectID
	}
	if p.ClearDueDate {
		out.DueDate = nil
	} else if p.DueDate != nil {
		d := *p.DueDate
		out.DueDate = &d
	}
	if p.Price != nil {
		out.Price = normalizePrice(p.Price)
	}
	if p.AssignedTo != nil {
		out.AssignedTo = append([]string(nil), p.AssignedTo...)
	}
	if p.Status != nil {
		out = SetStatus(out, *p.Status, now)
	}
	return out
}

// SetStatus moves t to status, maintaining CompletedAt.
func SetStatus(t Task, status Status, now Timestamp) Task {
	if t.Status == status {
		return t
	}
	t.Status = status
	if status == StatusCompleted {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	return t
}

// ProjectInput carries the fields of a new project.
type ProjectInput struct {
	Name       string
	Color      string
	Icon       string
	SharedWith []string
	EventID    string
}

func (in *ProjectInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return invalid("project name is required")
	}
	in.Color = NormalizeColor(in.Color, DefaultProjectColor)
	if in.Icon == "" {
		in.Icon = "folder"
	}
	if in.SharedWith == nil {
		in.SharedWith = []string{}
	}
	return nil
}

type ProjectPatch struct {
	Name       *string
	Color      *string
	Icon       *string
	SharedWith []string
	// EventID set to the empty string unlinks the project.
	EventID *string
}

func (p *ProjectPatch) Validate() error {
	if p.Name != nil {
		n := strings.TrimSpace(*p.Name)
		if n == "" {
			return invalid("project name is required")
		}
		p.Name = &n
	}
	return nil
}

func (p ProjectPatch) Apply(in Project) Project {
	out := in.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Color != nil {
		out.Color = NormalizeColor(*p.Color, out.Color)
	}
	if p.Icon != nil {
		out.Icon = *p.Icon
	}
	if p.SharedWith != nil {
		out.SharedWith = append([]string{}, p.SharedWith...)
	}
	if p.EventID != nil {
		out.EventID = *p.EventID
	}
	return out
}

// EventInput carries the fields of a new event.
type EventInput struct {
	Name   string
	Type   EventType
	Color  string
	Budget *float64
}

func (in *EventInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return invalid("event name is required")
	}
	if in.Type == "" {
		in.Type = EventCustom
	}
	if !in.Type.Valid() {
		return invalid("unknown event type %q", in.Type)
	}
	in.Color = NormalizeColor(in.Color, in.Type.Info().Color)
	if in.Budget != nil && (*in.Budget < 0 || !finite(*in.Budget)) {
		return invalid("event budget must be a non-negative number")
	}
	return nil
}

type EventPatch struct {
	Name        *string
	Type        *EventType
	Color       *string
	Budget      *float64
	ClearBudget bool
}

func (p *EventPatch) Validate() error {
	if p.Name != nil {
		n := strings.TrimSpace(*p.Name)
		if n == "" {
			return invalid("event name is required")
		}
		p.Name = &n
	}
	if p.Type != nil && !p.Type.Valid() {
		return invalid("unknown event type %q", *p.Type)
	}
	if p.Budget != nil && (*p.Budget < 0 || !finite(*p.Budget)) {
		return invalid("event budget must be a non-negative number")
	}
	return nil
}

func (p EventPatch) Apply(in Event) Event {
	out := in.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.Color != nil {
		out.Color = NormalizeColor(*p.Color, out.Color)
	}
	if p.ClearBudget {
		out.Budget = nil
	} else if p.Budget != nil {
		b := *p.Budget
		out.Budget = &b
	}
	return out
}

// CategoryInput carries the fields of a new budget category.
type CategoryInput struct {
	Name      string
	Icon      string
	Allocated float64
	Color     string
}

func (in *CategoryInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return invalid("category name is required")
	}
	if in.Allocated < 0 || !finite(in.Allocated) {
		return invalid("allocated amount must be a non-negative number")
	}
	if in.Icon == "" {
		in.Icon = "tag"
	}
	in.Color = NormalizeColor(in.Color, DefaultCategoryColor)
	return nil
}

// CategoryPatch updates the user-editable fields of a category. Spent is
// derived and has no patch field.
type CategoryPatch struct {
	Name      *string
	Icon      *string
	Allocated *float64
	Color     *string
}

func (p *CategoryPatch) Validate() error {
	if p.Name != nil {
		n := strings.TrimSpace(*p.Name)
		if n == "" {
			return invalid("category name is required")
		}
		p.Name = &n
	}
	if p.Allocated != nil && (*p.Allocated < 0 || !finite(*p.Allocated)) {
		return invalid("allocated amount must be a non-negative number")
	}
	return nil
}

func (p CategoryPatch) Apply(in BudgetCategory) BudgetCategory {
	out := in
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Icon != nil {
		out.Icon = *p.Icon
	}
	if p.Allocated != nil {
		out.Allocated = *p.Allocated
	}
	if p.Color != nil {
		out.Color = NormalizeColor(*p.Color, out.Color)
	}
	return out
}

// ExpenseInput carries the fields of a new user-entered expense.
type ExpenseInput struct {
	CategoryID string
	Title      string
	Amount     float64
	Vendor     string
	Date       *Timestamp
	Notes      string
	IsPaid     bool

	// AllowDuplicate accepts a title similar to an existing expense.
	AllowDuplicate bool
}

func (in *ExpenseInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return invalid("expense title is required")
	}
	if in.Amount <= 0 || !finite(in.Amount) {
		return invalid("expense amount must be a positive number")
	}
	in.Vendor = strings.TrimSpace(in.Vendor)
	in.Notes = strings.TrimSpace(in.Notes)
	return nil
}

type ExpensePatch struct {
	CategoryID *string
	Title      *string
	Amount     *float64
	Vendor     *string
	Date       *Timestamp
	Notes      *string
	IsPaid     *bool
}

func (p *ExpensePatch) Validate() error {
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			return invalid("expense title is required")
		}
		p.Title = &t
	}
	if p.Amount != nil && (*p.Amount <= 0 || !finite(*p.Amount)) {
		return invalid("expense amount must be a positive number")
	}
	return nil
}

func (p ExpensePatch) Apply(in BudgetExpense) BudgetExpense {
	out := in
	if p.CategoryID != nil {
		out.CategoryID = *p.CategoryID
	}
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Amount != nil {
		out.Amount = *p.Amount
	}
	if p.Vendor != nil {
		out.Vendor = strings.TrimSpace(*p.Vendor)
	}
	if p.Date != nil {
		out.Date = *p.Date
	}
	if p.Notes != nil {
		out.Notes = strings.TrimSpace(*p.Notes)
	}
	if p.IsPaid != nil {
		out.IsPaid = *p.IsPaid
	}
	return out
}

func checkPrice(p *float64) error {
	if p == nil {
		return nil
	}
	if *p < 0 || !finite(*p) {
		return invalid("price must be a non-negative number")
	}
	return nil
}

// normalizePrice drops zero prices so "no price" has one representation.
func normalizePrice(p *float64) *float64 {
	if p == nil || *p <= 0 {
		return nil
	}
	v := *p
	return &v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ParseAmount parses a user-typed money amount such as "1,250.50" or "$90".
func ParseAmount(v string) (float64, error) {
	s := strings.TrimSpace(v)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, invalid("amount is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, invalid("malformed amount %q", v)
	}
	f, _ := d.Float64()
	return f, nil
}
