package remote

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"tableflip.dev/planner/pkg/model"
)

var (
	eventColumns    = []string{"id", "user_id", "name", "type", "color", "budget", "created_at"}
	projectColumns  = []string{"id", "user_id", "name", "color", "icon", "event_id", "shared_with", "created_at"}
	taskColumns     = []string{"id", "user_id", "project_id", "title", "description", "status", "priority", "due_date", "price", "completed_at", "created_at"}
	categoryColumns = []string{"id", "user_id", "name", "icon", "allocated", "spent", "color"}
	expenseColumns  = []string{"id", "user_id", "category_id", "title", "amount", "vendor", "date", "notes", "is_paid", "created_at"}
)

type eventRow struct {
	ID        string          `db:"id"`
	UserID    string          `db:"user_id"`
	Name      string          `db:"name"`
	Type      string          `db:"type"`
	Color     string          `db:"color"`
	Budget    sql.NullFloat64 `db:"budget"`
	CreatedAt time.Time       `db:"created_at"`
}

func (r eventRow) model() model.Event {
	return model.Event{
		ID:        r.ID,
		Name:      r.Name,
		Type:      model.EventType(r.Type),
		Color:     r.Color,
		CreatedAt: model.At(r.CreatedAt),
		Budget:    floatPtr(r.Budget),
	}
}

type projectRow struct {
	ID         string         `db:"id"`
	UserID     string         `db:"user_id"`
	Name       string         `db:"name"`
	Color      string         `db:"color"`
	Icon       string         `db:"icon"`
	EventID    sql.NullString `db:"event_id"`
	SharedWith pq.StringArray `db:"shared_with"`
	CreatedAt  time.Time      `db:"created_at"`
}

func (r projectRow) model() model.Project {
	shared := []string(r.SharedWith)
	if shared == nil {
		shared = []string{}
	}
	return model.Project{
		ID:         r.ID,
		Name:       r.Name,
		Color:      r.Color,
		Icon:       r.Icon,
		CreatedAt:  model.At(r.CreatedAt),
		SharedWith: shared,
		EventID:    r.EventID.String,
	}
}

type taskRow struct {
	ID          string          `db:"id"`
	UserID      string          `db:"user_id"`
	ProjectID   string          `db:"project_id"`
	Title       string          `db:"title"`
	Description sql.NullString  `db:"description"`
	Status      string          `db:"status"`
	Priority    string          `db:"priority"`
	DueDate     sql.NullTime    `db:"due_date"`
	Price       sql.NullFloat64 `db:"price"`
	CompletedAt sql.NullTime    `db:"completed_at"`
	CreatedAt   time.Time       `db:"created_at"`
}

func (r taskRow) model() model.Task {
	return model.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description.String,
		Status:      model.Status(r.Status),
		Priority:    model.Priority(r.Priority),
		ProjectID:   r.ProjectID,
		DueDate:     timePtr(r.DueDate),
		Price:       floatPtr(r.Price),
		CreatedAt:   model.At(r.CreatedAt),
		CompletedAt: timePtr(r.CompletedAt),
	}
}

type categoryRow struct {
	ID        string  `db:"id"`
	UserID    string  `db:"user_id"`
	Name      string  `db:"name"`
	Icon      string  `db:"icon"`
	Allocated float64 `db:"allocated"`
	Spent     float64 `db:"spent"`
	Color     string  `db:"color"`
}

func (r categoryRow) model() model.BudgetCategory {
	return model.BudgetCategory{
		ID:        r.ID,
		Name:      r.Name,
		Icon:      r.Icon,
		Allocated: r.Allocated,
		Spent:     r.Spent,
		Color:     r.Color,
	}
}

type expenseRow struct {
	ID         string         `db:"id"`
	UserID     string         `db:"user_id"`
	CategoryID string         `db:"category_id"`
	Title      string         `db:"title"`
	Amount     float64        `db:"amount"`
	Vendor     sql.NullString `db:"vendor"`
	Date       time.Time      `db:"date"`
	Notes      sql.NullString `db:"notes"`
	IsPaid     bool           `db:"is_paid"`
	CreatedAt  time.Time      `db:"created_at"`
}

func (r expenseRow) model() model.BudgetExpense {
	return model.BudgetExpense{
		ID:         r.ID,
		CategoryID: r.CategoryID,
		Title:      r.Title,
		Amount:     r.Amount,
		Vendor:     r.Vendor.String,
		Date:       model.At(r.Date),
		Notes:      r.Notes.String,
		IsPaid:     r.IsPaid,
		CreatedAt:  model.At(r.CreatedAt),
	}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func timePtr(v sql.NullTime) *model.Timestamp {
	if !v.Valid {
		return nil
	}
	return model.Ptr(v.Time)
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullTime(v *model.Timestamp) sql.NullTime {
	if v == nil || v.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: v.Time, Valid: true}
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

// createdAt substitutes now for a zero timestamp so NOT NULL columns hold.
func createdAt(ts model.Timestamp) time.Time {
	if ts.IsZero() {
		return time.Now().UTC()
	}
	return ts.Time
}

func mapRows[R interface{ model() M }, M any](rows []R) []M {
	out := make([]M, len(rows))
	for i, r := range rows {
		out[i] = r.model()
	}
	return out
}
