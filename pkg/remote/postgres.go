package remote

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"tableflip.dev/planner/pkg/model"
)

//go:embed schema.sql
var schema string

// visibleProjects matches projects owned by or shared with the bound user.
const visibleProjects = "(user_id = ? OR ? = ANY(shared_with))"

// Postgres is a Client backed by a Postgres database. Every query is scoped
// to a single user.
type Postgres struct {
	db     *sqlx.DB
	dsn    string
	userID string
	psql   squirrel.StatementBuilderType

	// newListener opens the realtime connection; replaced in tests.
	newListener func(dsn string) listener

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ Client = (*Postgres)(nil)

// OpenPostgres connects to dsn and binds the client to userID.
func OpenPostgres(dsn, userID string) (*Postgres, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	p := NewPostgres(db, userID)
	p.dsn = dsn
	return p, nil
}

// NewPostgres wraps an existing connection.
func NewPostgres(db *sqlx.DB, userID string) *Postgres {
	return &Postgres{
		db:          db,
		userID:      userID,
		psql:        squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		newListener: newPQListener,
	}
}

// Migrate creates the tables and the realtime trigger if they are missing.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (p *Postgres) Enabled() bool { return true }

func (p *Postgres) Close() error {
	p.UnsubscribeAll()
	return p.db.Close()
}

func (p *Postgres) fail(op string, err error) {
	log.Printf("remote: %s: %v", op, err)
}

func (p *Postgres) selectRows(ctx context.Context, op string, dest any, q squirrel.SelectBuilder) bool {
	query, args, err := q.ToSql()
	if err != nil {
		p.fail(op, err)
		return false
	}
	if err := p.db.SelectContext(ctx, dest, query, args...); err != nil {
		p.fail(op, err)
		return false
	}
	return true
}

func (p *Postgres) insertRow(ctx context.Context, op string, dest any, q squirrel.InsertBuilder) bool {
	query, args, err := q.ToSql()
	if err != nil {
		p.fail(op, err)
		return false
	}
	if err := p.db.GetContext(ctx, dest, query, args...); err != nil {
		p.fail(op, err)
		return false
	}
	return true
}

// exec runs a write and reports whether it touched at least one row.
func (p *Postgres) exec(ctx context.Context, op string, q squirrel.Sqlizer) bool {
	query, args, err := q.ToSql()
	if err != nil {
		p.fail(op, err)
		return false
	}
	res, err := p.db.ExecContext(ctx, query, args...)
	if err != nil {
		p.fail(op, err)
		return false
	}
	n, err := res.RowsAffected()
	if err != nil {
		p.fail(op, err)
		return false
	}
	return n > 0
}

// Events

func (p *Postgres) ListEvents(ctx context.Context) []model.Event {
	var rows []eventRow
	q := p.psql.Select(eventColumns...).From("events").
		Where(squirrel.Eq{"user_id": p.userID}).
		OrderBy("created_at DESC")
	if !p.selectRows(ctx, "list events", &rows, q) {
		return nil
	}
	return mapRows[eventRow, model.Event](rows)
}

func (p *Postgres) CreateEvent(ctx context.Context, e model.Event) *model.Event {
	var row eventRow
	q := p.psql.Insert("events").Columns(eventColumns...).
		Values(e.ID, p.userID, e.Name, string(e.Type), e.Color, nullFloat(e.Budget), createdAt(e.CreatedAt)).
		Suffix(returning(eventColumns))
	if !p.insertRow(ctx, "create event", &row, q) {
		return nil
	}
	out := row.model()
	return &out
}

func (p *Postgres) UpdateEvent(ctx context.Context, e model.Event) bool {
	q := p.psql.Update("events").SetMap(map[string]any{
		"name":   e.Name,
		"type":   string(e.Type),
		"color":  e.Color,
		"budget": nullFloat(e.Budget),
	}).Where(squirrel.Eq{"id": e.ID, "user_id": p.userID})
	return p.exec(ctx, "update event", q)
}

func (p *Postgres) DeleteEvent(ctx context.Context, id string) bool {
	q := p.psql.Delete("events").Where(squirrel.Eq{"id": id, "user_id": p.userID})
	return p.exec(ctx, "delete event", q)
}

// Projects

func (p *Postgres) ListProjects(ctx context.Context) []model.Project {
	var rows []projectRow
	q := p.psql.Select(projectColumns...).From("projects").
		Where(squirrel.Expr(visibleProjects, p.userID, p.userID)).
		OrderBy("created_at DESC")
	if !p.selectRows(ctx, "list projects", &rows, q) {
		return nil
	}
	return mapRows[projectRow, model.Project](rows)
}

func (p *Postgres) CreateProject(ctx context.Context, pr model.Project) *model.Project {
	var row projectRow
	q := p.psql.Insert("projects").Columns(projectColumns...).
		Values(pr.ID, p.userID, pr.Name, pr.Color, pr.Icon, nullString(pr.EventID), pq.Array(sharedWith(pr.SharedWith)), createdAt(pr.CreatedAt)).
		Suffix(returning(projectColumns))
	if !p.insertRow(ctx, "create project", &row, q) {
		return nil
	}
	out := row.model()
	return &out
}

func (p *Postgres) UpdateProject(ctx context.Context, pr model.Project) bool {
	q := p.psql.Update("projects").SetMap(map[string]any{
		"name":        pr.Name,
		"color":       pr.Color,
		"icon":        pr.Icon,
		"event_id":    nullString(pr.EventID),
		"shared_with": pq.Array(sharedWith(pr.SharedWith)),
	}).Where(squirrel.Eq{"id": pr.ID}).
		Where(squirrel.Expr(visibleProjects, p.userID, p.userID))
	return p.exec(ctx, "update project", q)
}

func (p *Postgres) DeleteProject(ctx context.Context, id string) bool {
	q := p.psql.Delete("projects").Where(squirrel.Eq{"id": id, "user_id": p.userID})
	return p.exec(ctx, "delete project", q)
}

// ShareProject replaces the sharing list of a project the user owns.
func (p *Postgres) ShareProject(ctx context.Context, id string, userIDs []string) bool {
	q := p.psql.Update("projects").
		Set("shared_with", pq.Array(sharedWith(userIDs))).
		Where(squirrel.Eq{"id": id, "user_id": p.userID})
	return p.exec(ctx, "share project", q)
}

func sharedWith(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// Tasks

func (p *Postgres) visibleTask() squirrel.Sqlizer {
	return squirrel.Expr("project_id IN (SELECT id FROM projects WHERE "+visibleProjects+")", p.userID, p.userID)
}

func (p *Postgres) ListTasks(ctx context.Context) []model.Task {
	var rows []taskRow
	q := p.psql.Select(taskColumns...).From("tasks").
		Where(p.visibleTask()).
		OrderBy("created_at DESC")
	if !p.selectRows(ctx, "list tasks", &rows, q) {
		return nil
	}
	return mapRows[taskRow, model.Task](rows)
}

func (p *Postgres) CreateTask(ctx context.Context, t model.Task) *model.Task {
	var row taskRow
	q := p.psql.Insert("tasks").Columns(taskColumns...).
		Values(t.ID, p.userID, t.ProjectID, t.Title, nullString(t.Description), string(t.Status), string(t.Priority),
			nullTime(t.DueDate), nullFloat(t.Price), nullTime(t.CompletedAt), createdAt(t.CreatedAt)).
		Suffix(returning(taskColumns))
	if !p.insertRow(ctx, "create task", &row, q) {
		return nil
	}
	out := row.model()
	return &out
}

func (p *Postgres) UpdateTask(ctx context.Context, t model.Task) bool {
	q := p.psql.Update("tasks").SetMap(map[string]any{
		"project_id":   t.ProjectID,
		"title":        t.Title,
		"description":  nullString(t.Description),
		"status":       string(t.Status),
		"priority":     string(t.Priority),
		"due_date":     nullTime(t.DueDate),
		"price":        nullFloat(t.Price),
		"completed_at": nullTime(t.CompletedAt),
	}).Where(squirrel.Eq{"id": t.ID}).Where(p.visibleTask())
	return p.exec(ctx, "update task", q)
}

func (p *Postgres) DeleteTask(ctx context.Context, id string) bool {
	q := p.psql.Delete("tasks").Where(squirrel.Eq{"id": id}).Where(p.visibleTask())
	return p.exec(ctx, "delete task", q)
}

// Budget

func (p *Postgres) ListCategories(ctx context.Context) []model.BudgetCategory {
	var rows []categoryRow
	q := p.psql.Select(categoryColumns...).From("budget_categories").
		Where(squirrel.Eq{"user_id": p.userID}).
		OrderBy("id")
	if !p.selectRows(ctx, "list categories", &rows, q) {
		return nil
	}
	return mapRows[categoryRow, model.BudgetCategory](rows)
}

// UpsertCategory writes c, replacing any existing row with the same id.
func (p *Postgres) UpsertCategory(ctx context.Context, c model.BudgetCategory) bool {
	q := p.psql.Insert("budget_categories").Columns(categoryColumns...).
		Values(c.ID, p.userID, c.Name, c.Icon, c.Allocated, c.Spent, c.Color).
		Suffix("ON CONFLICT (user_id, id) DO UPDATE SET " +
			"name = EXCLUDED.name, icon = EXCLUDED.icon, allocated = EXCLUDED.allocated, " +
			"spent = EXCLUDED.spent, color = EXCLUDED.color")
	return p.exec(ctx, "upsert category", q)
}

func (p *Postgres) DeleteCategory(ctx context.Context, id string) bool {
	q := p.psql.Delete("budget_categories").Where(squirrel.Eq{"id": id, "user_id": p.userID})
	return p.exec(ctx, "delete category", q)
}

func (p *Postgres) ListExpenses(ctx context.Context) []model.BudgetExpense {
	var rows []expenseRow
	q := p.psql.Select(expenseColumns...).From("budget_expenses").
		Where(squirrel.Eq{"user_id": p.userID}).
		OrderBy("created_at DESC")
	if !p.selectRows(ctx, "list expenses", &rows, q) {
		return nil
	}
	return mapRows[expenseRow, model.BudgetExpense](rows)
}

func (p *Postgres) CreateExpense(ctx context.Context, e model.BudgetExpense) *model.BudgetExpense {
	var row expenseRow
	date := createdAt(e.Date)
	q := p.psql.Insert("budget_expenses").Columns(expenseColumns...).
		Values(e.ID, p.userID, e.CategoryID, e.Title, e.Amount, nullString(e.Vendor), date,
			nullString(e.Notes), e.IsPaid, createdAt(e.CreatedAt)).
		Suffix(returning(expenseColumns))
	if !p.insertRow(ctx, "create expense", &row, q) {
		return nil
	}
	out := row.model()
	return &out
}

func (p *Postgres) UpdateExpense(ctx context.Context, e model.BudgetExpense) bool {
	q := p.psql.Update("budget_expenses").SetMap(map[string]any{
		"category_id": e.CategoryID,
		"title":       e.Title,
		"amount":      e.Amount,
		"vendor":      nullString(e.Vendor),
		"date":        createdAt(e.Date),
		"notes":       nullString(e.Notes),
		"is_paid":     e.IsPaid,
	}).Where(squirrel.Eq{"id": e.ID, "user_id": p.userID})
	return p.exec(ctx, "update expense", q)
}

func (p *Postgres) DeleteExpense(ctx context.Context, id string) bool {
	q := p.psql.Delete("budget_expenses").Where(squirrel.Eq{"id": id, "user_id": p.userID})
	return p.exec(ctx, "delete expense", q)
}

func returning(cols []string) string {
	return "RETURNING " + strings.Join(cols, ", ")
}
