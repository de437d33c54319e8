package remote

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/planner/pkg/model"
)

func newMock(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgres(sqlx.NewDb(db, "postgres"), "alice"), mock
}

var created = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func TestListEventsScopesToUser(t *testing.T) {
	p, mock := newMock(t)

	rows := sqlmock.NewRows(eventColumns).
		AddRow("e2", "alice", "Birthday", "birthday", "#ec4899", nil, created.Add(time.Hour)).
		AddRow("e1", "alice", "Wedding", "wedding", "#f43f5e", 20000.0, created)
	mock.ExpectQuery(`SELECT id, user_id, name, type, color, budget, created_at FROM events WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs("alice").
		WillReturnRows(rows)

	events := p.ListEvents(context.Background())
	require.Len(t, events, 2)
	assert.Equal(t, "e2", events[0].ID)
	assert.Nil(t, events[0].Budget)
	assert.Equal(t, model.EventWedding, events[1].Type)
	require.NotNil(t, events[1].Budget)
	assert.Equal(t, 20000.0, *events[1].Budget)
	assert.True(t, events[1].CreatedAt.Equal(created))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListProjectsIncludesShared(t *testing.T) {
	p, mock := newMock(t)

	rows := sqlmock.NewRows(projectColumns).
		AddRow("p1", "bob", "Venue", "#000", "home", "e1", []byte(`{alice}`), created).
		AddRow("p2", "alice", "Catering", "#fff", "cake", nil, []byte(`{}`), created)
	mock.ExpectQuery(`FROM projects WHERE \(user_id = \$1 OR \$2 = ANY\(shared_with\)\)`).
		WithArgs("alice", "alice").
		WillReturnRows(rows)

	projects := p.ListProjects(context.Background())
	require.Len(t, projects, 2)
	assert.Equal(t, []string{"alice"}, projects[0].SharedWith)
	assert.Equal(t, "e1", projects[0].EventID)
	assert.Empty(t, projects[1].EventID)
	assert.NotNil(t, projects[1].SharedWith)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListTasksThroughVisibleProjects(t *testing.T) {
	p, mock := newMock(t)

	due := created.Add(48 * time.Hour)
	rows := sqlmock.NewRows(taskColumns).
		AddRow("t1", "alice", "p1", "Book venue", nil, "in_progress", "high", due, 5000.0, nil, created)
	mock.ExpectQuery(`FROM tasks WHERE project_id IN \(SELECT id FROM projects WHERE \(user_id = \$1 OR \$2 = ANY\(shared_with\)\)\)`).
		WithArgs("alice", "alice").
		WillReturnRows(rows)

	tasks := p.ListTasks(context.Background())
	require.Len(t, tasks, 1)
	task := tasks[0]
	assert.Equal(t, model.StatusInProgress, task.Status)
	assert.Equal(t, model.PriorityHigh, task.Priority)
	require.NotNil(t, task.DueDate)
	assert.True(t, task.DueDate.Equal(due))
	assert.Equal(t, 5000.0, task.PriceValue())
	assert.Nil(t, task.CompletedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTaskInsertsOwner(t *testing.T) {
	p, mock := newMock(t)

	price := 250.0
	task := model.Task{
		ID:        "t1",
		Title:     "Hire photographer",
		Status:    model.StatusTodo,
		Priority:  model.PriorityMedium,
		ProjectID: "p1",
		Price:     &price,
		CreatedAt: model.At(created),
	}
	mock.ExpectQuery(`INSERT INTO tasks \(id,user_id,project_id,.*\) VALUES \(\$1,.*\$11\) RETURNING id, user_id, project_id`).
		WithArgs("t1", "alice", "p1", "Hire photographer", nil, "todo", "medium", nil, 250.0, nil, created).
		WillReturnRows(sqlmock.NewRows(taskColumns).
			AddRow("t1", "alice", "p1", "Hire photographer", nil, "todo", "medium", nil, 250.0, nil, created))

	out := p.CreateTask(context.Background(), task)
	require.NotNil(t, out)
	assert.Equal(t, "t1", out.ID)
	assert.Equal(t, 250.0, out.PriceValue())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEventReportsMissingRow(t *testing.T) {
	p, mock := newMock(t)

	mock.ExpectExec(`UPDATE events SET budget = \$1, color = \$2, name = \$3, type = \$4 WHERE id = \$5 AND user_id = \$6`).
		WithArgs(nil, "#f43f5e", "Wedding", "wedding", "e1", "alice").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE events SET`).
		WithArgs(nil, "#f43f5e", "Wedding", "wedding", "e1", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	e := model.Event{ID: "e1", Name: "Wedding", Type: model.EventWedding, Color: "#f43f5e"}
	assert.False(t, p.UpdateEvent(context.Background(), e))
	assert.True(t, p.UpdateEvent(context.Background(), e))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFailuresBecomeNilOrFalse(t *testing.T) {
	p, mock := newMock(t)
	ctx := context.Background()
	boom := errors.New("connection refused")

	mock.ExpectQuery(`FROM events`).WillReturnError(boom)
	mock.ExpectQuery(`INSERT INTO events`).WillReturnError(boom)
	mock.ExpectExec(`DELETE FROM events WHERE id = \$1 AND user_id = \$2`).WithArgs("e1", "alice").WillReturnError(boom)

	assert.Nil(t, p.ListEvents(ctx))
	assert.Nil(t, p.CreateEvent(ctx, model.Event{ID: "e1", Name: "Wedding", Type: model.EventWedding}))
	assert.False(t, p.DeleteEvent(ctx, "e1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShareProjectWritesArray(t *testing.T) {
	p, mock := newMock(t)

	mock.ExpectExec(`UPDATE projects SET shared_with = \$1 WHERE id = \$2 AND user_id = \$3`).
		WithArgs(`{"bob","carol"}`, "p1", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.True(t, p.ShareProject(context.Background(), "p1", []string{"bob", "carol"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertCategory(t *testing.T) {
	p, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO budget_categories .* ON CONFLICT \(user_id, id\) DO UPDATE SET`).
		WithArgs("venue", "alice", "Venue", "home", 10000.0, 2500.0, "#6366f1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok := p.UpsertCategory(context.Background(), model.BudgetCategory{
		ID: "venue", Name: "Venue", Icon: "home", Allocated: 10000, Spent: 2500, Color: "#6366f1",
	})
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExpenseDefaultsDate(t *testing.T) {
	p, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO budget_expenses`).
		WithArgs("x1", "alice", "food", "Cake", 120.0, nil, sqlmock.AnyArg(), nil, true, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(expenseColumns).
			AddRow("x1", "alice", "food", "Cake", 120.0, nil, created, nil, true, created))

	out := p.CreateExpense(context.Background(), model.BudgetExpense{ID: "x1", CategoryID: "food", Title: "Cake", Amount: 120, IsPaid: true})
	require.NotNil(t, out)
	assert.True(t, out.IsPaid)
	assert.True(t, out.Date.Equal(created))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateAppliesSchema(t *testing.T) {
	p, mock := newMock(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS events`).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, p.Migrate(context.Background()))

	mock.ExpectExec(`CREATE TABLE`).WillReturnError(sql.ErrConnDone)
	require.Error(t, p.Migrate(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDecodeEvent(t *testing.T) {
	payload := `{"op":"UPDATE","user_id":"alice","record":{"id":"e1","user_id":"alice","name":"Wedding","type":"wedding","color":"#f43f5e","budget":15000,"created_at":"2026-05-01T09:00:00+00:00"}}`

	e, ok := decodeEvent(payload, "alice")
	require.True(t, ok)
	assert.Equal(t, "Wedding", e.Name)
	require.NotNil(t, e.Budget)
	assert.Equal(t, 15000.0, *e.Budget)
	assert.True(t, e.CreatedAt.Equal(created))

	_, ok = decodeEvent(payload, "bob")
	assert.False(t, ok, "other users' events are ignored")

	_, ok = decodeEvent(`{"op":"DELETE","user_id":"alice","record":{"id":"e1"}}`, "alice")
	assert.False(t, ok, "deletes are not delivered")

	_, ok = decodeEvent(`not json`, "alice")
	assert.False(t, ok)
}

type fakeListener struct {
	ch      chan *pq.Notification
	channel string
	once    sync.Once
	closed  chan struct{}
}

func newFakeListener() *fakeListener {
	return &fakeListener{ch: make(chan *pq.Notification, 4), closed: make(chan struct{})}
}

func (l *fakeListener) Listen(channel string) error {
	l.channel = channel
	return nil
}

func (l *fakeListener) NotificationChannel() <-chan *pq.Notification { return l.ch }

func (l *fakeListener) Close() error {
	l.once.Do(func() { close(l.closed) })
	return nil
}

func TestSubscribeEventsDeliversUntilUnsubscribed(t *testing.T) {
	p, _ := newMock(t)
	l := newFakeListener()
	p.newListener = func(string) listener { return l }

	got := make(chan model.Event, 4)
	require.True(t, p.SubscribeEvents(context.Background(), func(e model.Event) { got <- e }))
	assert.Equal(t, Channel, l.channel)

	l.ch <- nil
	l.ch <- &pq.Notification{Channel: Channel, Extra: `{"op":"INSERT","user_id":"bob","record":{"id":"e9"}}`}
	l.ch <- &pq.Notification{Channel: Channel, Extra: `{"op":"INSERT","user_id":"alice","record":{"id":"e1","name":"Gala","type":"corporate"}}`}

	select {
	case e := <-got:
		assert.Equal(t, "e1", e.ID)
		assert.Equal(t, model.EventCorporate, e.Type)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	p.UnsubscribeAll()
	select {
	case <-l.closed:
	case <-time.After(time.Second):
		t.Fatal("listener not closed")
	}
	assert.Empty(t, got)
}

func TestNewClientWithoutSettingsIsDisabled(t *testing.T) {
	c := NewClient(settings{})
	assert.False(t, c.Enabled())
	assert.Nil(t, c.ListTasks(context.Background()))
	assert.False(t, c.SubscribeEvents(context.Background(), func(model.Event) {}))
	assert.NoError(t, c.Close())
}

type settings struct{ dsn, user string }

func (s settings) RemoteDSN() string  { return s.dsn }
func (s settings) RemoteUser() string { return s.user }
