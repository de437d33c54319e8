package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/planner/pkg/derive"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/timeutil"
)

func init() {
	color.NoColor = true
}

func price(v float64) *float64 { return &v }

func newPlanner(t *testing.T) *planner.Planner {
	t.Helper()
	p, err := planner.New(context.Background(), store.NewMemory())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

// wedding returns a planner with a selected wedding event and one project.
func wedding(t *testing.T) (*planner.Planner, model.Project) {
	t.Helper()
	p := newPlanner(t)
	e, err := p.AddEvent(model.EventInput{Name: "Our Wedding", Type: model.EventWedding})
	require.NoError(t, err)
	require.NoError(t, p.SelectEvent(e.ID))
	pr, err := p.AddProject(model.ProjectInput{Name: "Venue", EventID: e.ID})
	require.NoError(t, err)
	return p, pr
}

func TestAddNeedsProject(t *testing.T) {
	p := newPlanner(t)
	var out bytes.Buffer
	err := (&Add{Planner: p, Out: &out, Input: model.TaskInput{Title: "Book venue"}}).Do(context.Background())
	assert.ErrorIs(t, err, ErrNoProject)
}

func TestAddDefaultsToFirstProject(t *testing.T) {
	p, pr := wedding(t)
	var out bytes.Buffer
	add := &Add{Planner: p, Out: &out, Input: model.TaskInput{Title: "Book venue", Price: price(5000)}}
	require.NoError(t, add.Do(context.Background()))

	assert.Contains(t, out.String(), `Added "Book venue" to "Venue"`)
	assert.Contains(t, out.String(), "$5000.00")

	tasks := p.TasksForSelectedEvent()
	require.Len(t, tasks, 1)
	assert.Equal(t, pr.ID, tasks[0].ProjectID)
}

func TestFind(t *testing.T) {
	p, pr := wedding(t)
	task, err := p.AddTask(model.TaskInput{Title: "Send invitations", ProjectID: pr.ID})
	require.NoError(t, err)

	for _, ref := range []string{task.ID, "send INVITATIONS", task.ID[:8]} {
		got, err := Find(p, ref)
		require.NoError(t, err, ref)
		assert.Equal(t, task.ID, got.ID, ref)
	}

	_, err = Find(p, "nope")
	assert.ErrorIs(t, err, planner.ErrNotFound)
	_, err = Find(p, task.ID[:2])
	assert.ErrorIs(t, err, planner.ErrNotFound)
}

func TestToggleCyclesStatus(t *testing.T) {
	p, pr := wedding(t)
	task, err := p.AddTask(model.TaskInput{Title: "Order cake", ProjectID: pr.ID})
	require.NoError(t, err)

	want := []model.Status{model.StatusInProgress, model.StatusCompleted, model.StatusTodo}
	for _, status := range want {
		var out bytes.Buffer
		require.NoError(t, (&Toggle{Planner: p, Out: &out, Ref: "order cake"}).Do(context.Background()))
		got, err := p.Task(task.ID)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
		assert.Contains(t, out.String(), "is now "+status.Label())
	}
}

func TestUpdateMovesProject(t *testing.T) {
	p, pr := wedding(t)
	other, err := p.AddProject(model.ProjectInput{Name: "Catering", EventID: pr.EventID})
	require.NoError(t, err)
	task, err := p.AddTask(model.TaskInput{Title: "Taste menu", ProjectID: pr.ID})
	require.NoError(t, err)

	var out bytes.Buffer
	title := "Taste the menu"
	u := &Update{Planner: p, Out: &out, Ref: task.ID, Project: "catering", Patch: model.TaskPatch{Title: &title}}
	require.NoError(t, u.Do(context.Background()))

	got, err := p.Task(task.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, got.ProjectID)
	assert.Equal(t, title, got.Title)
}

func TestDelete(t *testing.T) {
	p, pr := wedding(t)
	_, err := p.AddTask(model.TaskInput{Title: "Hire DJ", ProjectID: pr.ID})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, (&Delete{Planner: p, Out: &out, Ref: "hire dj"}).Do(context.Background()))
	assert.Contains(t, out.String(), `Deleted "Hire DJ"`)
	assert.Empty(t, p.Tasks())
}

func TestListJSON(t *testing.T) {
	p, pr := wedding(t)
	for _, title := range []string{"Book venue", "Pick flowers", "Choose rings"} {
		_, err := p.AddTask(model.TaskInput{Title: title, ProjectID: pr.ID})
		require.NoError(t, err)
	}

	var out bytes.Buffer
	l := &List{Planner: p, Out: &out, Filter: derive.TaskFilter{Search: "flowers"}, Output: "json"}
	require.NoError(t, l.Do(context.Background()))

	var got []model.Task
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Pick flowers", got[0].Title)
}

func TestListPaginates(t *testing.T) {
	p, pr := wedding(t)
	for _, title := range []string{"Book venue", "Pick flowers", "Choose rings"} {
		_, err := p.AddTask(model.TaskInput{Title: title, ProjectID: pr.ID})
		require.NoError(t, err)
	}

	var out bytes.Buffer
	l := &List{Planner: p, Out: &out, Page: 2, PageSize: 2}
	require.NoError(t, l.Do(context.Background()))
	assert.Contains(t, out.String(), "page 2 of 2, 3 tasks")
}

func TestListShared(t *testing.T) {
	p, pr := wedding(t)
	e, _ := p.SelectedEvent()
	guests, err := p.AddProject(model.ProjectInput{Name: "Guests", EventID: e.ID, SharedWith: []string{"sam@example.com"}})
	require.NoError(t, err)
	_, err = p.AddTask(model.TaskInput{Title: "Book venue", ProjectID: pr.ID})
	require.NoError(t, err)
	_, err = p.AddTask(model.TaskInput{Title: "Send invites", ProjectID: guests.ID})
	require.NoError(t, err)

	var out bytes.Buffer
	l := &List{Planner: p, Out: &out, Shared: true, Output: "json"}
	require.NoError(t, l.Do(context.Background()))

	var got []model.Task
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Send invites", got[0].Title)
}

func TestListSharedStaysInEvent(t *testing.T) {
	p, _ := wedding(t)
	ours, _ := p.SelectedEvent()
	other, err := p.AddEvent(model.EventInput{Name: "Party", Type: model.EventBirthday})
	require.NoError(t, err)
	pr, err := p.AddProject(model.ProjectInput{Name: "Food", EventID: other.ID, SharedWith: []string{"sam@example.com"}})
	require.NoError(t, err)
	_, err = p.AddTask(model.TaskInput{Title: "Order cake", ProjectID: pr.ID})
	require.NoError(t, err)
	require.NoError(t, p.SelectEvent(ours.ID))

	var out bytes.Buffer
	require.NoError(t, (&List{Planner: p, Out: &out, Shared: true, Output: "json"}).Do(context.Background()))
	assert.JSONEq(t, "[]", out.String())

	out.Reset()
	require.NoError(t, (&List{Planner: p, Out: &out, Shared: true, All: true, Output: "json"}).Do(context.Background()))
	assert.Contains(t, out.String(), "Order cake")
}

func TestRecentLimit(t *testing.T) {
	p, pr := wedding(t)
	for _, title := range []string{"Book venue", "Pick flowers", "Choose rings"} {
		_, err := p.AddTask(model.TaskInput{Title: title, ProjectID: pr.ID})
		require.NoError(t, err)
	}

	var out bytes.Buffer
	require.NoError(t, (&Recent{Planner: p, Out: &out, Limit: 2, Output: "json"}).Do(context.Background()))
	var got []model.Task
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Len(t, got, 2)

	out.Reset()
	require.NoError(t, (&Recent{Planner: p, Out: &out}).Do(context.Background()))
	assert.Contains(t, out.String(), "Recent")
	assert.Contains(t, out.String(), "Choose rings")
}

func TestUpcomingWithin(t *testing.T) {
	p, pr := wedding(t)
	now := time.Now()
	_, err := p.AddTask(model.TaskInput{Title: "Soon", ProjectID: pr.ID, DueDate: model.Ptr(now.Add(24 * time.Hour))})
	require.NoError(t, err)
	_, err = p.AddTask(model.TaskInput{Title: "Later", ProjectID: pr.ID, DueDate: model.Ptr(now.Add(60 * 24 * time.Hour))})
	require.NoError(t, err)

	w, err := timeutil.Next("1w", now)
	require.NoError(t, err)
	var out bytes.Buffer
	u := &Upcoming{Planner: p, Out: &out, Limit: 5, Within: &w, Output: "json"}
	require.NoError(t, u.Do(context.Background()))

	var got []model.Task
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Soon", got[0].Title)
}

func TestSuggestNeedsEvent(t *testing.T) {
	p := newPlanner(t)
	err := (&Suggest{Planner: p, Out: &bytes.Buffer{}}).Do(context.Background())
	assert.ErrorIs(t, err, ErrNoEvent)
}

func TestSuggestAdd(t *testing.T) {
	p, _ := wedding(t)

	var out bytes.Buffer
	s := &Suggest{Planner: p, Out: &out, Add: []int{1}, Output: "json"}
	require.NoError(t, s.Do(context.Background()))

	var res SuggestResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	require.Len(t, res.Added, 1)
	assert.Len(t, p.TasksForSelectedEvent(), 1)

	err := (&Suggest{Planner: p, Out: &bytes.Buffer{}, Add: []int{0}}).Do(context.Background())
	assert.Error(t, err)
}
