package remotesync

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/remote"
	"tableflip.dev/planner/pkg/store"
)

// backend keeps the rows it is sent, like the real tables do.
type backend struct {
	remote.Disabled

	mu       sync.Mutex
	events   map[string]model.Event
	projects map[string]model.Project
	tasks    map[string]model.Task
}

func newBackend() *backend {
	return &backend{
		events:   map[string]model.Event{},
		projects: map[string]model.Project{},
		tasks:    map[string]model.Task{},
	}
}

func (b *backend) Enabled() bool { return true }

func (b *backend) ListEvents(context.Context) []model.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []model.Event
	for _, e := range b.events {
		out = append(out, e)
	}
	return out
}

func (b *backend) CreateEvent(_ context.Context, e model.Event) *model.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[e.ID] = e
	return &e
}

func (b *backend) ListProjects(context.Context) []model.Project {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []model.Project
	for _, p := range b.projects {
		out = append(out, p)
	}
	return out
}

func (b *backend) CreateProject(_ context.Context, p model.Project) *model.Project {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.projects[p.ID] = p
	return &p
}

func (b *backend) ListTasks(context.Context) []model.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []model.Task
	for _, t := range b.tasks {
		out = append(out, t.Clone())
	}
	return out
}

func (b *backend) CreateTask(_ context.Context, t model.Task) *model.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tasks[t.ID] = t.Clone()
	return &t
}

func (b *backend) UpdateTask(_ context.Context, t model.Task) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.tasks[t.ID]; !ok {
		return false
	}
	b.tasks[t.ID] = t.Clone()
	return true
}

func newPlanner(t *testing.T) *planner.Planner {
	t.Helper()
	p, err := planner.New(context.Background(), store.NewMemory())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestSyncPushKeepsUnpushedLocalEdits(t *testing.T) {
	p := newPlanner(t)
	be := newBackend()

	proj, err := p.AddProject(model.ProjectInput{Name: "Venue"})
	require.NoError(t, err)
	task, err := p.AddTask(model.TaskInput{Title: "Book hall", ProjectID: proj.ID})
	require.NoError(t, err)

	// The backend holds the task as it was first pushed.
	be.CreateProject(context.Background(), proj)
	be.CreateTask(context.Background(), task)

	// A local edit that never reached the backend.
	price := 5000.0
	_, err = p.UpdateTask(task.ID, model.TaskPatch{Price: &price})
	require.NoError(t, err)

	var out bytes.Buffer
	s := &Sync{Planner: p, Client: be, Out: &out, Push: true, Output: "json"}
	require.NoError(t, s.Do(context.Background()))

	got, err := p.Task(task.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Price, "local price rolled back by the pull")
	assert.InDelta(t, 5000, *got.Price, 0.001)

	remoteTasks := be.ListTasks(context.Background())
	require.Len(t, remoteTasks, 1)
	require.NotNil(t, remoteTasks[0].Price)
	assert.InDelta(t, 5000, *remoteTasks[0].Price, 0.001)

	var res Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, 1, res.Tasks)
	assert.Positive(t, res.Pushed)
}

func TestSyncWithoutPushTakesRemoteRows(t *testing.T) {
	p := newPlanner(t)
	be := newBackend()
	be.CreateEvent(context.Background(), model.Event{ID: "remote-1", Name: "Retreat", Type: model.EventCorporate})

	var out bytes.Buffer
	require.NoError(t, (&Sync{Planner: p, Client: be, Out: &out}).Do(context.Background()))

	e, err := p.Event("remote-1")
	require.NoError(t, err)
	assert.Equal(t, "Retreat", e.Name)
	assert.Contains(t, out.String(), "Synced 1 events, 0 projects and 0 tasks")
}

func TestSyncNeedsRemote(t *testing.T) {
	err := (&Sync{Planner: newPlanner(t), Client: remote.Disabled{}}).Do(context.Background())
	assert.ErrorIs(t, err, ErrRemoteDisabled)
}
