package assistant

import (
	"context"
	"errors"
	"testing"

	"tableflip.dev/planner/pkg/model"
)

type fakePlanner struct {
	projects []model.Project
	tasks    []model.Task
	added    []model.TaskInput
	err      error
}

func (f *fakePlanner) AddTask(in model.TaskInput) (model.Task, error) {
	if f.err != nil {
		return model.Task{}, f.err
	}
	f.added = append(f.added, in)
	t := model.Task{ID: "t", Title: in.Title, ProjectID: in.ProjectID, Priority: in.Priority, Status: in.Status}
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *fakePlanner) ProjectsForSelectedEvent() []model.Project { return f.projects }

func (f *fakePlanner) TasksForSelectedEvent() []model.Task {
	return append([]model.Task{}, f.tasks...)
}

func TestInterpret(t *testing.T) {
	tests := map[string]struct {
		message string
		want    Call
		ok      bool
	}{
		"add task with priority and description": {
			message: "Add task Book florist with roses and lilies priority high",
			want: Call{Tool: ToolAddTask, Task: AddTaskArgs{
				Title:       "Book florist",
				Description: "roses and lilies",
				Priority:    model.PriorityHigh,
			}},
			ok: true,
		},
		"colon form": {
			message: "create a task: Send invitations",
			want:    Call{Tool: ToolAddTask, Task: AddTaskArgs{Title: "Send invitations"}},
			ok:      true,
		},
		"bare add": {
			message: "add cake tasting low priority",
			want:    Call{Tool: ToolAddTask, Task: AddTaskArgs{Title: "cake tasting", Priority: model.PriorityLow}},
			ok:      true,
		},
		"analysis": {
			message: "How many tasks do I have left?",
			want:    Call{Tool: ToolAnalyzeTasks},
			ok:      true,
		},
		"stats": {
			message: "show me stats",
			want:    Call{Tool: ToolAnalyzeTasks},
			ok:      true,
		},
		"nothing": {
			message: "hello there",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := Interpret(tc.message)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestSendAddsToFirstProject(t *testing.T) {
	fp := &fakePlanner{projects: []model.Project{{ID: "p1", Name: "Venue"}, {ID: "p2", Name: "Food"}}}
	a := New(fp)

	reply := a.Send(context.Background(), "add task Book venue")
	if reply.Err != nil {
		t.Fatalf("send: %v", reply.Err)
	}
	if want := `Task "Book venue" added successfully to project "Venue".`; reply.Text != want {
		t.Errorf("text = %q, want %q", reply.Text, want)
	}
	if len(fp.added) != 1 {
		t.Fatalf("added %d tasks", len(fp.added))
	}
	in := fp.added[0]
	if in.ProjectID != "p1" || in.Priority != model.PriorityMedium || in.Status != model.StatusTodo {
		t.Errorf("unexpected input %+v", in)
	}
}

func TestSendWithoutProjects(t *testing.T) {
	fp := &fakePlanner{}
	reply := New(fp).Send(context.Background(), "add task Book venue")
	if reply.Text != NoProjects {
		t.Errorf("text = %q", reply.Text)
	}
	if len(fp.added) != 0 {
		t.Error("task added without a project")
	}
}

func TestSendReportsToolErrors(t *testing.T) {
	fp := &fakePlanner{projects: []model.Project{{ID: "p1", Name: "Venue"}}, err: errors.New("duplicate task")}
	reply := New(fp).Send(context.Background(), "add task Book venue")
	if reply.Err == nil || reply.Text != "Error: duplicate task" {
		t.Errorf("reply = %+v", reply)
	}
}

func TestSendFallsBackToHelp(t *testing.T) {
	reply := New(&fakePlanner{}).Send(context.Background(), "what's the weather")
	if reply.Text != Help || reply.Tool != "" {
		t.Errorf("reply = %+v", reply)
	}
}

func TestAnalyzeTasks(t *testing.T) {
	fp := &fakePlanner{tasks: []model.Task{
		{ID: "1", ProjectID: "p1", Status: model.StatusCompleted, Priority: model.PriorityHigh},
		{ID: "2", ProjectID: "p1", Status: model.StatusInProgress, Priority: model.PriorityMedium},
		{ID: "3", ProjectID: "p1", Status: model.StatusTodo, Priority: model.PriorityHigh},
		{ID: "4", ProjectID: "p2", Status: model.StatusTodo, Priority: model.PriorityLow},
	}}
	tools := &Tools{Planner: fp}

	got, err := tools.AnalyzeTasks(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	want := "Task Analysis:\n- Total: 4\n- Completed: 1 (25%)\n- In Progress: 1\n- Todo: 2\n- High Priority: 2"
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}

	got, _ = tools.AnalyzeTasks(context.Background(), "p1")
	want = "Task Analysis:\n- Total: 3\n- Completed: 1 (33%)\n- In Progress: 1\n- Todo: 1\n- High Priority: 2"
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}

	got, _ = (&Tools{Planner: &fakePlanner{}}).AnalyzeTasks(context.Background(), "")
	if want := "Task Analysis:\n- Total: 0\n- Completed: 0 (0%)\n- In Progress: 0\n- Todo: 0\n- High Priority: 0"; got != want {
		t.Errorf("empty analysis = %q", got)
	}
}
