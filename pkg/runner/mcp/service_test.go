package mcp

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/assistant"
	"tableflip.dev/planner/pkg/derive"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/store"
)

func newService(t *testing.T) *Service {
	t.Helper()
	seq := 0
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	p, err := planner.New(context.Background(), store.NewMemory(),
		planner.WithIDs(func() string { seq++; return fmt.Sprintf("mcp-%d", seq) }),
		planner.WithClock(func() time.Time { now = now.Add(time.Minute); return now }),
	)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return NewService(p)
}

func seed(t *testing.T, svc *Service) (model.Event, model.Project) {
	t.Helper()
	evt, err := svc.Planner.AddEvent(model.EventInput{Name: "Wedding", Type: model.EventWedding})
	if err != nil {
		t.Fatalf("AddEvent failed: %v", err)
	}
	proj, err := svc.Planner.AddProject(model.ProjectInput{Name: "Venue", EventID: evt.ID})
	if err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}
	return evt, proj
}

func TestServiceAddTaskDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	_, proj := seed(t, svc)

	text, err := svc.AddTask(ctx, assistant.AddTaskArgs{Title: "Book venue"})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if want := `Task "Book venue" added successfully to project "Venue".`; text != want {
		t.Fatalf("got %q, want %q", text, want)
	}
	tasks := svc.Planner.TasksByProject(proj.ID)
	if len(tasks) != 1 || tasks[0].Priority != model.PriorityMedium {
		t.Fatalf("unexpected tasks %+v", tasks)
	}

	if _, err := svc.AddTask(ctx, assistant.AddTaskArgs{Title: "  "}); err == nil {
		t.Fatalf("expected error for empty title")
	}
}

func TestServiceToggleTask(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	_, proj := seed(t, svc)

	task, err := svc.Planner.AddTask(model.TaskInput{Title: "Hire DJ", ProjectID: proj.ID})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	dto, err := svc.ToggleTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	if dto.Status != model.StatusInProgress {
		t.Fatalf("expected in progress, got %s", dto.Status)
	}
	if dto.ProjectName != "Venue" {
		t.Fatalf("expected project name, got %q", dto.ProjectName)
	}

	if _, err := svc.ToggleTask(ctx, "missing"); err == nil {
		t.Fatalf("expected error for unknown task")
	}
}

func TestServiceListTasksPaginates(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	_, proj := seed(t, svc)

	titles := []string{"Book venue", "Hire photographer", "Order flowers", "Send invitations", "Taste cake", "Rent chairs"}
	for _, title := range titles {
		if _, err := svc.Planner.AddTask(model.TaskInput{Title: title, ProjectID: proj.ID}); err != nil {
			t.Fatalf("AddTask %q failed: %v", title, err)
		}
	}

	list, err := svc.ListTasks(ctx, ListTasksOptions{Page: 2})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if list.TotalItems != 6 || list.TotalPages != 2 || len(list.Items) != 1 {
		t.Fatalf("unexpected page %+v", list)
	}
	if list.Items[0].Title != "Book venue" {
		t.Fatalf("expected oldest task last, got %q", list.Items[0].Title)
	}

	list, err = svc.ListTasks(ctx, ListTasksOptions{Filter: derive.FilterTodo, Search: "CAKE"})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].Title != "Taste cake" {
		t.Fatalf("unexpected search result %+v", list.Items)
	}

	if _, err := svc.ListTasks(ctx, ListTasksOptions{Filter: "someday"}); err == nil {
		t.Fatalf("expected error for unknown filter")
	}
}

func TestServiceSelectEvent(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	evt, _ := seed(t, svc)

	list, err := svc.SelectEvent(ctx, "")
	if err != nil {
		t.Fatalf("SelectEvent failed: %v", err)
	}
	if list.Selected != "" {
		t.Fatalf("expected cleared selection, got %q", list.Selected)
	}

	list, err = svc.SelectEvent(ctx, evt.ID)
	if err != nil {
		t.Fatalf("SelectEvent failed: %v", err)
	}
	if list.Selected != evt.ID || list.Count != 1 {
		t.Fatalf("unexpected list %+v", list)
	}

	if _, err := svc.SelectEvent(ctx, "nope"); err == nil {
		t.Fatalf("expected error for unknown event")
	}
}

func TestServiceBudgetSummary(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	_, proj := seed(t, svc)

	price := 1200.0
	if _, err := svc.Planner.AddTask(model.TaskInput{Title: "Book venue", ProjectID: proj.ID, Price: &price}); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	summary, err := svc.BudgetSummary(ctx)
	if err != nil {
		t.Fatalf("BudgetSummary failed: %v", err)
	}
	if !summary.Totals.UsesTaskFallback || summary.Totals.Allocated != 1200 || summary.Totals.Spent != 1200 {
		t.Fatalf("unexpected totals %+v", summary.Totals)
	}
	var venue CategoryDTO
	for _, c := range summary.Categories {
		if c.ID == model.CategoryVenue {
			venue = c
		}
	}
	if venue.Spent != 1200 || venue.ExpenseCount != 1 {
		t.Fatalf("unexpected venue category %+v", venue)
	}
}

func TestServiceAsk(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	seed(t, svc)

	reply, err := svc.Ask(ctx, "add task Order cake high priority")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if reply.Tool != assistant.ToolAddTask || !strings.Contains(reply.Text, `"Order cake"`) {
		t.Fatalf("unexpected reply %+v", reply)
	}

	reply, _ = svc.Ask(ctx, "analyze my tasks")
	if !strings.HasPrefix(reply.Text, "Task Analysis:\n- Total: 1") {
		t.Fatalf("unexpected analysis %q", reply.Text)
	}
}

func TestServiceWithoutPlanner(t *testing.T) {
	svc := &Service{}
	if _, err := svc.ListEvents(context.Background()); err == nil {
		t.Fatalf("expected error without planner")
	}
}
