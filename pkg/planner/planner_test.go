package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/derive"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/store"
)

func price(v float64) *float64 { return &v }

type fixture struct {
	t   *testing.T
	mem *store.Memory
	p   *Planner
	now time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{t: t, mem: store.NewMemory(), now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	f.p = f.open()
	return f
}

func (f *fixture) open() *Planner {
	f.t.Helper()
	seq := 0
	p, err := New(context.Background(), f.mem,
		WithIDs(func() string { seq++; return fmt.Sprintf("id%d", seq) }),
		WithClock(func() time.Time {
			f.now = f.now.Add(time.Minute)
			return f.now
		}),
	)
	if err != nil {
		f.t.Fatalf("new planner: %v", err)
	}
	f.t.Cleanup(func() { _ = p.Close() })
	return p
}

func (f *fixture) flush() {
	f.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := f.p.Flush(ctx); err != nil {
		f.t.Fatalf("flush: %v", err)
	}
}

func (f *fixture) category(id string) model.BudgetCategory {
	f.t.Helper()
	c, err := f.p.Category(id)
	if err != nil {
		f.t.Fatalf("category %s: %v", id, err)
	}
	return c
}

func (f *fixture) expense(id string) (model.BudgetExpense, bool) {
	for _, e := range f.p.Expenses() {
		if e.ID == id {
			return e, true
		}
	}
	return model.BudgetExpense{}, false
}

func TestEndToEndWeddingScenario(t *testing.T) {
	f := newFixture(t)

	evt, err := f.p.AddEvent(model.EventInput{Name: "Sarah's Wedding", Type: model.EventWedding})
	if err != nil {
		t.Fatalf("add event: %v", err)
	}
	if f.p.SelectedEventID() != evt.ID {
		t.Fatalf("new event not auto-selected")
	}
	proj, err := f.p.AddProject(model.ProjectInput{Name: "Ceremony", EventID: evt.ID})
	if err != nil {
		t.Fatalf("add project: %v", err)
	}
	task, err := f.p.AddTask(model.TaskInput{Title: "Book Venue", Price: price(5000), ProjectID: proj.ID})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}

	if got := f.category(model.CategoryVenue).Spent; got != 5000 {
		t.Fatalf("venue spent = %v, want 5000", got)
	}
	mirror, ok := f.expense(model.MirrorID(task.ID))
	if !ok {
		t.Fatal("mirrored expense missing")
	}
	if mirror.Title != "Task: Book Venue" || mirror.IsPaid || mirror.Amount != 5000 {
		t.Fatalf("bad mirror %+v", mirror)
	}

	for i := 0; i < 2; i++ {
		if _, err := f.p.ToggleTaskStatus(task.ID); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}
	got, _ := f.p.Task(task.ID)
	if got.Status != model.StatusCompleted || got.CompletedAt == nil {
		t.Fatalf("expected completed task, got %+v", got)
	}
	mirror, _ = f.expense(model.MirrorID(task.ID))
	if !mirror.IsPaid {
		t.Fatal("mirror not marked paid")
	}
	if got := f.category(model.CategoryVenue).Spent; got != 5000 {
		t.Fatalf("venue spent changed to %v", got)
	}
}

func TestMirrorFollowsTaskPrice(t *testing.T) {
	f := newFixture(t)
	task, err := f.p.AddTask(model.TaskInput{Title: "Hire DJ", Price: price(800)})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if f.category(model.CategoryMusic).Spent != 800 {
		t.Fatal("music spent not aggregated")
	}

	if _, err := f.p.UpdateTask(task.ID, model.TaskPatch{Price: price(950)}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if m, _ := f.expense(model.MirrorID(task.ID)); m.Amount != 950 {
		t.Fatalf("mirror amount = %v", m.Amount)
	}

	if _, err := f.p.UpdateTask(task.ID, model.TaskPatch{Price: price(0)}); err != nil {
		t.Fatalf("clear price: %v", err)
	}
	if _, ok := f.expense(model.MirrorID(task.ID)); ok {
		t.Fatal("mirror kept after price cleared")
	}
	if f.category(model.CategoryMusic).Spent != 0 {
		t.Fatal("music spent not reset")
	}

	if _, err := f.p.UpdateTask(task.ID, model.TaskPatch{Price: price(100)}); err != nil {
		t.Fatalf("reprice: %v", err)
	}
	if err := f.p.DeleteTask(task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := f.expense(model.MirrorID(task.ID)); ok {
		t.Fatal("mirror kept after task deleted")
	}
}

func TestMirroredExpensesAreReadOnly(t *testing.T) {
	f := newFixture(t)
	task, _ := f.p.AddTask(model.TaskInput{Title: "Flowers", Price: price(200)})
	id := model.MirrorID(task.ID)

	amount := 1.0
	if _, err := f.p.UpdateExpense(id, model.ExpensePatch{Amount: &amount}); !errors.Is(err, ErrDerived) {
		t.Fatalf("update mirrored: %v", err)
	}
	if err := f.p.DeleteExpense(id); !errors.Is(err, ErrDerived) {
		t.Fatalf("delete mirrored: %v", err)
	}
}

func TestExpensesAggregateIntoCategories(t *testing.T) {
	f := newFixture(t)
	e, err := f.p.AddExpense(model.ExpenseInput{CategoryID: model.CategoryFlowers, Title: "Bouquet", Amount: 120})
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if f.category(model.CategoryFlowers).Spent != 120 {
		t.Fatal("flowers spent not updated")
	}

	cat := model.CategoryAttire
	if _, err := f.p.UpdateExpense(e.ID, model.ExpensePatch{CategoryID: &cat}); err != nil {
		t.Fatalf("move expense: %v", err)
	}
	if f.category(model.CategoryFlowers).Spent != 0 || f.category(model.CategoryAttire).Spent != 120 {
		t.Fatal("spent did not follow the expense")
	}

	ghost, err := f.p.AddExpense(model.ExpenseInput{CategoryID: "nope", Title: "Tip jar", Amount: 5})
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if ghost.CategoryID != model.CategoryVenue {
		t.Fatalf("unknown category should fall back to venue, got %q", ghost.CategoryID)
	}

	if err := f.p.DeleteExpense(e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if f.category(model.CategoryAttire).Spent != 0 {
		t.Fatal("spent not cleared on delete")
	}
}

func TestValidationLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	before := f.p.Snapshot()

	if _, err := f.p.AddTask(model.TaskInput{Title: "  "}); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("blank title: %v", err)
	}
	if _, err := f.p.AddExpense(model.ExpenseInput{Title: "Deposit", Amount: -3}); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("negative amount: %v", err)
	}
	after := f.p.Snapshot()
	if len(after.Tasks) != len(before.Tasks) || len(after.Expenses) != len(before.Expenses) {
		t.Fatal("failed validation changed state")
	}
}

func TestToggleCycle(t *testing.T) {
	f := newFixture(t)
	task, _ := f.p.AddTask(model.TaskInput{Title: "Send invites"})
	want := []model.Status{model.StatusInProgress, model.StatusCompleted, model.StatusTodo}
	for _, w := range want {
		got, err := f.p.ToggleTaskStatus(task.ID)
		if err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if got.Status != w {
			t.Fatalf("status = %s, want %s", got.Status, w)
		}
		if (got.CompletedAt != nil) != (w == model.StatusCompleted) {
			t.Fatalf("completedAt %v with status %s", got.CompletedAt, got.Status)
		}
	}
	if _, err := f.p.ToggleTaskStatus("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("toggle missing: %v", err)
	}
}

func TestDeleteEventClearsSelection(t *testing.T) {
	f := newFixture(t)
	a, _ := f.p.AddEvent(model.EventInput{Name: "A"})
	b, _ := f.p.AddEvent(model.EventInput{Name: "B"})
	proj, _ := f.p.AddProject(model.ProjectInput{Name: "Linked", EventID: b.ID})

	if f.p.SelectedEventID() != b.ID {
		t.Fatal("latest event should be selected")
	}
	if err := f.p.DeleteEvent(a.ID); err != nil {
		t.Fatalf("delete A: %v", err)
	}
	if f.p.SelectedEventID() != b.ID {
		t.Fatal("deleting an unselected event changed the selection")
	}
	if err := f.p.DeleteEvent(b.ID); err != nil {
		t.Fatalf("delete B: %v", err)
	}
	if f.p.SelectedEventID() != "" {
		t.Fatal("selection not cleared")
	}
	if _, err := f.p.Project(proj.ID); err != nil {
		t.Fatalf("project removed with its event: %v", err)
	}

	f.flush()
	if _, err := f.mem.Get(store.KeySelectedEvent); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("selection key not removed: %v", err)
	}
	if err := f.p.SelectEvent("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("select unknown: %v", err)
	}
}

func TestEventScoping(t *testing.T) {
	f := newFixture(t)
	a, _ := f.p.AddEvent(model.EventInput{Name: "A"})
	b, _ := f.p.AddEvent(model.EventInput{Name: "B"})
	pa, _ := f.p.AddProject(model.ProjectInput{Name: "PA", EventID: a.ID})
	pb, _ := f.p.AddProject(model.ProjectInput{Name: "PB", EventID: b.ID})
	ta, _ := f.p.AddTask(model.TaskInput{Title: "Cake tasting", ProjectID: pa.ID, Price: price(100)})
	tb, _ := f.p.AddTask(model.TaskInput{Title: "Hire band", ProjectID: pb.ID, Price: price(900)})

	if err := f.p.SelectEvent(a.ID); err != nil {
		t.Fatalf("select: %v", err)
	}
	scoped := f.p.TasksForSelectedEvent()
	if len(scoped) != 1 || scoped[0].ID != ta.ID {
		t.Fatalf("scope A = %+v", scoped)
	}
	if tot := f.p.BudgetTotals(); tot.TaskBasedTotal != 100 {
		t.Fatalf("scoped taskBasedTotal = %v", tot.TaskBasedTotal)
	}
	for _, e := range f.p.ExpensesForSelectedEvent() {
		if e.ID == model.MirrorID(tb.ID) {
			t.Fatal("mirror of out-of-scope task leaked into scope")
		}
	}
	if s := f.p.TaskStats(); s.Total != 1 {
		t.Fatalf("scoped stats = %+v", s)
	}

	if err := f.p.ClearSelection(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n := len(f.p.TasksForSelectedEvent()); n != 2 {
		t.Fatalf("unscoped tasks = %d", n)
	}
}

func TestDuplicateTitles(t *testing.T) {
	f := newFixture(t)
	if _, err := f.p.AddTask(model.TaskInput{Title: "Book Wedding Venue"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := f.p.AddTask(model.TaskInput{Title: "book wedding venue!"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("exact duplicate: %v", err)
	}
	if _, err := f.p.AddTask(model.TaskInput{Title: "book wedding venue", AllowDuplicate: true}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("exact duplicate must stay blocked: %v", err)
	}
	if _, err := f.p.AddTask(model.TaskInput{Title: "Wedding venue"}); !errors.Is(err, ErrPossibleDuplicate) {
		t.Fatalf("similar title: %v", err)
	}
	if _, err := f.p.AddTask(model.TaskInput{Title: "Wedding venue", AllowDuplicate: true}); err != nil {
		t.Fatalf("resubmission should pass: %v", err)
	}

	check := f.p.CheckTaskTitle("Hire DJ")
	if check.Found() {
		t.Fatalf("unexpected duplicate %+v", check)
	}
}

func TestPersistsAcrossRestart(t *testing.T) {
	f := newFixture(t)
	evt, _ := f.p.AddEvent(model.EventInput{Name: "Gala", Type: model.EventCorporate})
	proj, _ := f.p.AddProject(model.ProjectInput{Name: "Logistics", EventID: evt.ID})
	task, _ := f.p.AddTask(model.TaskInput{Title: "Rent limo", ProjectID: proj.ID, Price: price(300)})
	if err := f.p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f.p = f.open()
	snap := f.p.Snapshot()
	if snap.SelectedEventID != evt.ID {
		t.Fatalf("selection lost: %q", snap.SelectedEventID)
	}
	if len(snap.Tasks) != 1 || snap.Tasks[0].ID != task.ID {
		t.Fatalf("tasks lost: %+v", snap.Tasks)
	}
	if f.category(model.CategoryTransportation).Spent != 300 {
		t.Fatal("derived spent lost")
	}

	raw, err := f.mem.Get(store.KeySelectedEvent)
	if err != nil || string(raw) != evt.ID {
		t.Fatalf("selected-event should hold the bare id, got %q %v", raw, err)
	}
	var stored []map[string]any
	raw, _ = f.mem.Get(store.KeyTasks)
	if err := json.Unmarshal(raw, &stored); err != nil || stored[0]["projectId"] != proj.ID {
		t.Fatalf("tasks not stored as camelCase json: %s", raw)
	}
}

func TestLoadToleratesBadData(t *testing.T) {
	mem := store.NewMemory()
	_ = mem.Set(store.KeyTasks, []byte(`{not json`))
	_ = mem.Set(store.KeyBudgetCategories, []byte(`[]`))
	_ = mem.Set(store.KeySelectedEvent, []byte(`gone`))

	p, err := New(context.Background(), mem)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer p.Close()

	if n := len(p.Tasks()); n != 0 {
		t.Fatalf("corrupt tasks should load empty, got %d", n)
	}
	if n := len(p.Categories()); n != 8 {
		t.Fatalf("empty categories should seed defaults, got %d", n)
	}
	if p.SelectedEventID() != "" {
		t.Fatal("dangling selection kept")
	}
}

func TestPersistenceFailureIsNotFatal(t *testing.T) {
	mem := store.NewMemory()
	mem.Fail = func(op, key string) error { return errors.New("disk full") }
	p, err := New(context.Background(), mem)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer p.Close()

	task, err := p.AddTask(model.TaskInput{Title: "Order cake", Price: price(60)})
	if err != nil {
		t.Fatalf("add task with failing store: %v", err)
	}
	if _, err := p.Task(task.ID); err != nil {
		t.Fatal("in-memory state should still hold the task")
	}
}

func TestSubscribersSeeOrderedChanges(t *testing.T) {
	f := newFixture(t)
	var got []string
	cancel := f.p.Subscribe(func(c Change) {
		got = append(got, fmt.Sprintf("%s/%s/%v", c.Kind, c.Action, c.Derived))
	})

	task, _ := f.p.AddTask(model.TaskInput{Title: "Photo booth", Price: price(400)})
	want := []string{"task/create/false", "expense/create/true", "category/update/true"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("changes = %v, want %v", got, want)
	}

	cancel()
	_ = f.p.DeleteTask(task.ID)
	if len(got) != len(want) {
		t.Fatalf("cancelled subscriber still called: %v", got)
	}
}

func TestMergeReportsRemoteOrigin(t *testing.T) {
	f := newFixture(t)
	var origins []Origin
	f.p.Subscribe(func(c Change) { origins = append(origins, c.Origin) })

	remote := model.Task{ID: "r1", Title: "Remote cake", Status: model.StatusTodo, Priority: model.PriorityLow,
		Price: price(45), CreatedAt: model.At(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))}
	f.p.Merge(Collections{Tasks: []model.Task{remote}})
	if len(origins) == 0 {
		t.Fatal("merge produced no changes")
	}
	for _, o := range origins {
		if o != OriginRemote {
			t.Fatalf("merge change origin = %s", o)
		}
	}
	if _, ok := f.expense(model.MirrorID("r1")); !ok {
		t.Fatal("merged task not mirrored")
	}

	origins = nil
	f.p.Merge(Collections{Tasks: []model.Task{remote}})
	if len(origins) != 0 {
		t.Fatalf("identical merge should be silent, got %v", origins)
	}
}

func TestFilterTasksInScope(t *testing.T) {
	f := newFixture(t)
	_, _ = f.p.AddTask(model.TaskInput{Title: "First", Price: price(10)})
	_, _ = f.p.AddTask(model.TaskInput{Title: "Second"})
	got := f.p.FilterTasks(derive.TaskFilter{Filter: derive.FilterPriced})
	if len(got) != 1 || got[0].Title != "First" {
		t.Fatalf("priced = %+v", got)
	}
	recent := f.p.RecentTasks(0)
	if len(recent) != 2 || recent[0].Title != "Second" {
		t.Fatalf("recent = %+v", recent)
	}
}

func TestShareProjectAndSharedTasks(t *testing.T) {
	f := newFixture(t)
	pr, _ := f.p.AddProject(model.ProjectInput{Name: "Family"})
	_, _ = f.p.AddTask(model.TaskInput{Title: "Seating chart", ProjectID: pr.ID})
	if n := len(f.p.SharedTasks()); n != 0 {
		t.Fatalf("unshared project has %d shared tasks", n)
	}
	got, err := f.p.ShareProject(pr.ID, "u2", "u2", " ")
	if err != nil {
		t.Fatalf("share: %v", err)
	}
	if len(got.SharedWith) != 1 {
		t.Fatalf("sharedWith = %v", got.SharedWith)
	}
	if n := len(f.p.SharedTasks()); n != 1 {
		t.Fatalf("shared tasks = %d", n)
	}
}

func TestReloadSeesAnotherWriter(t *testing.T) {
	base := t.TempDir()
	open := func() *Planner {
		t.Helper()
		d, err := store.OpenDiskv(base)
		if err != nil {
			t.Fatalf("open diskv: %v", err)
		}
		p, err := New(context.Background(), d)
		if err != nil {
			t.Fatalf("new planner: %v", err)
		}
		t.Cleanup(func() { _ = p.Close() })
		return p
	}
	flush := func(p *Planner) {
		t.Helper()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := p.Flush(ctx); err != nil {
			t.Fatalf("flush: %v", err)
		}
	}

	server := open()
	proj, err := server.AddProject(model.ProjectInput{Name: "Party"})
	if err != nil {
		t.Fatalf("add project: %v", err)
	}
	if _, err := server.AddTask(model.TaskInput{Title: "Balloons", ProjectID: proj.ID}); err != nil {
		t.Fatalf("add task: %v", err)
	}
	if err := server.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	other := open()
	if _, err := other.AddTask(model.TaskInput{Title: "Cake", ProjectID: proj.ID}); err != nil {
		t.Fatalf("other add task: %v", err)
	}
	flush(other)

	if err := server.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if n := len(server.Tasks()); n != 2 {
		t.Fatalf("server sees %d tasks after reload, want 2", n)
	}

	// The next local write keeps the other process's task.
	if _, err := server.AddTask(model.TaskInput{Title: "Music", ProjectID: proj.ID}); err != nil {
		t.Fatalf("add task: %v", err)
	}
	flush(server)
	if err := other.Reload(context.Background()); err != nil {
		t.Fatalf("reload other: %v", err)
	}
	if n := len(other.Tasks()); n != 3 {
		t.Fatalf("other sees %d tasks, want 3", n)
	}
}

func TestAddKeepsItsOwnCopies(t *testing.T) {
	f := newFixture(t)
	due := model.At(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	cost := price(300)
	task, err := f.p.AddTask(model.TaskInput{Title: "Rent chairs", DueDate: &due, Price: cost})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	budget := price(9000)
	e, err := f.p.AddEvent(model.EventInput{Name: "Gala", Type: model.EventCorporate, Budget: budget})
	if err != nil {
		t.Fatalf("AddEvent: %v", err)
	}

	due.Time = due.AddDate(1, 0, 0)
	*cost = 1
	*budget = 1

	got, err := f.p.Task(task.ID)
	if err != nil {
		t.Fatalf("Task: %v", err)
	}
	if got.DueDate.Year() != 2026 {
		t.Fatalf("due date followed the caller: %v", got.DueDate)
	}
	if got.PriceValue() != 300 {
		t.Fatalf("price followed the caller: %v", got.PriceValue())
	}
	ev, err := f.p.Event(e.ID)
	if err != nil {
		t.Fatalf("Event: %v", err)
	}
	if *ev.Budget != 9000 {
		t.Fatalf("budget followed the caller: %v", *ev.Budget)
	}
}
