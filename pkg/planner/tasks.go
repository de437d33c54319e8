package planner

import (
	"fmt"
	"log"

	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/store"
)

// AddTask validates in and creates a task. Exact duplicate titles are
// refused with ErrDuplicate; similar titles with ErrPossibleDuplicate
// unless in.AllowDuplicate is set.
func (p *Planner) AddTask(in model.TaskInput) (model.Task, error) {
	if err := in.Validate(); err != nil {
		return model.Task{}, err
	}

	p.mu.Lock()
	var b batch
	defer p.release(&b)

	if err := p.checkTaskTitle(in.Title).err(in.Title, in.AllowDuplicate); err != nil {
		return model.Task{}, err
	}
	if in.ProjectID != "" && p.projectIndex(in.ProjectID) < 0 {
		log.Printf("planner: task %q references unknown project %q", in.Title, in.ProjectID)
	}

	now := p.now()
	// The stored task must not share the input's pointers.
	t := model.Task{
		ID:          p.newID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		ProjectID:   in.ProjectID,
		DueDate:     in.DueDate,
		Price:       in.Price,
		CreatedAt:   now,
		AssignedTo:  in.AssignedTo,
	}.Clone()
	if t.Status == model.StatusCompleted {
		t.CompletedAt = &now
	}
	p.tasks = append(p.tasks, t)
	p.save(store.KeyTasks, p.tasks)

	out := t.Clone()
	b.add(Change{Kind: KindTask, Action: ActionCreate, ID: t.ID, Origin: OriginLocal, Task: &out})
	p.rederive(OriginLocal, &b)
	return t.Clone(), nil
}

// UpdateTask applies patch to the task with id.
func (p *Planner) UpdateTask(id string, patch model.TaskPatch) (model.Task, error) {
	if err := patch.Validate(); err != nil {
		return model.Task{}, err
	}

	p.mu.Lock()
	var b batch
	defer p.release(&b)

	i := p.taskIndex(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: task %q", ErrNotFound, id)
	}
	return p.replaceTask(i, patch.Apply(p.tasks[i], p.now()), &b), nil
}

// ToggleTaskStatus advances the task through todo → in_progress →
// completed → todo.
func (p *Planner) ToggleTaskStatus(id string) (model.Task, error) {
	p.mu.Lock()
	var b batch
	defer p.release(&b)

	i := p.taskIndex(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: task %q", ErrNotFound, id)
	}
	cur := p.tasks[i]
	return p.replaceTask(i, model.SetStatus(cur.Clone(), cur.Status.Next(), p.now()), &b), nil
}

func (p *Planner) replaceTask(i int, t model.Task, b *batch) model.Task {
	p.tasks[i] = t
	p.save(store.KeyTasks, p.tasks)

	out := t.Clone()
	b.add(Change{Kind: KindTask, Action: ActionUpdate, ID: t.ID, Origin: OriginLocal, Task: &out})
	p.rederive(OriginLocal, b)
	return t.Clone()
}

// DeleteTask removes the task and, through derivation, its mirrored
// expense.
func (p *Planner) DeleteTask(id string) error {
	p.mu.Lock()
	var b batch
	defer p.release(&b)

	i := p.taskIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: task %q", ErrNotFound, id)
	}
	removed := p.tasks[i]
	p.tasks = append(p.tasks[:i:i], p.tasks[i+1:]...)
	p.save(store.KeyTasks, p.tasks)

	b.add(Change{Kind: KindTask, Action: ActionDelete, ID: id, Origin: OriginLocal, Task: &removed})
	p.rederive(OriginLocal, &b)
	return nil
}

func (p *Planner) Task(id string) (model.Task, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.taskIndex(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: task %q", ErrNotFound, id)
	}
	return p.tasks[i].Clone(), nil
}

// Tasks returns every task regardless of the selected event.
func (p *Planner) Tasks() []model.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneTasks(p.tasks)
}

func (p *Planner) TasksByProject(projectID string) []model.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []model.Task
	for _, t := range p.tasks {
		if t.ProjectID == projectID {
			out = append(out, t.Clone())
		}
	}
	return out
}

// SharedTasks returns tasks that belong to projects shared with anyone.
func (p *Planner) SharedTasks() []model.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	shared := make(map[string]bool)
	for _, pr := range p.projects {
		if len(pr.SharedWith) > 0 {
			shared[pr.ID] = true
		}
	}
	var out []model.Task
	for _, t := range p.tasks {
		if shared[t.ProjectID] {
			out = append(out, t.Clone())
		}
	}
	return out
}
