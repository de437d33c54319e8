package remote

import (
	"context"
	"errors"
	"sync"

	"tableflip.dev/planner/pkg/planner"
)

// ErrStarted is returned by Start on a running Syncer.
var ErrStarted = errors.New("syncer already started")

// Syncer pushes local planner changes to a Client and merges remote data
// back into the planner.
type Syncer struct {
	planner *planner.Planner
	client  Client

	mu      sync.Mutex
	pending []syncOp
	wake    chan struct{}
	cancel  context.CancelFunc
	unsub   func()
	done    chan struct{}
}

type syncOp struct {
	change planner.Change
	// resubscribe re-opens the realtime channel.
	resubscribe bool
	// flushed is closed when the worker reaches this op.
	flushed chan struct{}
}

func NewSyncer(p *planner.Planner, c Client) *Syncer {
	return &Syncer{
		planner: p,
		client:  c,
		wake:    make(chan struct{}, 1),
	}
}

// Start begins a sync session: local changes are pushed in order on a
// worker goroutine and remote event updates are merged as they arrive. The
// session ends when ctx is done or Stop is called.
func (s *Syncer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return ErrStarted
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.unsub = s.planner.Subscribe(s.observe)
	s.client.SubscribeEvents(ctx, s.planner.MergeEvent)
	go s.run(ctx, s.done)
	return nil
}

// Stop ends the session, tears down realtime delivery and discards any
// pushes that have not started yet.
func (s *Syncer) Stop() {
	s.mu.Lock()
	cancel, unsub, done := s.cancel, s.unsub, s.done
	s.cancel, s.unsub = nil, nil
	s.pending = nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	unsub()
	cancel()
	s.client.UnsubscribeAll()
	<-done

	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}

// Flush waits until every change queued before the call has been pushed.
func (s *Syncer) Flush(ctx context.Context) error {
	flushed := make(chan struct{})
	s.mu.Lock()
	if s.cancel == nil {
		s.mu.Unlock()
		return nil
	}
	done := s.done
	s.mu.Unlock()
	s.enqueue(syncOp{flushed: flushed})

	select {
	case <-flushed:
		return nil
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pull lists every collection from the client and merges it into the
// planner in one pass.
func (s *Syncer) Pull(ctx context.Context) {
	s.planner.Merge(planner.Collections{
		Events:     s.client.ListEvents(ctx),
		Projects:   s.client.ListProjects(ctx),
		Tasks:      s.client.ListTasks(ctx),
		Categories: s.client.ListCategories(ctx),
		Expenses:   s.client.ListExpenses(ctx),
	})
}

// PushAll upserts the whole local state and returns how many records the
// client accepted. Mirrored expenses are skipped.
func (s *Syncer) PushAll(ctx context.Context) int {
	snap := s.planner.Snapshot()
	n := 0
	count := func(ok bool) {
		if ok {
			n++
		}
	}
	for _, e := range snap.Events {
		count(s.push(ctx, planner.Change{Kind: planner.KindEvent, Action: planner.ActionUpdate, ID: e.ID, Event: &e}))
	}
	for _, pr := range snap.Projects {
		count(s.push(ctx, planner.Change{Kind: planner.KindProject, Action: planner.ActionUpdate, ID: pr.ID, Project: &pr}))
	}
	for _, t := range snap.Tasks {
		count(s.push(ctx, planner.Change{Kind: planner.KindTask, Action: planner.ActionUpdate, ID: t.ID, Task: &t}))
	}
	for _, c := range snap.Categories {
		count(s.push(ctx, planner.Change{Kind: planner.KindCategory, Action: planner.ActionUpdate, ID: c.ID, Category: &c}))
	}
	for _, e := range snap.Expenses {
		if e.Mirrored() {
			continue
		}
		count(s.push(ctx, planner.Change{Kind: planner.KindExpense, Action: planner.ActionUpdate, ID: e.ID, Expense: &e}))
	}
	return n
}

func (s *Syncer) observe(c planner.Change) {
	if c.Origin != planner.OriginLocal {
		return
	}
	switch {
	case c.Kind == planner.KindSelection:
		s.enqueue(syncOp{resubscribe: true})
	case c.Kind == planner.KindAll, c.Derived:
	default:
		s.enqueue(syncOp{change: c})
	}
}

func (s *Syncer) enqueue(op syncOp) {
	s.mu.Lock()
	s.pending = append(s.pending, op)
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Syncer) next() (syncOp, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return syncOp{}, false
	}
	op := s.pending[0]
	s.pending = s.pending[1:]
	return op, true
}

func (s *Syncer) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.wake:
		}
		for {
			op, ok := s.next()
			if !ok {
				break
			}
			if ctx.Err() != nil {
				return
			}
			switch {
			case op.flushed != nil:
				close(op.flushed)
			case op.resubscribe:
				// Runs here rather than in observe: UnsubscribeAll waits for
				// a handler that may be blocked on planner delivery.
				s.client.SubscribeEvents(ctx, s.planner.MergeEvent)
			default:
				s.push(ctx, op.change)
			}
		}
	}
}

// push sends one change to the client. Updates fall back to a create when
// the remote row does not exist yet.
func (s *Syncer) push(ctx context.Context, c planner.Change) bool {
	cl := s.client
	switch c.Kind {
	case planner.KindEvent:
		if c.Action == planner.ActionDelete {
			return cl.DeleteEvent(ctx, c.ID)
		}
		e := *c.Event
		return upsert(c.Action,
			func() bool { return cl.UpdateEvent(ctx, e) },
			func() bool { return cl.CreateEvent(ctx, e) != nil })
	case planner.KindProject:
		if c.Action == planner.ActionDelete {
			return cl.DeleteProject(ctx, c.ID)
		}
		pr := *c.Project
		return upsert(c.Action,
			func() bool { return cl.UpdateProject(ctx, pr) },
			func() bool { return cl.CreateProject(ctx, pr) != nil })
	case planner.KindTask:
		if c.Action == planner.ActionDelete {
			return cl.DeleteTask(ctx, c.ID)
		}
		t := *c.Task
		return upsert(c.Action,
			func() bool { return cl.UpdateTask(ctx, t) },
			func() bool { return cl.CreateTask(ctx, t) != nil })
	case planner.KindCategory:
		if c.Action == planner.ActionDelete {
			return cl.DeleteCategory(ctx, c.ID)
		}
		return cl.UpsertCategory(ctx, *c.Category)
	case planner.KindExpense:
		if c.Action == planner.ActionDelete {
			return cl.DeleteExpense(ctx, c.ID)
		}
		e := *c.Expense
		return upsert(c.Action,
			func() bool { return cl.UpdateExpense(ctx, e) },
			func() bool { return cl.CreateExpense(ctx, e) != nil })
	}
	return false
}

func upsert(a planner.Action, update, create func() bool) bool {
	if a == planner.ActionCreate {
		return create()
	}
	return update() || create()
}
