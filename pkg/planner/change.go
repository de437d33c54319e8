package planner

import "tableflip.dev/planner/pkg/model"

// Kind names the collection a Change touched.
type Kind string

const (
	KindTask      Kind = "task"
	KindProject   Kind = "project"
	KindEvent     Kind = "event"
	KindCategory  Kind = "category"
	KindExpense   Kind = "expense"
	KindSelection Kind = "selection"
	// KindAll means the whole state was replaced.
	KindAll Kind = "all"
)

// Action describes how the entity changed.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Origin tells observers where a change came from.
type Origin string

const (
	// OriginLocal is a mutation made through this Planner.
	OriginLocal Origin = "local"
	// OriginRemote is data merged from the sync backend.
	OriginRemote Origin = "remote"
	// OriginStore is state (re)loaded from the persistent store.
	OriginStore Origin = "store"
)

// Change is delivered to subscribers after a mutation has been persisted
// (enqueued), applied and derived. Exactly one of the entity pointers is
// set, matching Kind; for deletes it holds the removed value.
type Change struct {
	Kind   Kind
	Action Action
	ID     string
	Origin Origin
	// Derived is set for changes made by the derivation pass (mirrored
	// expenses and category spent) rather than asked for directly.
	Derived bool

	Task     *model.Task
	Project  *model.Project
	Event    *model.Event
	Category *model.BudgetCategory
	Expense  *model.BudgetExpense
}

type subscriber struct {
	id int
	fn func(Change)
}

// Subscribe registers fn for every future change and returns a function
// that removes it. fn runs on the mutating goroutine, in mutation order,
// and must not call Planner mutations itself.
func (p *Planner) Subscribe(fn func(Change)) (cancel func()) {
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.subs = append(p.subs, subscriber{id: id, fn: fn})
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for i, s := range p.subs {
			if s.id == id {
				p.subs = append(p.subs[:i:i], p.subs[i+1:]...)
				return
			}
		}
	}
}

// batch collects the changes of one critical section.
type batch struct {
	changes []Change
}

func (b *batch) add(c Change) {
	b.changes = append(b.changes, c)
}

// diffExpenses reports the expense differences produced by derivation.
func (b *batch) diffExpenses(before, after []model.BudgetExpense, origin Origin) {
	old := make(map[string]model.BudgetExpense, len(before))
	for _, e := range before {
		old[e.ID] = e
	}
	kept := make(map[string]bool, len(after))
	for _, e := range after {
		kept[e.ID] = true
		prev, ok := old[e.ID]
		switch {
		case !ok:
			b.add(Change{Kind: KindExpense, Action: ActionCreate, ID: e.ID, Origin: origin, Derived: true, Expense: &e})
		case prev != e:
			b.add(Change{Kind: KindExpense, Action: ActionUpdate, ID: e.ID, Origin: origin, Derived: true, Expense: &e})
		}
	}
	for _, e := range before {
		if !kept[e.ID] {
			b.add(Change{Kind: KindExpense, Action: ActionDelete, ID: e.ID, Origin: origin, Derived: true, Expense: &e})
		}
	}
}

// release unlocks mu and delivers the batch. Delivery holds deliverMu so a
// later mutation cannot overtake an earlier one's observers.
func (p *Planner) release(b *batch) {
	if len(b.changes) == 0 {
		p.mu.Unlock()
		return
	}
	p.deliverMu.Lock()
	subs := append([]subscriber(nil), p.subs...)
	p.mu.Unlock()
	defer p.deliverMu.Unlock()

	for _, c := range b.changes {
		for _, s := range subs {
			s.fn(c)
		}
	}
}
