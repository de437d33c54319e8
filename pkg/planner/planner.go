// Package planner is the entity repository: it owns the in-memory planner
// state, writes every mutation through to the persistent store, keeps the
// derived budget values current and tells subscribers what changed.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/planner/pkg/derive"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/store"
)

var (
	ErrNotFound          = errors.New("planner: not found")
	ErrDerived           = errors.New("planner: mirrored expenses follow their task and cannot be edited directly")
	ErrDuplicate         = errors.New("planner: duplicate title")
	ErrPossibleDuplicate = errors.New("planner: similar title exists")
)

// Option configures a Planner.
type Option func(*Planner)

// WithIDs replaces the uuid id generator.
func WithIDs(next func() string) Option {
	return func(p *Planner) {
		p.newID = next
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) {
		p.clock = now
	}
}

// Collections is a full copy of the planner data.
type Collections struct {
	Events     []model.Event          `json:"events"`
	Projects   []model.Project        `json:"projects"`
	Tasks      []model.Task           `json:"tasks"`
	Categories []model.BudgetCategory `json:"budgetCategories"`
	Expenses   []model.BudgetExpense  `json:"budgetExpenses"`
}

// Snapshot is Collections plus the current selection.
type Snapshot struct {
	Collections
	SelectedEventID string `json:"selectedEventId,omitempty"`
}

// Planner is safe for concurrent use. Mutations are serialized; reads
// return copies.
type Planner struct {
	mu sync.Mutex
	// deliverMu keeps observer callbacks in mutation order once mu is
	// released.
	deliverMu sync.Mutex

	w     *store.Writer
	newID func() string
	clock func() time.Time

	tasks      []model.Task
	projects   []model.Project
	events     []model.Event
	categories []model.BudgetCategory
	expenses   []model.BudgetExpense
	selected   string

	subs   []subscriber
	nextID int
}

// New loads the planner state from s. Missing or unreadable keys start
// empty, an empty category list is seeded with the defaults and a selection
// pointing at a missing event is cleared.
func New(ctx context.Context, s store.Store, opts ...Option) (*Planner, error) {
	p := &Planner{
		w:     store.NewWriter(s),
		newID: uuid.NewString,
		clock: time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	if err := p.load(ctx); err != nil {
		_ = p.w.Close()
		return nil, err
	}
	return p, nil
}

func (p *Planner) load(ctx context.Context) error {
	s := p.w.Store()
	tasks := loadList[model.Task](s, store.KeyTasks)
	projects := loadList[model.Project](s, store.KeyProjects)
	events := loadList[model.Event](s, store.KeyEvents)
	if err := ctx.Err(); err != nil {
		return err
	}
	categories := loadList[model.BudgetCategory](s, store.KeyBudgetCategories)
	expenses := loadList[model.BudgetExpense](s, store.KeyBudgetExpenses)
	selected := loadSelection(s)
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.tasks, p.projects, p.events = tasks, projects, events
	p.categories, p.expenses, p.selected = categories, expenses, selected

	if len(p.categories) == 0 {
		p.categories = model.DefaultCategories()
		p.save(store.KeyBudgetCategories, p.categories)
	}
	if p.selected != "" && p.eventIndex(p.selected) < 0 {
		log.Printf("planner: selected event %q no longer exists, clearing", p.selected)
		p.selected = ""
		p.w.Remove(store.KeySelectedEvent)
	}
	var discard batch
	p.rederive(OriginStore, &discard)
	return nil
}

// Reload replaces the in-memory state with what is in the store, for when
// another process has written to it.
func (p *Planner) Reload(ctx context.Context) error {
	if err := p.w.Flush(ctx); err != nil {
		return err
	}
	if err := p.load(ctx); err != nil {
		return err
	}
	p.mu.Lock()
	b := batch{}
	b.add(Change{Kind: KindAll, Action: ActionUpdate, Origin: OriginStore})
	p.release(&b)
	return nil
}

func loadList[T any](s store.Store, key string) []T {
	out := []T{}
	raw, err := s.Get(key)
	if errors.Is(err, store.ErrNotFound) {
		return out
	}
	if err != nil {
		log.Printf("planner: load %s: %v", key, err)
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("planner: decode %s: %v", key, err)
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	return out
}

func loadSelection(s store.Store) string {
	raw, err := s.Get(store.KeySelectedEvent)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("planner: load %s: %v", store.KeySelectedEvent, err)
		}
		return ""
	}
	return strings.Trim(strings.TrimSpace(string(raw)), `"`)
}

// save enqueues v under key. Encoding happens here so later mutations of
// the in-memory slices never race the writer.
func (p *Planner) save(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("planner: encode %s: %v", key, err)
		return
	}
	p.w.Set(key, raw)
}

func (p *Planner) now() model.Timestamp {
	return model.At(p.clock())
}

// rederive runs the mirroring pass and the spent aggregation, persisting
// and reporting only what changed. Callers hold mu.
func (p *Planner) rederive(origin Origin, b *batch) {
	out, changed := derive.MirrorExpenses(p.tasks, p.expenses)
	if changed {
		b.diffExpenses(p.expenses, out, origin)
		p.expenses = out
		p.save(store.KeyBudgetExpenses, p.expenses)
	}
	p.aggregate(origin, b)
}

func (p *Planner) aggregate(origin Origin, b *batch) {
	out, ids := derive.AggregateSpent(p.categories, p.expenses)
	if len(ids) == 0 {
		return
	}
	p.categories = out
	p.save(store.KeyBudgetCategories, p.categories)
	for _, id := range ids {
		c := p.categories[p.categoryIndex(id)]
		b.add(Change{Kind: KindCategory, Action: ActionUpdate, ID: id, Origin: origin, Derived: true, Category: &c})
	}
}

// Snapshot returns a deep copy of every collection and the selection.
func (p *Planner) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		Collections: Collections{
			Events:     cloneEvents(p.events),
			Projects:   cloneProjects(p.projects),
			Tasks:      cloneTasks(p.tasks),
			Categories: append([]model.BudgetCategory{}, p.categories...),
			Expenses:   append([]model.BudgetExpense{}, p.expenses...),
		},
		SelectedEventID: p.selected,
	}
}

// Flush waits for every queued write to reach the store.
func (p *Planner) Flush(ctx context.Context) error {
	return p.w.Flush(ctx)
}

// Close drains pending writes and releases the store.
func (p *Planner) Close() error {
	return p.w.Close()
}

func (p *Planner) taskIndex(id string) int {
	for i := range p.tasks {
		if p.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Planner) projectIndex(id string) int {
	for i := range p.projects {
		if p.projects[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Planner) eventIndex(id string) int {
	for i := range p.events {
		if p.events[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Planner) categoryIndex(id string) int {
	for i := range p.categories {
		if p.categories[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Planner) expenseIndex(id string) int {
	for i := range p.expenses {
		if p.expenses[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneTasks(in []model.Task) []model.Task {
	out := make([]model.Task, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}

func cloneProjects(in []model.Project) []model.Project {
	out := make([]model.Project, len(in))
	for i, pr := range in {
		out[i] = pr.Clone()
	}
	return out
}

func cloneEvents(in []model.Event) []model.Event {
	out := make([]model.Event, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}
