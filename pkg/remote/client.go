// Package remote mirrors planner data to an optional Postgres backend and
// merges realtime changes back. Network and database failures never escape
// this package: they are logged and reported as nil or false.
package remote

import (
	"context"
	"log"

	"tableflip.dev/planner/pkg/model"
)

// Client is the per-entity contract of a sync backend. Create returns nil
// and Update/Delete return false on any failure.
type Client interface {
	ListEvents(ctx context.Context) []model.Event
	CreateEvent(ctx context.Context, e model.Event) *model.Event
	UpdateEvent(ctx context.Context, e model.Event) bool
	DeleteEvent(ctx context.Context, id string) bool

	ListProjects(ctx context.Context) []model.Project
	CreateProject(ctx context.Context, p model.Project) *model.Project
	UpdateProject(ctx context.Context, p model.Project) bool
	DeleteProject(ctx context.Context, id string) bool
	ShareProject(ctx context.Context, id string, userIDs []string) bool

	ListTasks(ctx context.Context) []model.Task
	CreateTask(ctx context.Context, t model.Task) *model.Task
	UpdateTask(ctx context.Context, t model.Task) bool
	DeleteTask(ctx context.Context, id string) bool

	ListCategories(ctx context.Context) []model.BudgetCategory
	UpsertCategory(ctx context.Context, c model.BudgetCategory) bool
	DeleteCategory(ctx context.Context, id string) bool

	ListExpenses(ctx context.Context) []model.BudgetExpense
	CreateExpense(ctx context.Context, e model.BudgetExpense) *model.BudgetExpense
	UpdateExpense(ctx context.Context, e model.BudgetExpense) bool
	DeleteExpense(ctx context.Context, id string) bool

	// SubscribeEvents delivers inserts and updates of the current user's
	// events to fn until ctx is done or UnsubscribeAll is called. A second
	// subscription replaces the first.
	SubscribeEvents(ctx context.Context, fn func(model.Event)) bool
	// UnsubscribeAll tears down every realtime channel.
	UnsubscribeAll()

	// Enabled reports whether a backend is configured.
	Enabled() bool
	Close() error
}

// Settings is the slice of configuration the client needs.
type Settings interface {
	RemoteDSN() string
	RemoteUser() string
}

// NewClient returns a Postgres client when both a DSN and a user are
// configured, and Disabled otherwise.
func NewClient(cfg Settings) Client {
	if cfg == nil || cfg.RemoteDSN() == "" || cfg.RemoteUser() == "" {
		return Disabled{}
	}
	pg, err := OpenPostgres(cfg.RemoteDSN(), cfg.RemoteUser())
	if err != nil {
		log.Printf("remote: %v; sync disabled", err)
		return Disabled{}
	}
	return pg
}

// Disabled is the no-op Client used when no backend is configured.
type Disabled struct{}

var _ Client = Disabled{}

func (Disabled) ListEvents(context.Context) []model.Event                                { return nil }
func (Disabled) CreateEvent(context.Context, model.Event) *model.Event                   { return nil }
func (Disabled) UpdateEvent(context.Context, model.Event) bool                           { return false }
func (Disabled) DeleteEvent(context.Context, string) bool                                { return false }
func (Disabled) ListProjects(context.Context) []model.Project                            { return nil }
func (Disabled) CreateProject(context.Context, model.Project) *model.Project             { return nil }
func (Disabled) UpdateProject(context.Context, model.Project) bool                       { return false }
func (Disabled) DeleteProject(context.Context, string) bool                              { return false }
func (Disabled) ShareProject(context.Context, string, []string) bool                     { return false }
func (Disabled) ListTasks(context.Context) []model.Task                                  { return nil }
func (Disabled) CreateTask(context.Context, model.Task) *model.Task                      { return nil }
func (Disabled) UpdateTask(context.Context, model.Task) bool                             { return false }
func (Disabled) DeleteTask(context.Context, string) bool                                 { return false }
func (Disabled) ListCategories(context.Context) []model.BudgetCategory                   { return nil }
func (Disabled) UpsertCategory(context.Context, model.BudgetCategory) bool               { return false }
func (Disabled) DeleteCategory(context.Context, string) bool                             { return false }
func (Disabled) ListExpenses(context.Context) []model.BudgetExpense                      { return nil }
func (Disabled) CreateExpense(context.Context, model.BudgetExpense) *model.BudgetExpense { return nil }
func (Disabled) UpdateExpense(context.Context, model.BudgetExpense) bool                 { return false }
func (Disabled) DeleteExpense(context.Context, string) bool                              { return false }
func (Disabled) SubscribeEvents(context.Context, func(model.Event)) bool                 { return false }
func (Disabled) UnsubscribeAll()                                                         {}
func (Disabled) Enabled() bool                                                           { return false }
func (Disabled) Close() error                                                            { return nil }
