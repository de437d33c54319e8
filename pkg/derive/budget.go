// Package derive computes the values the planner never stores by hand:
// mirrored expenses, category spend, statistics and task views. Everything
// here is pure.
package derive

import (
	"strings"

	"github.com/shopspring/decimal"

	"tableflip.dev/planner/pkg/model"
)

type categoryRule struct {
	id       string
	keywords []string
}

// Order matters: the first rule with a matching keyword wins.
var categoryRules = []categoryRule{
	{model.CategoryVenue, []string{"venue", "location"}},
	{model.CategoryCatering, []string{"cater", "food", "meal"}},
	{model.CategoryPhotography, []string{"photo", "video", "camera"}},
	{model.CategoryMakeup, []string{"makeup", "make up", "beauty", "hair"}},
	{model.CategoryFlowers, []string{"flower", "decor"}},
	{model.CategoryMusic, []string{"music", "dj", "entertainment"}},
	{model.CategoryAttire, []string{"dress", "suit", "attire", "outfit"}},
	{model.CategoryTransportation, []string{"car", "transport", "limo"}},
}

// CategoryFromTitle picks the budget category for a task title by keyword,
// defaulting to venue.
func CategoryFromTitle(title string) string {
	lower := strings.ToLower(title)
	for _, r := range categoryRules {
		for _, k := range r.keywords {
			if strings.Contains(lower, k) {
				return r.id
			}
		}
	}
	return model.CategoryVenue
}

// MirrorExpense builds the mirrored expense for a priced task.
func MirrorExpense(t model.Task) model.BudgetExpense {
	return model.BudgetExpense{
		ID:         model.MirrorID(t.ID),
		CategoryID: CategoryFromTitle(t.Title),
		Title:      model.MirrorTitle(t.Title),
		Amount:     t.PriceValue(),
		Date:       t.CreatedAt,
		IsPaid:     t.Status == model.StatusCompleted,
		CreatedAt:  t.CreatedAt,
	}
}

// MirrorExpenses reconciles the mirrored expenses in expenses against tasks:
// every priced task gets exactly one mirror, stale mirrors are refreshed and
// mirrors of unpriced or missing tasks are dropped. User-entered expenses
// pass through untouched and in order. Applying it twice is a no-op.
func MirrorExpenses(tasks []model.Task, expenses []model.BudgetExpense) ([]model.BudgetExpense, bool) {
	priced := make(map[string]model.Task, len(tasks))
	for _, t := range tasks {
		if t.HasPrice() {
			priced[t.ID] = t
		}
	}

	changed := false
	seen := make(map[string]bool, len(priced))
	out := make([]model.BudgetExpense, 0, len(expenses)+len(priced))
	for _, e := range expenses {
		taskID, ok := model.MirrorTaskID(e.ID)
		if !ok {
			out = append(out, e)
			continue
		}
		t, live := priced[taskID]
		if !live || seen[taskID] {
			changed = true
			continue
		}
		seen[taskID] = true
		want := refreshMirror(e, t)
		if want != e {
			changed = true
		}
		out = append(out, want)
	}
	for _, t := range tasks {
		if !t.HasPrice() || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, MirrorExpense(t))
		changed = true
	}
	if !changed {
		return expenses, false
	}
	return out, true
}

// refreshMirror updates the task-derived fields of an existing mirror and
// keeps its date and creation time.
func refreshMirror(e model.BudgetExpense, t model.Task) model.BudgetExpense {
	e.Amount = t.PriceValue()
	e.IsPaid = t.Status == model.StatusCompleted
	e.CategoryID = CategoryFromTitle(t.Title)
	e.Title = model.MirrorTitle(t.Title)
	return e
}

// AggregateSpent recomputes spent for every category and returns the ids
// whose value changed.
func AggregateSpent(categories []model.BudgetCategory, expenses []model.BudgetExpense) ([]model.BudgetCategory, []string) {
	sums := make(map[string]decimal.Decimal, len(categories))
	for _, e := range expenses {
		sums[e.CategoryID] = sums[e.CategoryID].Add(decimal.NewFromFloat(e.Amount))
	}

	var changed []string
	out := make([]model.BudgetCategory, len(categories))
	for i, c := range categories {
		spent, _ := sums[c.ID].Float64()
		if c.Spent != spent {
			changed = append(changed, c.ID)
			c.Spent = spent
		}
		out[i] = c
	}
	return out, changed
}

// ExpensesByCategory groups expenses under each category id, keeping an
// entry for every category even when it has no expenses.
func ExpensesByCategory(categories []model.BudgetCategory, expenses []model.BudgetExpense) map[string][]model.BudgetExpense {
	out := make(map[string][]model.BudgetExpense, len(categories))
	for _, c := range categories {
		out[c.ID] = []model.BudgetExpense{}
	}
	for _, e := range expenses {
		if _, ok := out[e.CategoryID]; ok {
			out[e.CategoryID] = append(out[e.CategoryID], e)
		}
	}
	return out
}

// BudgetTotals summarizes the budget. Allocated falls back to the task
// price total while no category has a manual allocation; UsesTaskFallback
// reports which source was used.
type BudgetTotals struct {
	Allocated        float64 `json:"allocated"`
	Spent            float64 `json:"spent"`
	Remaining        float64 `json:"remaining"`
	TaskBasedTotal   float64 `json:"taskBasedTotal"`
	PercentSpent     float64 `json:"percentSpent"`
	UsesTaskFallback bool    `json:"usesTaskFallback"`
}

func ComputeBudgetTotals(categories []model.BudgetCategory, tasks []model.Task) BudgetTotals {
	allocated, spent, taskTotal := decimal.Zero, decimal.Zero, decimal.Zero
	anyAllocated := false
	for _, c := range categories {
		if c.Allocated > 0 {
			anyAllocated = true
		}
		allocated = allocated.Add(decimal.NewFromFloat(c.Allocated))
		spent = spent.Add(decimal.NewFromFloat(c.Spent))
	}
	for _, t := range tasks {
		taskTotal = taskTotal.Add(decimal.NewFromFloat(t.PriceValue()))
	}

	var out BudgetTotals
	effective := allocated
	if !anyAllocated {
		effective = taskTotal
		out.UsesTaskFallback = true
	}
	out.Allocated, _ = effective.Float64()
	out.Spent, _ = spent.Float64()
	out.Remaining, _ = effective.Sub(spent).Float64()
	out.TaskBasedTotal, _ = taskTotal.Float64()
	if effective.IsPositive() {
		out.PercentSpent, _ = spent.Div(effective).Mul(decimal.NewFromInt(100)).Float64()
	}
	return out
}
