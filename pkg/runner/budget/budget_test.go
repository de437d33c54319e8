package budget

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/store"
)

func init() {
	color.NoColor = true
}

func newPlanner(t *testing.T) *planner.Planner {
	t.Helper()
	p, err := planner.New(context.Background(), store.NewMemory())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestFindCategory(t *testing.T) {
	p := newPlanner(t)

	c, err := FindCategory(p, "flowers & DECOR")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryFlowers, c.ID)

	c, err = FindCategory(p, model.CategoryMusic)
	require.NoError(t, err)
	assert.Equal(t, "Music & Entertainment", c.Name)

	_, err = FindCategory(p, "fireworks")
	assert.ErrorIs(t, err, planner.ErrNotFound)
}

func TestAddExpenseGuessesCategory(t *testing.T) {
	p := newPlanner(t)
	var out bytes.Buffer
	add := &AddExpense{Planner: p, Out: &out, Input: model.ExpenseInput{Title: "Photo booth deposit", Amount: 300}}
	require.NoError(t, add.Do(context.Background()))

	assert.Contains(t, out.String(), `Added $300.00 "Photo booth deposit" under Photography`)
	c, err := p.Category(model.CategoryPhotography)
	require.NoError(t, err)
	assert.InDelta(t, 300, c.Spent, 0.001)
}

func TestAllocateAndSummary(t *testing.T) {
	p := newPlanner(t)
	var out bytes.Buffer
	require.NoError(t, (&Allocate{Planner: p, Out: &out, Ref: "venue", Amount: 1000}).Do(context.Background()))
	assert.Contains(t, out.String(), "Venue: $1000.00 allocated, $1000.00 remaining")

	_, err := p.AddExpense(model.ExpenseInput{CategoryID: model.CategoryVenue, Title: "Hall deposit", Amount: 250})
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, (&Summary{Planner: p, Out: &out, Output: "json"}).Do(context.Background()))
	var res SummaryResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.InDelta(t, 1000, res.Totals.Allocated, 0.001)
	assert.InDelta(t, 250, res.Totals.Spent, 0.001)
	assert.InDelta(t, 750, res.Totals.Remaining, 0.001)
	assert.False(t, res.Totals.UsesTaskFallback)
	assert.Nil(t, res.Event)
}

func TestExpensesFilterByCategory(t *testing.T) {
	p := newPlanner(t)
	for _, in := range []model.ExpenseInput{
		{CategoryID: model.CategoryVenue, Title: "Hall deposit", Amount: 250},
		{CategoryID: model.CategoryCatering, Title: "Tasting", Amount: 80},
	} {
		_, err := p.AddExpense(in)
		require.NoError(t, err)
	}

	var out bytes.Buffer
	require.NoError(t, (&Expenses{Planner: p, Out: &out, Category: "catering", Output: "json"}).Do(context.Background()))
	var got []model.BudgetExpense
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Tasting", got[0].Title)
}

func TestPayAndDeleteExpense(t *testing.T) {
	p := newPlanner(t)
	x, err := p.AddExpense(model.ExpenseInput{CategoryID: model.CategoryAttire, Title: "Suit fitting", Amount: 120})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, (&Pay{Planner: p, Out: &out, ID: x.ID, Paid: true}).Do(context.Background()))
	assert.Contains(t, out.String(), `"Suit fitting" marked paid`)

	out.Reset()
	require.NoError(t, (&DeleteExpense{Planner: p, Out: &out, ID: x.ID}).Do(context.Background()))
	assert.Empty(t, p.Expenses())

	err = (&Pay{Planner: p, Out: &out, ID: x.ID, Paid: true}).Do(context.Background())
	assert.ErrorIs(t, err, planner.ErrNotFound)
}

func TestCategoryLifecycle(t *testing.T) {
	p := newPlanner(t)
	var out bytes.Buffer
	add := &AddCategory{Planner: p, Out: &out, Input: model.CategoryInput{Name: "Favors", Allocated: 200}}
	require.NoError(t, add.Do(context.Background()))
	assert.Contains(t, out.String(), `Added category "Favors"`)

	out.Reset()
	require.NoError(t, (&DeleteCategory{Planner: p, Out: &out, Ref: "favors"}).Do(context.Background()))
	_, err := FindCategory(p, "favors")
	assert.ErrorIs(t, err, planner.ErrNotFound)
}

func TestStatsCountsScopedTasks(t *testing.T) {
	p := newPlanner(t)
	pr, err := p.AddProject(model.ProjectInput{Name: "Party"})
	require.NoError(t, err)
	_, err = p.AddTask(model.TaskInput{Title: "Balloons", ProjectID: pr.ID, Priority: model.PriorityHigh})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, (&Stats{Planner: p, Out: &out, Output: "json"}).Do(context.Background()))
	var got struct {
		Total        int `json:"total"`
		HighPriority int `json:"highPriority"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, 1, got.HighPriority)
}

func TestStatsByPriority(t *testing.T) {
	p := newPlanner(t)
	pr, err := p.AddProject(model.ProjectInput{Name: "Party"})
	require.NoError(t, err)
	for _, in := range []model.TaskInput{
		{Title: "Balloons", ProjectID: pr.ID, Priority: model.PriorityHigh},
		{Title: "Cake", ProjectID: pr.ID, Priority: model.PriorityHigh},
		{Title: "Napkins", ProjectID: pr.ID, Priority: model.PriorityLow},
	} {
		_, err := p.AddTask(in)
		require.NoError(t, err)
	}

	var out bytes.Buffer
	require.NoError(t, (&Stats{Planner: p, Out: &out, By: ByPriority, Output: "json"}).Do(context.Background()))
	var got StatsResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.Groups, 3)
	assert.Equal(t, "high", got.Groups[0].Name)
	assert.Len(t, got.Groups[0].Tasks, 2)
	assert.Empty(t, got.Groups[1].Tasks)
	assert.Len(t, got.Groups[2].Tasks, 1)
	assert.Equal(t, 3, got.Stats.Total)

	out.Reset()
	require.NoError(t, (&Stats{Planner: p, Out: &out, By: ByStatus}).Do(context.Background()))
	assert.Contains(t, out.String(), "todo")
	assert.Contains(t, out.String(), "Napkins")

	err = (&Stats{Planner: p, Out: &out, By: "colour"}).Do(context.Background())
	assert.Error(t, err)
}

func TestSummaryCountsPricedTasks(t *testing.T) {
	p := newPlanner(t)
	pr, err := p.AddProject(model.ProjectInput{Name: "Party"})
	require.NoError(t, err)
	price := 120.0
	_, err = p.AddTask(model.TaskInput{Title: "Cake", ProjectID: pr.ID, Price: &price})
	require.NoError(t, err)
	_, err = p.AddTask(model.TaskInput{Title: "Napkins", ProjectID: pr.ID})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, (&Summary{Planner: p, Out: &out, Output: "json"}).Do(context.Background()))
	var got SummaryResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 1, got.PricedTasks)

	out.Reset()
	require.NoError(t, (&Summary{Planner: p, Out: &out}).Do(context.Background()))
	assert.Contains(t, out.String(), "1 priced tasks")
}
