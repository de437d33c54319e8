package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/timeutil"
)

func init() {
	color.NoColor = true
}

func TestBuild(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	w, err := timeutil.Last("1w", now)
	require.NoError(t, err)

	done := func(id, project string, ago time.Duration) model.Task {
		return model.Task{ID: id, Title: id, ProjectID: project, Status: model.StatusCompleted, CompletedAt: model.Ptr(now.Add(-ago))}
	}
	tasks := []model.Task{
		done("cake", "food", 2*time.Hour),
		done("menu", "food", 48*time.Hour),
		done("hall", "venue", 24*time.Hour),
		done("old", "venue", 30*24*time.Hour),
		{ID: "open", ProjectID: "venue", Status: model.StatusInProgress},
	}
	projects := []model.Project{{ID: "food", Name: "Catering"}, {ID: "venue", Name: "Location"}}
	expenses := []model.BudgetExpense{
		{ID: "a", Amount: 10.10, Date: model.At(now.Add(-time.Hour))},
		{ID: "b", Amount: 20.20, Date: model.At(now.Add(-72 * time.Hour))},
		{ID: "c", Amount: 99, Date: model.At(now.Add(-60 * 24 * time.Hour))},
	}

	res := Build(tasks, projects, expenses, w)
	assert.Equal(t, 3, res.Total)
	require.Len(t, res.Sections, 2)
	assert.Equal(t, "Catering", res.Sections[0].Project)
	assert.Equal(t, []string{"menu", "cake"}, []string{res.Sections[0].Tasks[0].ID, res.Sections[0].Tasks[1].ID})
	assert.Equal(t, "Location", res.Sections[1].Project)
	assert.Len(t, res.Expenses, 2)
	assert.InDelta(t, 30.30, res.Spent, 0.0001)
}

func TestReportPrintsEmptyWindow(t *testing.T) {
	p, err := planner.New(context.Background(), store.NewMemory())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	w, err := timeutil.Last("2d", time.Now())
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, (&Report{Planner: p, Out: &out, Window: w}).Do(context.Background()))
	assert.Contains(t, out.String(), "Report · last 2d")
	assert.Contains(t, out.String(), "No tasks completed in this window.")
}
