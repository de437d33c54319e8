package commands

import (
	"context"
	"io"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/planner/pkg/runner/tasks"
)

func init() {
	color.NoColor = true
}

func TestTaskFilter(t *testing.T) {
	for in, want := range map[string]string{
		"all":    "all",
		"Priced": "priced",
		"done":   "completed",
		"doing":  "in_progress",
	} {
		got, err := taskFilter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := taskFilter("someday")
	assert.ErrorContains(t, err, "unknown filter")
}

func TestCommandTree(t *testing.T) {
	root := New()
	for _, path := range [][]string{
		{"event", "add"},
		{"event", "select"},
		{"project", "share"},
		{"task", "suggest"},
		{"task", "calendar"},
		{"task", "recent"},
		{"expense", "pay"},
		{"category", "allocate"},
		{"remote", "migrate"},
		{"export"},
		{"mcp"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("PLANNER_CONFIG_PATH", t.TempDir())
	t.Setenv("PLANNER_PATH", t.TempDir())
	root := New()
	root.SetArgs(append([]string{"--ephemeral"}, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestEphemeralTaskAddNeedsProject(t *testing.T) {
	err := execute(t, "task", "add", "Book", "venue")
	assert.ErrorIs(t, err, tasks.ErrNoProject)
}

func TestBadOutputFormat(t *testing.T) {
	err := execute(t, "-o", "xml", "stats")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestStatsRejectsUnknownGrouping(t *testing.T) {
	err := execute(t, "stats", "--by", "colour")
	assert.ErrorContains(t, err, "unknown grouping")
	require.NoError(t, execute(t, "stats", "--by", "priority"))
}
