// Package info reports where the planner keeps its data.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/store"
)

type Info struct {
	Config  store.Config
	Planner *planner.Planner
	Out     io.Writer
	Output  string
}

type Result struct {
	ConfigPathEnv string         `json:"configPathEnv,omitempty"`
	Path          string         `json:"path"`
	Backend       string         `json:"backend"`
	Remote        bool           `json:"remote"`
	Selected      string         `json:"selectedEventId,omitempty"`
	Counts        map[string]int `json:"counts"`
}

func (n *Info) Do(ctx context.Context) error {
	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	if n.Planner == nil {
		return fmt.Errorf("Failed to create planner.")
	}

	snap := n.Planner.Snapshot()
	res := Result{
		ConfigPathEnv: os.Getenv("PLANNER_CONFIG_PATH"),
		Path:          n.Config.BasePath(),
		Backend:       n.Config.Backend(),
		Remote:        n.Config.RemoteDSN() != "" && n.Config.RemoteUser() != "",
		Selected:      snap.SelectedEventID,
		Counts: map[string]int{
			store.KeyEvents:           len(snap.Events),
			store.KeyProjects:         len(snap.Projects),
			store.KeyTasks:            len(snap.Tasks),
			store.KeyBudgetCategories: len(snap.Categories),
			store.KeyBudgetExpenses:   len(snap.Expenses),
		},
	}

	pp := printers.PrettyPrint{Out: n.Out}
	return pp.Render(n.Output, res, func() {
		if res.ConfigPathEnv != "" {
			pp.Printf("PLANNER_CONFIG_PATH found on env, using %s\n", res.ConfigPathEnv)
		} else {
			pp.Printf("PLANNER_CONFIG_PATH env var not set\n")
		}
		pp.Printf("Config.path: %s\n", res.Path)
		pp.Printf("Config.backend: %s\n", res.Backend)
		if res.Remote {
			pp.Printf("Remote: enabled as %s\n", n.Config.RemoteUser())
		} else {
			pp.Printf("Remote: disabled\n")
		}

		pp.Printf("Keys:\n")
		for _, k := range store.Keys() {
			if k == store.KeySelectedEvent {
				if res.Selected == "" {
					pp.Printf("  %s: none\n", k)
				} else {
					pp.Printf("  %s: %s\n", k, res.Selected)
				}
				continue
			}
			pp.Printf("  %s: %d\n", k, res.Counts[k])
		}
	})
}
