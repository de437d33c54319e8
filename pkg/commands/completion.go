package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(planner completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(planner completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// complete opens the planner without a remote session and offers the
// names produced by list that start with toComplete.
func complete(toComplete string, list func(p *planner.Planner) []string) ([]string, cobra.ShellCompDirective) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	s, err := store.Open(cfg)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	p, err := planner.New(context.Background(), s)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer p.Close()

	var out []string
	for _, name := range list(p) {
		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(toComplete)) {
			out = append(out, name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func eventCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return complete(toComplete, func(p *planner.Planner) []string {
		var names []string
		for _, e := range p.Events() {
			names = append(names, e.Name)
		}
		return names
	})
}

func projectCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return complete(toComplete, func(p *planner.Planner) []string {
		var names []string
		for _, pr := range p.ProjectsForSelectedEvent() {
			names = append(names, pr.Name)
		}
		return names
	})
}

func taskCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return complete(toComplete, func(p *planner.Planner) []string {
		var names []string
		for _, t := range p.TasksForSelectedEvent() {
			names = append(names, t.Title)
		}
		return names
	})
}

func categoryCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return complete(toComplete, func(p *planner.Planner) []string {
		var names []string
		for _, c := range p.Categories() {
			names = append(names, c.ID)
		}
		return names
	})
}
