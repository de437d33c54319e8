package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
)

var (
	output  = &options.OutputOptions{}
	verbose = &options.VerboseOptions{}
	// ephemeral keeps the planner in memory for one invocation.
	ephemeral bool
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "planner",
		Short: options.Wrap80("Plan events, their tasks and the budget from the command line."),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose.Apply()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, output)
	options.AddVerboseArgs(cmd, verbose)
	cmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false,
		"Use an in-memory store that is discarded on exit.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addEvent(topLevel)
	addProject(topLevel)
	addTask(topLevel)
	addExpense(topLevel)
	addCategory(topLevel)
	addBudget(topLevel)
	addStats(topLevel)
	addReport(topLevel)
	addExport(topLevel)
	addAsk(topLevel)
	addSync(topLevel)
	addRemote(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addUpgrade(topLevel)
	addCompletions(topLevel)
}
