package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/export"
	exportrunner "tableflip.dev/planner/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	var path string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the budget as an Excel workbook.",
		Example: `
planner export
planner export --file ~/Desktop/wedding-budget.xlsx
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, false, func(s *session) runner {
				return &exportrunner.Export{Planner: s.planner, Path: path, Output: s.format}
			})
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", export.DefaultFileName, "Workbook path, or a directory to write "+export.DefaultFileName+" into.")
	topLevel.AddCommand(cmd)
}
