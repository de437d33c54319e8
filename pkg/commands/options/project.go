package options

import (
	"github.com/spf13/cobra"
)

// ProjectOptions
type ProjectOptions struct {
	Color    string
	Icon     string
	Event    string
	Unscoped bool
	Share    []string
}

func AddProjectArgs(cmd *cobra.Command, o *ProjectOptions) {
	cmd.Flags().StringVar(&o.Color, "color", "",
		"Hex color, example: --color=#6366F1.")
	cmd.Flags().StringVar(&o.Icon, "icon", "",
		"Icon name.")
	cmd.Flags().StringVarP(&o.Event, "event", "e", "",
		"Link the project to this event id. Defaults to the selected event.")
	cmd.Flags().BoolVar(&o.Unscoped, "unscoped", false,
		"Do not link the project to any event.")
	cmd.Flags().StringSliceVar(&o.Share, "share", nil,
		"User ids to share the project with.")
}
