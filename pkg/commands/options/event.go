package options

import (
	"github.com/spf13/cobra"
)

// EventOptions
type EventOptions struct {
	Type   string
	Color  string
	Budget float64
	// NoBudget clears the budget on update.
	NoBudget bool
	// Keep leaves the current selection alone when adding.
	Keep bool
}

func AddEventArgs(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().StringVarP(&o.Type, "type", "t", "",
		Wrap80("Event type. One of wedding, birthday, corporate, anniversary, graduation, baby_shower or custom."))
	cmd.Flags().StringVar(&o.Color, "color", "",
		"Hex color, example: --color=#EC4899. Defaults to the event type color.")
	cmd.Flags().Float64Var(&o.Budget, "budget", 0,
		"Overall budget for the event.")
}

func AddEventKeepArgs(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().BoolVar(&o.Keep, "keep-selection", false,
		"Do not select the new event.")
}

func AddNoBudgetArgs(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().BoolVar(&o.NoBudget, "no-budget", false,
		"Clear the event budget.")
}
