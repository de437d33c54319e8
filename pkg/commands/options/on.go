package options

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddDueArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "due", "",
		`Specify a due date, example: --due="2026-2-28" or --due="2/28".`)
}

func AddDateArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "date", "",
		`Specify a date, example: --date="2026-2-28" or --date="2/28". Defaults to today.`)
}

func (o *OnOptions) GetOn() (*time.Time, error) {
	return ParseDate(o.OnString, time.Now())
}

// ParseDate reads a full date or a month/day. A bare month/day that has
// already passed this year is taken to mean next year.
func ParseDate(v string, now time.Time) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(layoutISO, v, time.Local)
	if err != nil {
		t, err = time.ParseInLocation(layoutISOShort, v, time.Local)
		if err != nil {
			return nil, err
		}
		t = t.AddDate(now.Year(), 0, 0)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		if t.Before(today) {
			t = t.AddDate(1, 0, 0)
		}
	}
	return &t, nil
}
