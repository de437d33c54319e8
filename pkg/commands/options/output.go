package options

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions
type OutputOptions struct {
	JSON   bool
	Output string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.PersistentFlags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
	cmd.PersistentFlags().StringVarP(&po.Output, "output", "o", "",
		"Output format. One of 'yaml' or 'json'. Default is a table.")
}

// Format is the structured output format requested, or "" for pretty
// printed tables.
func (o *OutputOptions) Format() (string, error) {
	if o.JSON {
		return "json", nil
	}
	switch f := strings.ToLower(strings.TrimSpace(o.Output)); f {
	case "", "json", "yaml":
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", o.Output)
	}
}

func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
