package options

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

// VerboseOptions
type VerboseOptions struct {
	Verbose bool
}

func AddVerboseArgs(cmd *cobra.Command, o *VerboseOptions) {
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log store and sync activity to stderr.")
}

// Apply routes the standard logger to stderr when verbose and drops it
// otherwise.
func (o *VerboseOptions) Apply() {
	if o.Verbose {
		log.SetOutput(os.Stderr)
		return
	}
	log.SetOutput(io.Discard)
}
