// Package ask sends a message to the planning assistant.
package ask

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/planner/pkg/assistant"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/printers"
)

type Ask struct {
	Planner *planner.Planner
	Out     io.Writer
	Message string
	Output  string
}

func (a *Ask) Do(ctx context.Context) error {
	if a.Planner == nil {
		return errors.New("no planner")
	}
	reply := assistant.New(a.Planner).Send(ctx, a.Message)
	pp := printers.PrettyPrint{Out: a.Out}
	return pp.Render(a.Output, reply, func() {
		pp.Reply(reply.Text)
	})
}
