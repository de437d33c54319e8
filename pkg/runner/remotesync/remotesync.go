// Package remotesync runs the remote synchronization from the CLI.
package remotesync

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/remote"
)

// ErrRemoteDisabled is returned when no remote backend is configured.
var ErrRemoteDisabled = errors.New("remote sync is not configured, set remote.dsn and remote.user")

type Sync struct {
	Planner *planner.Planner
	Client  remote.Client
	Out     io.Writer
	// Push uploads every local record before pulling, so local edits win.
	Push bool
	// Watch keeps the session open, pushing local changes and merging
	// remote event updates until ctx is done.
	Watch  bool
	Output string
}

type Result struct {
	Events   int `json:"events"`
	Projects int `json:"projects"`
	Tasks    int `json:"tasks"`
	Pushed   int `json:"pushed,omitempty"`
}

func (s *Sync) Do(ctx context.Context) error {
	if s.Planner == nil {
		return errors.New("no planner")
	}
	if s.Client == nil || !s.Client.Enabled() {
		return ErrRemoteDisabled
	}
	syncer := remote.NewSyncer(s.Planner, s.Client)

	// Push first: a pulled row replaces the local one, so local edits that
	// never reached the backend must be uploaded before merging.
	var res Result
	if s.Push {
		res.Pushed = syncer.PushAll(ctx)
	}
	syncer.Pull(ctx)
	snap := s.Planner.Snapshot()
	res.Events, res.Projects, res.Tasks = len(snap.Events), len(snap.Projects), len(snap.Tasks)

	pp := printers.PrettyPrint{Out: s.Out}
	if err := pp.Render(s.Output, res, func() {
		pp.Printf("Synced %d events, %d projects and %d tasks\n", res.Events, res.Projects, res.Tasks)
		if s.Push {
			pp.Printf("Pushed %d records\n", res.Pushed)
		}
	}); err != nil {
		return err
	}

	if !s.Watch {
		return nil
	}
	if err := syncer.Start(ctx); err != nil {
		return err
	}
	defer syncer.Stop()
	pp.Printf("Watching for changes, press ctrl-c to stop\n")
	<-ctx.Done()
	return nil
}

// Migrate creates the remote schema.
type Migrate struct {
	DSN    string
	User   string
	Out    io.Writer
	Output string
}

func (m *Migrate) Do(ctx context.Context) error {
	if m.DSN == "" {
		return ErrRemoteDisabled
	}
	db, err := remote.OpenPostgres(m.DSN, m.User)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: m.Out}
	return pp.Render(m.Output, map[string]bool{"migrated": true}, func() {
		pp.Printf("Remote schema is up to date\n")
	})
}
