package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/remote"
	"tableflip.dev/planner/pkg/store"
)

// flushTimeout bounds how long a command waits for queued remote pushes
// before exiting.
const flushTimeout = 10 * time.Second

type runner interface {
	Do(ctx context.Context) error
}

// session is the planner opened for one command.
type session struct {
	config  store.Config
	store   store.Store
	planner *planner.Planner
	client  remote.Client
	syncer  *remote.Syncer
	format  string
}

func loadConfig() (store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	if ephemeral {
		cfg = &store.FileConfig{
			Path:        cfg.BasePath(),
			StoreDriver: store.BackendMemory,
			DSN:         cfg.RemoteDSN(),
			User:        cfg.RemoteUser(),
		}
	}
	return cfg, nil
}

// openSession loads the planner. With live set and a remote configured,
// local changes are pushed for as long as the session is open.
func openSession(ctx context.Context, live bool) (*session, error) {
	format, err := output.Format()
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	s, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	p, err := planner.New(ctx, s)
	if err != nil {
		return nil, err
	}

	sess := &session{config: cfg, store: s, planner: p, format: format}
	if live {
		sess.client = remote.NewClient(cfg)
		if sess.client.Enabled() {
			sess.syncer = remote.NewSyncer(p, sess.client)
			if err := sess.syncer.Start(ctx); err != nil {
				_ = sess.Close(ctx)
				return nil, err
			}
		}
	}
	return sess, nil
}

// Close waits for pending remote pushes, then drains the store writes.
func (s *session) Close(ctx context.Context) error {
	if s.syncer != nil {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
		_ = s.syncer.Flush(fctx)
		cancel()
		s.syncer.Stop()
	}
	if s.client != nil {
		_ = s.client.Close()
	}
	return s.planner.Close()
}

// run opens a session, runs the runner made by build and closes the
// session. Mutating commands pass live so their changes reach the remote.
func run(cmd *cobra.Command, live bool, build func(s *session) runner) error {
	cmd.SilenceUsage = true
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := openSession(ctx, live)
	if err != nil {
		return output.HandleError(err)
	}
	err = build(s).Do(ctx)
	if cerr := s.Close(ctx); err == nil {
		err = cerr
	}
	return output.HandleError(err)
}
