package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"interactsh/internal/services/session"
)

// teardownTimeout bounds the deregister or save that follows a run.
const teardownTimeout = 10 * time.Second

// App runs client commands against a Wire, printing interactions to Out.
type App struct {
	Wire *Wire
	Out  io.Writer
}

// New returns an App writing to out.
func New(w *Wire, out io.Writer) *App { return &App{Wire: w, Out: out} }

// Run registers (or restores) a session, streams interactions until ctx is
// done, then deregisters, or saves the session when a session file is set.
func (a *App) Run(ctx context.Context) error {
	s, restored, err := a.Wire.OpenSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if !restored {
		if _, err := s.Register(ctx); err != nil {
			return err
		}
	}
	fqdn, _ := s.InteractionFQDN()
	fmt.Fprintf(a.Out, "interaction url: %s\n", fqdn)
	fmt.Fprintf(a.Out, "key fingerprint: %s\n", s.Fingerprint())

	if err := a.Wire.ServeMetrics(ctx); err != nil {
		a.teardown(s)
		return err
	}

	stream := s.LogStream(session.StreamOptions{Period: a.Wire.Config.PollInterval, EmitNoNewLogs: true})
	defer stream.Close()
	for {
		item, ok := stream.Next(ctx)
		if !ok {
			break
		}
		switch {
		case item.Err != nil:
			a.Wire.Log.Warn().Err(item.Err).Msg("poll failed")
		case item.NoNewLogs:
			a.Wire.Log.Debug().Msg("no new interactions")
		default:
			fmt.Fprintln(a.Out, FormatEntry(item.Entry))
		}
	}
	return a.teardown(s)
}

func (a *App) teardown(s *session.Session) error {
	if !s.IsRegistered() {
		return nil
	}
	if a.Wire.Store != nil {
		if err := a.Wire.SaveSession(s); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		a.Wire.Log.Info().Msg("session saved")
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), teardownTimeout)
	defer cancel()
	s.ForceDeregister(ctx)
	return nil
}

// PollOnce polls a saved session once and prints what it returns.
func (a *App) PollOnce(ctx context.Context) (int, error) {
	s, err := a.Wire.RestoreSession()
	if err != nil {
		return 0, err
	}
	defer s.Close()

	entries, err := s.Poll(ctx)
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		fmt.Fprintln(a.Out, FormatEntry(e))
	}
	return len(entries), nil
}

// Deregister ends a saved session and removes the session file.
func (a *App) Deregister(ctx context.Context) error {
	s, err := a.Wire.RestoreSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Deregister(ctx); err != nil {
		return err
	}
	return a.Wire.Store.RemoveSession()
}
