package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"interactsh/internal/domain"
	"interactsh/internal/metrics"
	"interactsh/internal/services/session"
	"interactsh/internal/store"
)

// ErrNoSavedSession is returned when a command needs a session file that
// does not exist.
var ErrNoSavedSession = errors.New("no saved session")

// Wire bundles everything a command needs.
type Wire struct {
	Config  Config
	Session session.Config
	Metrics *metrics.Collector
	Store   domain.SessionStore // nil without a session file
	Log     zerolog.Logger
}

// NewWire validates cfg and builds its collaborators.
func NewWire(cfg Config, logger zerolog.Logger) (*Wire, error) {
	sc, err := cfg.SessionConfig()
	if err != nil {
		return nil, err
	}
	w := &Wire{Config: cfg, Metrics: metrics.New(), Log: logger}
	sc.Metrics = w.Metrics
	sc.Logger = &w.Log
	w.Session = sc
	if cfg.SessionFile != "" {
		if cfg.Passphrase == "" {
			return nil, &session.BuildError{Field: "passphrase", Err: session.ErrMissingField}
		}
		w.Store = store.NewSessionFileStore(cfg.SessionFile)
	}
	return w, nil
}

// OpenSession restores the saved session when there is one, and otherwise
// builds a fresh Unregistered session.
func (w *Wire) OpenSession() (s *session.Session, restored bool, err error) {
	if w.Store != nil {
		snap, ok, err := w.Store.LoadSession(w.Config.Passphrase)
		if err != nil {
			return nil, false, err
		}
		if ok {
			defer session.WipeSnapshot(&snap)
			s, err := session.Restore(w.Session, snap)
			return s, err == nil, err
		}
	}
	s, err = session.New(w.Session)
	return s, false, err
}

// RestoreSession requires a saved session.
func (w *Wire) RestoreSession() (*session.Session, error) {
	if w.Store == nil {
		return nil, ErrNoSavedSession
	}
	s, restored, err := w.OpenSession()
	if err != nil {
		return nil, err
	}
	if !restored {
		s.Close()
		return nil, ErrNoSavedSession
	}
	return s, nil
}

// SaveSession persists s to the session file.
func (w *Wire) SaveSession(s *session.Session) error {
	if w.Store == nil {
		return ErrNoSavedSession
	}
	snap, err := s.Snapshot()
	if err != nil {
		return err
	}
	defer session.WipeSnapshot(&snap)
	return w.Store.SaveSession(w.Config.Passphrase, snap)
}

// ServeMetrics serves /metrics on Config.MetricsAddr until ctx is done. It
// returns immediately when no address is configured.
func (w *Wire) ServeMetrics(ctx context.Context) error {
	if w.Config.MetricsAddr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", w.Metrics.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	ln, err := net.Listen("tcp", w.Config.MetricsAddr)
	if err != nil {
		return err
	}
	w.Log.Info().Str("addr", ln.Addr().String()).Msg("serving metrics")
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			w.Log.Error().Err(err).Msg("metrics server")
		}
	}()
	return nil
}
