package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"interactsh/internal/crypto"
	"interactsh/internal/domain"
	"interactsh/internal/relay"
	"interactsh/internal/services/decrypt"
	"interactsh/internal/services/identity"
	"interactsh/internal/util/memzero"
)

// Session is one client registration with an interaction server.
type Session struct {
	mu sync.RWMutex

	server      string
	keys        domain.KeyPair
	fingerprint domain.Fingerprint
	channel     *relay.Channel
	ids         *identity.Generator
	pipeline    decrypt.Pipeline
	metrics     domain.Metrics
	clock       clockwork.Clock
	log         zerolog.Logger

	subdomainLen   int
	correlationLen int
	createdAt      time.Time
}

// New validates cfg, generates a key pair and a secret token, and returns an
// Unregistered session.
func New(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	keys, err := cfg.keyring().Generate(cfg.KeyBits)
	if err != nil {
		return nil, err
	}
	s, err := build(cfg, keys, uuid.NewString())
	if err != nil {
		keys.Wipe()
		return nil, err
	}
	return s, nil
}

// Restore rebuilds a Registered session from a snapshot without contacting
// the server. The snapshot server replaces cfg.Server.
func Restore(cfg Config, snap domain.SessionSnapshot) (*Session, error) {
	if snap.Server != "" {
		cfg.Server = snap.Server
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch {
	case snap.SecretKey == "":
		return nil, &BuildError{Field: "secret_key", Err: ErrMissingField}
	case snap.CorrelationID == "":
		return nil, &BuildError{Field: "correlation_id", Err: ErrMissingField}
	case !strings.HasPrefix(snap.Subdomain, string(snap.CorrelationID)):
		return nil, &BuildError{
			Field: "subdomain",
			Err:   fmt.Errorf("correlation id %q is not a prefix of %q", snap.CorrelationID, snap.Subdomain),
		}
	}
	keys, err := cfg.keyring().Import(snap.PrivateKey)
	if err != nil {
		return nil, err
	}
	s, err := build(cfg, keys, snap.SecretKey)
	if err != nil {
		keys.Wipe()
		return nil, err
	}
	s.channel.Restore(domain.SessionIdentity{Subdomain: snap.Subdomain, CorrelationID: snap.CorrelationID})
	if !snap.CreatedAt.IsZero() {
		s.createdAt = snap.CreatedAt
	}
	s.log.Debug().Str("correlation_id", string(snap.CorrelationID)).Msg("session restored")
	return s, nil
}

func build(cfg Config, keys domain.KeyPair, secret string) (*Session, error) {
	pub, err := keys.EncodePublic()
	if err != nil {
		return nil, err
	}
	client, err := cfg.relayClient()
	if err != nil {
		return nil, err
	}
	clock := cfg.clock()
	return &Session{
		server:         cfg.Server,
		keys:           keys,
		fingerprint:    crypto.Fingerprint([]byte(pub)),
		channel:        relay.NewChannel(client, pub, secret),
		ids:            identity.New(),
		pipeline:       decrypt.New(cfg.ParseLogs),
		metrics:        cfg.metrics(),
		clock:          clock,
		log:            cfg.logger().With().Str("component", "session").Logger(),
		subdomainLen:   cfg.SubdomainLength,
		correlationLen: cfg.CorrelationLength,
		createdAt:      clock.Now().UTC(),
	}, nil
}

// Register generates a fresh identity and registers it. It returns the
// interaction FQDN. A registered session returns an error matching
// domain.ErrAlreadyRegistered and keeps its identity.
func (s *Session) Register(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.channel.Status().IsRegistered() {
		err := &domain.RegistrationError{Op: "register", Kind: domain.RegistrationAlreadyRegistered}
		s.metrics.ObserveRegistration("register", err)
		return "", err
	}
	id, err := s.ids.Generate(s.subdomainLen, s.correlationLen)
	if err != nil {
		return "", err
	}
	fqdn, err := s.channel.Register(ctx, id)
	s.metrics.ObserveRegistration("register", err)
	if err != nil {
		s.log.Warn().Err(err).Msg("register failed")
		return "", err
	}
	s.log.Info().Str("fqdn", fqdn).Msg("registered")
	s.log.Debug().Str("correlation_id", string(id.CorrelationID)).Msg("registered")
	return fqdn, nil
}

// Deregister releases the registration. On failure the session stays
// Registered and pollable.
func (s *Session) Deregister(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.channel.Deregister(ctx)
	s.metrics.ObserveRegistration("deregister", err)
	if err != nil {
		s.log.Warn().Err(err).Msg("deregister failed")
		return err
	}
	s.log.Info().Msg("deregistered")
	return nil
}

// ForceDeregister attempts Deregister, ignores its error, and always leaves
// the session Unregistered.
func (s *Session) ForceDeregister(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.channel.Status().IsRegistered() {
		return
	}
	s.channel.ForceDeregister(ctx)
	s.log.Info().Msg("force deregistered")
}

// Poll performs one poll and decrypts the result. No new data returns
// (nil, nil).
func (s *Session) Poll(ctx context.Context) ([]domain.LogEntry, error) {
	s.mu.RLock()
	creds, err := s.channel.Capture()
	keys := s.keys
	s.mu.RUnlock()
	if err != nil {
		s.metrics.ObservePoll(0, err)
		return nil, err
	}

	resp, ok, err := s.channel.Poll(ctx, creds)
	if err != nil || !ok {
		s.metrics.ObservePoll(0, err)
		if err != nil {
			s.log.Debug().Err(err).Msg("poll failed")
		}
		return nil, err
	}
	entries, err := s.pipeline.Decrypt(resp, keys)
	s.metrics.ObservePoll(len(entries), err)
	if err != nil {
		s.log.Warn().Err(err).Msg("poll decryption failed")
		return nil, err
	}
	for _, e := range entries {
		s.metrics.ObserveEntry(protocolLabel(e))
	}
	s.log.Debug().Int("entries", len(entries)).Msg("poll")
	return entries, nil
}

func protocolLabel(e domain.LogEntry) string {
	if p, ok := e.(domain.ParsedLog); ok {
		return p.Protocol().String()
	}
	return "raw"
}

// Status returns the current registration state.
func (s *Session) Status() domain.SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.channel.Status()
}

// IsRegistered reports whether the session currently holds a registration.
func (s *Session) IsRegistered() bool { return s.Status().IsRegistered() }

// InteractionFQDN returns subdomain.server while registered.
func (s *Session) InteractionFQDN() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.channel.Status()
	if !st.IsRegistered() {
		return "", false
	}
	return s.channel.FQDN(st.Identity.Subdomain), true
}

// Fingerprint identifies the session public key.
func (s *Session) Fingerprint() domain.Fingerprint { return s.fingerprint }

// Server returns the configured server.
func (s *Session) Server() string { return s.server }

// Snapshot exports what Restore needs. The session must be registered. The
// returned private key should be wiped by the caller once persisted.
func (s *Session) Snapshot() (domain.SessionSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.channel.Status()
	if !st.IsRegistered() {
		return domain.SessionSnapshot{}, &domain.RegistrationError{Op: "snapshot", Kind: domain.RegistrationNotRegistered}
	}
	der, err := s.keys.Export()
	if err != nil {
		return domain.SessionSnapshot{}, fmt.Errorf("export key: %w", err)
	}
	return domain.SessionSnapshot{
		Server:        s.server,
		PrivateKey:    der,
		SecretKey:     s.channel.Secret(),
		Subdomain:     st.Identity.Subdomain,
		CorrelationID: st.Identity.CorrelationID,
		CreatedAt:     s.createdAt,
	}, nil
}

// Close wipes the key pair. It does not deregister; call Deregister or
// ForceDeregister first when the registration should end.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys.Wipe()
}

// WipeSnapshot zeroes the private key of a snapshot.
func WipeSnapshot(snap *domain.SessionSnapshot) {
	memzero.Zero(snap.PrivateKey)
	snap.PrivateKey = nil
}

// IsTerminal reports whether err means the session can no longer poll.
func IsTerminal(err error) bool { return errors.Is(err, domain.ErrNotRegistered) }
