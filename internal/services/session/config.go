package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"interactsh/internal/crypto"
	"interactsh/internal/domain"
	"interactsh/internal/relay"
	"interactsh/internal/services/identity"
)

// ErrMissingField is matched by a BuildError for an unset required field.
var ErrMissingField = errors.New("missing required field")

// BuildError reports a Config that cannot produce a session.
type BuildError struct {
	Field string
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("session config: %s: %v", e.Field, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// Config describes a session. Start from DefaultConfig.
type Config struct {
	// Server is a bare host or an http(s) URL.
	Server     string
	Token      string
	AuthScheme relay.AuthScheme
	KeyBits    int
	Transport  relay.TransportOptions
	// ParseLogs turns on structured parsing of interactions.
	ParseLogs         bool
	SubdomainLength   int
	CorrelationLength int

	// Optional collaborators. Nil values get defaults in New.
	Keyring    domain.Keyring
	HTTPClient *http.Client
	Relay      domain.RelayClient
	Metrics    domain.Metrics
	Clock      clockwork.Clock
	Logger     *zerolog.Logger
}

// DefaultConfig picks a random public server and the settings the public
// servers expect.
func DefaultConfig() Config {
	return Config{
		Server:            relay.PickServer(relay.DefaultServers, rand.IntN),
		AuthScheme:        relay.AuthSimple,
		KeyBits:           crypto.DefaultKeyBits,
		Transport:         relay.TransportOptions{Timeout: relay.DefaultTimeout},
		ParseLogs:         true,
		SubdomainLength:   identity.DefaultSubdomainLength,
		CorrelationLength: identity.DefaultCorrelationLength,
	}
}

// Validate checks the fields New needs.
func (c Config) Validate() error {
	if c.Server == "" && c.Relay == nil {
		return &BuildError{Field: "server", Err: ErrMissingField}
	}
	if c.Relay == nil {
		if _, _, err := relay.ParseServer(c.Server); err != nil {
			return &BuildError{Field: "server", Err: err}
		}
	}
	if c.KeyBits == 0 {
		return &BuildError{Field: "key_bits", Err: ErrMissingField}
	}
	if c.KeyBits < crypto.MinKeyBits || c.KeyBits > crypto.MaxKeyBits {
		return &BuildError{
			Field: "key_bits",
			Err:   fmt.Errorf("%d outside [%d, %d]", c.KeyBits, crypto.MinKeyBits, crypto.MaxKeyBits),
		}
	}
	if err := identity.ValidateLengths(c.SubdomainLength, c.CorrelationLength); err != nil {
		return &BuildError{Field: "correlation_length", Err: err}
	}
	if _, err := relay.ParseAuthScheme(string(c.AuthScheme)); err != nil {
		return &BuildError{Field: "auth_scheme", Err: err}
	}
	if c.Transport.Timeout < 0 {
		return &BuildError{Field: "timeout", Err: fmt.Errorf("negative timeout %s", c.Transport.Timeout)}
	}
	return nil
}

func (c Config) relayClient() (domain.RelayClient, error) {
	if c.Relay != nil {
		return c.Relay, nil
	}
	hc := c.HTTPClient
	if hc == nil {
		var err error
		if hc, err = relay.NewHTTPClient(c.Transport); err != nil {
			return nil, &BuildError{Field: "transport", Err: err}
		}
	}
	client, err := relay.NewHTTP(c.Server, hc)
	if err != nil {
		return nil, &BuildError{Field: "server", Err: err}
	}
	scheme, _ := relay.ParseAuthScheme(string(c.AuthScheme))
	client.Token = c.Token
	client.Scheme = scheme
	client.Log = c.logger().With().Str("component", "relay").Logger()
	return client, nil
}

func (c Config) logger() zerolog.Logger {
	if c.Logger != nil {
		return *c.Logger
	}
	return log.Logger
}

func (c Config) clock() clockwork.Clock {
	if c.Clock != nil {
		return c.Clock
	}
	return clockwork.NewRealClock()
}

func (c Config) keyring() domain.Keyring {
	if c.Keyring != nil {
		return c.Keyring
	}
	return crypto.NewKeyring()
}

func (c Config) metrics() domain.Metrics {
	if c.Metrics != nil {
		return c.Metrics
	}
	return nopMetrics{}
}

type nopMetrics struct{}

func (nopMetrics) ObserveRegistration(string, error) {}
func (nopMetrics) ObservePoll(int, error)            {}
func (nopMetrics) ObserveEntry(string)               {}
