package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"interactsh/internal/crypto"
	"interactsh/internal/relay"
	"interactsh/internal/services/identity"
	"interactsh/internal/services/session"
)

// Config holds every user-facing setting. Zero Server means a random
// default server.
type Config struct {
	Server            string        `toml:"server"`
	Token             string        `toml:"token"`
	AuthScheme        string        `toml:"auth_scheme"`
	KeySize           int           `toml:"key_size"`
	Timeout           time.Duration `toml:"timeout"`
	VerifyTLS         bool          `toml:"verify_tls"`
	Proxy             string        `toml:"proxy"`
	DNSOverride       string        `toml:"dns_override"`
	ParseLogs         bool          `toml:"parse_logs"`
	PollInterval      time.Duration `toml:"poll_interval"`
	SubdomainLength   int           `toml:"subdomain_length"`
	CorrelationLength int           `toml:"correlation_length"`
	SessionFile       string        `toml:"session_file"`
	MetricsAddr       string        `toml:"metrics_addr"`

	// Passphrase protects SessionFile. It is never read from the TOML file.
	Passphrase string `toml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		AuthScheme:        string(relay.AuthSimple),
		KeySize:           crypto.DefaultKeyBits,
		Timeout:           relay.DefaultTimeout,
		ParseLogs:         true,
		PollInterval:      session.DefaultPollPeriod,
		SubdomainLength:   identity.DefaultSubdomainLength,
		CorrelationLength: identity.DefaultCorrelationLength,
	}
}

// LoadConfig reads path (skipped when empty), then .env in the working
// directory, then the environment. Later sources win.
func LoadConfig(path string) (Config, error) {
	return load(path, ".env", os.Getenv)
}

func load(path, dotenv string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	dot, err := godotenv.Read(dotenv)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read %s: %w", dotenv, err)
	}
	lookup := func(k string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return dot[k]
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	str("INTERACTSH_SERVER", &c.Server)
	str("INTERACTSH_TOKEN", &c.Token)
	str("INTERACTSH_AUTH_SCHEME", &c.AuthScheme)
	str("INTERACTSH_PROXY", &c.Proxy)
	str("INTERACTSH_DNS_OVERRIDE", &c.DNSOverride)
	str("INTERACTSH_SESSION_FILE", &c.SessionFile)
	str("INTERACTSH_PASSPHRASE", &c.Passphrase)

	if v := getenv("INTERACTSH_KEY_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("INTERACTSH_KEY_SIZE: %w", err)
		}
		c.KeySize = n
	}
	if v := getenv("INTERACTSH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("INTERACTSH_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := getenv("INTERACTSH_VERIFY_TLS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("INTERACTSH_VERIFY_TLS: %w", err)
		}
		c.VerifyTLS = b
	}
	return nil
}

// SessionConfig maps c onto session settings.
func (c Config) SessionConfig() (session.Config, error) {
	scheme, err := relay.ParseAuthScheme(c.AuthScheme)
	if err != nil {
		return session.Config{}, err
	}
	sc := session.DefaultConfig()
	if c.Server != "" {
		sc.Server = c.Server
	}
	sc.Token = c.Token
	sc.AuthScheme = scheme
	sc.KeyBits = c.KeySize
	sc.Transport = relay.TransportOptions{
		Timeout:     c.Timeout,
		VerifyTLS:   c.VerifyTLS,
		Proxy:       c.Proxy,
		DNSOverride: c.DNSOverride,
	}
	sc.ParseLogs = c.ParseLogs
	sc.SubdomainLength = c.SubdomainLength
	sc.CorrelationLength = c.CorrelationLength
	return sc, sc.Validate()
}
