package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interactsh/internal/relay"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load("", filepath.Join(t.TempDir(), "missing.env"), func(string) string { return "" })
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadLayering(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "client.toml", `
server = "file.example"
token = "file-token"
key_size = 4096
timeout = "30s"
parse_logs = false
poll_interval = "2s"
session_file = "/tmp/s.enc"
`)
	dotenv := writeFile(t, dir, ".env", "INTERACTSH_TOKEN=dotenv-token\nINTERACTSH_PROXY=socks5://127.0.0.1:9050\n")
	env := map[string]string{
		"INTERACTSH_TOKEN":      "env-token",
		"INTERACTSH_VERIFY_TLS": "true",
		"INTERACTSH_TIMEOUT":    "5s",
	}

	cfg, err := load(path, dotenv, func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, "file.example", cfg.Server)
	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, "socks5://127.0.0.1:9050", cfg.Proxy)
	assert.Equal(t, 4096, cfg.KeySize)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.True(t, cfg.VerifyTLS)
	assert.False(t, cfg.ParseLogs)
	assert.Equal(t, "/tmp/s.enc", cfg.SessionFile)
	assert.Equal(t, 20, cfg.CorrelationLength)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	noEnv := filepath.Join(dir, "none.env")
	_, err := load(filepath.Join(dir, "missing.toml"), noEnv, func(string) string { return "" })
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.toml", "server = [")
	_, err = load(bad, noEnv, func(string) string { return "" })
	assert.Error(t, err)

	_, err = load("", noEnv, func(k string) string {
		if k == "INTERACTSH_KEY_SIZE" {
			return "big"
		}
		return ""
	})
	assert.Error(t, err)
}

func TestSessionConfig(t *testing.T) {
	cfg := Default()
	cfg.Server = "oast.fun"
	cfg.AuthScheme = "bearer"
	cfg.Token = "tok"
	sc, err := cfg.SessionConfig()
	require.NoError(t, err)
	assert.Equal(t, "oast.fun", sc.Server)
	assert.Equal(t, relay.AuthBearer, sc.AuthScheme)
	assert.Equal(t, relay.DefaultTimeout, sc.Transport.Timeout)

	cfg = Default()
	sc, err = cfg.SessionConfig()
	require.NoError(t, err)
	assert.Contains(t, relay.DefaultServers, sc.Server)

	cfg.CorrelationLength = 40
	_, err = cfg.SessionConfig()
	assert.Error(t, err)
}
