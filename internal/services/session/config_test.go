package session

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestLoggerDefaultsToGlobal(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	var cfg Config
	l := cfg.logger()
	l.Info().Str("component", "session").Msg("hello")
	assert.Contains(t, buf.String(), `"component":"session"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)

	own := zerolog.Nop()
	cfg.Logger = &own
	l = cfg.logger()
	l.Info().Msg("dropped")
	assert.NotContains(t, buf.String(), "dropped")
}
