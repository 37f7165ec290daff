package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestResolve(t *testing.T) {
	s := Resolve(Defaults(Runtime), env(nil))
	assert.Equal(t, zerolog.InfoLevel, s.Level)
	assert.True(t, s.Timestamp)

	s = Resolve(Defaults(Runtime), env(map[string]string{
		"INTERACTSH_LOG_LEVEL":     "off",
		"INTERACTSH_LOG_TIMESTAMP": "false",
		"INTERACTSH_LOG_NOCOLOR":   "1",
		"INTERACTSH_LOG_JSON":      "true",
	}))
	assert.Equal(t, Settings{Level: zerolog.Disabled, NoColor: true, JSON: true}, s)

	s = Resolve(Defaults(Test), env(map[string]string{"INTERACTSH_LOG_LEVEL": "bogus", "INTERACTSH_LOG_JSON": "maybe"}))
	assert.Equal(t, Defaults(Test), s)

	s = Resolve(Defaults(Test), env(map[string]string{"INTERACTSH_LOG_LEVEL": "WARNING"}))
	assert.Equal(t, zerolog.WarnLevel, s.Level)
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Settings{Level: zerolog.InfoLevel, JSON: true})
	l.Debug().Msg("hidden")
	l.Info().Str("k", "v").Msg("shown")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, `{"level":"info","k":"v","message":"shown"}`), out)
}

func TestConfigureOnce(t *testing.T) {
	a := ConfigureTests()
	b := ConfigureRuntime()
	assert.Equal(t, a.GetLevel(), b.GetLevel())
}
