// Package testlog bootstraps logging for tests.
package testlog

import (
	"testing"

	"github.com/rs/zerolog"

	"interactsh/internal/logging"
)

// Start configures test logging and returns a logger tagged with the test
// name.
func Start(t *testing.T) zerolog.Logger {
	t.Helper()
	l := logging.ConfigureTests().With().Str("test", t.Name()).Logger()
	l.Info().Msg("start")
	return l
}
