package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Profile selects the defaults applied before environment overrides.
type Profile int

const (
	Runtime Profile = iota
	Test
)

// Settings is the resolved logger configuration.
type Settings struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	JSON      bool
}

var (
	once   sync.Once
	logger zerolog.Logger
)

// Defaults returns the settings of p before overrides.
func Defaults(p Profile) Settings {
	if p == Test {
		return Settings{Level: zerolog.DebugLevel, Timestamp: false}
	}
	return Settings{Level: zerolog.InfoLevel, Timestamp: true}
}

// Resolve applies environment overrides read through getenv to s.
func Resolve(s Settings, getenv func(string) string) Settings {
	if v := getenv("INTERACTSH_LOG_LEVEL"); v != "" {
		if lvl, ok := parseLevel(v); ok {
			s.Level = lvl
		}
	}
	s.Timestamp = envBool(getenv("INTERACTSH_LOG_TIMESTAMP"), s.Timestamp)
	s.NoColor = envBool(getenv("INTERACTSH_LOG_NOCOLOR"), s.NoColor)
	s.JSON = envBool(getenv("INTERACTSH_LOG_JSON"), s.JSON)
	return s
}

// New builds a logger writing to w.
func New(w io.Writer, s Settings) zerolog.Logger {
	out := w
	if !s.JSON {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: s.NoColor}
	}
	ctx := zerolog.New(out).Level(s.Level).With()
	if s.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Logger()
}

// Configure installs the process logger for p once and returns it. Later
// calls return the logger from the first call.
func Configure(p Profile) zerolog.Logger {
	once.Do(func() {
		s := Resolve(Defaults(p), os.Getenv)
		zerolog.SetGlobalLevel(s.Level)
		logger = New(os.Stderr, s)
		log.Logger = logger
	})
	return logger
}

// ConfigureRuntime is Configure(Runtime).
func ConfigureRuntime() zerolog.Logger { return Configure(Runtime) }

// ConfigureTests is Configure(Test).
func ConfigureTests() zerolog.Logger { return Configure(Test) }

func parseLevel(v string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "off", "disabled", "none":
		return zerolog.Disabled, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(v)))
	if err != nil || lvl == zerolog.NoLevel {
		return 0, false
	}
	return lvl, true
}

func envBool(v string, def bool) bool {
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}
