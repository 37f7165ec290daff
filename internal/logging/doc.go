// Package logging configures the process-wide zerolog logger.
//
// Configure runs once per process. The runtime profile logs at info level
// to stderr through a console writer with timestamps; the test profile logs
// at debug level without timestamps. Environment variables override either:
//
//	INTERACTSH_LOG_LEVEL      trace|debug|info|warn|error|off
//	INTERACTSH_LOG_TIMESTAMP  true|false
//	INTERACTSH_LOG_NOCOLOR    true|false
//	INTERACTSH_LOG_JSON       true|false (JSON lines instead of console)
package logging
