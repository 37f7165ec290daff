// Package relay talks to an interaction server.
//
// HTTP implements domain.RelayClient for the three wire calls:
//
//	POST {server}/register    {"public-key", "secret-key", "correlation-id"}
//	POST {server}/deregister  {"correlation-id", "secret-key"}
//	GET  {server}/poll?id={correlation-id}&secret={secret-key}
//
// Channel layers the Unregistered/Registered state machine on top of a
// RelayClient. It is not safe for concurrent use on its own; the session
// package guards it with a read/write lock.
//
// Every call is one round trip. Nothing is retried or cached, and failed
// register/deregister calls leave the channel state untouched, so callers can
// always retry.
//
// NewHTTPClient builds the underlying *http.Client from TransportOptions
// (timeout, TLS verification, proxy, DNS override). DefaultServers and
// PickServer choose a public server when none is configured.
package relay
