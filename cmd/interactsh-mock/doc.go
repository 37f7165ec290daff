// Package main runs an in-memory interaction server for local development
// and tests. It speaks the same wire protocol as the public servers.
//
// HTTP API
//
//	POST /register { "public-key", "secret-key", "correlation-id" }
//	    Store a client registration. 401 with a bad token, 409 when the
//	    correlation id is taken, 400 on a malformed body.
//
//	POST /deregister { "correlation-id", "secret-key" }
//	    Drop a registration. 403 when the secret does not match.
//
//	GET /poll?id={correlation-id}&secret={secret-key}
//	    Return {"aes_key", "data"} with every queued interaction encrypted
//	    for the client, and clear the queue.
//
//	Any other request
//	    Recorded as an HTTP interaction when its Host starts with a
//	    registered correlation id.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - A request log records method, path, status and duration.
//   - The default listen address is :8080.
package main
