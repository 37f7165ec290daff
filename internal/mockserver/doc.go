// Package mockserver is an in-memory interaction server speaking the same
// wire protocol as the public servers. It backs the interactsh-mock binary
// and the client tests.
//
// Routes
//
//	POST /register     store public key, secret and correlation id
//	POST /deregister   drop a registration (secret must match)
//	GET  /poll         drain queued interactions, encrypted for the client
//	*                  any other request whose Host starts with a registered
//	                   correlation id is recorded as an HTTP interaction
//
// Each poll uses a fresh AES-256 key wrapped with RSA-OAEP(SHA-256). Every
// queued interaction is sent as base64(IV || AES-CFB ciphertext). An empty
// queue is returned as "data": null.
//
// All state is held in memory and lost on exit.
package mockserver
