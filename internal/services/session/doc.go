// Package session composes the key pair, identity generator, server channel
// and decryption pipeline behind one synchronized handle.
//
// Locking: Status, Poll and the other readers share a read lock; Register,
// Deregister and ForceDeregister take the write lock for their whole round
// trip. Poll holds its read lock only while capturing the correlation ID and
// secret, then performs the request unlocked, so a concurrent Deregister
// never corrupts an in-flight poll.
//
// LogStream wraps Poll in a cancellable sequence driven by a timer. See
// Stream for its states.
package session
