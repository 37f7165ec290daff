// Package store persists a registered session between CLI runs.
//
// SessionFileStore implements domain.SessionStore with one file holding the
// session snapshot (server, private key, secret token, subdomain and
// correlation id). The file is a versioned JSON envelope: an scrypt-derived
// key seals the snapshot with ChaCha20-Poly1305. Files are written atomically
// with mode 0600.
package store
