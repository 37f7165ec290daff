// Package crypto exposes the primitives the interaction client needs.
//
// Contents
//
//   - RSA key ring: generation, public key encoding (base64 of PEM), import
//     and export of the private half, RSA-OAEP(SHA-256) unwrap (RSAKeyring,
//     RSAKeyPair)
//   - AES-CFB payload decryption with a 16-byte IV prefix (DecryptCFB) and
//     the matching encryption used by the mock server and tests (EncryptCFB)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//   - Standard base64 helpers (B64, FromB64)
//
// # Backends
//
// The session depends only on domain.Keyring. NewKeyring returns the single
// backend compiled into this module, built on the standard library crypto/rsa.
//
// # Notes
//
// Wipe on a key pair zeroes the private exponent, primes and CRT values.
// This is best effort: copies made by the runtime or earlier arithmetic are
// out of reach.
package crypto
