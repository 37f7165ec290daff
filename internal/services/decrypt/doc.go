// Package decrypt turns a poll response into log entries.
//
// Steps, in order:
//
//  1. A response without payloads yields no entries and does no crypto work.
//  2. aes_key is base64 decoded and unwrapped with the session key pair.
//  3. Each payload is base64 decoded and AES-CFB decrypted (16-byte IV prefix).
//  4. The plaintext is read as UTF-8, replacing invalid sequences, and, when
//     parsing is on, classified into a protocol-specific entry.
//
// Steps 2 and 3 fail the whole poll with a *domain.PollError. Step 4 never
// fails: anything that does not parse cleanly becomes a domain.RawLog.
package decrypt
