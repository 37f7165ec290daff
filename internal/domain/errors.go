package domain

import (
	"errors"
	"fmt"
)

// Sentinels matched by errors.Is against the typed errors below.
var (
	ErrKeyGenFailed    = errors.New("key generation failed")
	ErrKeyEncodeFailed = errors.New("public key encoding failed")
	ErrKeyDecrypt      = errors.New("asymmetric decryption failed")
	ErrKeyImportFailed = errors.New("private key import failed")

	ErrRequestSend         = errors.New("failed to send the request to the server")
	ErrUnauthorized        = errors.New("server returned an unauthorized status code")
	ErrRegistrationFailure = errors.New("server rejected the registration request")
	ErrAlreadyRegistered   = errors.New("already registered")
	ErrNotRegistered       = errors.New("not currently registered")

	ErrPollStatus    = errors.New("server returned an error status for poll")
	ErrPollResponse  = errors.New("poll response is not valid JSON")
	ErrAESKeyBase64  = errors.New("base64 decoding of AES key failed")
	ErrAESKeyDecrypt = errors.New("failed to decrypt the AES key")
	ErrDataBase64    = errors.New("base64 decoding of log data failed")
	ErrDataDecrypt   = errors.New("failed to decrypt the received log data")
)

// KeyErrorKind classifies a KeyError.
type KeyErrorKind int

const (
	KeyGenFailed KeyErrorKind = iota
	KeyEncodeFailed
	KeyDecryptFailed
	KeyImportFailed
)

var keyKindSentinels = map[KeyErrorKind]error{
	KeyGenFailed:     ErrKeyGenFailed,
	KeyEncodeFailed:  ErrKeyEncodeFailed,
	KeyDecryptFailed: ErrKeyDecrypt,
	KeyImportFailed:  ErrKeyImportFailed,
}

// KeyError is returned by key generation, encoding, import and decryption.
type KeyError struct {
	Kind KeyErrorKind
	Err  error
}

func (e *KeyError) Error() string {
	msg := keyKindSentinels[e.Kind].Error()
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *KeyError) Unwrap() error { return e.Err }

func (e *KeyError) Is(target error) bool { return keyKindSentinels[e.Kind] == target }

// RegistrationErrorKind classifies a RegistrationError.
type RegistrationErrorKind int

const (
	RegistrationRequestSendFailure RegistrationErrorKind = iota
	RegistrationUnauthorized
	RegistrationRejected
	RegistrationAlreadyRegistered
	RegistrationNotRegistered
)

var registrationKindSentinels = map[RegistrationErrorKind]error{
	RegistrationRequestSendFailure: ErrRequestSend,
	RegistrationUnauthorized:       ErrUnauthorized,
	RegistrationRejected:           ErrRegistrationFailure,
	RegistrationAlreadyRegistered:  ErrAlreadyRegistered,
	RegistrationNotRegistered:      ErrNotRegistered,
}

// RegistrationError is returned by register and deregister. Status and Body
// are set for RegistrationRejected.
type RegistrationError struct {
	Op     string // "register" or "deregister"
	Kind   RegistrationErrorKind
	Status int
	Body   string
	Err    error
}

func (e *RegistrationError) Error() string {
	var msg string
	switch e.Kind {
	case RegistrationRejected:
		msg = fmt.Sprintf("%s failed - %d: %s", e.Op, e.Status, e.Body)
	default:
		msg = e.Op + ": " + registrationKindSentinels[e.Kind].Error()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *RegistrationError) Unwrap() error { return e.Err }

func (e *RegistrationError) Is(target error) bool {
	return registrationKindSentinels[e.Kind] == target
}

// PollErrorKind classifies a PollError.
type PollErrorKind int

const (
	PollRequestSendFailure PollErrorKind = iota
	PollErrorStatus
	PollResponseParseFailed
	PollNotRegistered
	PollAESKeyBase64Failed
	PollAESKeyDecryptFailed
	PollDataBase64Failed
	PollDataDecryptFailed
)

var pollKindSentinels = map[PollErrorKind]error{
	PollRequestSendFailure:  ErrRequestSend,
	PollErrorStatus:         ErrPollStatus,
	PollResponseParseFailed: ErrPollResponse,
	PollNotRegistered:       ErrNotRegistered,
	PollAESKeyBase64Failed:  ErrAESKeyBase64,
	PollAESKeyDecryptFailed: ErrAESKeyDecrypt,
	PollDataBase64Failed:    ErrDataBase64,
	PollDataDecryptFailed:   ErrDataDecrypt,
}

// PollError is returned by poll and by the decryption pipeline. Status and
// Body are set for PollErrorStatus; Index is the payload position for the
// data failures.
type PollError struct {
	Kind   PollErrorKind
	Status int
	Body   string
	Index  int
	Err    error
}

func (e *PollError) Error() string {
	var msg string
	switch e.Kind {
	case PollErrorStatus:
		msg = fmt.Sprintf("poll failed - %d: %s", e.Status, e.Body)
	case PollDataBase64Failed, PollDataDecryptFailed:
		msg = fmt.Sprintf("%s (payload %d)", pollKindSentinels[e.Kind], e.Index)
	default:
		msg = pollKindSentinels[e.Kind].Error()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *PollError) Unwrap() error { return e.Err }

func (e *PollError) Is(target error) bool { return pollKindSentinels[e.Kind] == target }
