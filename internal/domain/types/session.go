package types

import "time"

// SessionIdentity is the subdomain/correlation pair of one registration.
// CorrelationID is always a prefix of Subdomain.
type SessionIdentity struct {
	Subdomain     string        `json:"subdomain"`
	CorrelationID CorrelationID `json:"correlation_id"`
}

// RegistrationState is the discriminant of SessionStatus.
type RegistrationState int

const (
	Unregistered RegistrationState = iota
	Registered
)

// String returns a lowercase name for logs.
func (s RegistrationState) String() string {
	switch s {
	case Registered:
		return "registered"
	default:
		return "unregistered"
	}
}

// SessionStatus is either Unregistered, or Registered with the identity the
// server accepted.
type SessionStatus struct {
	State    RegistrationState
	Identity SessionIdentity // zero unless State == Registered
}

// IsRegistered reports whether the session currently holds a registration.
func (s SessionStatus) IsRegistered() bool { return s.State == Registered }

// Credentials are the values a poll or deregister sends to the server.
// They are captured from the session status at call time.
type Credentials struct {
	CorrelationID CorrelationID
	SecretKey     string
}

// SessionSnapshot is everything needed to resume a registered session
// without registering again.
type SessionSnapshot struct {
	Server        string        `json:"server"`
	PrivateKey    []byte        `json:"private_key"` // PKCS#1 DER
	SecretKey     string        `json:"secret_key"`
	Subdomain     string        `json:"subdomain"`
	CorrelationID CorrelationID `json:"correlation_id"`
	CreatedAt     time.Time     `json:"created_at"`
}
