package types

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// CorrelationID identifies which client mailbox a poll or deregister targets.
type CorrelationID string

// String returns the string form of the correlation identifier.
func (id CorrelationID) String() string { return string(id) }

// Protocol is the discriminant carried in the "protocol" field of an interaction.
type Protocol string

const (
	ProtocolDNS  Protocol = "dns"
	ProtocolFTP  Protocol = "ftp"
	ProtocolHTTP Protocol = "http"
	ProtocolLDAP Protocol = "ldap"
	ProtocolSMB  Protocol = "smb"
	ProtocolSMTP Protocol = "smtp"
)

// String returns the string form of the protocol tag.
func (p Protocol) String() string { return string(p) }
