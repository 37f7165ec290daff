package types

import (
	"net/netip"
	"time"
)

// LogEntry is one decrypted interaction handed to the caller. It is either a
// RawLog or one of the parsed variants (DNSLog, FTPLog, HTTPLog, LDAPLog,
// SMBLog, SMTPLog).
type LogEntry interface {
	isLogEntry()
}

// ParsedLog is a LogEntry whose protocol-specific fields were all present
// and well typed.
type ParsedLog interface {
	LogEntry
	Protocol() Protocol
	Time() time.Time
}

// RawLog carries the decrypted payload text verbatim.
type RawLog struct {
	Text string
}

// DNSQType is the question type of a DNS interaction.
type DNSQType string

const (
	DNSQTypeA     DNSQType = "A"
	DNSQTypeNS    DNSQType = "NS"
	DNSQTypeCNAME DNSQType = "CNAME"
	DNSQTypeSOA   DNSQType = "SOA"
	DNSQTypePTR   DNSQType = "PTR"
	DNSQTypeMX    DNSQType = "MX"
	DNSQTypeTXT   DNSQType = "TXT"
	DNSQTypeAAAA  DNSQType = "AAAA"
)

// Valid reports whether q is one of the known question types.
func (q DNSQType) Valid() bool {
	switch q {
	case DNSQTypeA, DNSQTypeNS, DNSQTypeCNAME, DNSQTypeSOA,
		DNSQTypePTR, DNSQTypeMX, DNSQTypeTXT, DNSQTypeAAAA:
		return true
	}
	return false
}

// DNSLog is a DNS query against the interaction domain. QType is empty when
// the server did not report one.
type DNSLog struct {
	UniqueID      string
	FullID        string
	QType         DNSQType
	RawRequest    string
	RawResponse   string
	RemoteAddress netip.Addr
	Timestamp     time.Time
}

// FTPLog is an FTP interaction.
type FTPLog struct {
	RemoteAddress netip.Addr
	RawRequest    string
	Timestamp     time.Time
}

// HTTPLog is an HTTP(S) request against the interaction domain.
type HTTPLog struct {
	UniqueID      string
	FullID        string
	RawRequest    string
	RawResponse   string
	RemoteAddress netip.Addr
	Timestamp     time.Time
}

// LDAPLog is an LDAP interaction.
type LDAPLog struct {
	UniqueID      string
	FullID        string
	RawRequest    string
	RawResponse   string
	RemoteAddress netip.Addr
	Timestamp     time.Time
}

// SMBLog is an SMB interaction. The server reports no remote address for it.
type SMBLog struct {
	RawRequest string
	Timestamp  time.Time
}

// SMTPLog is a mail delivered to the interaction domain.
type SMTPLog struct {
	UniqueID      string
	FullID        string
	RawRequest    string
	SMTPFrom      string
	RemoteAddress netip.Addr
	Timestamp     time.Time
}

func (RawLog) isLogEntry()  {}
func (DNSLog) isLogEntry()  {}
func (FTPLog) isLogEntry()  {}
func (HTTPLog) isLogEntry() {}
func (LDAPLog) isLogEntry() {}
func (SMBLog) isLogEntry()  {}
func (SMTPLog) isLogEntry() {}

func (DNSLog) Protocol() Protocol  { return ProtocolDNS }
func (FTPLog) Protocol() Protocol  { return ProtocolFTP }
func (HTTPLog) Protocol() Protocol { return ProtocolHTTP }
func (LDAPLog) Protocol() Protocol { return ProtocolLDAP }
func (SMBLog) Protocol() Protocol  { return ProtocolSMB }
func (SMTPLog) Protocol() Protocol { return ProtocolSMTP }

func (l DNSLog) Time() time.Time  { return l.Timestamp }
func (l FTPLog) Time() time.Time  { return l.Timestamp }
func (l HTTPLog) Time() time.Time { return l.Timestamp }
func (l LDAPLog) Time() time.Time { return l.Timestamp }
func (l SMBLog) Time() time.Time  { return l.Timestamp }
func (l SMTPLog) Time() time.Time { return l.Timestamp }
