package domain

import (
	interfaces "interactsh/internal/domain/interfaces"
	types "interactsh/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Fingerprint       = types.Fingerprint
	CorrelationID     = types.CorrelationID
	Protocol          = types.Protocol
	SessionIdentity   = types.SessionIdentity
	RegistrationState = types.RegistrationState
	SessionStatus     = types.SessionStatus
	Credentials       = types.Credentials
	SessionSnapshot   = types.SessionSnapshot
	RegisterRequest   = types.RegisterRequest
	DeregisterRequest = types.DeregisterRequest
	PollResponse      = types.PollResponse
	LogEntry          = types.LogEntry
	ParsedLog         = types.ParsedLog
	RawLog            = types.RawLog
	DNSQType          = types.DNSQType
	DNSLog            = types.DNSLog
	FTPLog            = types.FTPLog
	HTTPLog           = types.HTTPLog
	LDAPLog           = types.LDAPLog
	SMBLog            = types.SMBLog
	SMTPLog           = types.SMTPLog
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	RelayClient  = interfaces.RelayClient
	KeyPair      = interfaces.KeyPair
	Keyring      = interfaces.Keyring
	Metrics      = interfaces.Metrics
	SessionStore = interfaces.SessionStore
)

const (
	Unregistered = types.Unregistered
	Registered   = types.Registered

	ProtocolDNS  = types.ProtocolDNS
	ProtocolFTP  = types.ProtocolFTP
	ProtocolHTTP = types.ProtocolHTTP
	ProtocolLDAP = types.ProtocolLDAP
	ProtocolSMB  = types.ProtocolSMB
	ProtocolSMTP = types.ProtocolSMTP
)
