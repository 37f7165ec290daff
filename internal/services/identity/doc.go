// Package identity generates the subdomain and correlation ID a session
// registers with.
//
// Both values are cut from one random lowercase alphanumeric string, so the
// correlation ID is always a prefix of the subdomain.
package identity
