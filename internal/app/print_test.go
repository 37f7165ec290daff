package app

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"interactsh/internal/domain"
)

func TestFormatEntry(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := FormatEntry(domain.HTTPLog{
		FullID:        "abc123",
		RawRequest:    "GET / HTTP/1.1\r\nHost: x\r\n\r\n",
		RemoteAddress: netip.MustParseAddr("203.0.113.5"),
		Timestamp:     ts,
	})
	assert.Equal(t, "[http] 2024-01-01T00:00:00Z abc123 from 203.0.113.5\n    GET / HTTP/1.1\n    Host: x", got)

	assert.Equal(t, "[dns] 2024-01-01T00:00:00Z abc from ::1 qtype=?",
		FormatEntry(domain.DNSLog{FullID: "abc", RemoteAddress: netip.MustParseAddr("::1"), Timestamp: ts}))
	assert.Equal(t, "[raw] text", FormatEntry(domain.RawLog{Text: "text"}))
}
