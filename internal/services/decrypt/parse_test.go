package decrypt

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"

	"interactsh/internal/domain"
)

func TestClassifyVariants(t *testing.T) {
	ts := `"timestamp":"2024-05-06T07:08:09.123Z"`
	cases := []struct {
		name string
		in   string
		want domain.Protocol
	}{
		{"dns", `{"protocol":"dns","unique-id":"u","full-id":"f","q-type":"AAAA","raw-request":"q","raw-response":"r","remote-address":"::1",` + ts + `}`, domain.ProtocolDNS},
		{"dns without qtype", `{"protocol":"dns","unique-id":"u","full-id":"f","raw-request":"q","raw-response":"r","remote-address":"10.0.0.1",` + ts + `}`, domain.ProtocolDNS},
		{"ftp", `{"protocol":"ftp","raw-request":"USER x","remote-address":"10.0.0.1",` + ts + `}`, domain.ProtocolFTP},
		{"ldap capitalised", `{"protocol":"Ldap","unique-id":"u","full-id":"f","raw-request":"q","raw-response":"r","remote-address":"10.0.0.1",` + ts + `}`, domain.ProtocolLDAP},
		{"smb", `{"protocol":"smb","raw-request":"q",` + ts + `}`, domain.ProtocolSMB},
		{"smtp", `{"protocol":"smtp","unique-id":"u","full-id":"f","raw-request":"DATA","smtp-from":"a@b","remote-address":"10.0.0.1","extra":1,` + ts + `}`, domain.ProtocolSMTP},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entry := Classify(tc.in, true)
			parsed, ok := entry.(domain.ParsedLog)
			if assert.True(t, ok, "got %#v", entry) {
				assert.Equal(t, tc.want, parsed.Protocol())
				assert.Equal(t, 2024, parsed.Time().Year())
			}
		})
	}
}

func TestClassifyDowngrades(t *testing.T) {
	ts := `"timestamp":"2024-01-01T00:00:00Z"`
	cases := map[string]string{
		"unknown protocol":  `{"protocol":"gopher","raw-request":"q",` + ts + `}`,
		"missing protocol":  `{"raw-request":"q",` + ts + `}`,
		"bad timestamp":     `{"protocol":"smb","raw-request":"q","timestamp":"yesterday"}`,
		"missing timestamp": `{"protocol":"smb","raw-request":"q"}`,
		"missing field":     `{"protocol":"ftp","remote-address":"10.0.0.1",` + ts + `}`,
		"bad address":       `{"protocol":"ftp","raw-request":"q","remote-address":"nowhere",` + ts + `}`,
		"bad qtype":         `{"protocol":"dns","unique-id":"u","full-id":"f","q-type":"SRV","raw-request":"q","raw-response":"r","remote-address":"::1",` + ts + `}`,
		"wrong type":        `{"protocol":"smb","raw-request":42,` + ts + `}`,
		"null field":        `{"protocol":"smb","raw-request":null,` + ts + `}`,
		"array":             `[1,2,3]`,
		"json null":         `null`,
		"upper protocol":    `{"protocol":"SMB","raw-request":"q",` + ts + `}`,
		"upper keys":        `{"PROTOCOL":"http","UNIQUE-ID":"abc","Full-Id":"abc123","RAW-REQUEST":"q","Raw-Response":"r","Remote-Address":"::1","TIMESTAMP":"2024-01-01T00:00:00Z"}`,
		"duplicate tag":     `{"protocol":"smb","protocol":"http","unique-id":"u","full-id":"f","raw-request":"q","raw-response":"r","remote-address":"::1",` + ts + `}`,
		"duplicate field":   `{"protocol":"smb","raw-request":"a","raw-request":"b",` + ts + `}`,
		"trailing data":     `{"protocol":"smb","raw-request":"q",` + ts + `} {}`,
	}
	for name, in := range cases {
		assert.Equal(t, domain.RawLog{Text: in}, Classify(in, true), name)
	}
}

func TestClassifyIgnoresUnknownKeys(t *testing.T) {
	in := `{"protocol":"smb","raw-request":"q","Raw-Request":"x","extra":{"nested":[1,2]},"extra":null,"timestamp":"2024-01-01T00:00:00Z"}`
	smb, ok := Classify(in, true).(domain.SMBLog)
	if assert.True(t, ok) {
		assert.Equal(t, "q", smb.RawRequest)
	}
}

func TestClassifyFTPFields(t *testing.T) {
	entry := Classify(`{"protocol":"ftp","raw-request":"USER x","remote-address":"10.0.0.1","timestamp":"2024-01-01T00:00:00Z"}`, true)
	ftp, ok := entry.(domain.FTPLog)
	if assert.True(t, ok) {
		assert.Equal(t, "USER x", ftp.RawRequest)
		assert.Equal(t, netip.MustParseAddr("10.0.0.1"), ftp.RemoteAddress)
	}
}
