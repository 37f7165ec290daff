package decrypt

import (
	"encoding/json"
	"io"
	"net/netip"
	"strings"
	"time"

	"interactsh/internal/domain"
)

// wireLog mirrors the server's interaction JSON. Pointers distinguish a
// missing field from an empty one.
type wireLog struct {
	Protocol      *string
	UniqueID      *string
	FullID        *string
	QType         *string
	RawRequest    *string
	RawResponse   *string
	SMTPFrom      *string
	RemoteAddress *string
	Timestamp     *string
}

// fields maps the exact wire keys onto wireLog. Keys are case-sensitive.
func (w *wireLog) fields() map[string]**string {
	return map[string]**string{
		"protocol":       &w.Protocol,
		"unique-id":      &w.UniqueID,
		"full-id":        &w.FullID,
		"q-type":         &w.QType,
		"raw-request":    &w.RawRequest,
		"raw-response":   &w.RawResponse,
		"smtp-from":      &w.SMTPFrom,
		"remote-address": &w.RemoteAddress,
		"timestamp":      &w.Timestamp,
	}
}

// decodeWireLog reads a single JSON object. Known keys must appear at most
// once and hold a string or null; unknown keys are skipped.
func decodeWireLog(text string) (wireLog, bool) {
	var w wireLog
	dec := json.NewDecoder(strings.NewReader(text))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return w, false
	}
	known := w.fields()
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return w, false
		}
		key, ok := tok.(string)
		if !ok {
			return w, false
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return w, false
		}
		dst, ok := known[key]
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			return w, false
		}
		seen[key] = struct{}{}
		if err := json.Unmarshal(raw, dst); err != nil {
			return w, false
		}
	}
	if tok, err := dec.Token(); err != nil || tok != json.Delim('}') {
		return w, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return w, false
	}
	return w, true
}

var protocolTags = map[string]domain.Protocol{
	"dns": domain.ProtocolDNS, "Dns": domain.ProtocolDNS,
	"ftp": domain.ProtocolFTP, "Ftp": domain.ProtocolFTP,
	"http": domain.ProtocolHTTP, "Http": domain.ProtocolHTTP,
	"ldap": domain.ProtocolLDAP, "Ldap": domain.ProtocolLDAP,
	"smb": domain.ProtocolSMB, "Smb": domain.ProtocolSMB,
	"smtp": domain.ProtocolSMTP, "Smtp": domain.ProtocolSMTP,
}

// Classify returns a parsed entry for text when parse is set and every
// required field is present and well typed, and a RawLog otherwise.
func Classify(text string, parse bool) domain.LogEntry {
	if !parse {
		return domain.RawLog{Text: text}
	}
	if entry, ok := parseLog(text); ok {
		return entry
	}
	return domain.RawLog{Text: text}
}

func parseLog(text string) (domain.LogEntry, bool) {
	w, ok := decodeWireLog(text)
	if !ok || w.Protocol == nil {
		return nil, false
	}
	proto, ok := protocolTags[*w.Protocol]
	if !ok {
		return nil, false
	}
	ts, ok := timestamp(w.Timestamp)
	if !ok {
		return nil, false
	}

	switch proto {
	case domain.ProtocolDNS:
		qtype := domain.DNSQType("")
		if w.QType != nil {
			qtype = domain.DNSQType(*w.QType)
			if !qtype.Valid() {
				return nil, false
			}
		}
		addr, ok := address(w.RemoteAddress)
		if !present(w.UniqueID, w.FullID, w.RawRequest, w.RawResponse) || !ok {
			return nil, false
		}
		return domain.DNSLog{
			UniqueID:      *w.UniqueID,
			FullID:        *w.FullID,
			QType:         qtype,
			RawRequest:    *w.RawRequest,
			RawResponse:   *w.RawResponse,
			RemoteAddress: addr,
			Timestamp:     ts,
		}, true

	case domain.ProtocolFTP:
		addr, ok := address(w.RemoteAddress)
		if !present(w.RawRequest) || !ok {
			return nil, false
		}
		return domain.FTPLog{RemoteAddress: addr, RawRequest: *w.RawRequest, Timestamp: ts}, true

	case domain.ProtocolHTTP, domain.ProtocolLDAP:
		addr, ok := address(w.RemoteAddress)
		if !present(w.UniqueID, w.FullID, w.RawRequest, w.RawResponse) || !ok {
			return nil, false
		}
		if proto == domain.ProtocolLDAP {
			return domain.LDAPLog{
				UniqueID:      *w.UniqueID,
				FullID:        *w.FullID,
				RawRequest:    *w.RawRequest,
				RawResponse:   *w.RawResponse,
				RemoteAddress: addr,
				Timestamp:     ts,
			}, true
		}
		return domain.HTTPLog{
			UniqueID:      *w.UniqueID,
			FullID:        *w.FullID,
			RawRequest:    *w.RawRequest,
			RawResponse:   *w.RawResponse,
			RemoteAddress: addr,
			Timestamp:     ts,
		}, true

	case domain.ProtocolSMB:
		if !present(w.RawRequest) {
			return nil, false
		}
		return domain.SMBLog{RawRequest: *w.RawRequest, Timestamp: ts}, true

	case domain.ProtocolSMTP:
		addr, ok := address(w.RemoteAddress)
		if !present(w.UniqueID, w.FullID, w.RawRequest, w.SMTPFrom) || !ok {
			return nil, false
		}
		return domain.SMTPLog{
			UniqueID:      *w.UniqueID,
			FullID:        *w.FullID,
			RawRequest:    *w.RawRequest,
			SMTPFrom:      *w.SMTPFrom,
			RemoteAddress: addr,
			Timestamp:     ts,
		}, true
	}
	return nil, false
}

func present(fields ...*string) bool {
	for _, f := range fields {
		if f == nil {
			return false
		}
	}
	return true
}

func address(s *string) (netip.Addr, bool) {
	if s == nil {
		return netip.Addr{}, false
	}
	addr, err := netip.ParseAddr(*s)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr, true
}

func timestamp(s *string) (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
