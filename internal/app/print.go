package app

import (
	"fmt"
	"strings"
	"time"

	"interactsh/internal/domain"
)

// FormatEntry renders one interaction on a single line followed by the raw
// request, indented.
func FormatEntry(e domain.LogEntry) string {
	switch v := e.(type) {
	case domain.DNSLog:
		qtype := string(v.QType)
		if qtype == "" {
			qtype = "?"
		}
		return header(v, v.FullID, v.RemoteAddress.String()) + " qtype=" + qtype
	case domain.FTPLog:
		return header(v, "", v.RemoteAddress.String()) + body(v.RawRequest)
	case domain.HTTPLog:
		return header(v, v.FullID, v.RemoteAddress.String()) + body(v.RawRequest)
	case domain.LDAPLog:
		return header(v, v.FullID, v.RemoteAddress.String()) + body(v.RawRequest)
	case domain.SMBLog:
		return header(v, "", "") + body(v.RawRequest)
	case domain.SMTPLog:
		return header(v, v.FullID, v.RemoteAddress.String()) + " from=" + v.SMTPFrom + body(v.RawRequest)
	case domain.RawLog:
		return "[raw] " + v.Text
	default:
		return fmt.Sprintf("[unknown] %v", e)
	}
}

func header(p domain.ParsedLog, fullID, remote string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", p.Protocol(), p.Time().Format(time.RFC3339))
	if fullID != "" {
		b.WriteString(" " + fullID)
	}
	if remote != "" {
		b.WriteString(" from " + remote)
	}
	return b.String()
}

func body(raw string) string {
	raw = strings.TrimRight(raw, "\r\n")
	if raw == "" {
		return ""
	}
	return "\n    " + strings.ReplaceAll(strings.ReplaceAll(raw, "\r\n", "\n"), "\n", "\n    ")
}
