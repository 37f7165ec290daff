package relay

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the per-request timeout when none is configured.
const DefaultTimeout = 15 * time.Second

// TransportOptions configure the HTTP client used for all wire calls.
type TransportOptions struct {
	Timeout   time.Duration
	VerifyTLS bool
	// Proxy is an http, https or socks5 URL.
	Proxy string
	// DNSOverride is an IP address dialled instead of resolving the target
	// host. It applies to every dial, the proxy included. The requested port
	// is kept.
	DNSOverride string
}

// NewHTTPClient builds an *http.Client from opts.
func NewHTTPClient(opts TransportOptions) (*http.Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: !opts.VerifyTLS, //nolint:gosec // self-hosted servers often use self-signed certs
		MinVersion:         tls.VersionTLS12,
	}
	tr.Proxy = nil
	if opts.Proxy != "" {
		pu, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, fmt.Errorf("parse proxy: %w", err)
		}
		switch pu.Scheme {
		case "http", "https", "socks5", "socks5h":
		default:
			return nil, fmt.Errorf("proxy %q: unsupported scheme %q", opts.Proxy, pu.Scheme)
		}
		tr.Proxy = http.ProxyURL(pu)
	}
	if opts.DNSOverride != "" {
		ip := net.ParseIP(opts.DNSOverride)
		if ip == nil {
			return nil, fmt.Errorf("dns override %q is not an IP address", opts.DNSOverride)
		}
		dialer := &net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}
		tr.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			_, port, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}
			return dialer.DialContext(ctx, network, net.JoinHostPort(ip.String(), port))
		}
	}
	return &http.Client{Timeout: timeout, Transport: tr}, nil
}
