package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"interactsh/internal/domain"
)

// AuthScheme selects how the token is sent in the Authorization header.
type AuthScheme string

const (
	// AuthSimple sends "Authorization: <token>".
	AuthSimple AuthScheme = "simple"
	// AuthBearer sends "Authorization: Bearer <token>".
	AuthBearer AuthScheme = "bearer"
)

// ParseAuthScheme accepts "simple", "bearer" or "" (simple).
func ParseAuthScheme(s string) (AuthScheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(AuthSimple):
		return AuthSimple, nil
	case string(AuthBearer):
		return AuthBearer, nil
	default:
		return "", fmt.Errorf("unknown auth scheme %q (want simple or bearer)", s)
	}
}

// maxErrorBody bounds how much of a non-2xx body is kept in errors.
const maxErrorBody = 64 << 10

// HTTP is the wire client for one interaction server.
type HTTP struct {
	Base   *url.URL
	HTTP   *http.Client
	Token  string
	Scheme AuthScheme
	Log    zerolog.Logger

	host string
}

// ParseServer accepts a bare host ("oast.pro", https implied) or a URL with
// scheme ("http://127.0.0.1:8080"). It returns the base URL and the bare
// hostname used for interaction FQDNs.
func ParseServer(server string) (*url.URL, string, error) {
	server = strings.TrimSpace(server)
	if server == "" {
		return nil, "", fmt.Errorf("empty server")
	}
	if !strings.Contains(server, "://") {
		server = "https://" + server
	}
	u, err := url.Parse(server)
	if err != nil {
		return nil, "", fmt.Errorf("parse server %q: %w", server, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, "", fmt.Errorf("server %q: unsupported scheme %q", server, u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, "", fmt.Errorf("server %q has no host", server)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery, u.Fragment = "", ""
	return u, u.Hostname(), nil
}

// NewHTTP returns a client for server using hc (http.DefaultClient when nil).
func NewHTTP(server string, hc *http.Client) (*HTTP, error) {
	base, host, err := ParseServer(server)
	if err != nil {
		return nil, err
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTP{Base: base, HTTP: hc, Scheme: AuthSimple, Log: zerolog.Nop(), host: host}, nil
}

var _ domain.RelayClient = (*HTTP)(nil)

// Host returns the bare server hostname.
func (c *HTTP) Host() string { return c.host }

// Register sends POST /register.
func (c *HTTP) Register(ctx context.Context, req domain.RegisterRequest) error {
	return c.postRegistration(ctx, "register", "/register", req)
}

// Deregister sends POST /deregister.
func (c *HTTP) Deregister(ctx context.Context, req domain.DeregisterRequest) error {
	return c.postRegistration(ctx, "deregister", "/deregister", req)
}

// Poll sends GET /poll and decodes the JSON body. It does not decrypt.
func (c *HTTP) Poll(ctx context.Context, creds domain.Credentials) (domain.PollResponse, error) {
	q := url.Values{}
	q.Set("id", string(creds.CorrelationID))
	q.Set("secret", creds.SecretKey)
	u := c.endpoint("/poll")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.PollResponse{}, &domain.PollError{Kind: domain.PollRequestSendFailure, Err: err}
	}
	c.authorize(req)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return domain.PollResponse{}, &domain.PollError{Kind: domain.PollRequestSendFailure, Err: err}
	}
	defer resp.Body.Close()

	c.Log.Debug().
		Str("correlation_id", string(creds.CorrelationID)).
		Int("status", resp.StatusCode).
		Msg("poll")

	if resp.StatusCode/100 != 2 {
		return domain.PollResponse{}, &domain.PollError{
			Kind:   domain.PollErrorStatus,
			Status: resp.StatusCode,
			Body:   readBody(resp.Body),
		}
	}
	var out domain.PollResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.PollResponse{}, &domain.PollError{Kind: domain.PollResponseParseFailed, Err: err}
	}
	return out, nil
}

func (c *HTTP) postRegistration(ctx context.Context, op, path string, in any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return &domain.RegistrationError{Op: op, Kind: domain.RegistrationRequestSendFailure, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path).String(), buf)
	if err != nil {
		return &domain.RegistrationError{Op: op, Kind: domain.RegistrationRequestSendFailure, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &domain.RegistrationError{Op: op, Kind: domain.RegistrationRequestSendFailure, Err: err}
	}
	defer resp.Body.Close()

	c.Log.Debug().Str("op", op).Int("status", resp.StatusCode).Msg("registration call")

	switch {
	case resp.StatusCode/100 == 2:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return &domain.RegistrationError{Op: op, Kind: domain.RegistrationUnauthorized, Status: resp.StatusCode}
	default:
		return &domain.RegistrationError{
			Op:     op,
			Kind:   domain.RegistrationRejected,
			Status: resp.StatusCode,
			Body:   readBody(resp.Body),
		}
	}
}

func (c *HTTP) endpoint(path string) *url.URL {
	u := *c.Base
	u.Path = c.Base.Path + path
	return &u
}

func (c *HTTP) authorize(req *http.Request) {
	if c.Token == "" {
		return
	}
	if c.Scheme == AuthBearer {
		req.Header.Set("Authorization", "Bearer "+c.Token)
		return
	}
	req.Header.Set("Authorization", c.Token)
}

func readBody(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return fmt.Sprintf("<unreadable body: %v>", err)
	}
	return strings.TrimSpace(string(b))
}
