package relay

import (
	"context"

	"interactsh/internal/domain"
)

// Channel is the register/poll/deregister state machine for one session.
// The zero state is Unregistered. Channel does no locking.
type Channel struct {
	client    domain.RelayClient
	publicKey string
	secret    string
	status    domain.SessionStatus
}

// NewChannel returns an Unregistered channel that registers publicKey with
// secret on client.
func NewChannel(client domain.RelayClient, publicKey, secret string) *Channel {
	return &Channel{client: client, publicKey: publicKey, secret: secret}
}

// Status returns the current state.
func (c *Channel) Status() domain.SessionStatus { return c.status }

// Secret returns the secret token sent with every call.
func (c *Channel) Secret() string { return c.secret }

// FQDN joins a subdomain with the server host.
func (c *Channel) FQDN(subdomain string) string { return subdomain + "." + c.client.Host() }

// Register sends the registration for id and moves to Registered on success.
// It returns the interaction FQDN. On any error the state is unchanged.
func (c *Channel) Register(ctx context.Context, id domain.SessionIdentity) (string, error) {
	if c.status.IsRegistered() {
		return "", &domain.RegistrationError{Op: "register", Kind: domain.RegistrationAlreadyRegistered}
	}
	err := c.client.Register(ctx, domain.RegisterRequest{
		PublicKey:     c.publicKey,
		SecretKey:     c.secret,
		CorrelationID: id.CorrelationID,
	})
	if err != nil {
		return "", err
	}
	c.status = domain.SessionStatus{State: domain.Registered, Identity: id}
	return c.FQDN(id.Subdomain), nil
}

// Restore marks the channel Registered for id without a round trip. It is
// used when resuming a saved session.
func (c *Channel) Restore(id domain.SessionIdentity) {
	c.status = domain.SessionStatus{State: domain.Registered, Identity: id}
}

// Deregister sends the deregistration and moves to Unregistered on success.
// On error the channel stays Registered and pollable.
func (c *Channel) Deregister(ctx context.Context) error {
	if !c.status.IsRegistered() {
		return &domain.RegistrationError{Op: "deregister", Kind: domain.RegistrationNotRegistered}
	}
	err := c.client.Deregister(ctx, domain.DeregisterRequest{
		CorrelationID: c.status.Identity.CorrelationID,
		SecretKey:     c.secret,
	})
	if err != nil {
		return err
	}
	c.status = domain.SessionStatus{State: domain.Unregistered}
	return nil
}

// ForceDeregister tries Deregister, drops its error, and always ends
// Unregistered.
func (c *Channel) ForceDeregister(ctx context.Context) {
	_ = c.Deregister(ctx)
	c.status = domain.SessionStatus{State: domain.Unregistered}
}

// Capture returns the credentials a poll should use right now.
func (c *Channel) Capture() (domain.Credentials, error) {
	if !c.status.IsRegistered() {
		return domain.Credentials{}, &domain.PollError{Kind: domain.PollNotRegistered}
	}
	return domain.Credentials{
		CorrelationID: c.status.Identity.CorrelationID,
		SecretKey:     c.secret,
	}, nil
}

// Poll performs one poll with previously captured credentials. ok is false
// when the server returned no payloads. Poll reads no channel state, so it
// may run without the session lock held.
func (c *Channel) Poll(ctx context.Context, creds domain.Credentials) (resp domain.PollResponse, ok bool, err error) {
	resp, err = c.client.Poll(ctx, creds)
	if err != nil {
		return domain.PollResponse{}, false, err
	}
	if resp.Empty() {
		return domain.PollResponse{}, false, nil
	}
	return resp, true, nil
}
