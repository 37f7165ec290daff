package relay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interactsh/internal/domain"
)

type fakeClient struct {
	registerErr   error
	deregisterErr error
	pollResp      domain.PollResponse
	registered    []domain.RegisterRequest
	deregistered  []domain.DeregisterRequest
	polled        []domain.Credentials
}

func (f *fakeClient) Register(_ context.Context, r domain.RegisterRequest) error {
	f.registered = append(f.registered, r)
	return f.registerErr
}

func (f *fakeClient) Deregister(_ context.Context, r domain.DeregisterRequest) error {
	f.deregistered = append(f.deregistered, r)
	return f.deregisterErr
}

func (f *fakeClient) Poll(_ context.Context, c domain.Credentials) (domain.PollResponse, error) {
	f.polled = append(f.polled, c)
	return f.pollResp, nil
}

func (f *fakeClient) Host() string { return "oast.test" }

var testID = domain.SessionIdentity{Subdomain: "abcdef", CorrelationID: "abc"}

func TestChannelRegister(t *testing.T) {
	fc := &fakeClient{}
	ch := NewChannel(fc, "pk", "secret")
	assert.False(t, ch.Status().IsRegistered())

	fqdn, err := ch.Register(context.Background(), testID)
	require.NoError(t, err)
	assert.Equal(t, "abcdef.oast.test", fqdn)
	assert.Equal(t, domain.RegisterRequest{PublicKey: "pk", SecretKey: "secret", CorrelationID: "abc"}, fc.registered[0])

	other := domain.SessionIdentity{Subdomain: "zzzzzz", CorrelationID: "zzz"}
	_, err = ch.Register(context.Background(), other)
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	assert.Equal(t, testID, ch.Status().Identity)
	assert.Len(t, fc.registered, 1)
}

func TestChannelRegisterFailureKeepsState(t *testing.T) {
	fc := &fakeClient{registerErr: &domain.RegistrationError{Op: "register", Kind: domain.RegistrationUnauthorized}}
	ch := NewChannel(fc, "pk", "secret")
	_, err := ch.Register(context.Background(), testID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.False(t, ch.Status().IsRegistered())
}

func TestChannelDeregister(t *testing.T) {
	fc := &fakeClient{}
	ch := NewChannel(fc, "pk", "secret")
	assert.ErrorIs(t, ch.Deregister(context.Background()), domain.ErrNotRegistered)
	assert.Empty(t, fc.deregistered)

	_, err := ch.Register(context.Background(), testID)
	require.NoError(t, err)

	fc.deregisterErr = errors.New("network down")
	assert.Error(t, ch.Deregister(context.Background()))
	assert.True(t, ch.Status().IsRegistered())

	fc.deregisterErr = nil
	require.NoError(t, ch.Deregister(context.Background()))
	assert.False(t, ch.Status().IsRegistered())
	assert.Equal(t, domain.DeregisterRequest{CorrelationID: "abc", SecretKey: "secret"}, fc.deregistered[1])
}

func TestChannelForceDeregister(t *testing.T) {
	fc := &fakeClient{deregisterErr: errors.New("gone")}
	ch := NewChannel(fc, "pk", "secret")
	ch.Restore(testID)
	ch.ForceDeregister(context.Background())
	assert.False(t, ch.Status().IsRegistered())
	assert.Len(t, fc.deregistered, 1)
}

func TestChannelPoll(t *testing.T) {
	fc := &fakeClient{}
	ch := NewChannel(fc, "pk", "secret")
	_, err := ch.Capture()
	assert.ErrorIs(t, err, domain.ErrNotRegistered)

	ch.Restore(testID)
	creds, err := ch.Capture()
	require.NoError(t, err)
	assert.Equal(t, domain.Credentials{CorrelationID: "abc", SecretKey: "secret"}, creds)

	_, ok, err := ch.Poll(context.Background(), creds)
	require.NoError(t, err)
	assert.False(t, ok)

	fc.pollResp = domain.PollResponse{AESKey: "k", Data: []string{}}
	_, ok, err = ch.Poll(context.Background(), creds)
	require.NoError(t, err)
	assert.False(t, ok)

	fc.pollResp = domain.PollResponse{AESKey: "k", Data: []string{"x"}}
	resp, ok, err := ch.Poll(context.Background(), creds)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"x"}, resp.Data)
}

func TestPickServer(t *testing.T) {
	assert.Equal(t, "oast.pro", PickServer(nil, func(int) int { return 0 }))
	assert.Equal(t, "oast.site", PickServer(DefaultServers, func(int) int { return 2 }))
	assert.Equal(t, "oast.pro", PickServer(DefaultServers, func(n int) int { return n }))
}
