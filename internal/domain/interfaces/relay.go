package interfaces

import (
	"context"

	domaintypes "interactsh/internal/domain/types"
)

// RelayClient is how we talk to the interaction server. Implementations are
// stateless: every call is exactly one round trip and nothing is retried.
type RelayClient interface {
	Register(ctx context.Context, request domaintypes.RegisterRequest) error
	Deregister(ctx context.Context, request domaintypes.DeregisterRequest) error
	Poll(ctx context.Context, credentials domaintypes.Credentials) (domaintypes.PollResponse, error)

	// Host is the bare server hostname used to build interaction FQDNs.
	Host() string
}
