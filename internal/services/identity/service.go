package identity

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"interactsh/internal/domain"
)

const (
	// DefaultSubdomainLength matches the public interaction servers.
	DefaultSubdomainLength = 33
	// DefaultCorrelationLength matches the public interaction servers.
	DefaultCorrelationLength = 20

	alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// ErrInvalidLengths is returned when the requested lengths cannot produce a
// correlation ID that prefixes the subdomain.
var ErrInvalidLengths = errors.New("subdomain length must be >= correlation length > 0")

// Generator draws session identities from Random (crypto/rand when nil).
type Generator struct {
	Random io.Reader
}

// New returns a generator backed by crypto/rand.
func New() *Generator { return &Generator{Random: rand.Reader} }

// ValidateLengths reports whether the lengths satisfy
// subdomainLen >= correlationLen > 0.
func ValidateLengths(subdomainLen, correlationLen int) error {
	if correlationLen <= 0 || subdomainLen < correlationLen {
		return fmt.Errorf("%w (got %d/%d)", ErrInvalidLengths, subdomainLen, correlationLen)
	}
	return nil
}

// Generate returns a fresh identity.
func (g *Generator) Generate(subdomainLen, correlationLen int) (domain.SessionIdentity, error) {
	if err := ValidateLengths(subdomainLen, correlationLen); err != nil {
		return domain.SessionIdentity{}, err
	}
	s, err := g.randomString(max(subdomainLen, correlationLen))
	if err != nil {
		return domain.SessionIdentity{}, err
	}
	return domain.SessionIdentity{
		Subdomain:     s[:subdomainLen],
		CorrelationID: domain.CorrelationID(s[:correlationLen]),
	}, nil
}

func (g *Generator) randomString(n int) (string, error) {
	random := g.Random
	if random == nil {
		random = rand.Reader
	}
	limit := big.NewInt(int64(len(alphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(random, limit)
		if err != nil {
			return "", fmt.Errorf("identity randomness: %w", err)
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}
