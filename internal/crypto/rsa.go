package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"sync"

	"interactsh/internal/domain"
	"interactsh/internal/util/memzero"
)

const (
	// MinKeyBits is the smallest modulus the key ring will generate.
	MinKeyBits = 1024
	// MaxKeyBits bounds generation time; larger sizes are rejected.
	MaxKeyBits = 16384
	// DefaultKeyBits matches what the public interaction servers expect.
	DefaultKeyBits = 2048
)

var errWiped = errors.New("key pair has been wiped")

// RSAKeyring generates RSA key pairs using Random (crypto/rand when nil).
type RSAKeyring struct {
	Random io.Reader
}

// NewKeyring returns the key ring backend compiled into this module.
func NewKeyring() domain.Keyring { return RSAKeyring{Random: rand.Reader} }

var _ domain.Keyring = RSAKeyring{}

// Generate creates a new RSA key pair of the given modulus size.
func (k RSAKeyring) Generate(bits int) (domain.KeyPair, error) {
	if bits < MinKeyBits || bits > MaxKeyBits {
		return nil, &domain.KeyError{
			Kind: domain.KeyGenFailed,
			Err:  fmt.Errorf("key size %d outside [%d, %d]", bits, MinKeyBits, MaxKeyBits),
		}
	}
	random := k.Random
	if random == nil {
		random = rand.Reader
	}
	priv, err := rsa.GenerateKey(random, bits)
	if err != nil {
		return nil, &domain.KeyError{Kind: domain.KeyGenFailed, Err: err}
	}
	return &RSAKeyPair{priv: priv, bits: bits}, nil
}

// Import parses a PKCS#1 DER private key as produced by RSAKeyPair.Export.
func (k RSAKeyring) Import(der []byte) (domain.KeyPair, error) {
	priv, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, &domain.KeyError{Kind: domain.KeyImportFailed, Err: err}
	}
	return &RSAKeyPair{priv: priv, bits: priv.N.BitLen()}, nil
}

// RSAKeyPair is an RSA private key plus its configured size.
type RSAKeyPair struct {
	mu   sync.RWMutex
	priv *rsa.PrivateKey
	bits int
}

var _ domain.KeyPair = (*RSAKeyPair)(nil)

// Bits returns the modulus size.
func (p *RSAKeyPair) Bits() int { return p.bits }

// PublicKey returns the public half, or nil after Wipe.
func (p *RSAKeyPair) PublicKey() *rsa.PublicKey {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.priv == nil {
		return nil
	}
	pub := p.priv.PublicKey
	return &pub
}

// EncodePublic returns base64(PEM("PUBLIC KEY", PKIX DER)).
func (p *RSAKeyPair) EncodePublic() (string, error) {
	pub := p.PublicKey()
	if pub == nil {
		return "", &domain.KeyError{Kind: domain.KeyEncodeFailed, Err: errWiped}
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", &domain.KeyError{Kind: domain.KeyEncodeFailed, Err: err}
	}
	block := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return B64(block), nil
}

// Decrypt unwraps an RSA-OAEP ciphertext using SHA-256 and no label.
func (p *RSAKeyPair) Decrypt(ciphertext []byte) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.priv == nil {
		return nil, &domain.KeyError{Kind: domain.KeyDecryptFailed, Err: errWiped}
	}
	plain, err := rsa.DecryptOAEP(sha256.New(), nil, p.priv, ciphertext, nil)
	if err != nil {
		return nil, &domain.KeyError{Kind: domain.KeyDecryptFailed, Err: err}
	}
	return plain, nil
}

// Export returns the private key as PKCS#1 DER. Callers own the returned
// slice and should wipe it.
func (p *RSAKeyPair) Export() ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.priv == nil {
		return nil, errWiped
	}
	return x509.MarshalPKCS1PrivateKey(p.priv), nil
}

// Wipe zeroes the private exponent, primes and precomputed CRT values.
func (p *RSAKeyPair) Wipe() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.priv == nil {
		return
	}
	memzero.BigInt(p.priv.D)
	for _, prime := range p.priv.Primes {
		memzero.BigInt(prime)
	}
	memzero.BigInt(p.priv.Precomputed.Dp)
	memzero.BigInt(p.priv.Precomputed.Dq)
	memzero.BigInt(p.priv.Precomputed.Qinv)
	p.priv = nil
}

// EncryptOAEP wraps msg for pub with RSA-OAEP(SHA-256), the server side of
// RSAKeyPair.Decrypt.
func EncryptOAEP(random io.Reader, pub *rsa.PublicKey, msg []byte) ([]byte, error) {
	if random == nil {
		random = rand.Reader
	}
	return rsa.EncryptOAEP(sha256.New(), random, pub, msg, nil)
}

// ParsePublicKey reverses EncodePublic.
func ParsePublicKey(encoded string) (*rsa.PublicKey, error) {
	raw, err := FromB64(encoded)
	if err != nil {
		return nil, fmt.Errorf("public key base64: %w", err)
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing the key")
	}
	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is %T, not RSA", key)
	}
	return pub, nil
}
