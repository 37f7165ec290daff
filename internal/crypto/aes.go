package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// IVSize is the length of the IV prefix on every payload.
const IVSize = aes.BlockSize

// DecryptCFB decrypts data laid out as IV(16) || AES-CFB ciphertext. The key
// length selects AES-128, AES-192 or AES-256.
func DecryptCFB(key, data []byte) ([]byte, error) {
	if len(data) < IVSize {
		return nil, fmt.Errorf("payload too short: %d bytes", len(data))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("AES key error: %w", err)
	}
	iv := data[:IVSize]
	out := make([]byte, len(data)-IVSize)
	//nolint:staticcheck // CFB is fixed by the server wire format.
	cipher.NewCFBDecrypter(block, iv).XORKeyStream(out, data[IVSize:])
	return out, nil
}

// EncryptCFB returns IV || AES-CFB(plaintext) with a fresh random IV.
func EncryptCFB(random io.Reader, key, plaintext []byte) ([]byte, error) {
	if random == nil {
		random = rand.Reader
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("AES key error: %w", err)
	}
	out := make([]byte, IVSize+len(plaintext))
	if _, err := io.ReadFull(random, out[:IVSize]); err != nil {
		return nil, fmt.Errorf("IV generation failed: %w", err)
	}
	//nolint:staticcheck // CFB is fixed by the server wire format.
	cipher.NewCFBEncrypter(block, out[:IVSize]).XORKeyStream(out[IVSize:], plaintext)
	return out, nil
}
