package interfaces

// KeyPair is an asymmetric key pair exclusively owned by one session.
type KeyPair interface {
	// Bits is the modulus size the pair was generated with.
	Bits() int
	// EncodePublic returns base64(PEM(public key)) as sent on registration.
	EncodePublic() (string, error)
	// Decrypt unwraps ciphertext produced with the public half.
	Decrypt(ciphertext []byte) ([]byte, error)
	// Export returns the private key in a form Keyring.Import accepts.
	Export() ([]byte, error)
	// Wipe zeroes private material. The pair is unusable afterwards.
	Wipe()
}

// Keyring generates and imports key pairs for one cryptographic backend.
type Keyring interface {
	Generate(bits int) (KeyPair, error)
	Import(privateKey []byte) (KeyPair, error)
}
