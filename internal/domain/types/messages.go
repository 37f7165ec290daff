package types

// RegisterRequest is the JSON body of POST /register.
type RegisterRequest struct {
	PublicKey     string        `json:"public-key"`
	SecretKey     string        `json:"secret-key"`
	CorrelationID CorrelationID `json:"correlation-id"`
}

// DeregisterRequest is the JSON body of POST /deregister.
type DeregisterRequest struct {
	CorrelationID CorrelationID `json:"correlation-id"`
	SecretKey     string        `json:"secret-key"`
}

// PollResponse is the JSON body returned by GET /poll.
//
// AESKey is base64(RSA-OAEP(SHA-256) ciphertext of a raw AES key). Each Data
// element is base64(16-byte IV || AES-CFB ciphertext). A null and an empty
// Data list both mean the server had nothing new.
type PollResponse struct {
	AESKey string   `json:"aes_key"`
	Data   []string `json:"data"`
}

// Empty reports whether the response carries no payloads.
func (r PollResponse) Empty() bool { return len(r.Data) == 0 }
