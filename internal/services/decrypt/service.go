package decrypt

import (
	"interactsh/internal/crypto"
	"interactsh/internal/domain"
	"interactsh/internal/util/memzero"
)

// Pipeline decrypts poll responses. Parse selects structured entries over
// raw text.
type Pipeline struct {
	Parse bool
}

// New returns a pipeline with parsing set as given.
func New(parse bool) Pipeline { return Pipeline{Parse: parse} }

// Decrypt returns the entries of resp in payload order. A response with a
// null or empty data list returns (nil, nil).
func (p Pipeline) Decrypt(resp domain.PollResponse, kp domain.KeyPair) ([]domain.LogEntry, error) {
	if resp.Empty() {
		return nil, nil
	}

	wrapped, err := crypto.FromB64(resp.AESKey)
	if err != nil {
		return nil, &domain.PollError{Kind: domain.PollAESKeyBase64Failed, Err: err}
	}
	key, err := kp.Decrypt(wrapped)
	if err != nil {
		return nil, &domain.PollError{Kind: domain.PollAESKeyDecryptFailed, Err: err}
	}
	defer memzero.Zero(key)

	out := make([]domain.LogEntry, 0, len(resp.Data))
	for i, payload := range resp.Data {
		raw, err := crypto.FromB64(payload)
		if err != nil {
			return nil, &domain.PollError{Kind: domain.PollDataBase64Failed, Index: i, Err: err}
		}
		plain, err := crypto.DecryptCFB(key, raw)
		if err != nil {
			return nil, &domain.PollError{Kind: domain.PollDataDecryptFailed, Index: i, Err: err}
		}
		out = append(out, Classify(lossyString(plain), p.Parse))
	}
	return out, nil
}
