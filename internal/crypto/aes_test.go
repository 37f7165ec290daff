package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCFBRoundTrip(t *testing.T) {
	for _, keyLen := range []int{16, 24, 32} {
		key := bytes.Repeat([]byte{0x42}, keyLen)
		for _, msg := range [][]byte{{}, []byte("x"), bytes.Repeat([]byte("interaction"), 40)} {
			ct, err := EncryptCFB(nil, key, msg)
			require.NoError(t, err)
			require.Len(t, ct, IVSize+len(msg))
			pt, err := DecryptCFB(key, ct)
			require.NoError(t, err)
			assert.Equal(t, msg, pt)
		}
	}
}

func TestCFBShortPayload(t *testing.T) {
	_, err := DecryptCFB(make([]byte, 32), make([]byte, IVSize-1))
	assert.Error(t, err)
}

func TestCFBBadKey(t *testing.T) {
	_, err := DecryptCFB(make([]byte, 7), make([]byte, 32))
	assert.Error(t, err)
}
