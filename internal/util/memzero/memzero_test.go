package memzero_test

import (
	"math/big"
	"testing"

	"interactsh/internal/util/memzero"
)

func TestZero(t *testing.T) {
	b := []byte("secret material")
	memzero.Zero(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not wiped: %x", i, v)
		}
	}
	memzero.Zero(nil)
}

func TestBigInt(t *testing.T) {
	n, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	if !ok {
		t.Fatal("set string")
	}
	words := n.Bits()
	memzero.BigInt(n)
	if n.Sign() != 0 {
		t.Fatalf("expected zero, got %s", n)
	}
	for i, w := range words {
		if w != 0 {
			t.Fatalf("word %d not wiped", i)
		}
	}
	memzero.BigInt(nil)
}
