package identity

import (
	"errors"
	"strings"
	"testing"
)

func isLowerAlnum(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune(alphabet, r) {
			return false
		}
	}
	return true
}

func TestCorrelationIsPrefixOfSubdomain(t *testing.T) {
	g := New()
	for sub := 1; sub <= 40; sub++ {
		for corr := 1; corr <= sub; corr++ {
			id, err := g.Generate(sub, corr)
			if err != nil {
				t.Fatalf("Generate(%d, %d): %v", sub, corr, err)
			}
			if len(id.Subdomain) != sub || len(id.CorrelationID) != corr {
				t.Fatalf("lengths = %d/%d, want %d/%d", len(id.Subdomain), len(id.CorrelationID), sub, corr)
			}
			if !strings.HasPrefix(id.Subdomain, string(id.CorrelationID)) {
				t.Fatalf("%q is not a prefix of %q", id.CorrelationID, id.Subdomain)
			}
			if !isLowerAlnum(id.Subdomain) {
				t.Fatalf("subdomain %q has characters outside [a-z0-9]", id.Subdomain)
			}
		}
	}
}

func TestDefaults(t *testing.T) {
	id, err := New().Generate(DefaultSubdomainLength, DefaultCorrelationLength)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(id.Subdomain) != 33 || len(id.CorrelationID) != 20 {
		t.Fatalf("unexpected lengths %d/%d", len(id.Subdomain), len(id.CorrelationID))
	}
}

func TestInvalidLengths(t *testing.T) {
	for _, tc := range [][2]int{{0, 0}, {10, 0}, {5, 6}, {-1, -1}} {
		if _, err := New().Generate(tc[0], tc[1]); !errors.Is(err, ErrInvalidLengths) {
			t.Fatalf("Generate(%d, %d) err = %v, want ErrInvalidLengths", tc[0], tc[1], err)
		}
	}
}

func TestRandomFailure(t *testing.T) {
	g := &Generator{Random: strings.NewReader("")}
	if _, err := g.Generate(4, 2); err == nil {
		t.Fatal("expected error from exhausted random source")
	}
}
