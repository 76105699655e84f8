// Package ident generates the short event identifiers used across the
// store: "evt-" followed by four lowercase alphanumerics.
package ident

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	prefix    = "evt-"
	alphabet  = "abcdefghijklmnopqrstuvwxyz0123456789"
	suffixLen = 4
)

// New returns a fresh identifier drawn from a cryptographically strong
// random source. Roughly 1.68M combinations, enough for a personal store.
func New() (string, error) {
	suffix := make([]byte, suffixLen)
	max := big.NewInt(int64(len(alphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("reading random bytes: %w", err)
		}
		suffix[i] = alphabet[n.Int64()]
	}
	return prefix + string(suffix), nil
}

// Unique returns an identifier not present in existing, regenerating on
// collision. Collisions are near-impossible at personal-store sizes but
// checked for real rather than assumed away.
func Unique(existing map[string]struct{}) (string, error) {
	for {
		id, err := New()
		if err != nil {
			return "", err
		}
		if _, taken := existing[id]; !taken {
			return id, nil
		}
	}
}
