package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Signer signs a claim set into a compact token string.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// MinKeySize is the minimum accepted HMAC key length in bytes. HS256 keys
// shorter than the hash output weaken the MAC (RFC 2104).
const MinKeySize = 32

// HS256Signer signs tokens with a process-wide symmetric secret.
type HS256Signer struct {
	key []byte
}

// NewSignerHS256 creates an HS256 signer. The key must be at least
// MinKeySize bytes.
func NewSignerHS256(key []byte) (*HS256Signer, error) {
	if len(key) < MinKeySize {
		return nil, errors.New("jwtx: HS256 key must be at least 32 bytes")
	}
	return &HS256Signer{key: key}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign serializes and signs the claims. The claims are not mutated; every
// call produces a fresh compact token.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.key)
}
