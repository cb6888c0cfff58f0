package commitment

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
)

var ErrUnknownScheme = errors.New("commitment: unknown scheme")

// Scheme selects how a stored commitment relates to the secret it commits to.
type Scheme uint8

const (
	// Plaintext stores the secret itself. Anyone able to read the state learns it.
	Plaintext Scheme = iota
	// DigestSHA256 stores the lowercase hex encoding of SHA-256(secret).
	DigestSHA256
	// DigestSHA3_256 stores the lowercase hex encoding of SHA3-256(secret).
	DigestSHA3_256
	// DigestBLAKE3 stores the lowercase hex encoding of the 32 byte BLAKE3(secret).
	DigestBLAKE3
)

var schemeNames = map[Scheme]string{
	Plaintext:      "plaintext",
	DigestSHA256:   "sha256",
	DigestSHA3_256: "sha3-256",
	DigestBLAKE3:   "blake3",
}

func (s Scheme) String() string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("scheme(%d)", uint8(s))
}

// Hashed reports whether the stored commitment is a digest rather than the secret.
func (s Scheme) Hashed() bool {
	return s != Plaintext
}

// Valid reports whether s is one of the known schemes.
func (s Scheme) Valid() bool {
	_, ok := schemeNames[s]
	return ok
}

// ParseScheme returns the scheme registered under name. Matching ignores case.
func ParseScheme(name string) (Scheme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range schemeNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

// Digest maps a candidate to the form it takes in storage under s.
// For Plaintext this is the candidate unchanged.
func Digest(s Scheme, candidate string) string {
	switch s {
	case DigestSHA256:
		sum := sha256.Sum256([]byte(candidate))
		return hex.EncodeToString(sum[:])
	case DigestSHA3_256:
		sum := sha3.Sum256([]byte(candidate))
		return hex.EncodeToString(sum[:])
	case DigestBLAKE3:
		sum := blake3.Sum256([]byte(candidate))
		return hex.EncodeToString(sum[:])
	default:
		return candidate
	}
}

// Commit returns the value a deployer stores for secret under s.
func Commit(s Scheme, secret string) string {
	return Digest(s, secret)
}

// Evaluate reports whether candidate matches the stored commitment under s.
//
// The comparison is exact: no case folding and no whitespace trimming. It is
// not constant-time.
func Evaluate(s Scheme, stored, candidate string) bool {
	return Digest(s, candidate) == stored
}
