package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Token size constants (in bytes before encoding).
const (
	// TokenSize128 provides 128 bits of entropy (32 hex chars). This is the
	// minimum accepted for invite secrets.
	TokenSize128 = 16
	// TokenSize256 provides 256 bits of entropy (64 hex chars).
	TokenSize256 = 32
)

// ShareCodeLength is the number of characters in a human-typed join code.
const ShareCodeLength = 6

// shareCodeAlphabet drops 0/O, 1/I/L so codes survive being read out loud
// in a classroom.
const shareCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateToken creates a cryptographically secure random token of the given
// byte length, encoded as lowercase hexadecimal. Sizes below TokenSize128 are
// rejected.
func GenerateToken(size int) (string, error) {
	if size < TokenSize128 {
		return "", fmt.Errorf("token size must be at least %d bytes, got %d", TokenSize128, size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// MustGenerateToken is like GenerateToken but panics on error.
func MustGenerateToken(size int) string {
	token, err := GenerateToken(size)
	if err != nil {
		panic(fmt.Sprintf("cryptox: failed to generate token: %v", err))
	}
	return token
}

// HashToken returns the SHA-256 digest of a token as lowercase hex (64 chars).
// Only this value is ever persisted; the raw token is handed to the recipient
// once and forgotten.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// GenerateShareCode returns a random ShareCodeLength code drawn uniformly
// from an unambiguous uppercase alphabet.
func GenerateShareCode() (string, error) {
	const n = len(shareCodeAlphabet)
	// Largest multiple of n that fits in a byte, to avoid modulo bias.
	const limit = 256 - (256 % n)

	out := make([]byte, 0, ShareCodeLength)
	buf := make([]byte, ShareCodeLength*2)
	for len(out) < ShareCodeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate share code: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, shareCodeAlphabet[int(b)%n])
			if len(out) == ShareCodeLength {
				break
			}
		}
	}
	return string(out), nil
}

// IsShareCode reports whether s (after normalisation) has the shape of a
// join code.
func IsShareCode(s string) bool {
	s = NormalizeShareCode(s)
	if len(s) != ShareCodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(shareCodeAlphabet, rune(s[i])) {
			return false
		}
	}
	return true
}

// NormalizeShareCode trims and upper-cases a code typed by a person.
func NormalizeShareCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
