package password

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// HashSHA256 returns the SHA-256 hex digest of the input string. Used to
// derive opaque identifiers for logging; raw tokens never reach a log line.
func HashSHA256(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// generateRandomBytes returns cryptographically secure random bytes.
func generateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}
