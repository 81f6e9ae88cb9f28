package attendance

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewToken generates a cryptographically secure attendance token.
// size is the number of random bytes; 16 bytes = 128 bits, encoded
// as a fixed-length hex string.
func NewToken(size int) (string, error) {

	if size <= 0 {
		size = 16
	}

	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("attendance: failed to generate token: %w", err)
	}

	return hex.EncodeToString(b), nil

}
