package util

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandomCode returns a random hex string of n bytes,
// suitable for one-time confirmation codes.
func GenerateRandomCode(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
