package helper

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// GenerateID produces a random identifier used as a primary key for orders,
// order items, products and users. Uniqueness is probabilistic (128-bit
// random space) and is not checked against storage.
func GenerateID() string {
	return uuid.NewString()
}

// GenerateOrderToken produces a 64-character hex token for digital order
// tickets. The token is the sole authorization for the public verification
// endpoint, so it must come from a cryptographically secure source.
func GenerateOrderToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
