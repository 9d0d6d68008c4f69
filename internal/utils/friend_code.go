package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateFriendCode generates a random friend code in the format XXXX-XXXX.
// Friends are added by exchanging these codes instead of exposing emails.
func GenerateFriendCode() (string, error) {
	bytes := make([]byte, 4)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	code := hex.EncodeToString(bytes)
	return fmt.Sprintf("%s-%s", code[0:4], code[4:8]), nil
}
