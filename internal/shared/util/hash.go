package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPrompt returns a stable identifier for a prompt, used to correlate
// stored artifacts with the input that produced them without persisting
// the full prompt text.
func HashPrompt(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
