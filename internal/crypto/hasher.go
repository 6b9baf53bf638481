package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hasher implements [ContentHasher] with SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher returns the content hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// Hash implements [ContentHasher].
func (SHA256Hasher) Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
