package minibank

import (
	"crypto/sha256"
	"fmt"
)

// CredentialHasher turns a plaintext PIN into a fixed-length digest.
// Implementations must be deterministic; digests are compared directly,
// plaintext is never stored or compared.
type CredentialHasher interface {
	Digest(pin string) string
}

// SHA256Hasher digests PINs as lowercase hex SHA-256.
type SHA256Hasher struct{}

var _ CredentialHasher = SHA256Hasher{}

func (SHA256Hasher) Digest(pin string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(pin)))
}
