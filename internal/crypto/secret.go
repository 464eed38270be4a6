// Package crypto implements hashing and verification of client credential secrets.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. The panel runs on small machines, so memory is kept
// modest relative to server-grade tunings.
const (
	argonTime    uint32 = 2
	argonMemory  uint32 = 32 * 1024 // 32 MB
	argonThreads uint8  = 1
	argonKeyLen  uint32 = 32

	// SaltLen is the per-client salt size in bytes.
	SaltLen = 16
)

// NewSalt returns a cryptographically random per-client salt.
func NewSalt() ([]byte, error) {
	b := make([]byte, SaltLen)
	_, err := rand.Read(b)
	return b, err
}

// HashSecret returns the Argon2id hash of secret under salt.
func HashSecret(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// VerifySecret reports whether secret hashes to expected under salt.
func VerifySecret(secret, salt, expected []byte) bool {
	got := HashSecret(secret, salt)
	return subtle.ConstantTimeCompare(got, expected) == 1
}
