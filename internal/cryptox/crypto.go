// Package cryptox holds the key-derivation helpers behind daylog's
// password-less login scheme: the server only ever sees a salt and a
// verifier, never the password or the derived key.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

const (
	// SaltSize is the length of the per-user random salt.
	SaltSize = 32

	keySize = 32
)

// DeriveKey stretches password with argon2id using salt.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, keySize)
}

// MakeVerifier returns the value sent to and stored by the server in place
// of the derived key.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// VerifierFor is DeriveKey followed by MakeVerifier.
func VerifierFor(password []byte, salt []byte) []byte {
	return MakeVerifier(DeriveKey(password, salt))
}

// EqualVerifiers compares two verifiers in constant time.
func EqualVerifiers(a, b []byte) bool {
	return len(a) > 0 && subtle.ConstantTimeCompare(a, b) == 1
}
