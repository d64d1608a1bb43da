// Package cryptox holds the password digest shared by registration and
// sign-in. The digest is a fixed one-way function: changing it invalidates
// every stored credential.
package cryptox

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the hex-encoded SHA-1 digest of password.
func HashPassword(password string) string {
	sum := sha1.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword compares the digest of candidate against hash in constant
// time.
func VerifyPassword(hash, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(hash), []byte(HashPassword(candidate))) == 1
}
