// Package password derives and verifies salted password digests.
//
// Digests use PBKDF2-HMAC-SHA256 with a per-credential random salt. The
// parameters are fixed: changing them invalidates every stored credential.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength = 32
	iterations = 100000
	keyLength  = 128
)

// Hash derives a digest for the password with a fresh random salt. Hashing
// the same password twice yields different salts and different digests.
func Hash(password string) (hash, salt []byte, err error) {
	salt = make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	hash = pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)
	return hash, salt, nil
}

// Verify recomputes the digest with the stored salt and compares it in
// constant time. Malformed input (empty hash or salt) returns false.
func Verify(password string, hash, salt []byte) bool {
	if len(hash) == 0 || len(salt) == 0 {
		return false
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)
	return subtle.ConstantTimeCompare(key, hash) == 1
}
