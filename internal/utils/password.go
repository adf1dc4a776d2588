package utils

import (
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters (RFC 9106 second recommended option)
const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 2
	argonKeyLen  = 32
)

// HashPassword derives the stored hash for password with the account's salt.
func HashPassword(password, salt string) string {
	key := argon2.IDKey([]byte(password), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen)
	return hex.EncodeToString(key)
}

// VerifyPassword recomputes the hash and compares it in constant time.
func VerifyPassword(password, salt, hash string) bool {
	computed := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
