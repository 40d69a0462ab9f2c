package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// unknownUserPassword is compared against when a username is absent.
const unknownUserPassword = "\x00unknown-user\x00"

var compareHashAndPassword = bcrypt.CompareHashAndPassword

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies plain against stored, which is either a bcrypt
// hash or a plaintext password.
func ComparePassword(stored, plain string) bool {
	if isBcryptHash(stored) {
		return compareHashAndPassword([]byte(stored), []byte(plain)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// unknownUserDummy returns what an absent username is compared against. When
// any stored password is a bcrypt hash it is a hash of the highest stored
// cost, so a missing user costs as much as a wrong password.
func unknownUserDummy(stored map[string]string) string {
	cost := 0
	for _, password := range stored {
		if !isBcryptHash(password) {
			continue
		}
		if c, err := bcrypt.Cost([]byte(password)); err == nil && c > cost {
			cost = c
		}
	}
	if cost == 0 {
		return unknownUserPassword
	}
	hashed, err := HashPassword(unknownUserPassword, cost)
	if err != nil {
		return unknownUserPassword
	}
	return hashed
}
