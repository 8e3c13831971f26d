package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt hash from the given plaintext
// password. The salt is generated per call, so hashing the same password
// twice produces different digests.
//
// bcrypt.DefaultCost keeps hashing slow enough to resist brute-force and
// rainbow-table attacks without making registration noticeably laggy.
//
// Returns the encoded hash string (which embeds the cost and salt) or an
// error if the plaintext exceeds bcrypt's 72-byte limit.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// VerifyPassword reports whether plaintext matches the stored bcrypt hash.
//
// A mismatch is not an error condition: the caller translates false into an
// unauthorized outcome. The comparison runs in constant time with respect to
// the password content, as guaranteed by the bcrypt primitive.
func VerifyPassword(plaintext, passwordHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(plaintext)) == nil
}
