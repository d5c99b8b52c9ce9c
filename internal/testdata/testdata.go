// Package testdata generates the user records the e2e suites feed into
// registration and login forms. Generated identifiers carry a random suffix
// so parallel runs never collide.
package testdata

import (
	crand "crypto/rand"
	"encoding/hex"
	"fmt"
)

// User is a set of form credentials.
type User struct {
	Username string
	Email    string
	Password string
}

func suffix(n int) string {
	b := make([]byte, n)
	if _, err := crand.Read(b); err != nil {
		panic(fmt.Sprintf("failed to generate random suffix: %v", err))
	}
	return hex.EncodeToString(b)
}

// UniqueUsername generates a unique username with the given prefix.
func UniqueUsername(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, suffix(8))
}

// UniqueEmail generates a unique email for test isolation.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, suffix(8))
}

// ValidUser generates a user that satisfies the practice site's rules:
// lowercase username, password of at least 12 characters.
func ValidUser() User {
	name := UniqueUsername("user")
	return User{
		Username: name,
		Email:    name + "@example.com",
		Password: "Pw!" + suffix(8),
	}
}

// InvalidUsers returns credential sets that must be rejected, keyed by what
// is wrong with them.
func InvalidUsers() map[string]User {
	valid := ValidUser()
	return map[string]User{
		"empty username": {
			Username: "",
			Email:    valid.Email,
			Password: valid.Password,
		},
		"empty password": {
			Username: valid.Username,
			Email:    valid.Email,
			Password: "",
		},
		"short password": {
			Username: valid.Username,
			Email:    valid.Email,
			Password: "a1",
		},
		"username with spaces": {
			Username: "bad user name",
			Email:    valid.Email,
			Password: valid.Password,
		},
	}
}
