// Package authpw implements the directory's shared-password gate: every
// account signs in with the same configured password. Deliberately
// trivial; real authentication is out of scope for the engine.
package authpw

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Gate holds a bcrypt hash of the shared login password so the plaintext
// does not stick around in memory after startup.
type Gate struct {
	hash []byte
}

func NewGate(password string) (*Gate, error) {
	if password == "" {
		return nil, fmt.Errorf("login password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash login password: %w", err)
	}
	return &Gate{hash: hash}, nil
}

func (g *Gate) Verify(password string) bool {
	return bcrypt.CompareHashAndPassword(g.hash, []byte(password)) == nil
}
