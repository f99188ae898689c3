// Package ident generates record identifiers and group invite codes.
package ident

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

const (
	inviteAlphabet   = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	InviteCodeLength = 6
)

// NewID returns a random UUID string.
func NewID() string {
	return uuid.New().String()
}

// NewInviteCode returns InviteCodeLength characters sampled uniformly from 0-9A-Z.
// Uniqueness against existing codes is not checked.
func NewInviteCode() string {
	limit := big.NewInt(int64(len(inviteAlphabet)))
	code := make([]byte, InviteCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}
		code[i] = inviteAlphabet[n.Int64()]
	}
	return string(code)
}

// ValidInviteCode reports whether s has the shape of an invite code.
func ValidInviteCode(s string) bool {
	if len(s) != InviteCodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}
