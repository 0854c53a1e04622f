package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// GenerateUUID returns a random (version 4) UUID string.
func GenerateUUID() string {
	return uuid.NewString()
}

const inviteAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// InviteCodeLength is the number of characters in a ministry invite code.
const InviteCodeLength = 6

// GenerateInviteCode returns a random upper-case base-36 code such as "K3X9QZ".
func GenerateInviteCode() (string, error) {
	max := big.NewInt(int64(len(inviteAlphabet)))
	code := make([]byte, InviteCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = inviteAlphabet[n.Int64()]
	}
	return string(code), nil
}
