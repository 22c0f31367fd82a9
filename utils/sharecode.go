package utils

import (
	"crypto/rand"
	"math/big"
)

// Alphabet omits easily-confused characters (0/O, 1/I/L)
const shareCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const ShareCodeLength = 6

// GenerateShareCode returns a random short code used as the public
// lookup key for a plan. Uniqueness is enforced by the caller against
// the store, not here.
func GenerateShareCode() string {
	code := make([]byte, ShareCodeLength)

	for i := range code {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(shareCodeAlphabet))))
		code[i] = shareCodeAlphabet[num.Int64()]
	}

	return string(code)
}
