package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== VERIFICATION CODE ====================

// codeAlphabet: uppercase alphanumeric, 36 symbols. An 8-char code gives a
// 36^8 search space, enough against guessing within a 15-minute window.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode returns a random uppercase alphanumeric code of the given
// length, drawn uniformly via crypto/rand.
func GenerateCode(length int) string {
	if length <= 0 {
		length = 8
	}

	max := big.NewInt(int64(len(codeAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			panic(err)
		}
		buf[i] = codeAlphabet[n.Int64()]
	}

	return string(buf)
}
