package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCode(t *testing.T) {
	t.Run("respects requested length", func(t *testing.T) {
		for _, length := range []int{4, 6, 8, 12} {
			assert.Len(t, GenerateCode(length), length)
		}
	})

	t.Run("defaults to 8 characters", func(t *testing.T) {
		assert.Len(t, GenerateCode(0), 8)
		assert.Len(t, GenerateCode(-1), 8)
	})

	t.Run("only draws from the uppercase alphanumeric alphabet", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			code := GenerateCode(8)
			for _, c := range code {
				assert.True(t, strings.ContainsRune(codeAlphabet, c),
					"unexpected character %q in code %q", c, code)
			}
		}
	})

	t.Run("does not repeat", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			code := GenerateCode(8)
			assert.False(t, seen[code], "duplicate code %q", code)
			seen[code] = true
		}
	})
}
