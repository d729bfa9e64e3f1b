package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConfirmationCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateConfirmationCode(6)
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(ConfirmationCodeAlphabet, r), "unexpected character %q", r)
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 45, "codes should practically never repeat")

	_, err := GenerateConfirmationCode(0)
	assert.Error(t, err)
}

func TestConfirmationCodeHash(t *testing.T) {
	hash, err := HashConfirmationCode("x7K9m2")
	require.NoError(t, err)
	assert.NotEqual(t, "x7K9m2", hash)

	assert.True(t, CheckConfirmationCode(hash, "x7K9m2"))
	assert.False(t, CheckConfirmationCode(hash, "x7k9m2"))
	assert.False(t, CheckConfirmationCode("not-a-hash", "x7K9m2"))
}
