package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasscodeHashing(t *testing.T) {
	t.Run("Hash Verifies Its Own Passcode", func(t *testing.T) {
		hash, err := HashPasscode("4821")
		require.NoError(t, err)
		assert.NotEqual(t, "4821", hash, "passcode must never be stored in the clear")
		assert.True(t, CheckPasscodeHash("4821", hash))
	})

	t.Run("Wrong Passcode Rejected", func(t *testing.T) {
		hash, err := HashPasscode("4821")
		require.NoError(t, err)
		assert.False(t, CheckPasscodeHash("4822", hash))
		assert.False(t, CheckPasscodeHash("", hash))
	})

	t.Run("Salted Hashes Differ Between Calls", func(t *testing.T) {
		first, err := HashPasscode("winter-clinic")
		require.NoError(t, err)
		second, err := HashPasscode("winter-clinic")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
		assert.True(t, CheckPasscodeHash("winter-clinic", first))
		assert.True(t, CheckPasscodeHash("winter-clinic", second))
	})

	t.Run("Garbage Hash Never Verifies", func(t *testing.T) {
		assert.False(t, CheckPasscodeHash("4821", "not-a-bcrypt-hash"))
	})
}
