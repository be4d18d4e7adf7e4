package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	for _, size := range []int{0, 1, 32} {
		s, err := MakeRandHexString(size)
		require.NoError(t, err)
		assert.Len(t, s, size*2)

		raw, err := hex.DecodeString(s)
		require.NoError(t, err)
		assert.Len(t, raw, size)
	}

	a, _ := MakeRandHexString(32)
	b, _ := MakeRandHexString(32)
	assert.NotEqual(t, a, b, "refresh tokens must not repeat")
}

func TestWipeByteArray(t *testing.T) {
	pw := []byte("correct horse")
	WipeByteArray(pw)
	assert.Equal(t, make([]byte, len("correct horse")), pw)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}
