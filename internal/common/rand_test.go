package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	s, err := MakeRandHexString(32)
	require.NoError(t, err)
	require.Len(t, s, 64, "hex doubles the byte length")

	_, err = hex.DecodeString(s)
	require.NoError(t, err)
}

func TestMakeRandHexStringUnique(t *testing.T) {
	a, err := MakeRandHexString(16)
	require.NoError(t, err)
	b, err := MakeRandHexString(16)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
