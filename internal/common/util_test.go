package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWipeByteArray(t *testing.T) {
	b := []byte("secret")
	WipeByteArray(b)
	require.Equal(t, make([]byte, 6), b)
}

func TestWipeByteArray_Nil(t *testing.T) {
	require.NotPanics(t, func() { WipeByteArray(nil) })
}
