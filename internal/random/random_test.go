package random

import (
	"github.com/stretchr/testify/require"
	"testing"
	"unicode"
)

func TestLetters(t *testing.T) {
	tests := []struct {
		name   string
		length uint
	}{
		{name: "zero length", length: 0},
		{name: "nonce length", length: 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Letters(tt.length)
			require.NoError(t, err)
			require.Len(t, got, int(tt.length))
			for _, r := range got {
				require.True(t, unicode.IsLetter(r), "unexpected rune %q", r)
			}
		})
	}
}

func TestLetters_differ(t *testing.T) {
	a, err := Letters(32)
	require.NoError(t, err)
	b, err := Letters(32)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
