package otpgenerator

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratedCodeShape(t *testing.T) {
	g := NewGenerator()

	for i := 0; i < 1000; i++ {
		code := string(g.GenerateOTP())

		require.Len(t, code, 6)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestGeneratedCodesAreSpread(t *testing.T) {
	g := NewGenerator()

	// Not a strict uniformity test, just a guard against a degenerate
	// generator: over many draws every leading digit must show up.
	leadingDigits := make(map[byte]int)
	for i := 0; i < 10000; i++ {
		code := string(g.GenerateOTP())
		leadingDigits[code[0]]++
	}

	for d := byte('1'); d <= '9'; d++ {
		require.Greater(t, leadingDigits[d], 0, "leading digit %c never generated", d)
	}
}

func TestGeneratedCodesAreNotConstant(t *testing.T) {
	g := NewGenerator()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		seen[string(g.GenerateOTP())] = struct{}{}
	}
	require.Greater(t, len(seen), 1)
}
