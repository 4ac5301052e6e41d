package calc

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "user-demo/pkg/errors"
)

func TestFactorial(t *testing.T) {
	tests := []struct {
		n        int64
		expected string
	}{
		{n: 0, expected: "1"},
		{n: 1, expected: "1"},
		{n: 2, expected: "2"},
		{n: 5, expected: "120"},
		{n: 10, expected: "3628800"},
		{n: 20, expected: "2432902008176640000"},
		// beyond int64 and beyond exact float64 integers
		{n: 25, expected: "15511210043330985984000000"},
	}

	for _, tt := range tests {
		got, err := Factorial(tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got.String(), "factorial(%d)", tt.n)
	}
}

func TestFactorial_Negative(t *testing.T) {
	for _, n := range []int64{-1, -5, -1 << 62} {
		got, err := Factorial(n)

		assert.Nil(t, got)
		var negErr *apperrors.NegativeInputError
		require.True(t, errors.As(err, &negErr))
		assert.Equal(t, n, negErr.Input)
	}
}

func TestFactorial_LargeInputIsExact(t *testing.T) {
	got, err := Factorial(1000)
	require.NoError(t, err)

	// 1000! has 2568 decimal digits
	assert.Len(t, got.String(), 2568)

	prev, err := Factorial(999)
	require.NoError(t, err)
	assert.Zero(t, new(big.Int).Mul(prev, big.NewInt(1000)).Cmp(got))
}
