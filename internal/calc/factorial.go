package calc

import (
	"math/big"

	apperrors "user-demo/pkg/errors"
)

// Factorial returns n! with arbitrary precision.
// It returns a NegativeInputError for n < 0 without doing any work.
func Factorial(n int64) (*big.Int, error) {
	if n < 0 {
		return nil, apperrors.NewNegativeInputError(n)
	}

	result := big.NewInt(1)
	if n < 2 {
		return result, nil
	}

	return result.MulRange(2, n), nil
}
