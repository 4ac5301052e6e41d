package demo

import (
	"math/big"
	"time"
)

// Options holds the inputs of one demo run.
type Options struct {
	UserName       string
	UserAge        int
	UserEmail      string
	NewEmail       string
	Delay          time.Duration
	FetchURL       string
	PreviewCount   int
	FactorialInput int64
}

// Result is the outcome of a successful run.
type Result struct {
	UserDetails    string   // user details after the email update
	Preview        []any    // first PreviewCount items of the fetched array, in order
	ItemCount      int      // total number of fetched items
	FactorialInput int64    // input passed to the factorial step
	Factorial      *big.Int // factorial of FactorialInput
}
