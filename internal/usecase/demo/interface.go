package demo

import "context"

// Runner defines the demo routine as seen by the application boundary.
type Runner interface {
	Run(ctx context.Context) (*Result, error)
}
