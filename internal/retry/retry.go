// Package retry is a fixed-bound retry policy for unreliable external calls.
package retry

import (
	"context"
	"fmt"
)

// Do invokes op up to attempts times and returns the first success. There is
// no delay between attempts; any failure, transport or parse alike, triggers
// the next try. Exhaustion wraps the last error.
func Do[T any](ctx context.Context, attempts int, op func(context.Context) (T, error)) (T, error) {
	var zero T
	if attempts < 1 {
		attempts = 1
	}
	var last error
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		last = err
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, last)
}
