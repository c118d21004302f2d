package enrichment

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// ErrUnavailable marks a signal that was not collected because no collaborator
// was configured for it.
var ErrUnavailable = errors.New("signal unavailable")

// Outcome is the settled result of one unit of best-effort work:
// either a value or the reason it is unavailable.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Succeeded wraps a collected value.
func Succeeded[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v}
}

// Failed marks a unit as unavailable.
func Failed[T any](err error) Outcome[T] {
	if err == nil {
		err = ErrUnavailable
	}
	return Outcome[T]{Err: err}
}

// Available reports whether the unit produced a value.
func (o Outcome[T]) Available() bool {
	return o.Err == nil
}

// settleAll runs fn for every index concurrently and waits for all of them.
// Errors never cancel siblings; each lands in its own slot, so the returned
// slice is in index order regardless of completion order.
// limit <= 0 means no bound on simultaneous calls.
func settleAll[T any](ctx context.Context, n, limit int, fn func(ctx context.Context, i int) (T, error)) []Outcome[T] {
	results := make([]Outcome[T], n)

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := 0; i < n; i++ {
		g.Go(func() error {
			v, err := fn(ctx, i)
			if err != nil {
				results[i] = Failed[T](err)
			} else {
				results[i] = Succeeded(v)
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
