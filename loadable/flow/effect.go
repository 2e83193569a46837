package flow

import (
	"context"
	"sync"
)

// Merge runs every non-nil effect concurrently, each in its own goroutine,
// and waits for all of them to return before returning itself. Actions
// dispatched by different sub-effects may interleave in any order; dispatch
// itself must be safe for concurrent use by the host, since Merge makes no
// attempt to serialize calls to it.
func Merge[A any](effects ...Effect[A]) Effect[A] {
	return EffectFunc[A](func(ctx context.Context, dispatch Dispatch[A]) {
		var wg sync.WaitGroup
		for _, e := range effects {
			if e == nil {
				continue
			}
			e := e
			wg.Add(1)
			go func() {
				defer wg.Done()
				e.Run(ctx, dispatch)
			}()
		}
		wg.Wait()
	})
}

// Cancel is an effect that cancels the task registered under key in
// registry and returns. It never dispatches.
func Cancel[A any](registry *Registry, key string) Effect[A] {
	return EffectFunc[A](func(_ context.Context, _ Dispatch[A]) {
		registry.Cancel(key)
	})
}
