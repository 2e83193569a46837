// Package flow defines the narrow action-dispatch/reduce contract the
// loadable engine requires from its host store, plus the plumbing
// (lenses, prisms, the cancel-in-flight registry) the driving reducers in
// package reducer are built from. It does not implement a store itself —
// that remains the host framework's job, out of scope for this engine.
package flow

import "context"

// Dispatch sends an action back to the host store.
type Dispatch[A any] func(A)

// Effect is a deferred, cancellable description of asynchronous work that
// eventually dispatches zero or more actions back to the store via
// dispatch. Run should respect ctx: it must stop doing work and return
// promptly once ctx is done.
type Effect[A any] interface {
	Run(ctx context.Context, dispatch Dispatch[A])
}

// EffectFunc adapts a plain function to Effect, the way worker.Handler in
// the teacher's codebase is usually satisfied by a concrete type rather than
// a generic function adapter — but here the effect shapes are numerous
// enough (dispatch-only, cancel-only, merged, long-running load) that a
// function adapter pulls its weight.
type EffectFunc[A any] func(ctx context.Context, dispatch Dispatch[A])

// Run implements Effect.
func (f EffectFunc[A]) Run(ctx context.Context, dispatch Dispatch[A]) { f(ctx, dispatch) }

// None is an effect that does nothing.
func None[A any]() Effect[A] {
	return EffectFunc[A](func(context.Context, Dispatch[A]) {})
}

// Dispatched is an effect that synchronously dispatches a single action and
// returns.
func Dispatched[A any](action A) Effect[A] {
	return EffectFunc[A](func(_ context.Context, dispatch Dispatch[A]) {
		dispatch(action)
	})
}

// Reducer is the pure function a host store applies on every action: it
// mutates state in place and returns the effect that should run as a
// consequence. Mutating in place rather than returning a new state mirrors
// how the teacher's own domain methods work (e.g. Task.UpdateStatus).
type Reducer[S any, A any] func(state *S, action A) Effect[A]

// Lens is a first-class S <-> F accessor: Get returns a pointer to F's
// location inside S, which doubles as both getter and setter since callers
// can read through it or mutate through it in place.
type Lens[S any, F any] struct {
	Get func(s *S) *F `validate:"required"`
}

// Prism is a first-class injective A <-> F mapping: Match extracts F from A
// when A carries one, Build injects F back into the enclosing action type.
type Prism[A any, F any] struct {
	Match func(a A) (F, bool) `validate:"required"`
	Build func(f F) A         `validate:"required"`
}
