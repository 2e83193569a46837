// Package reducer implements the higher-order reducer that drives
// asynchronous loads on top of a loadable.Value: it intercepts actions,
// applies the pure state transitions, decides whether a load is due, and
// launches or cancels the load task accordingly.
package reducer

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/mauzec/loadable/loadable"
	"github.com/mauzec/loadable/loadable/flow"
)

// Config is the construction-time configuration of a Loadable.
type Config[S, A, V any] struct {
	// Key identifies this loadable's in-flight task in a Registry. Must be
	// stable and unique among the loadables sharing a Registry.
	Key string `validate:"required"`

	// Path is the S <-> loadable.Value[V] lens.
	Path flow.Lens[S, loadable.Value[V]] `validate:"required"`
	// Action is the A <-> LoadableAction[V] prism.
	Action flow.Prism[A, LoadableAction[V]] `validate:"required"`

	// TriggerPredicate reports whether action should force a load
	// regardless of the current state. Defaults to always false.
	TriggerPredicate func(A) bool
	// Precondition is consulted before any load task is launched. Defaults
	// to always true.
	Precondition func(S) bool
	// Load performs the asynchronous operation against a by-value snapshot
	// of the surrounding state taken at launch time. A nil *V is a
	// legitimate success with no data. An error satisfying IsCancelled is
	// classified as cancellation rather than failure.
	Load func(ctx context.Context, state S) (*V, error) `validate:"required"`

	// AnimationHint is opaque to the reducer; it is carried unexamined onto
	// every LoadableAction this loadable dispatches (completion or
	// cancellation), retrievable via LoadableAction.Hint.
	AnimationHint any

	// Observe, if set, is the abstract "notify on mutation" hook a UI layer
	// would subscribe to. It is called after this reducer applies a
	// LoadableAction and after it moves the loadable into Loading. Changes
	// made by the inner reducer, or by a List action before it reaches this
	// reducer, are not reported.
	Observe func(key string, v loadable.Value[V])
}

func (c *Config[S, A, V]) setDefaults() {
	if c.TriggerPredicate == nil {
		c.TriggerPredicate = func(A) bool { return false }
	}
	if c.Precondition == nil {
		c.Precondition = func(S) bool { return true }
	}
}

// Loadable is the higher-order reducer described by Config, composed
// statically with an inner reducer at construction time to avoid the cyclic
// back-reference a lazily-bound inner reducer would create.
type Loadable[S, A, V any] struct {
	cfg      Config[S, A, V]
	inner    flow.Reducer[S, A]
	registry *flow.Registry
}

// New validates cfg, applies its defaults, and returns a Loadable wrapping
// inner. inner may be nil, meaning no inner reducer runs.
func New[S, A, V any](cfg Config[S, A, V], inner flow.Reducer[S, A]) (*Loadable[S, A, V], error) {
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &Loadable[S, A, V]{cfg: cfg, inner: inner, registry: flow.NewRegistry()}, nil
}

// Reduce implements flow.Reducer[S, A]: use it (or a value derived from it,
// e.g. via flow.Lens composition in an outer reducer) as the reducer a host
// store dispatches actions through.
func (l *Loadable[S, A, V]) Reduce(state *S, action A) flow.Effect[A] {
	path := l.cfg.Path.Get(state)

	if la, ok := l.cfg.Action.Match(action); ok {
		l.applyTransition(path, la)
		l.observe(path)
	}

	wasLoadingBefore := path.IsLoading()

	innerEffect := flow.Effect[A](flow.None[A]())
	if l.inner != nil {
		innerEffect = l.inner(state, action)
	}

	path = l.cfg.Path.Get(state)
	restingAfterCancel := path.IsNotLoaded() && !path.IsReadyToLoad()

	switch {
	case path.RequiresLoading() || l.cfg.TriggerPredicate(action):
		if !l.cfg.Precondition(*state) {
			return innerEffect
		}
		path.Loading(true)
		l.observe(path)

		snapshot := *state
		ctx := l.registry.Launch(context.Background(), l.cfg.Key)
		return flow.Merge[A](innerEffect, l.launch(ctx, snapshot))

	case restingAfterCancel && wasLoadingBefore:
		// the inner reducer reset path to NotLoaded{false} itself while a
		// load was in flight: cancel the now-orphaned task and notify.
		cancelEffect := flow.Cancel[A](l.registry, l.cfg.Key)
		notify := flow.Dispatched[A](l.cfg.Action.Build(CancelledAction[V](l.cfg.AnimationHint)))
		return flow.Merge[A](innerEffect, cancelEffect, notify)
	}

	return innerEffect
}

// applyTransition performs step 1 of the reduce pass: the pure
// LoadableAction transition, applied before the inner reducer runs.
func (l *Loadable[S, A, V]) applyTransition(path *loadable.Value[V], la LoadableAction[V]) {
	switch {
	case la.IsCompleted():
		if err := la.Err(); err != nil {
			if !IsCancelled(err) {
				path.Failed()
			}
			return
		}
		path.Loaded(la.Value())
	case la.IsCancelled():
		// cleanup already happened eagerly when cancellation was issued.
	}
}

// launch returns the effect that runs the load closure against snapshot and
// dispatches its outcome. The load's context is done when ctx is done or when
// the context the effect itself is run under is done.
func (l *Loadable[S, A, V]) launch(ctx context.Context, snapshot S) flow.Effect[A] {
	return flow.EffectFunc[A](func(runCtx context.Context, dispatch flow.Dispatch[A]) {
		loadCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		stop := context.AfterFunc(runCtx, cancel)
		defer stop()

		v, err := l.cfg.Load(loadCtx, snapshot)
		l.registry.ForgetIfCurrent(l.cfg.Key, ctx)

		if err != nil {
			if IsCancelled(err) {
				dispatch(l.cfg.Action.Build(CancelledAction[V](l.cfg.AnimationHint)))
				return
			}
			err = &Error{Op: l.cfg.Key, Err: err}
		}
		dispatch(l.cfg.Action.Build(Completed(v, err, l.cfg.AnimationHint)))
	})
}

func (l *Loadable[S, A, V]) observe(path *loadable.Value[V]) {
	if l.cfg.Observe != nil {
		l.cfg.Observe(l.cfg.Key, *path)
	}
}
