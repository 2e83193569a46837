package reducer

// LoadableAction is the wire-level action a Loadable reducer feeds back into
// the store on task completion. It has exactly two cases: a completed load
// (which may itself be success or failure) and an explicit cancellation
// notice delivered after an in-flight task was torn down.
type LoadableAction[V any] struct {
	cancelled bool
	completed bool
	value     *V
	err       error
	hint      any
}

// Completed builds the LoadRequestCompleted case. err, if non-nil and
// classified as Cancelled, is still carried here rather than routed through
// CancelledAction — the reducer is responsible for recognizing it as
// cancellation at apply time, exactly like a cancellation the load closure
// raised directly. hint is Config.AnimationHint carried through unexamined,
// for a host to read back off the dispatched action.
func Completed[V any](v *V, err error, hint any) LoadableAction[V] {
	return LoadableAction[V]{completed: true, value: v, err: err, hint: hint}
}

// CancelledAction builds the LoadRequestCancelled case, dispatched once
// eager cleanup of a cancelled task has already run.
func CancelledAction[V any](hint any) LoadableAction[V] {
	return LoadableAction[V]{cancelled: true, hint: hint}
}

// IsCompleted reports the LoadRequestCompleted case.
func (a LoadableAction[V]) IsCompleted() bool { return a.completed }

// IsCancelled reports the LoadRequestCancelled case.
func (a LoadableAction[V]) IsCancelled() bool { return a.cancelled }

// Value is the completed value, if any. Only meaningful when IsCompleted and
// Err is nil.
func (a LoadableAction[V]) Value() *V { return a.value }

// Err is the completed error, if any. Only meaningful when IsCompleted.
func (a LoadableAction[V]) Err() error { return a.err }

// Hint is the Config.AnimationHint in effect when the load that produced
// this action was launched, opaque to the reducer itself.
func (a LoadableAction[V]) Hint() any { return a.hint }
