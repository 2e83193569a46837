// Package loadable models the lifecycle of a value that is produced by an
// asynchronous operation: not loaded, loading, loaded, or failed.
package loadable

// variant is the tag of a Value's tagged union. The zero value is notLoaded,
// matching the zero-value-is-useful convention the rest of this engine
// follows.
type variant int

const (
	variantNotLoaded variant = iota
	variantLoading
	variantLoaded
	variantFailed
)

// Value is a tagged union encoding the four-state lifecycle of an
// asynchronously loaded value of type V. The zero Value[V] is NotLoaded with
// readyToLoad=false.
//
// Value is mutated only by its transition methods (Unload, ReadyToLoad,
// MarkAsStale, Loading, Loaded, Failed, SetValue), by MutateCurrentValue, or
// by a reducer built on
// top of it; it carries no behavior beyond that.
type Value[V any] struct {
	tag variant

	// readyToLoad is only meaningful in variantNotLoaded.
	readyToLoad bool
	// isStale is only meaningful in variantLoaded.
	isStale bool

	// prior holds the previous value while a reload is in flight
	// (variantLoading only).
	prior *V
	// value holds the loaded value, which may legitimately be nil
	// (variantLoaded only).
	value *V
}

// New returns a Value in its resting NotLoaded{readyToLoad: false} state.
func New[V any]() Value[V] {
	return Value[V]{tag: variantNotLoaded}
}

// NewLoaded returns a Value already in Loaded{Some(v), isStale: false}.
func NewLoaded[V any](v V) Value[V] {
	return Value[V]{tag: variantLoaded, value: &v}
}

// Unload transitions unconditionally to NotLoaded{false}, discarding any
// value.
func (lv *Value[V]) Unload() {
	*lv = Value[V]{tag: variantNotLoaded}
}

// ReadyToLoad transitions unconditionally to NotLoaded{true}, discarding any
// value. Calling this from Loaded discards the value; to refresh without
// discarding, use MarkAsStale.
func (lv *Value[V]) ReadyToLoad() {
	*lv = Value[V]{tag: variantNotLoaded, readyToLoad: true}
}

// MarkAsStale flags a Loaded or Loading value for reload without discarding
// it. From any other state it behaves like ReadyToLoad. It is idempotent
// when already stale.
func (lv *Value[V]) MarkAsStale() {
	switch lv.tag {
	case variantLoaded, variantLoading:
		v := lv.currentValue()
		*lv = Value[V]{tag: variantLoaded, value: v, isStale: true}
	default:
		lv.ReadyToLoad()
	}
}

// Loading transitions to Loading, carrying the current value forward when
// withCurrentValue is true.
func (lv *Value[V]) Loading(withCurrentValue bool) {
	var prior *V
	if withCurrentValue {
		prior = lv.currentValue()
	}
	*lv = Value[V]{tag: variantLoading, prior: prior}
}

// Loaded transitions to Loaded{v, isStale: false}. v may be nil: a
// successful load may legitimately yield no data.
func (lv *Value[V]) Loaded(v *V) {
	*lv = Value[V]{tag: variantLoaded, value: v}
}

// Failed transitions unconditionally to Failed, discarding any value.
func (lv *Value[V]) Failed() {
	*lv = Value[V]{tag: variantFailed}
}

// SetValue forces Loaded{Some(v), false}, the behavior of assigning directly
// to the inner value via the property-wrapper convenience described in the
// design notes.
func (lv *Value[V]) SetValue(v V) {
	lv.Loaded(&v)
}

// MutateCurrentValue replaces the data carried by whichever variant is
// currently holding it, without changing the variant itself: Loaded.value
// if Loaded, Loading.prior if Loading. A no-op outside those two variants,
// since NotLoaded and Failed carry no data to mutate.
func (lv *Value[V]) MutateCurrentValue(v *V) {
	switch lv.tag {
	case variantLoaded:
		lv.value = v
	case variantLoading:
		lv.prior = v
	}
}

// currentValue returns the data carried by the current variant regardless of
// which field holds it.
func (lv *Value[V]) currentValue() *V {
	switch lv.tag {
	case variantLoaded:
		return lv.value
	case variantLoading:
		return lv.prior
	default:
		return nil
	}
}

// CurrentValue returns the value from Loaded(Some) or the prior value from
// Loading(Some), else none.
func (lv Value[V]) CurrentValue() *V {
	return lv.currentValue()
}

// IsLoading reports whether a load is in flight.
func (lv Value[V]) IsLoading() bool { return lv.tag == variantLoading }

// IsLoaded reports whether the most recent load completed successfully.
func (lv Value[V]) IsLoaded() bool { return lv.tag == variantLoaded }

// IsNotLoaded reports whether the value is NotLoaded: no load is in flight
// and no value is held, either initially or after Unload or ReadyToLoad.
func (lv Value[V]) IsNotLoaded() bool { return lv.tag == variantNotLoaded }

// HasFailed reports whether the most recent load errored (non-cancellation).
func (lv Value[V]) HasFailed() bool { return lv.tag == variantFailed }

// IsReloading reports a load in flight that has a current value to show
// meanwhile.
func (lv Value[V]) IsReloading() bool {
	return lv.IsLoading() && lv.currentValue() != nil
}

// IsPerformingInitialLoad reports a load in flight with nothing to show yet.
func (lv Value[V]) IsPerformingInitialLoad() bool {
	return lv.IsLoading() && lv.currentValue() == nil
}

// IsStale reports whether a Loaded value has been flagged for reload without
// being discarded. Always false outside Loaded.
func (lv Value[V]) IsStale() bool {
	return lv.tag == variantLoaded && lv.isStale
}

// IsReadyToLoad reports whether a NotLoaded value has been flagged to begin
// loading on the next reducer pass. Always false outside NotLoaded.
func (lv Value[V]) IsReadyToLoad() bool {
	return lv.tag == variantNotLoaded && lv.readyToLoad
}

// RequiresLoading is the sole trigger a driving reducer inspects to decide
// whether a state-driven load is due.
func (lv Value[V]) RequiresLoading() bool {
	return lv.IsStale() || lv.IsReadyToLoad()
}
