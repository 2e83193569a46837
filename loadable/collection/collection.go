// Package collection turns a stream of page.Slice responses into a growing
// collection, with pluggable merge semantics (append-next, prepend-first,
// replace-all). Dispatch is by capability, not inheritance: Collection is a
// capability set any user-defined aggregate can implement.
package collection

import "github.com/mauzec/loadable/loadable/page"

// Identifiable is the identity constraint required by Identified: any value
// kept in an identified collection must expose a stable, comparable id.
type Identifiable[ID comparable] interface {
	Identity() ID
}

// Collection is the capability set a pagination overlay needs from whatever
// shape the host chooses for its aggregated values. Implementations must be
// immutable: every method that would mutate state instead returns a new
// Collection.
type Collection[V any, P any] interface {
	// Values returns the aggregated values in order.
	Values() []V
	// LastPage is the page key of the most recently merged slice.
	LastPage() P
	// NextPage is the page key to request next, or nil if the collection is
	// exhausted.
	NextPage() *P
	// HasNextPage reports NextPage() != nil.
	HasNextPage() bool
	// UpsertAppending returns a new collection whose values are the existing
	// values followed by slice.Values, with any element whose identity
	// matches an incoming element replaced in place (existing position
	// preserved). NextPage is taken from the slice.
	UpsertAppending(slice page.Slice[V, P]) Collection[V, P]
	// UpsertPrepending returns a new collection with slice.Values merged in
	// front, in their original order, with matching existing elements
	// updated rather than duplicated. NextPage is preserved from the
	// receiver, not taken from the slice.
	UpsertPrepending(slice page.Slice[V, P]) Collection[V, P]
}
