package collection

import (
	"reflect"

	"github.com/mauzec/loadable/loadable/page"
)

// Identified is the default Collection implementation, keyed on V's
// Identity(). It preserves insertion order and upserts by identity: a value
// whose id is already present is updated in place rather than duplicated.
type Identified[V Identifiable[ID], ID comparable, P any] struct {
	order  []ID
	values map[ID]V

	lastPage P
	nextPage *P
}

// FromInitial constructs an Identified collection from a first page.
func FromInitial[V Identifiable[ID], ID comparable, P any](slice page.Slice[V, P]) *Identified[V, ID, P] {
	c := &Identified[V, ID, P]{
		order:    make([]ID, 0, len(slice.Values)),
		values:   make(map[ID]V, len(slice.Values)),
		lastPage: slice.Page,
		nextPage: slice.NextPage,
	}
	for _, v := range slice.Values {
		id := v.Identity()
		if _, exists := c.values[id]; !exists {
			c.order = append(c.order, id)
		}
		c.values[id] = v
	}
	return c
}

// Values returns the aggregated values in insertion order.
func (c *Identified[V, ID, P]) Values() []V {
	out := make([]V, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.values[id])
	}
	return out
}

// LastPage is the page key of the most recently merged slice.
func (c *Identified[V, ID, P]) LastPage() P { return c.lastPage }

// NextPage is the page key to request next, or nil if exhausted.
func (c *Identified[V, ID, P]) NextPage() *P { return c.nextPage }

// HasNextPage reports NextPage() != nil.
func (c *Identified[V, ID, P]) HasNextPage() bool { return c.nextPage != nil }

// UpsertAppending appends slice.Values after the existing values. Ids
// already present are updated in place, at their prior position; ids unique
// to the slice are appended, in slice order, at the end.
func (c *Identified[V, ID, P]) UpsertAppending(slice page.Slice[V, P]) Collection[V, P] {
	next := &Identified[V, ID, P]{
		order:    append([]ID(nil), c.order...),
		values:   cloneValues(c.values),
		lastPage: slice.Page,
		nextPage: slice.NextPage,
	}
	for _, v := range slice.Values {
		id := v.Identity()
		if _, exists := next.values[id]; !exists {
			next.order = append(next.order, id)
		}
		next.values[id] = v
	}
	return next
}

// UpsertPrepending merges slice.Values in front of the existing values,
// preserving their relative slice order. An id already present is updated
// at its existing position rather than moved; an id new to the collection is
// inserted immediately after the nearest preceding match already placed (or
// at the very front if no match has been placed yet), so a contiguous run of
// new ids appears together, in slice order, next to the anchor that
// introduced them. NextPage is preserved from the receiver, never
// overwritten by the slice.
func (c *Identified[V, ID, P]) UpsertPrepending(slice page.Slice[V, P]) Collection[V, P] {
	order := append([]ID(nil), c.order...)
	values := cloneValues(c.values)

	index := make(map[ID]int, len(order))
	for i, id := range order {
		index[id] = i
	}

	cursor := 0
	for _, v := range slice.Values {
		id := v.Identity()
		if pos, exists := index[id]; exists {
			values[id] = v
			cursor = pos + 1
			continue
		}

		order = insertID(order, cursor, id)
		values[id] = v
		for existingID, pos := range index {
			if pos >= cursor {
				index[existingID] = pos + 1
			}
		}
		index[id] = cursor
		cursor++
	}

	return &Identified[V, ID, P]{
		order:    order,
		values:   values,
		lastPage: slice.Page,
		nextPage: c.nextPage,
	}
}

// Equal reports whether two Identified collections have the same ordered id
// sequence and the same value at each corresponding position.
func (c *Identified[V, ID, P]) Equal(other *Identified[V, ID, P]) bool {
	if c == nil || other == nil {
		return c == other
	}
	if len(c.order) != len(other.order) {
		return false
	}
	for i, id := range c.order {
		if other.order[i] != id {
			return false
		}
		if !reflect.DeepEqual(c.values[id], other.values[other.order[i]]) {
			return false
		}
	}
	return true
}

func cloneValues[ID comparable, V any](in map[ID]V) map[ID]V {
	out := make(map[ID]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func insertID[ID any](order []ID, at int, id ID) []ID {
	order = append(order, id)
	copy(order[at+1:], order[at:len(order)-1])
	order[at] = id
	return order
}
