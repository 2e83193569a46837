package reducer

import (
	"context"
	"sync"
	"testing"

	"github.com/mauzec/loadable/loadable"
	"github.com/mauzec/loadable/loadable/collection"
	"github.com/mauzec/loadable/loadable/flow"
	"github.com/mauzec/loadable/loadable/page"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    string
	Label string
}

func (r record) Identity() string { return r.ID }

type feedState struct {
	Feed loadable.Value[collection.Collection[record, page.Numbered]]
}

type feedAction struct {
	loadMore bool
	switchTo *LoadingMode
	loadable *LoadableAction[collection.Collection[record, page.Numbered]]
}

func feedLens() flow.Lens[feedState, loadable.Value[collection.Collection[record, page.Numbered]]] {
	return flow.Lens[feedState, loadable.Value[collection.Collection[record, page.Numbered]]]{
		Get: func(s *feedState) *loadable.Value[collection.Collection[record, page.Numbered]] { return &s.Feed },
	}
}

func feedActionPrism() flow.Prism[feedAction, LoadableAction[collection.Collection[record, page.Numbered]]] {
	return flow.Prism[feedAction, LoadableAction[collection.Collection[record, page.Numbered]]]{
		Match: func(a feedAction) (LoadableAction[collection.Collection[record, page.Numbered]], bool) {
			if a.loadable == nil {
				return LoadableAction[collection.Collection[record, page.Numbered]]{}, false
			}
			return *a.loadable, true
		},
		Build: func(la LoadableAction[collection.Collection[record, page.Numbered]]) feedAction {
			return feedAction{loadable: &la}
		},
	}
}

func idsOf(values []record) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.ID
	}
	return out
}

// feedHarness drains dispatched actions back through Reduce, the same
// single-loadable store shape loadable_test.go uses.
type feedHarness struct {
	t  *testing.T
	st *feedState
	p  *Paginated[feedState, feedAction, record, page.Numbered]

	mu      sync.Mutex
	pending []feedAction
}

func (h *feedHarness) dispatch(a feedAction) {
	effect := h.p.Reduce(h.st, a)
	effect.Run(context.Background(), func(next feedAction) {
		h.mu.Lock()
		h.pending = append(h.pending, next)
		h.mu.Unlock()
	})
	for {
		h.mu.Lock()
		if len(h.pending) == 0 {
			h.mu.Unlock()
			return
		}
		next := h.pending[0]
		h.pending = h.pending[1:]
		h.mu.Unlock()
		h.dispatch(next)
	}
}

func TestS5PaginatedAppend(t *testing.T) {
	t.Parallel()

	pages := [][]record{
		{{ID: "r1"}, {ID: "r2"}, {ID: "r3"}},
		{{ID: "r4"}, {ID: "r5"}, {ID: "r6"}},
		{{ID: "r7"}, {ID: "r8"}},
	}
	call := 0

	p, err := NewPaginated(PaginatedConfig[feedState, feedAction, record, page.Numbered]{
		Key:              "feed",
		Path:             feedLens(),
		Action:           feedActionPrism(),
		TriggerPredicate: func(a feedAction) bool { return a.loadMore },
		FirstPage:        func() page.Numbered { return page.NewNumbered(1) },
		LoadPage: func(ctx context.Context, p page.Numbered, s feedState) (page.Slice[record, page.Numbered], error) {
			idx := call
			call++
			values := pages[idx]
			var next *page.Numbered
			if idx+1 < len(pages) {
				n := page.NewNumbered(p.Number + 1)
				next = &n
			}
			return page.Slice[record, page.Numbered]{Values: values, Page: p, NextPage: next}, nil
		},
		FromInitial: func(slice page.Slice[record, page.Numbered]) collection.Collection[record, page.Numbered] {
			return collection.FromInitial[record, string, page.Numbered](slice)
		},
	}, nil)
	require.NoError(t, err)

	h := &feedHarness{t: t, st: &feedState{}, p: p}

	h.dispatch(feedAction{loadMore: true})
	cur := *h.st.Feed.CurrentValue()
	require.Equal(t, []string{"r1", "r2", "r3"}, idsOf(cur.Values()))
	require.Equal(t, page.NewNumbered(1), cur.LastPage())
	require.True(t, cur.HasNextPage())

	h.dispatch(feedAction{loadMore: true})
	cur = *h.st.Feed.CurrentValue()
	require.Equal(t, []string{"r1", "r2", "r3", "r4", "r5", "r6"}, idsOf(cur.Values()))
	require.Equal(t, page.NewNumbered(2), cur.LastPage())

	h.dispatch(feedAction{loadMore: true})
	cur = *h.st.Feed.CurrentValue()
	require.Equal(t, []string{"r1", "r2", "r3", "r4", "r5", "r6", "r7", "r8"}, idsOf(cur.Values()))
	require.False(t, cur.HasNextPage())

	h.dispatch(feedAction{loadMore: true})
	require.Equal(t, 3, call, "exhausted next page must not invoke LoadPage again")
}

func TestS6UpsertFirstWithDuplicateID(t *testing.T) {
	t.Parallel()

	upsertFirst := UpsertFirst
	p, err := NewPaginated(PaginatedConfig[feedState, feedAction, record, page.Numbered]{
		Key:              "feed",
		Path:             feedLens(),
		Action:           feedActionPrism(),
		TriggerPredicate: func(a feedAction) bool { return a.loadMore },
		FirstPage:        func() page.Numbered { return page.NewNumbered(1) },
		Mode:             func(feedState) LoadingMode { return upsertFirst },
		LoadPage: func(ctx context.Context, p page.Numbered, s feedState) (page.Slice[record, page.Numbered], error) {
			next := page.NewNumbered(2)
			return page.Slice[record, page.Numbered]{
				Values:   []record{{ID: "r3", Label: "second"}, {ID: "r4"}, {ID: "r5"}},
				Page:     p,
				NextPage: &next,
			}, nil
		},
		FromInitial: func(slice page.Slice[record, page.Numbered]) collection.Collection[record, page.Numbered] {
			return collection.FromInitial[record, string, page.Numbered](slice)
		},
	}, nil)
	require.NoError(t, err)

	h := &feedHarness{t: t, st: &feedState{}, p: p}

	existingNext := page.NewNumbered(5)
	var existing collection.Collection[record, page.Numbered] = collection.FromInitial[record, string, page.Numbered](page.Slice[record, page.Numbered]{
		Values:   []record{{ID: "r1"}, {ID: "r2"}, {ID: "r3", Label: "first"}, {ID: "r6"}},
		Page:     page.NewNumbered(1),
		NextPage: &existingNext,
	})
	h.st.Feed.SetValue(existing)

	h.dispatch(feedAction{loadMore: true})

	cur := *h.st.Feed.CurrentValue()
	require.Equal(t, []string{"r1", "r2", "r3", "r4", "r5", "r6"}, idsOf(cur.Values()))
	values := cur.Values()
	require.Equal(t, "second", values[2].Label)
	require.Equal(t, page.NewNumbered(5), *cur.NextPage(), "nextPage preserved from before this call")
}
