package reducer

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/mauzec/loadable/loadable"
	"github.com/mauzec/loadable/loadable/collection"
	"github.com/mauzec/loadable/loadable/flow"
	"github.com/mauzec/loadable/loadable/page"
)

// listActionKind tags the opinionated action vocabulary List intercepts.
type listActionKind int

const (
	listOnFirstAppear listActionKind = iota
	listPullToRefresh
	listReachedEndOfPage
	listRetry
	listRemove
	listUpdate
)

// ListAction is the sum type of actions List's ListAction prism extracts
// from the host's action type A.
type ListAction[Elem any, ID comparable] struct {
	kind   listActionKind
	ids    []ID
	update *Elem
}

// OnFirstAppear requests the first load of a view's lifetime.
func OnFirstAppear[Elem any, ID comparable]() ListAction[Elem, ID] {
	return ListAction[Elem, ID]{kind: listOnFirstAppear}
}

// PullToRefresh requests a full reload that keeps the current value visible
// while it runs.
func PullToRefresh[Elem any, ID comparable]() ListAction[Elem, ID] {
	return ListAction[Elem, ID]{kind: listPullToRefresh}
}

// ReachedEndOfPage requests the next page be appended.
func ReachedEndOfPage[Elem any, ID comparable]() ListAction[Elem, ID] {
	return ListAction[Elem, ID]{kind: listReachedEndOfPage}
}

// Retry requests the same load onFirstAppear would.
func Retry[Elem any, ID comparable]() ListAction[Elem, ID] {
	return ListAction[Elem, ID]{kind: listRetry}
}

// Remove drops the given ids from the collection without affecting load
// state.
func Remove[Elem any, ID comparable](ids ...ID) ListAction[Elem, ID] {
	return ListAction[Elem, ID]{kind: listRemove, ids: ids}
}

// Update upserts v into the collection by identity without affecting load
// state.
func Update[Elem any, ID comparable](v Elem) ListAction[Elem, ID] {
	return ListAction[Elem, ID]{kind: listUpdate, update: &v}
}

// ListConfig is the construction-time configuration of a List.
type ListConfig[S, A any, Elem collection.Identifiable[ID], ID comparable, P any] struct {
	Key string `validate:"required"`

	Path       flow.Lens[S, loadable.Value[collection.Collection[Elem, P]]]  `validate:"required"`
	Action     flow.Prism[A, LoadableAction[collection.Collection[Elem, P]]] `validate:"required"`
	ListAction flow.Prism[A, ListAction[Elem, ID]]                          `validate:"required"`

	Guard     func(S) bool
	FirstPage func() P                                                      `validate:"required"`
	LoadPage  func(ctx context.Context, p P, state S) (page.Slice[Elem, P], error) `validate:"required"`

	AnimationHint any
	Observe       func(key string, v loadable.Value[collection.Collection[Elem, P]])
}

// List is the opinionated preset for list UIs: onFirstAppear/retry/
// pullToRefresh/reachedEndOfPage drive the load cycle; remove/update mutate
// the collection directly, without going through a load.
type List[S, A any, Elem collection.Identifiable[ID], ID comparable, P any] struct {
	cfg  ListConfig[S, A, Elem, ID, P]
	mode LoadingMode

	paginated *Paginated[S, A, Elem, P]
}

// NewList validates cfg and wires a Paginated loadable whose Mode is driven
// by the intercepted list actions rather than by host state.
func NewList[S, A any, Elem collection.Identifiable[ID], ID comparable, P any](cfg ListConfig[S, A, Elem, ID, P], inner flow.Reducer[S, A]) (*List[S, A, Elem, ID, P], error) {
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, err
	}

	l := &List[S, A, Elem, ID, P]{cfg: cfg, mode: UpsertNext}

	paginated, err := NewPaginated(PaginatedConfig[S, A, Elem, P]{
		Key:       cfg.Key,
		Path:      cfg.Path,
		Action:    cfg.Action,
		Guard:     cfg.Guard,
		FirstPage: cfg.FirstPage,
		Mode:      func(S) LoadingMode { return l.mode },
		LoadPage:  cfg.LoadPage,
		FromInitial: func(slice page.Slice[Elem, P]) collection.Collection[Elem, P] {
			return collection.FromInitial[Elem, ID, P](slice)
		},
		AnimationHint: cfg.AnimationHint,
		Observe:       cfg.Observe,
	}, inner)
	if err != nil {
		return nil, err
	}
	l.paginated = paginated
	return l, nil
}

// Reduce implements flow.Reducer[S, A].
func (l *List[S, A, Elem, ID, P]) Reduce(state *S, action A) flow.Effect[A] {
	if la, ok := l.cfg.ListAction.Match(action); ok {
		switch la.kind {
		case listOnFirstAppear, listRetry:
			l.mode = Reload
			l.cfg.Path.Get(state).ReadyToLoad()
		case listPullToRefresh:
			l.mode = Reload
			l.cfg.Path.Get(state).MarkAsStale()
		case listReachedEndOfPage:
			l.mode = UpsertNext
			l.cfg.Path.Get(state).MarkAsStale()
		case listRemove:
			l.remove(state, la.ids)
			return flow.None[A]()
		case listUpdate:
			l.update(state, *la.update)
			return flow.None[A]()
		}
	}

	return l.paginated.Reduce(state, action)
}

// remove drops ids from the collection in place, leaving lastPage/nextPage
// and the load variant untouched.
func (l *List[S, A, Elem, ID, P]) remove(state *S, ids []ID) {
	path := l.cfg.Path.Get(state)
	current := path.CurrentValue()
	if current == nil || len(ids) == 0 {
		return
	}

	drop := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	cur := *current
	kept := make([]Elem, 0, len(cur.Values()))
	for _, v := range cur.Values() {
		if _, skip := drop[v.Identity()]; !skip {
			kept = append(kept, v)
		}
	}

	var rebuilt collection.Collection[Elem, P] = collection.FromInitial[Elem, ID, P](page.Slice[Elem, P]{
		Values:   kept,
		Page:     cur.LastPage(),
		NextPage: cur.NextPage(),
	})
	path.MutateCurrentValue(&rebuilt)
}

// update upserts v into the collection in place by identity, leaving
// lastPage/nextPage and the load variant untouched.
func (l *List[S, A, Elem, ID, P]) update(state *S, v Elem) {
	path := l.cfg.Path.Get(state)
	current := path.CurrentValue()
	if current == nil {
		return
	}

	cur := *current
	merged := cur.UpsertAppending(page.Slice[Elem, P]{
		Values:   []Elem{v},
		Page:     cur.LastPage(),
		NextPage: cur.NextPage(),
	})
	path.MutateCurrentValue(&merged)
}
