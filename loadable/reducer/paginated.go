package reducer

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mauzec/loadable/loadable"
	"github.com/mauzec/loadable/loadable/collection"
	"github.com/mauzec/loadable/loadable/flow"
	"github.com/mauzec/loadable/loadable/page"
)

// PaginatedConfig is the construction-time configuration of a Paginated
// loadable. Elem is the element type carried by each page; the loadable's
// own value type is the collection.Collection[Elem, P] capability set
// itself, so any Collection implementation — Identified or a user-defined
// aggregate — can stand in for V without the reducer caring which.
type PaginatedConfig[S, A, Elem, P any] struct {
	Key string `validate:"required"`

	Path   flow.Lens[S, loadable.Value[collection.Collection[Elem, P]]]  `validate:"required"`
	Action flow.Prism[A, LoadableAction[collection.Collection[Elem, P]]] `validate:"required"`

	TriggerPredicate func(A) bool
	// Guard is consulted after the UpsertNext/no-next-page check; composed
	// by conjunction, not in place of it.
	Guard func(S) bool

	// FirstPage is nullary so the first page can be time-dependent (e.g. a
	// page.Timestamped anchored to "now").
	FirstPage func() P `validate:"required"`
	// Mode selects the merge strategy for the next load. Defaults to a
	// constant UpsertNext.
	Mode func(S) LoadingMode

	LoadPage func(ctx context.Context, p P, state S) (page.Slice[Elem, P], error) `validate:"required"`
	// FromInitial constructs the collection from a first page. Typically
	// collection.FromInitial instantiated for the chosen element/id types.
	FromInitial func(page.Slice[Elem, P]) collection.Collection[Elem, P] `validate:"required"`

	AnimationHint any
	Observe       func(key string, v loadable.Value[collection.Collection[Elem, P]])
}

func (c *PaginatedConfig[S, A, Elem, P]) setDefaults() {
	if c.TriggerPredicate == nil {
		c.TriggerPredicate = func(A) bool { return false }
	}
	if c.Mode == nil {
		c.Mode = func(S) LoadingMode { return UpsertNext }
	}
}

// Paginated wraps Loadable, supplying its Load closure from LoadPage/
// FromInitial/Mode per the merge-mode table: no current value loads and
// builds fresh regardless of mode; UpsertNext advances to the next page and
// appends; UpsertFirst reloads the first page and prepends; Reload replaces
// the collection outright.
type Paginated[S, A, Elem, P any] struct {
	cfg  PaginatedConfig[S, A, Elem, P]
	core *Loadable[S, A, collection.Collection[Elem, P]]
}

// NewPaginated validates cfg and wires a Loadable around its derived Load
// and Precondition.
func NewPaginated[S, A, Elem, P any](cfg PaginatedConfig[S, A, Elem, P], inner flow.Reducer[S, A]) (*Paginated[S, A, Elem, P], error) {
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, err
	}
	cfg.setDefaults()

	p := &Paginated[S, A, Elem, P]{cfg: cfg}
	core, err := New(Config[S, A, collection.Collection[Elem, P]]{
		Key:              cfg.Key,
		Path:             cfg.Path,
		Action:           cfg.Action,
		TriggerPredicate: cfg.TriggerPredicate,
		Precondition:     p.precondition,
		Load:             p.load,
		AnimationHint:    cfg.AnimationHint,
		Observe:          cfg.Observe,
	}, inner)
	if err != nil {
		return nil, err
	}
	p.core = core
	return p, nil
}

// Reduce implements flow.Reducer[S, A].
func (p *Paginated[S, A, Elem, P]) Reduce(state *S, action A) flow.Effect[A] {
	return p.core.Reduce(state, action)
}

// precondition skips the load outright when UpsertNext has nothing left to
// page through, then composes the user-supplied Guard by conjunction.
func (p *Paginated[S, A, Elem, P]) precondition(state S) bool {
	if p.cfg.Mode(state) == UpsertNext {
		path := p.cfg.Path.Get(&state)
		if current := path.CurrentValue(); current != nil && !(*current).HasNextPage() {
			return false
		}
	}
	if p.cfg.Guard != nil {
		return p.cfg.Guard(state)
	}
	return true
}

func (p *Paginated[S, A, Elem, P]) load(ctx context.Context, state S) (*collection.Collection[Elem, P], error) {
	path := p.cfg.Path.Get(&state)
	current := path.CurrentValue()

	if current == nil {
		return p.loadFresh(ctx, state)
	}

	switch mode := p.cfg.Mode(state); mode {
	case UpsertNext:
		cur := *current
		next := cur.NextPage()
		if next == nil {
			return nil, Cancelled
		}
		slice, err := p.cfg.LoadPage(ctx, *next, state)
		if err != nil {
			return nil, err
		}
		merged := cur.UpsertAppending(slice)
		return &merged, nil

	case UpsertFirst:
		slice, err := p.cfg.LoadPage(ctx, p.cfg.FirstPage(), state)
		if err != nil {
			return nil, err
		}
		merged := (*current).UpsertPrepending(slice)
		return &merged, nil

	case Reload:
		return p.loadFresh(ctx, state)

	default:
		return nil, fmt.Errorf("reducer: unknown loading mode %v", mode)
	}
}

func (p *Paginated[S, A, Elem, P]) loadFresh(ctx context.Context, state S) (*collection.Collection[Elem, P], error) {
	slice, err := p.cfg.LoadPage(ctx, p.cfg.FirstPage(), state)
	if err != nil {
		return nil, err
	}
	fresh := p.cfg.FromInitial(slice)
	return &fresh, nil
}
