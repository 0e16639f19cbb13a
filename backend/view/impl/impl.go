package impl

import (
	"iter"
	"nebula/backend/types"
	"nebula/backend/view"

	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
	"golang.org/x/xerrors"
)

// NewView creates a new view. OrderBy and Equal must be set.
//
// - matches view.Factory
func NewView[T any](conf view.Configuration[T]) view.View[T] {
	if conf.OrderBy == nil || conf.Equal == nil {
		panic("view: OrderBy and Equal are required")
	}

	logger := newLogger(conf.Logger)
	groups := newGroups()

	v := orderedView[T]{
		conf:       conf,
		log:        logger,
		items:      []T{},
		diff:       newDiff(types.InitialMode),
		groups:     groups,
		prevGroups: groups.Clone(),
	}

	return &v
}

// Helper functions

func newLogger(base *zerolog.Logger) zerolog.Logger {
	if base == nil {
		return zerolog.Nop()
	}
	return base.With().Str("component", "view").Logger()
}

func newDiff(mode types.Mode) *Diff {
	return &Diff{
		mode:    mode,
		added:   []int{},
		removed: []int{},
		changed: []int{},
		moved:   []int{},
	}
}

func newGroups() *Groups {
	return &Groups{
		ranges: []types.Range{{Start: 0, End: 0}},
	}
}

// orderedView implements a sorted, grouped view over caller items.
//
// - implements view.View
type orderedView[T any] struct {
	conf       view.Configuration[T]
	log        zerolog.Logger
	items      []T     // sorted by conf.OrderBy
	diff       *Diff   // positions of the last Apply
	groups     *Groups // ranges of items
	prevGroups *Groups // ranges of items before the last Apply, for removed positions
}

// Item implements view.View
func (v *orderedView[T]) Item(i int) (T, error) {
	if i < 0 || i >= len(v.items) {
		var zero T
		return zero, xerrors.Errorf("item %d of %d: %w", i, len(v.items), view.ErrOutOfBounds)
	}
	return v.items[i], nil
}

// ItemAt implements view.View
func (v *orderedView[T]) ItemAt(c types.Coordinate) (T, error) {
	i, err := v.groups.Flat(c)
	if err != nil {
		var zero T
		return zero, err
	}
	return v.items[i], nil
}

// Len implements view.View
func (v *orderedView[T]) Len() int {
	return len(v.items)
}

// Items implements view.View
func (v *orderedView[T]) Items() []T {
	return slices.Clone(v.items)
}

// All implements view.View
func (v *orderedView[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.items {
			if !yield(item) {
				return
			}
		}
	}
}

// NumberOfGroups implements view.View
func (v *orderedView[T]) NumberOfGroups() int {
	return v.groups.Len()
}

// RangeOf implements view.View
func (v *orderedView[T]) RangeOf(g int) (types.Range, error) {
	return v.groups.RangeOf(g)
}

// Coordinate implements view.View
func (v *orderedView[T]) Coordinate(i int) (types.Coordinate, error) {
	return v.groups.Coordinate(i)
}

// Flat implements view.View
func (v *orderedView[T]) Flat(c types.Coordinate) (int, error) {
	return v.groups.Flat(c)
}
