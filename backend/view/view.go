package view

import (
	"cmp"
	"iter"
	"nebula/backend/types"

	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

// ErrOutOfBounds is returned when a flat index, a group or an offset does not
// exist in the view.
var ErrOutOfBounds = xerrors.New("index out of bounds")

// Factory creates a View from a configuration.
type Factory[T any] func(Configuration[T]) View[T]

// Configuration holds the caller-supplied functions of a view. They are fixed
// for the lifetime of the view.
type Configuration[T any] struct {
	// OrderBy is a strict weak ordering: OrderBy(a, b) reports a < b.
	OrderBy func(a, b T) bool

	// Equal tells if two items are the same item. It is used to locate removed,
	// changed, added and moved items, so it usually compares a key and not the
	// whole payload.
	Equal func(a, b T) bool

	// GroupBy classifies an item into a group key. Optional: when nil the
	// view has a single group 0. Items of one group must be contiguous under
	// OrderBy.
	GroupBy func(T) int

	// Logger receives debug traces. Optional.
	Logger *zerolog.Logger
}

// View maintains a sorted sequence of items and translates edit batches into
// index batches.
//
// A View is not safe for concurrent use: only one goroutine may call Apply at
// a time, and reads during an Apply are undefined.
type View[T any] interface {
	// Apply mutates the sequence according to delta and returns the positions
	// that changed. Removed positions refer to the sequence before the edit,
	// all other positions to the sequence after it.
	Apply(delta types.Delta[T]) (types.Indexes[int], error)

	// Indexes re-expresses the last batch returned by Apply under mode.
	Indexes(mode types.Mode) types.Indexes[int]

	// Coordinates is like Indexes with positions translated to groups.
	Coordinates(mode types.Mode) (types.Indexes[types.Coordinate], error)

	// Item returns the item at flat index i.
	Item(i int) (T, error)

	// ItemAt returns the item at coordinate c.
	ItemAt(c types.Coordinate) (T, error)

	// Len returns the number of items.
	Len() int

	// Items returns a copy of the sequence.
	Items() []T

	// All iterates over the current sequence in order.
	All() iter.Seq[T]

	// NumberOfGroups returns the number of groups. An empty view has one
	// empty group.
	NumberOfGroups() int

	// RangeOf returns the flat indices of group g.
	RangeOf(g int) (types.Range, error)

	// Coordinate translates a flat index to a coordinate.
	Coordinate(i int) (types.Coordinate, error)

	// Flat translates a coordinate to a flat index.
	Flat(c types.Coordinate) (int, error)
}

// Ordered returns the configuration of a view over naturally ordered values:
// items are sorted with < and compared with ==.
func Ordered[T cmp.Ordered]() Configuration[T] {
	return Configuration[T]{
		OrderBy: cmp.Less[T],
		Equal:   EqualComparable[T],
	}
}

// EqualByKey builds an equality function that compares the keys of two items.
func EqualByKey[T any, K comparable](key func(T) K) func(a, b T) bool {
	return func(a, b T) bool {
		return key(a) == key(b)
	}
}

// EqualComparable compares two items with ==.
func EqualComparable[T comparable](a, b T) bool {
	return a == b
}
