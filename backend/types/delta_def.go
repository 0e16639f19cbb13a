package types

import "golang.org/x/xerrors"

// Mode tags the shape of a Delta or of an Indexes batch.
type Mode string

const (
	// InitialMode replaces the whole content.
	InitialMode Mode = "initial"
	// ListMode carries added and removed items.
	ListMode Mode = "list"
	// ElementMode carries added, removed, changed and moved items.
	ElementMode Mode = "element"
)

var (
	// ErrUnknownMode is returned when a batch carries a mode that is not one
	// of InitialMode, ListMode or ElementMode.
	ErrUnknownMode = xerrors.New("unknown mode")
	// ErrModeMismatch is returned when two batches of different modes are
	// combined.
	ErrModeMismatch = xerrors.New("mode mismatch")
)

// -------------------------------------------------------------------
// Edit batches

// Delta describes a pending change set for a view. Only the payload fields
// owned by Mode are meaningful:
//
//   - InitialMode: Items
//   - ListMode: Added, Removed
//   - ElementMode: Added, Removed, Changed, Moved
type Delta[T any] struct {
	Mode Mode

	Items   []T
	Added   []T
	Removed []T
	Changed []T // replaced in place, same equality key
	Moved   []T // hints, never computed by the view
}

// NewInitialDelta creates a full replacement batch.
func NewInitialDelta[T any](items []T) Delta[T] {
	return Delta[T]{Mode: InitialMode, Items: items}
}

// NewListDelta creates a list edit.
func NewListDelta[T any](added, removed []T) Delta[T] {
	return Delta[T]{Mode: ListMode, Added: added, Removed: removed}
}

// NewElementDelta creates an element edit.
func NewElementDelta[T any](added, removed, changed, moved []T) Delta[T] {
	return Delta[T]{
		Mode:    ElementMode,
		Added:   added,
		Removed: removed,
		Changed: changed,
		Moved:   moved,
	}
}

// Counts holds the size of each category of a batch.
type Counts struct {
	Added   int
	Removed int
	Changed int
	Moved   int
}

// -------------------------------------------------------------------
// Index batches

// Coordinate is a position inside a grouped view.
type Coordinate struct {
	Group  int
	Offset int
}

// Range is a half-open span [Start, End) of flat indices.
type Range struct {
	Start int
	End   int
}

// Indexes is the positional result of applying a Delta. P is either a flat
// index (int) or a Coordinate. Every category is sorted ascending.
type Indexes[P any] struct {
	Mode Mode

	All     []P // InitialMode only: every position of the new content
	Added   []P
	Removed []P // relative to the content before the edit
	Changed []P
	Moved   []P
}

// -------------------------------------------------------------------
// Change streams

// ChangeKind is the status of a value inside a change stream.
type ChangeKind int

const (
	Deleted ChangeKind = iota
	Inserted
	Unchanged
	Updated
)

// Change is one entry of a change stream produced by a data source.
type Change[T any] struct {
	Kind  ChangeKind
	Value T
}
