package types

import (
	"fmt"

	"golang.org/x/xerrors"
)

// -----------------------------------------------------------------------------
// Mode

// Valid tells if the mode is one of the three known shapes.
func (m Mode) Valid() bool {
	switch m {
	case InitialMode, ListMode, ElementMode:
		return true
	default:
		return false
	}
}

// ParseMode returns the mode named by s.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", xerrors.Errorf("%q: %w", s, ErrUnknownMode)
	}
	return m, nil
}

// -----------------------------------------------------------------------------
// Delta

// IsEmpty tells if the delta carries nothing for its mode.
func (d Delta[T]) IsEmpty() bool {
	switch d.Mode {
	case InitialMode:
		return len(d.Items) == 0
	case ListMode:
		return len(d.Added) == 0 && len(d.Removed) == 0
	case ElementMode:
		return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0 && len(d.Moved) == 0
	default:
		return true
	}
}

// Concat appends the payload of other to a copy of d. Both deltas must share
// the same mode.
func (d Delta[T]) Concat(other Delta[T]) (Delta[T], error) {
	if d.Mode != other.Mode {
		return Delta[T]{}, xerrors.Errorf("cannot concat %s with %s: %w", d.Mode, other.Mode, ErrModeMismatch)
	}

	switch d.Mode {
	case InitialMode:
		return NewInitialDelta(concat(d.Items, other.Items)), nil
	case ListMode:
		return NewListDelta(concat(d.Added, other.Added), concat(d.Removed, other.Removed)), nil
	case ElementMode:
		return NewElementDelta(
			concat(d.Added, other.Added),
			concat(d.Removed, other.Removed),
			concat(d.Changed, other.Changed),
			concat(d.Moved, other.Moved),
		), nil
	default:
		return Delta[T]{}, xerrors.Errorf("%q: %w", d.Mode, ErrUnknownMode)
	}
}

// Counts returns the size of each category. Items of an initial delta count
// as added.
func (d Delta[T]) Counts() Counts {
	switch d.Mode {
	case InitialMode:
		return Counts{Added: len(d.Items)}
	case ListMode:
		return Counts{Added: len(d.Added), Removed: len(d.Removed)}
	case ElementMode:
		return Counts{Added: len(d.Added), Removed: len(d.Removed), Changed: len(d.Changed), Moved: len(d.Moved)}
	default:
		return Counts{}
	}
}

// String implements fmt.Stringer.
func (d Delta[T]) String() string {
	return describe(d.Mode, d.Counts())
}

// -----------------------------------------------------------------------------
// Counts

// String implements fmt.Stringer.
func (c Counts) String() string {
	return fmt.Sprintf("∑: %d added, %d removed, %d changed, %d moved", c.Added, c.Removed, c.Changed, c.Moved)
}

// -----------------------------------------------------------------------------
// Indexes

// IsEmpty tells if the batch carries no position for its mode.
func (ix Indexes[P]) IsEmpty() bool {
	switch ix.Mode {
	case InitialMode:
		return len(ix.All) == 0
	case ListMode:
		return len(ix.Added) == 0 && len(ix.Removed) == 0
	case ElementMode:
		return len(ix.Added) == 0 && len(ix.Removed) == 0 && len(ix.Changed) == 0 && len(ix.Moved) == 0
	default:
		return true
	}
}

// Counts returns the size of each category. Positions of an initial batch
// count as added.
func (ix Indexes[P]) Counts() Counts {
	switch ix.Mode {
	case InitialMode:
		return Counts{Added: len(ix.All)}
	case ListMode:
		return Counts{Added: len(ix.Added), Removed: len(ix.Removed)}
	case ElementMode:
		return Counts{Added: len(ix.Added), Removed: len(ix.Removed), Changed: len(ix.Changed), Moved: len(ix.Moved)}
	default:
		return Counts{}
	}
}

// String implements fmt.Stringer.
func (ix Indexes[P]) String() string {
	return describe(ix.Mode, ix.Counts())
}

// MapIndexes converts every position of in with f. It stops at the first
// error.
func MapIndexes[P, Q any](in Indexes[P], f func(P) (Q, error)) (Indexes[Q], error) {
	out := Indexes[Q]{Mode: in.Mode}

	var err error
	if out.All, err = mapPositions(in.All, f); err != nil {
		return Indexes[Q]{}, err
	}
	if out.Added, err = mapPositions(in.Added, f); err != nil {
		return Indexes[Q]{}, err
	}
	if out.Removed, err = mapPositions(in.Removed, f); err != nil {
		return Indexes[Q]{}, err
	}
	if out.Changed, err = mapPositions(in.Changed, f); err != nil {
		return Indexes[Q]{}, err
	}
	if out.Moved, err = mapPositions(in.Moved, f); err != nil {
		return Indexes[Q]{}, err
	}

	return out, nil
}

// -----------------------------------------------------------------------------
// Coordinate and Range

// Less orders coordinates group first, then offset.
func (c Coordinate) Less(other Coordinate) bool {
	if c.Group != other.Group {
		return c.Group < other.Group
	}
	return c.Offset < other.Offset
}

// String implements fmt.Stringer.
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Group, c.Offset)
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains tells if the flat index i belongs to the range.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// String implements fmt.Stringer.
func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Utils

func describe(mode Mode, c Counts) string {
	switch mode {
	case InitialMode:
		return fmt.Sprintf("Δ:initial: %d", c.Added)
	case ListMode:
		return fmt.Sprintf("Δ:list: %d added, %d removed", c.Added, c.Removed)
	case ElementMode:
		return fmt.Sprintf("Δ:element: %d added, %d removed, %d changed, %d moved", c.Added, c.Removed, c.Changed, c.Moved)
	default:
		return fmt.Sprintf("Δ:%s", string(mode))
	}
}

func concat[T any](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func mapPositions[P, Q any](in []P, f func(P) (Q, error)) ([]Q, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]Q, len(in))
	for i, p := range in {
		q, err := f(p)
		if err != nil {
			return nil, err
		}
		out[i] = q
	}
	return out, nil
}
