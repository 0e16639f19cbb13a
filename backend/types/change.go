package types

import "golang.org/x/xerrors"

// String implements fmt.Stringer.
func (k ChangeKind) String() string {
	switch k {
	case Deleted:
		return "deleted"
	case Inserted:
		return "inserted"
	case Unchanged:
		return "unchanged"
	case Updated:
		return "updated"
	default:
		return "unknown"
	}
}

// DeltaFromChanges folds a change stream into a delta of the given mode.
//
//   - InitialMode: every value that is not deleted becomes an item.
//   - ListMode: inserted values are added, deleted values are removed.
//   - ElementMode: like ListMode, updated values are changed, and unchanged
//     values are reported as moved once an insertion or a deletion was seen
//     earlier in the stream.
func DeltaFromChanges[T any](changes []Change[T], mode Mode) (Delta[T], error) {
	if !mode.Valid() {
		return Delta[T]{}, xerrors.Errorf("%q: %w", mode, ErrUnknownMode)
	}

	var items, added, removed, changed, moved []T
	hasMovement := false

	for _, change := range changes {
		switch mode {
		case InitialMode:
			if change.Kind != Deleted {
				items = append(items, change.Value)
			}
		case ListMode:
			switch change.Kind {
			case Deleted:
				removed = append(removed, change.Value)
			case Inserted:
				added = append(added, change.Value)
			}
		case ElementMode:
			switch change.Kind {
			case Deleted:
				removed = append(removed, change.Value)
			case Inserted:
				added = append(added, change.Value)
			case Updated:
				changed = append(changed, change.Value)
			case Unchanged:
				if hasMovement {
					moved = append(moved, change.Value)
				}
			}
		}

		if change.Kind == Inserted || change.Kind == Deleted {
			hasMovement = true
		}
	}

	switch mode {
	case InitialMode:
		return NewInitialDelta(items), nil
	case ListMode:
		return NewListDelta(added, removed), nil
	default:
		return NewElementDelta(added, removed, changed, moved), nil
	}
}

// CountChanges counts each kind of change, with the same movement rule as
// DeltaFromChanges in ElementMode.
func CountChanges[T any](changes []Change[T]) Counts {
	var c Counts
	hasMovement := false

	for _, change := range changes {
		switch change.Kind {
		case Deleted:
			c.Removed++
			hasMovement = true
		case Inserted:
			c.Added++
			hasMovement = true
		case Updated:
			c.Changed++
		case Unchanged:
			if hasMovement {
				c.Moved++
			}
		}
	}
	return c
}

// HasChanges tells if the stream adds, removes or updates anything.
func HasChanges[T any](changes []Change[T]) bool {
	c := CountChanges(changes)
	return c.Changed > 0 || c.Added > 0 || c.Removed > 0
}

// Normalized drops deleted values and marks every remaining value unchanged.
func Normalized[T any](changes []Change[T]) []Change[T] {
	result := make([]Change[T], 0, len(changes))
	for _, change := range changes {
		if change.Kind == Deleted {
			continue
		}
		result = append(result, Change[T]{Kind: Unchanged, Value: change.Value})
	}
	return result
}

// Insertions returns the inserted values, in stream order.
func Insertions[T any](changes []Change[T]) []T {
	return valuesOf(changes, Inserted)
}

// Deletions returns the deleted values, in stream order.
func Deletions[T any](changes []Change[T]) []T {
	return valuesOf(changes, Deleted)
}

func valuesOf[T any](changes []Change[T], kind ChangeKind) []T {
	var result []T
	for _, change := range changes {
		if change.Kind == kind {
			result = append(result, change.Value)
		}
	}
	return result
}
