package impl

import (
	"nebula/backend/types"

	"golang.org/x/exp/slices"
	"golang.org/x/xerrors"
)

// Apply implements view.View
func (v *orderedView[T]) Apply(delta types.Delta[T]) (types.Indexes[int], error) {
	switch delta.Mode {
	case types.InitialMode:
		v.replace(delta.Items)
	case types.ListMode:
		// moved hints have no meaning for a list edit
		v.process(types.ListMode, delta.Added, delta.Removed, nil, nil)
	case types.ElementMode:
		v.process(types.ElementMode, delta.Added, delta.Removed, delta.Changed, delta.Moved)
	default:
		return types.Indexes[int]{}, xerrors.Errorf("failed to apply delta: %w", types.ErrUnknownMode)
	}

	indexes := v.Indexes(delta.Mode)
	v.log.Debug().Msgf("Apply %s: %s, %d items in %d groups", delta, indexes, len(v.items), v.groups.Len())

	return indexes, nil
}

// Indexes implements view.View
func (v *orderedView[T]) Indexes(mode types.Mode) types.Indexes[int] {
	return v.diff.Indexes(mode, len(v.items))
}

// Coordinates implements view.View. Removed positions are translated with the
// groups that were current before the last Apply.
func (v *orderedView[T]) Coordinates(mode types.Mode) (types.Indexes[types.Coordinate], error) {
	flat := v.Indexes(mode)

	removed := flat.Removed
	flat.Removed = nil

	coords, err := types.MapIndexes(flat, v.groups.Coordinate)
	if err != nil {
		return types.Indexes[types.Coordinate]{}, xerrors.Errorf("failed to translate positions: %w", err)
	}

	if removed != nil {
		before := types.Indexes[int]{Mode: mode, Removed: removed}
		removedCoords, err := types.MapIndexes(before, v.prevGroups.Coordinate)
		if err != nil {
			return types.Indexes[types.Coordinate]{}, xerrors.Errorf("failed to translate removed positions: %w", err)
		}
		coords.Removed = removedCoords.Removed
	}

	return coords, nil
}

// replace discards the sequence and takes items, sorted, as the new content.
func (v *orderedView[T]) replace(items []T) {
	v.prevGroups = v.groups.Clone()
	v.diff.Reset(types.InitialMode)

	v.items = slices.Clone(items)
	if v.items == nil {
		v.items = []T{}
	}
	v.sort()
}

// process applies an incremental edit. The order of the steps matters:
// removed positions are relative to the content before the edit, every other
// position to the content after it.
//
// Every item is carried through the re-sort together with its position before
// the edit, so added and changed positions are read from where each item lands
// and never searched for by equality. A change that moves the item relative to
// the others is reported as a removal at its old position and an addition at
// its new one.
func (v *orderedView[T]) process(mode types.Mode, added, removed, changed, moved []T) {
	v.prevGroups = v.groups.Clone()
	v.diff.Reset(mode)

	before := v.items
	compare := lessToCompare(v.conf.OrderBy)

	// Deletes must be located first, while the indexes still refer to the old content
	v.diff.removed = claimIndexes(before, removed, v.conf.Equal)
	if skipped := len(removed) - len(v.diff.removed); skipped > 0 {
		v.log.Debug().Msgf("%d removed items not found, skipped", skipped)
	}

	entries := make([]entry[T], 0, len(before)-len(v.diff.removed)+len(added))
	next := 0
	for i, item := range before {
		if next < len(v.diff.removed) && v.diff.removed[next] == i {
			next++
			continue
		}
		entries = append(entries, entry[T]{item: item, from: i})
	}

	for _, element := range changed {
		k := locate(entries, element, v.conf.Equal)
		if k < 0 {
			v.log.Debug().Msg("changed item not found, skipped")
			continue
		}
		entries[k].item = element
		entries[k].changed = true
	}

	for _, element := range added {
		entries = append(entries, entry[T]{item: element, from: -1})
	}

	slices.SortStableFunc(entries, func(a, b entry[T]) int {
		return compare(a.item, b.item)
	})

	v.items = make([]T, len(entries))
	for i, e := range entries {
		v.items[i] = e.item

		switch {
		case e.from < 0:
			v.diff.added = append(v.diff.added, i)
		case !e.changed:
		case compare(before[e.from], e.item) != 0:
			v.diff.removed = append(v.diff.removed, e.from)
			v.diff.added = append(v.diff.added, i)
		default:
			v.diff.changed = append(v.diff.changed, i)
		}
	}
	slices.Sort(v.diff.removed)

	v.groups.Reset(deriveGroups(v.items, v.conf.GroupBy))

	// moved hints name items, not positions
	v.diff.moved = claimIndexes(v.items, moved, v.conf.Equal)
}

// sort restores the order of the sequence and derives the groups again. The
// sort is stable, so an already sorted sequence keeps its order.
func (v *orderedView[T]) sort() {
	slices.SortStableFunc(v.items, lessToCompare(v.conf.OrderBy))
	v.groups.Reset(deriveGroups(v.items, v.conf.GroupBy))
}
