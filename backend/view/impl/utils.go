package impl

import (
	"nebula/backend/types"

	"golang.org/x/exp/slices"
)

// Diff holds the flat positions computed by the last Apply.
type Diff struct {
	mode    types.Mode
	added   []int // after the edit
	removed []int // before the edit
	changed []int // after the edit
	moved   []int // after the edit
}

// Reset clears every category and sets the mode.
func (d *Diff) Reset(mode types.Mode) {
	d.mode = mode
	d.added = []int{}
	d.removed = []int{}
	d.changed = []int{}
	d.moved = []int{}
}

// Mode returns the mode of the last Apply.
func (d *Diff) Mode() types.Mode {
	return d.mode
}

// Indexes copies the diff into an index batch of the given mode. all is the
// number of items, used only in InitialMode.
func (d *Diff) Indexes(mode types.Mode, all int) types.Indexes[int] {
	switch mode {
	case types.InitialMode:
		return types.Indexes[int]{Mode: mode, All: enumerate(all)}
	case types.ListMode:
		return types.Indexes[int]{
			Mode:    mode,
			Added:   slices.Clone(d.added),
			Removed: slices.Clone(d.removed),
		}
	case types.ElementMode:
		return types.Indexes[int]{
			Mode:    mode,
			Added:   slices.Clone(d.added),
			Removed: slices.Clone(d.removed),
			Changed: slices.Clone(d.changed),
			Moved:   slices.Clone(d.moved),
		}
	default:
		return types.Indexes[int]{Mode: mode}
	}
}

// Utils

// lessToCompare turns a strict ordering into a three-way comparison.
func lessToCompare[T any](less func(a, b T) bool) func(a, b T) int {
	return func(a, b T) int {
		if less(a, b) {
			return -1
		}
		if less(b, a) {
			return 1
		}
		return 0
	}
}

// entry is an item of a sequence being edited. from is its position before
// the edit, -1 for an added item.
type entry[T any] struct {
	item    T
	from    int
	changed bool
}

// locate returns the first entry equal to x that was not changed yet. When
// every equal entry was already changed, the first of them is returned so the
// last change wins. It returns -1 when no entry is equal to x.
func locate[T any](entries []entry[T], x T, equal func(a, b T) bool) int {
	fallback := -1
	for k, e := range entries {
		if !equal(e.item, x) {
			continue
		}
		if !e.changed {
			return k
		}
		if fallback < 0 {
			fallback = k
		}
	}
	return fallback
}

// claimIndexes locates every wanted item in items and returns the ascending
// positions found. Each position is claimed once, so repeated equal items
// resolve to distinct positions while any remain. Items that cannot be found
// are skipped.
func claimIndexes[T any](items []T, wanted []T, equal func(a, b T) bool) []int {
	positions := make([]int, 0, len(wanted))
	claimed := make(map[int]struct{}, len(wanted))

	for _, w := range wanted {
		found := -1
		for i, item := range items {
			if _, taken := claimed[i]; taken {
				continue
			}
			if equal(item, w) {
				found = i
				break
			}
		}
		if found < 0 {
			continue
		}
		claimed[found] = struct{}{}
		positions = append(positions, found)
	}

	slices.Sort(positions)
	return positions
}

func enumerate(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
