package impl

import (
	"nebula/backend/types"
	"nebula/backend/view"
	"sort"

	"golang.org/x/exp/slices"
	"golang.org/x/xerrors"
)

// Groups holds the contiguous ranges of a sorted sequence that share the same
// group key, in sequence order. There is always at least one range: an empty
// sequence has the single range [0,0).
type Groups struct {
	ranges []types.Range
}

// deriveGroups splits items into maximal runs of equal groupBy keys. A nil
// groupBy puts every item in group 0.
func deriveGroups[T any](items []T, groupBy func(T) int) []types.Range {
	if len(items) == 0 {
		return []types.Range{{Start: 0, End: 0}}
	}
	if groupBy == nil {
		return []types.Range{{Start: 0, End: len(items)}}
	}

	ranges := make([]types.Range, 0, 1)
	start := 0
	key := groupBy(items[0])

	for i := 1; i < len(items); i++ {
		next := groupBy(items[i])
		if next != key {
			ranges = append(ranges, types.Range{Start: start, End: i})
			start = i
			key = next
		}
	}

	return append(ranges, types.Range{Start: start, End: len(items)})
}

// Reset replaces the ranges.
func (g *Groups) Reset(ranges []types.Range) {
	g.ranges = ranges
}

// Clone returns an independent copy of the groups.
func (g *Groups) Clone() *Groups {
	return &Groups{ranges: slices.Clone(g.ranges)}
}

// Len returns the number of groups.
func (g *Groups) Len() int {
	return len(g.ranges)
}

// Ranges returns a copy of every range.
func (g *Groups) Ranges() []types.Range {
	return slices.Clone(g.ranges)
}

// RangeOf returns the range of group index.
func (g *Groups) RangeOf(index int) (types.Range, error) {
	if index < 0 || index >= len(g.ranges) {
		return types.Range{}, xerrors.Errorf("group %d of %d: %w", index, len(g.ranges), view.ErrOutOfBounds)
	}
	return g.ranges[index], nil
}

// Coordinate translates a flat index into (group, offset).
func (g *Groups) Coordinate(i int) (types.Coordinate, error) {
	total := g.ranges[len(g.ranges)-1].End
	if i < 0 || i >= total {
		return types.Coordinate{}, xerrors.Errorf("flat index %d of %d: %w", i, total, view.ErrOutOfBounds)
	}

	// first range that ends after i
	group := sort.Search(len(g.ranges), func(k int) bool {
		return g.ranges[k].End > i
	})

	return types.Coordinate{Group: group, Offset: i - g.ranges[group].Start}, nil
}

// Flat translates (group, offset) into a flat index.
func (g *Groups) Flat(c types.Coordinate) (int, error) {
	r, err := g.RangeOf(c.Group)
	if err != nil {
		return 0, err
	}
	if c.Offset < 0 || c.Offset >= r.Len() {
		return 0, xerrors.Errorf("offset %d in group %d of size %d: %w", c.Offset, c.Group, r.Len(), view.ErrOutOfBounds)
	}
	return r.Start + c.Offset, nil
}
