package unit

import (
	z "nebula/backend/internal/testing"
	"nebula/backend/types"
	"nebula/backend/view"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

// Check that a grouped view splits the items into contiguous groups.
func Test_Groups_First_Letter(t *testing.T) {
	v := z.NewStringView(t, viewFac, z.WithGroupBy(z.ABC))

	ix := v.MustApply(types.NewInitialDelta([]string{"Banana", "Apple", "Strawberry", "Cherry"}))

	require.Equal(t, []string{"Apple", "Banana", "Cherry", "Strawberry"}, v.Items())
	require.Equal(t, 3, v.NumberOfGroups())

	expected := []types.Range{{Start: 0, End: 1}, {Start: 1, End: 2}, {Start: 2, End: 4}}
	for g, want := range expected {
		got, err := v.RangeOf(g)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	coords := []types.Coordinate{{Group: 0, Offset: 0}, {Group: 1, Offset: 0}, {Group: 2, Offset: 0}, {Group: 2, Offset: 1}}
	for i, want := range coords {
		got, err := v.Coordinate(i)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	grouped, err := v.Coordinates(types.InitialMode)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 3}, ix.All)
	require.Equal(t, coords, grouped.All)

	v.RequireRoundTrip()
}

// Check that an ungrouped view has a single group.
func Test_Groups_Single(t *testing.T) {
	v := z.NewStringView(t, viewFac)
	v.MustApply(types.NewInitialDelta(z.Fruits))

	require.Equal(t, 1, v.NumberOfGroups())

	r, err := v.RangeOf(0)
	require.NoError(t, err)
	require.Equal(t, types.Range{Start: 0, End: 3}, r)

	c, err := v.Coordinate(2)
	require.NoError(t, err)
	require.Equal(t, types.Coordinate{Group: 0, Offset: 2}, c)
}

// Check that an empty view has exactly one empty group.
func Test_Groups_Empty(t *testing.T) {
	v := z.NewStringView(t, viewFac, z.WithGroupBy(z.ABC))

	require.Equal(t, 1, v.NumberOfGroups())
	r, err := v.RangeOf(0)
	require.NoError(t, err)
	require.Equal(t, 0, r.Len())

	_, err = v.Coordinate(0)
	require.True(t, xerrors.Is(err, view.ErrOutOfBounds))

	v.MustApply(types.NewInitialDelta(z.Fruits))
	v.MustApply(types.NewListDelta(nil, z.Fruits))

	require.Equal(t, 0, v.Len())
	require.Equal(t, 1, v.NumberOfGroups())
}

// Check that invalid groups and offsets fail with an out of bounds error.
func Test_Groups_Out_Of_Bounds(t *testing.T) {
	v := z.NewStringView(t, viewFac, z.WithGroupBy(z.ABC))
	v.MustApply(types.NewInitialDelta([]string{"Banana", "Apple", "Strawberry", "Cherry"}))

	_, err := v.RangeOf(3)
	require.True(t, xerrors.Is(err, view.ErrOutOfBounds))

	_, err = v.RangeOf(-1)
	require.True(t, xerrors.Is(err, view.ErrOutOfBounds))

	_, err = v.Flat(types.Coordinate{Group: 0, Offset: 1})
	require.True(t, xerrors.Is(err, view.ErrOutOfBounds))

	_, err = v.Flat(types.Coordinate{Group: 5, Offset: 0})
	require.True(t, xerrors.Is(err, view.ErrOutOfBounds))

	_, err = v.ItemAt(types.Coordinate{Group: 2, Offset: 2})
	require.True(t, xerrors.Is(err, view.ErrOutOfBounds))

	_, err = v.Coordinate(4)
	require.True(t, xerrors.Is(err, view.ErrOutOfBounds))
}

// Check the item accessor by coordinate.
func Test_Groups_Item_At(t *testing.T) {
	v := z.NewStringView(t, viewFac, z.WithGroupBy(z.ABC))
	v.MustApply(types.NewInitialDelta([]string{"Banana", "Apple", "Strawberry", "Cherry"}))

	item, err := v.ItemAt(types.Coordinate{Group: 2, Offset: 1})
	require.NoError(t, err)
	require.Equal(t, "Strawberry", item)

	flat, err := v.Flat(types.Coordinate{Group: 2, Offset: 1})
	require.NoError(t, err)
	require.Equal(t, 3, flat)
}

// Check that groups are derived again after every edit.
func Test_Groups_Follow_Edits(t *testing.T) {
	v := z.NewStringView(t, viewFac, z.WithGroupBy(z.ABC))
	v.MustApply(types.NewInitialDelta([]string{"Cherry", "Strawberry"}))

	require.Equal(t, 1, v.NumberOfGroups())

	v.MustApply(types.NewListDelta([]string{"Apple", "Banana"}, nil))
	require.Equal(t, 3, v.NumberOfGroups())

	v.MustApply(types.NewListDelta(nil, []string{"Apple"}))
	require.Equal(t, 2, v.NumberOfGroups())

	r, err := v.RangeOf(0)
	require.NoError(t, err)
	require.Equal(t, types.Range{Start: 0, End: 1}, r)

	v.RequireRoundTrip()
}

// Check that removed positions are translated with the groups before the
// edit and the other positions with the groups after it.
func Test_Groups_Coordinates_Removed_Before_Edit(t *testing.T) {
	v := z.NewStringView(t, viewFac, z.WithGroupBy(z.ABC))
	v.MustApply(types.NewInitialDelta([]string{"Apple", "Banana", "Cherry", "Strawberry"}))

	ix := v.MustApply(types.NewListDelta([]string{"Apricot"}, []string{"Strawberry"}))

	require.Equal(t, []string{"Apple", "Apricot", "Banana", "Cherry"}, v.Items())
	require.Equal(t, []int{1}, ix.Added)
	require.Equal(t, []int{3}, ix.Removed)

	coords, err := v.Coordinates(types.ListMode)
	require.NoError(t, err)
	require.Equal(t, []types.Coordinate{{Group: 0, Offset: 1}}, coords.Added)
	require.Equal(t, []types.Coordinate{{Group: 2, Offset: 1}}, coords.Removed)
}

// Check that a classification that disagrees with the order gives one group
// per run.
func Test_Groups_Runs(t *testing.T) {
	parity := func(s string) int { return len(s) % 2 }
	v := z.NewStringView(t, viewFac, z.WithGroupBy(parity))

	v.MustApply(types.NewInitialDelta([]string{"aa", "b", "cc", "dd"}))

	require.Equal(t, 3, v.NumberOfGroups())
	r, err := v.RangeOf(2)
	require.NoError(t, err)
	require.Equal(t, types.Range{Start: 2, End: 4}, r)

	v.RequireRoundTrip()
}
