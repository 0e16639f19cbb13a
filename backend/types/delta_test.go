package types

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func Test_Delta_IsEmpty(t *testing.T) {
	require.True(t, NewInitialDelta[string](nil).IsEmpty())
	require.True(t, NewListDelta[string](nil, nil).IsEmpty())
	require.True(t, NewElementDelta[string](nil, nil, nil, nil).IsEmpty())

	require.False(t, NewInitialDelta([]string{"a"}).IsEmpty())
	require.False(t, NewListDelta(nil, []string{"a"}).IsEmpty())
	require.False(t, NewElementDelta(nil, nil, nil, []string{"a"}).IsEmpty())
}

func Test_Delta_Concat(t *testing.T) {
	a := NewElementDelta([]string{"a"}, []string{"b"}, nil, nil)
	b := NewElementDelta([]string{"c"}, nil, []string{"d"}, []string{"e"})

	sum, err := a.Concat(b)
	require.NoError(t, err)
	require.Equal(t, NewElementDelta([]string{"a", "c"}, []string{"b"}, []string{"d"}, []string{"e"}), sum)

	// the operands are left untouched
	require.Equal(t, []string{"a"}, a.Added)

	_, err = a.Concat(NewListDelta([]string{"x"}, nil))
	require.True(t, xerrors.Is(err, ErrModeMismatch))

	initial, err := NewInitialDelta([]int{1}).Concat(NewInitialDelta([]int{2, 3}))
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, initial.Items)
}

func Test_Delta_String(t *testing.T) {
	require.Equal(t, "Δ:initial: 3", NewInitialDelta([]int{1, 2, 3}).String())
	require.Equal(t, "Δ:list: 1 added, 2 removed", NewListDelta([]int{1}, []int{2, 3}).String())
	require.Equal(t, "Δ:element: 1 added, 0 removed, 2 changed, 1 moved",
		NewElementDelta([]int{1}, nil, []int{2, 3}, []int{4}).String())
	require.Equal(t, "∑: 1 added, 0 removed, 2 changed, 1 moved",
		NewElementDelta([]int{1}, nil, []int{2, 3}, []int{4}).Counts().String())
}

func Test_Mode_Parse(t *testing.T) {
	for _, name := range []string{"initial", "list", "element"} {
		mode, err := ParseMode(name)
		require.NoError(t, err)
		require.Equal(t, Mode(name), mode)
	}

	_, err := ParseMode("all")
	require.True(t, xerrors.Is(err, ErrUnknownMode))
}

func Test_Indexes_Map(t *testing.T) {
	in := Indexes[int]{Mode: ListMode, Added: []int{1, 2}, Removed: []int{0}}

	out, err := MapIndexes(in, func(i int) (string, error) { return strconv.Itoa(i * 10), nil })
	require.NoError(t, err)
	require.Equal(t, ListMode, out.Mode)
	require.Equal(t, []string{"10", "20"}, out.Added)
	require.Equal(t, []string{"0"}, out.Removed)
	require.Nil(t, out.Changed)

	_, err = MapIndexes(in, func(i int) (int, error) {
		if i == 2 {
			return 0, ErrUnknownMode
		}
		return i, nil
	})
	require.True(t, xerrors.Is(err, ErrUnknownMode))
}

func Test_Indexes_String(t *testing.T) {
	ix := Indexes[int]{Mode: InitialMode, All: []int{0, 1}}
	require.Equal(t, "Δ:initial: 2", ix.String())
	require.False(t, ix.IsEmpty())
	require.True(t, Indexes[int]{Mode: ElementMode}.IsEmpty())
}

func Test_Coordinate_Less(t *testing.T) {
	require.True(t, Coordinate{Group: 0, Offset: 5}.Less(Coordinate{Group: 1, Offset: 0}))
	require.True(t, Coordinate{Group: 1, Offset: 0}.Less(Coordinate{Group: 1, Offset: 1}))
	require.False(t, Coordinate{Group: 1, Offset: 1}.Less(Coordinate{Group: 1, Offset: 1}))
	require.Equal(t, "(2,3)", Coordinate{Group: 2, Offset: 3}.String())
}

func Test_Range(t *testing.T) {
	r := Range{Start: 2, End: 5}
	require.Equal(t, 3, r.Len())
	require.True(t, r.Contains(2))
	require.False(t, r.Contains(5))
	require.Equal(t, "[2,5)", r.String())
}
