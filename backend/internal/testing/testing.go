// Package z provides helpers shared by the test packages.
package z

import (
	"nebula/backend/types"
	"nebula/backend/view"

	"github.com/stretchr/testify/require"
)

// Option customizes the configuration of a test view.
type Option[T any] func(*view.Configuration[T])

// WithGroupBy sets the classification of the view.
func WithGroupBy[T any](groupBy func(T) int) Option[T] {
	return func(c *view.Configuration[T]) {
		c.GroupBy = groupBy
	}
}

// WithEqual sets the equality of the view.
func WithEqual[T any](equal func(a, b T) bool) Option[T] {
	return func(c *view.Configuration[T]) {
		c.Equal = equal
	}
}

// TestView wraps a view with assertions that fail the test.
type TestView[T any] struct {
	view.View[T]
	t       require.TestingT
	orderBy func(a, b T) bool
	equal   func(a, b T) bool
}

// NewTestView creates a view with fac.
func NewTestView[T any](t require.TestingT, fac view.Factory[T], conf view.Configuration[T], opts ...Option[T]) TestView[T] {
	for _, opt := range opts {
		opt(&conf)
	}

	return TestView[T]{
		View:    fac(conf),
		t:       t,
		orderBy: conf.OrderBy,
		equal:   conf.Equal,
	}
}

// NewStringView creates a view of strings in lexicographic order.
func NewStringView(t require.TestingT, fac view.Factory[string], opts ...Option[string]) TestView[string] {
	return NewTestView(t, fac, view.Ordered[string](), opts...)
}

// MustApply applies delta and fails the test on error. It also checks that
// the view is still sorted.
func (tv TestView[T]) MustApply(delta types.Delta[T]) types.Indexes[int] {
	ix, err := tv.Apply(delta)
	require.NoError(tv.t, err)
	tv.RequireSorted()
	return ix
}

// RequireSorted checks that no item is ordered before its predecessor.
func (tv TestView[T]) RequireSorted() {
	items := tv.Items()
	for i := 1; i < len(items); i++ {
		require.False(tv.t, tv.orderBy(items[i], items[i-1]), "items %d and %d out of order", i-1, i)
	}
}

// RequireRoundTrip checks that every flat index survives a translation to a
// coordinate and back.
func (tv TestView[T]) RequireRoundTrip() {
	for i := 0; i < tv.Len(); i++ {
		c, err := tv.Coordinate(i)
		require.NoError(tv.t, err)
		flat, err := tv.Flat(c)
		require.NoError(tv.t, err)
		require.Equal(tv.t, i, flat)
	}
}

// ABC classifies strings by their first letter: A is 0, B is 1, anything else
// is 2.
func ABC(s string) int {
	switch {
	case len(s) > 0 && s[0] == 'A':
		return 0
	case len(s) > 0 && s[0] == 'B':
		return 1
	default:
		return 2
	}
}

// Fruits are the items used by most tests.
var Fruits = []string{"Banana", "Apple", "Strawberry"}
