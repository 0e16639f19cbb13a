package feed

import (
	"fmt"
	"nebula/backend/types"
	"nebula/backend/view"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
	"golang.org/x/xerrors"
)

// ErrDiverged is returned by a Mirror whose content no longer matches the
// view it follows.
var ErrDiverged = xerrors.New("mirror diverged from view")

// Batch is one delivery of the feed: the positions produced by a single Apply.
type Batch struct {
	ID          xid.ID
	Seq         uint64
	Delta       string // description of the applied delta
	Indexes     types.Indexes[int]
	Coordinates types.Indexes[types.Coordinate]
}

// String implements fmt.Stringer.
func (b Batch) String() string {
	return fmt.Sprintf("batch{%s #%d %s}", b.ID, b.Seq, b.Indexes)
}

// Sink consumes the batches of a feed, typically a list widget adapter.
type Sink interface {
	Deliver(batch Batch) error
}

// LogSink writes every batch to a logger.
//
// - implements feed.Sink
type LogSink struct {
	log zerolog.Logger
}

// NewLogSink creates a sink logging at info level.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{log: logger}
}

// Deliver implements feed.Sink
func (s *LogSink) Deliver(batch Batch) error {
	s.log.Info().
		Str("id", batch.ID.String()).
		Uint64("seq", batch.Seq).
		Str("delta", batch.Delta).
		Ints("added", batch.Indexes.Added).
		Ints("removed", batch.Indexes.Removed).
		Ints("changed", batch.Indexes.Changed).
		Ints("moved", batch.Indexes.Moved).
		Msgf("Delivered %s", batch.Indexes)
	return nil
}

// Mirror keeps a plain copy of a view in step using nothing but the index
// batches, the way a list widget does: reload on an initial batch; otherwise
// delete removed positions from the last to the first, insert added positions
// from the first to the last, and refresh changed positions. After each batch
// the copy is compared with the view.
//
// Changed positions are refreshed in place. A view reports a change that moves
// its item as a removal and an addition, so a changed position never moves.
//
// - implements feed.Sink
type Mirror[T any] struct {
	view  view.View[T]
	items []T
}

// NewMirror creates a mirror of v, starting from its current content.
func NewMirror[T any](v view.View[T]) *Mirror[T] {
	return &Mirror[T]{
		view:  v,
		items: v.Items(),
	}
}

// Items returns a copy of the mirrored content.
func (m *Mirror[T]) Items() []T {
	return slices.Clone(m.items)
}

// Deliver implements feed.Sink
func (m *Mirror[T]) Deliver(batch Batch) error {
	switch batch.Indexes.Mode {
	case types.InitialMode:
		m.items = m.view.Items()
	case types.ListMode, types.ElementMode:
		if err := m.update(batch.Indexes); err != nil {
			return xerrors.Errorf("failed to mirror %s: %w", batch, err)
		}
	default:
		return xerrors.Errorf("failed to mirror %s: %w", batch, types.ErrUnknownMode)
	}

	return m.Verify()
}

// Verify compares the mirrored content with the view.
func (m *Mirror[T]) Verify() error {
	if diff := cmp.Diff(m.view.Items(), m.items); diff != "" {
		return xerrors.Errorf("content differs (-view +mirror):\n%s: %w", diff, ErrDiverged)
	}
	return nil
}

func (m *Mirror[T]) update(ix types.Indexes[int]) error {
	for i := len(ix.Removed) - 1; i >= 0; i-- {
		p := ix.Removed[i]
		if p < 0 || p >= len(m.items) {
			return xerrors.Errorf("removed position %d of %d: %w", p, len(m.items), view.ErrOutOfBounds)
		}
		m.items = slices.Delete(m.items, p, p+1)
	}

	for _, p := range ix.Added {
		item, err := m.view.Item(p)
		if err != nil {
			return xerrors.Errorf("failed to read added item: %w", err)
		}
		if p > len(m.items) {
			return xerrors.Errorf("added position %d of %d: %w", p, len(m.items), view.ErrOutOfBounds)
		}
		m.items = slices.Insert(m.items, p, item)
	}

	for _, p := range ix.Changed {
		item, err := m.view.Item(p)
		if err != nil {
			return xerrors.Errorf("failed to read changed item: %w", err)
		}
		if p >= len(m.items) {
			return xerrors.Errorf("changed position %d of %d: %w", p, len(m.items), view.ErrOutOfBounds)
		}
		m.items[p] = item
	}

	return nil
}
