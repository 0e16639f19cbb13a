package feed

import (
	"context"
	"nebula/backend/types"
	"nebula/backend/view"
	"sync"
	"time"

	"github.com/eapache/queue"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

// DriverConfig configures a Driver.
type DriverConfig[T any] struct {
	// Mode of the deltas pulled from Source.
	Mode types.Mode
	// Interval between two steps of Run.
	Interval time.Duration
	// Ticks bounds the number of batches Run delivers. Zero means no bound.
	Ticks int
	// Source is asked for a delta when nothing was submitted. Optional.
	Source Source[T]
	// Sinks receive every batch, in order.
	Sinks []Sink
	// Logger of the driver. Optional.
	Logger *zerolog.Logger
}

// Driver owns a view and replays an edit feed into it. Deltas are applied one
// at a time, each Apply completing and being delivered before the next one
// starts.
type Driver[T any] struct {
	mu      sync.Mutex
	conf    DriverConfig[T]
	view    view.View[T]
	pending *queue.Queue // of types.Delta[T]
	log     zerolog.Logger
	seq     uint64
}

// NewDriver creates a driver over v.
func NewDriver[T any](v view.View[T], conf DriverConfig[T]) *Driver[T] {
	logger := zerolog.Nop()
	if conf.Logger != nil {
		logger = conf.Logger.With().Str("component", "feed").Logger()
	}

	return &Driver[T]{
		mu:      sync.Mutex{},
		conf:    conf,
		view:    v,
		pending: queue.New(),
		log:     logger,
	}
}

// View returns the view owned by the driver. It must not be mutated directly.
func (d *Driver[T]) View() view.View[T] {
	return d.view
}

// Submit queues a delta for a later Step.
func (d *Driver[T]) Submit(delta types.Delta[T]) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending.Add(delta)
}

// Pending returns the number of queued deltas.
func (d *Driver[T]) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.pending.Length()
}

// Step applies the oldest queued delta, or a delta from the source when the
// queue is empty, and delivers the batch to every sink. It returns false when
// there was nothing to apply.
func (d *Driver[T]) Step() (Batch, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var delta types.Delta[T]
	switch {
	case d.pending.Length() > 0:
		delta = d.pending.Remove().(types.Delta[T])
	case d.conf.Source != nil:
		delta = d.conf.Source.Next(d.conf.Mode, d.view.Items())
	default:
		return Batch{}, false, nil
	}

	indexes, err := d.view.Apply(delta)
	if err != nil {
		return Batch{}, false, xerrors.Errorf("failed to apply %s: %w", delta, err)
	}

	coords, err := d.view.Coordinates(delta.Mode)
	if err != nil {
		return Batch{}, false, xerrors.Errorf("failed to translate %s: %w", indexes, err)
	}

	d.seq++
	batch := Batch{
		ID:          xid.New(),
		Seq:         d.seq,
		Delta:       delta.String(),
		Indexes:     indexes,
		Coordinates: coords,
	}

	for _, sink := range d.conf.Sinks {
		err := sink.Deliver(batch)
		if err != nil {
			return batch, true, xerrors.Errorf("failed to deliver %s: %w", batch, err)
		}
	}

	return batch, true, nil
}

// Run steps the feed at every Interval until ctx is done or Ticks batches were
// delivered. A delivery error stops the feed.
func (d *Driver[T]) Run(ctx context.Context) error {
	if d.conf.Interval <= 0 {
		return xerrors.Errorf("invalid interval %s", d.conf.Interval)
	}

	ticker := time.NewTicker(d.conf.Interval)
	defer ticker.Stop()

	delivered := 0
	for {
		select {
		case <-ctx.Done():
			d.log.Info().Msg("Stopping feed")
			return nil
		case <-ticker.C:
			_, ok, err := d.Step()
			if err != nil {
				d.log.Error().Err(err).Msg("Failed to step feed")
				return err
			}
			if !ok {
				continue
			}

			delivered++
			if d.conf.Ticks > 0 && delivered >= d.conf.Ticks {
				d.log.Info().Msgf("Feed done after %d batches", delivered)
				return nil
			}
		}
	}
}
