package domain

import (
	"context"
	"fmt"
	"time"
)

// Framer turns a fragment sequence into chunk events followed by exactly one
// done event. It never reorders fragments and emits each chunk only after the
// producer has delivered the matching fragment.
type Framer struct {
	pacing time.Duration
}

// NewFramer creates a framer that waits pacing between consecutive events.
func NewFramer(pacing time.Duration) *Framer {
	if pacing < 0 {
		pacing = 0
	}
	return &Framer{pacing: pacing}
}

// Pacing returns the delay between consecutive events.
func (f *Framer) Pacing() time.Duration {
	return f.pacing
}

// Unpaced returns a framer with the same behavior and no delay.
func (f *Framer) Unpaced() *Framer {
	return &Framer{pacing: 0}
}

// Run drives fragments into sink and returns the number of chunk events
// emitted. Producer failures are reported as ErrUpstream, sink failures and
// cancellation as ErrTransport; in both cases no done event is emitted.
func (f *Framer) Run(ctx context.Context, fragments <-chan Fragment, sink EventSink) (int, error) {
	emitted := 0

	for {
		var (
			fragment Fragment
			ok       bool
		)

		select {
		case <-ctx.Done():
			return emitted, fmt.Errorf("%w: %w", ErrTransport, ctx.Err())
		case fragment, ok = <-fragments:
		}

		if !ok {
			break
		}

		if fragment.Err != nil {
			return emitted, fmt.Errorf("%w: fragment %d: %w", ErrUpstream, fragment.Index, fragment.Err)
		}

		if err := f.emit(ctx, sink, ChunkEvent(fragment.Content), emitted > 0); err != nil {
			return emitted, err
		}
		emitted++
	}

	// A producer stops early on cancellation; that must not look like a
	// completed reply.
	if err := ctx.Err(); err != nil {
		return emitted, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if err := f.emit(ctx, sink, DoneEvent(), emitted > 0); err != nil {
		return emitted, err
	}

	return emitted, nil
}

func (f *Framer) emit(ctx context.Context, sink EventSink, event StreamEvent, pace bool) error {
	if pace {
		if err := f.wait(ctx); err != nil {
			return err
		}
	}

	if err := sink.Emit(ctx, event); err != nil {
		return fmt.Errorf("%w: emit %s: %w", ErrTransport, event.Kind, err)
	}

	return nil
}

// wait suspends for the pacing delay, returning early when ctx is done.
func (f *Framer) wait(ctx context.Context) error {
	if f.pacing <= 0 {
		return nil
	}

	timer := time.NewTimer(f.pacing)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrTransport, ctx.Err())
	case <-timer.C:
		return nil
	}
}
