// Package telemetry records operational events alongside game state.
package telemetry

import (
	"context"
	"time"

	"github.com/louisbranch/ringfall/internal/game/storage"
	"github.com/louisbranch/ringfall/internal/platform/id"
)

// Emitter records operational telemetry events.
type Emitter struct {
	store       storage.TelemetryStore
	clock       func() time.Time
	idGenerator func() (string, error)
}

// NewEmitter creates a new telemetry emitter.
func NewEmitter(store storage.TelemetryStore) *Emitter {
	return &Emitter{store: store, clock: time.Now, idGenerator: id.NewID}
}

// WithClock overrides the emitter clock, primarily for tests.
func (e *Emitter) WithClock(clock func() time.Time) *Emitter {
	if clock != nil {
		e.clock = clock
	}
	return e
}

// Emit records a telemetry event. It is a no-op when the emitter or its
// store is nil, so callers never guard the call.
func (e *Emitter) Emit(ctx context.Context, evt storage.TelemetryEvent) error {
	if e == nil || e.store == nil {
		return nil
	}
	if evt.ID == "" {
		generated, err := e.idGenerator()
		if err != nil {
			return err
		}
		evt.ID = generated
	}
	if evt.CreatedAt.IsZero() {
		if e.clock == nil {
			evt.CreatedAt = time.Now().UTC()
		} else {
			evt.CreatedAt = e.clock().UTC()
		}
	}
	return e.store.AppendTelemetryEvent(ctx, evt)
}
