package usagelog

import (
	"context"

	"github.com/jonboulle/clockwork"
)

// Recorder stamps descriptions with the current time and an origin before
// appending them to a Log.
type Recorder struct {
	log   Log
	clock clockwork.Clock
}

// NewRecorder wraps log. A nil clock means the real clock.
func NewRecorder(log Log, clock clockwork.Clock) *Recorder {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Recorder{log: log, clock: clock}
}

// Record appends description as a new entry.
func (r *Recorder) Record(ctx context.Context, origin Origin, description string) error {
	return r.log.Append(ctx, Entry{
		Description: description,
		Origin:      origin,
		Time:        r.clock.Now(),
	})
}

// ReadAll returns the full history text.
func (r *Recorder) ReadAll(ctx context.Context) (string, error) {
	return r.log.ReadAll(ctx)
}
