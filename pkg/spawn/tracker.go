package spawn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
)

// Handle identifies an instantiated room.
type Handle string

// Spawner instantiates and destroys rooms in some rendering backend.
type Spawner interface {
	Instantiate(ctx context.Context, req Request) (Handle, error)
	Destroy(ctx context.Context, h Handle) error
}

// Tracker remembers the handles of instantiated rooms. It is not safe for
// concurrent use.
type Tracker struct {
	spawner Spawner
	logger  *log.Logger
	handles []Handle
}

// NewTracker returns a tracker over s. A nil logger discards output.
func NewTracker(s Spawner, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Tracker{spawner: s, logger: logger}
}

// Spawn instantiates every request and tracks the handles. It stops at the
// first failure; handles obtained before the failure stay tracked.
func (t *Tracker) Spawn(ctx context.Context, reqs []Request) error {
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return err
		}
		h, err := t.spawner.Instantiate(ctx, req)
		if err != nil {
			return fmt.Errorf("instantiate %s: %w", req.Label, err)
		}
		t.handles = append(t.handles, h)
		t.logger.Debug("spawned room", "room", req.Label, "asset", req.Asset, "handle", h)
	}
	return nil
}

// Teardown destroys every tracked instance and clears the tracked set, even
// when some destroys fail. The failures are joined into the returned error.
func (t *Tracker) Teardown(ctx context.Context) error {
	var errs []error
	for _, h := range t.handles {
		if err := t.spawner.Destroy(ctx, h); err != nil {
			errs = append(errs, fmt.Errorf("destroy %s: %w", h, err))
		}
	}
	if n := len(t.handles); n > 0 {
		t.logger.Debug("cleared rooms", "count", n)
	}
	t.handles = nil
	return errors.Join(errs...)
}

// Regenerate tears down the previous instances, then spawns reqs.
func (t *Tracker) Regenerate(ctx context.Context, reqs []Request) error {
	if err := t.Teardown(ctx); err != nil {
		t.logger.Warn("teardown incomplete", "err", err)
	}
	return t.Spawn(ctx, reqs)
}

// Handles returns a copy of the tracked handles in spawn order.
func (t *Tracker) Handles() []Handle {
	return slices.Clone(t.handles)
}

// Len returns the number of tracked instances.
func (t *Tracker) Len() int {
	return len(t.handles)
}
