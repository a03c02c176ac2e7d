package mediator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/pipsimon/air-remote-mediator/internal/event"
)

// Enqueues a check event on every tick of the cron schedule until the
// context ends.
//
// Checks travel through the event queue rather than running on the cron
// goroutine so that a wedged mediator also stops answering them.
func RunChecks(ctx context.Context, schedule string, sink event.Sink) error {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		if err := sink.Send(ctx, event.Check()); err != nil && ctx.Err() == nil {
			slog.Warn("failed to enqueue liveness check", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrSchedule, schedule, err)
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()

	return nil
}
