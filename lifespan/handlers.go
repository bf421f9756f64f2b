package lifespan

import (
	"context"

	"github.com/tangerg/lynxgate/gateway"
	"github.com/tangerg/lynxgate/internal/safe"
)

// runLifespan implements the lifespan scope's event loop: read one
// event, act on it, loop. §4.5 only names lifespan.startup and
// lifespan.shutdown as inputs; anything else is ignored rather than
// treated as a protocol violation, since a driver is free to send
// nothing else and the loop's only job is to answer those two.
func (w *Wrapped) runLifespan(ctx context.Context, receive gateway.Receive, send gateway.Send) error {
	for {
		ev, err := receive(ctx)
		if err != nil {
			return err
		}
		switch ev.(type) {
		case *gateway.LifespanStartup:
			if err := w.runStartup(ctx); err != nil {
				return send(ctx, &gateway.LifespanStartupFailed{Message: err.Error()})
			}
			if err := send(ctx, &gateway.LifespanStartupComplete{}); err != nil {
				return err
			}
		case *gateway.LifespanShutdown:
			for _, err := range w.runShutdown(ctx) {
				w.logger().Error("lifespan shutdown handler failed", "err", err)
			}
			return send(ctx, &gateway.LifespanShutdownComplete{})
		}
	}
}

// runStartup runs every handler's Startup func front-to-back,
// stopping at (and reporting) the first failure, per §4.5.
func (w *Wrapped) runStartup(ctx context.Context) error {
	for _, h := range w.handlers {
		if h.Startup == nil {
			continue
		}
		if err := safe.Call(func() error { return h.Startup(ctx, w.state) }); err != nil {
			return err
		}
	}
	return nil
}

// runShutdown runs every handler's Shutdown func back-to-front.
// Failures do not stop the loop: §4.5 says shutdown errors are
// "logged but non-fatal", so every failure is collected and returned,
// and the caller (runLifespan) logs each one before answering
// lifespan.shutdown.complete.
func (w *Wrapped) runShutdown(ctx context.Context) []error {
	var errs []error
	for i := len(w.handlers) - 1; i >= 0; i-- {
		h := w.handlers[i]
		if h.Shutdown == nil {
			continue
		}
		if err := safe.Call(func() error { return h.Shutdown(ctx, w.state) }); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
