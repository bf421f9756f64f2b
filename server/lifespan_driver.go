package server

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/tangerg/lynxgate/gateway"
	"github.com/tangerg/lynxgate/internal/future"
	"github.com/tangerg/lynxgate/internal/safe"
)

// ErrLifespanUnsupported is the sentinel the driver reports when app
// returns before ever completing the startup or shutdown future — the
// "app raises on lifespan scope" case spec.md §8 scenario 1 describes.
// A Supervisor treats this as non-fatal: it proceeds to bind.
var ErrLifespanUnsupported = errors.New("server: app does not implement the lifespan scope")

// lifespanDriver runs app's lifespan scope for the server's entire
// lifetime, in one goroutine started by Startup and joined by
// Shutdown. It exists because the lifespan protocol is, like every
// other scope, driven purely over receive/send — but the Supervisor
// needs synchronous start/stop points, so the driver correlates the
// two startup/shutdown.complete events through futures.
type lifespanDriver struct {
	app   gateway.App
	queue chan gateway.Event
	done  chan error

	startup         *future.Future[struct{}]
	shutdown        *future.Future[struct{}]
	startupAnswered atomic.Bool
}

func newLifespanDriver(app gateway.App) *lifespanDriver {
	return &lifespanDriver{
		app:      app,
		queue:    make(chan gateway.Event, 2),
		done:     make(chan error, 1),
		startup:  future.New[struct{}](),
		shutdown: future.New[struct{}](),
	}
}

func (d *lifespanDriver) receive(ctx context.Context) (gateway.Event, error) {
	select {
	case ev := <-d.queue:
		return ev, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (d *lifespanDriver) send(ctx context.Context, ev gateway.Event) error {
	switch e := ev.(type) {
	case *gateway.LifespanStartupComplete:
		d.startupAnswered.Store(true)
		d.startup.Set(struct{}{}, nil)
	case *gateway.LifespanStartupFailed:
		d.startupAnswered.Store(true)
		d.startup.Set(struct{}{}, errors.New(e.Message))
	case *gateway.LifespanShutdownComplete:
		d.shutdown.Set(struct{}{}, nil)
	}
	return nil
}

// run launches the lifespan scope in the background. scope must have
// Type == gateway.ScopeTypeLifespan.
func (d *lifespanDriver) run(ctx context.Context, scope *gateway.Scope) {
	go func() {
		err := safe.Call(func() error {
			return d.app(ctx, scope, d.receive, d.send)
		})
		// If app returned without ever resolving one of the futures
		// (it does not implement the lifespan scope, or it returned an
		// error before sending), resolve both with the app's error so
		// a waiter never blocks forever.
		d.startup.Set(struct{}{}, err)
		d.shutdown.Set(struct{}{}, err)
		d.done <- err
	}()
}

// Startup pushes lifespan.startup and waits for either
// lifespan.startup.complete/.failed or the driver goroutine returning
// early. A nil, non-ErrLifespanUnsupported error means startup ran and
// succeeded; ErrLifespanUnsupported means the app does not implement
// lifespan at all, which is not fatal to the Supervisor.
func (d *lifespanDriver) Startup(ctx context.Context) error {
	d.queue <- &gateway.LifespanStartup{}
	_, err := d.startup.GetWithContext(ctx)
	if !d.startupAnswered.Load() {
		// The app returned (did not send startup.complete/.failed)
		// instead of answering the protocol — treat as "lifespan
		// unsupported" rather than a startup failure, matching
		// scenario 1's "app raises on lifespan scope".
		return ErrLifespanUnsupported
	}
	return err
}

// Shutdown pushes lifespan.shutdown and waits for
// lifespan.shutdown.complete, or for the driver goroutine to have
// already exited (an app that never implemented lifespan at all).
func (d *lifespanDriver) Shutdown(ctx context.Context) {
	select {
	case <-d.done:
		return
	default:
	}
	d.queue <- &gateway.LifespanShutdown{}
	_, _ = d.shutdown.GetWithContext(ctx)
}
