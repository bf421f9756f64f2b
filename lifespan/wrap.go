// Package lifespan implements the higher-order lifespan wrapper from
// §4.5: an application enriched with startup/shutdown handlers, with
// automatic handler-chain aggregation when the wrapped application is
// itself already lifespan-bearing.
//
// The "blessed coderef introspection" the original relies on to detect
// an already-wrapped app is replaced here by an explicit interface,
// HasLifespanHandlers, per the REDESIGN FLAGS note: wrapping returns a
// value that implements it, rather than relying on attribute-poking.
package lifespan

import (
	"context"
	"log/slog"

	"github.com/tangerg/lynxgate/gateway"
)

// HandlerFunc is the signature shared by startup and shutdown
// handlers: given the server's shared state, do whatever setup or
// teardown the handler is responsible for.
type HandlerFunc func(ctx context.Context, state gateway.State) error

// HandlerPair is one startup/shutdown registration. Either field may
// be nil; a nil handler is treated as an immediate success.
type HandlerPair struct {
	Startup  HandlerFunc
	Shutdown HandlerFunc
}

// HasLifespanHandlers is implemented by any app produced by Wrap,
// exposing its full handler chain in registration order (child-first
// when wrapping an already-wrapped app).
type HasLifespanHandlers interface {
	LifespanHandlers() []HandlerPair
}

// Appable is satisfied by anything Wrap can delegate a non-lifespan
// scope to: a bare gateway.App adapted via Func, or an already-wrapped
// app. Wrap accepts this instead of gateway.App directly so it can
// type-assert the inner value for HasLifespanHandlers without relying
// on comparing func values, which Go does not allow.
type Appable interface {
	AsApp() gateway.App
}

// Func adapts a bare gateway.App into an Appable, the same role
// http.HandlerFunc plays for http.Handler.
type Func gateway.App

// AsApp returns f as a gateway.App.
func (f Func) AsApp() gateway.App {
	return gateway.App(f)
}

// Wrapped is the value Wrap returns: an Appable and a
// HasLifespanHandlers, bundling its own shared state so it behaves
// identically regardless of what drives it.
type Wrapped struct {
	inner    gateway.App
	handlers []HandlerPair
	state    gateway.State
	log      *slog.Logger
}

// Wrap returns an app that, on a lifespan scope, runs handlers (with
// any handlers inner already carries prepended, child-first) and, on
// any other scope, injects the wrapper's shared state into the scope
// before delegating to inner.
//
// startup and shutdown may each be nil to register only one side of
// the pair; passing both nil still produces a Wrapped (an app that
// answers the lifespan scope with an empty, always-succeeding handler
// chain) rather than a no-op, since a caller composing several Wrap
// calls should not need to special-case an empty registration.
func Wrap(inner Appable, startup, shutdown HandlerFunc) *Wrapped {
	var handlers []HandlerPair
	if prev, ok := inner.(HasLifespanHandlers); ok {
		handlers = append(handlers, prev.LifespanHandlers()...)
	}
	handlers = append(handlers, HandlerPair{Startup: startup, Shutdown: shutdown})

	return &Wrapped{
		inner:    inner.AsApp(),
		handlers: handlers,
		state:    make(gateway.State),
	}
}

// AsApp returns w as a gateway.App.
func (w *Wrapped) AsApp() gateway.App {
	return w.Call
}

// LifespanHandlers returns w's full handler chain, in the order
// startup handlers run (and shutdown handlers run in reverse).
func (w *Wrapped) LifespanHandlers() []HandlerPair {
	return w.handlers
}

// State returns the shared state this wrapper injects into every
// non-lifespan scope it delegates. Exposed so a Supervisor can seed it
// before Startup runs, or inspect it in tests.
func (w *Wrapped) State() gateway.State {
	return w.state
}

// WithLogger sets the logger shutdown-handler failures are reported
// to; a nil (or never-called) logger discards them. Returns w so it
// can be chained directly onto Wrap.
func (w *Wrapped) WithLogger(log *slog.Logger) *Wrapped {
	w.log = log
	return w
}

func (w *Wrapped) logger() *slog.Logger {
	if w.log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return w.log
}

// Call implements gateway.App: on a lifespan scope it drives the
// handler chain (see runLifespan); on any other scope it sets
// scope.State to the wrapper's own shared state, per §4.5's "set
// scope.state = shared_state, delegate to inner_app", and calls inner.
func (w *Wrapped) Call(ctx context.Context, scope *gateway.Scope, receive gateway.Receive, send gateway.Send) error {
	if scope.Type != gateway.ScopeTypeLifespan {
		scope.State = w.state
		return w.inner(ctx, scope, receive, send)
	}
	return w.runLifespan(ctx, receive, send)
}
