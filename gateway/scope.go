// Package gateway defines the event-driven contract between the
// server and an application: scope types, the closed set of events
// exchanged over receive/send, and the application callable itself.
// It is a pure data-contract package — no I/O, no behavior beyond
// small validation helpers.
package gateway

import (
	"context"

	"github.com/tangerg/lynxgate/internal/kv"
)

// ScopeType identifies which of the four recognized interaction
// shapes a Scope describes. The set is closed; see IsValid.
type ScopeType string

const (
	ScopeTypeLifespan  ScopeType = "lifespan"
	ScopeTypeHTTP      ScopeType = "http"
	ScopeTypeWebSocket ScopeType = "websocket"
	ScopeTypeSSE       ScopeType = "sse"
)

// IsValid reports whether t is one of the four recognized scope
// types.
func (t ScopeType) IsValid() bool {
	switch t {
	case ScopeTypeLifespan, ScopeTypeHTTP, ScopeTypeWebSocket, ScopeTypeSSE:
		return true
	default:
		return false
	}
}

// Addr is a host/port pair, used for both the client and server
// addresses recorded on non-lifespan scopes.
type Addr struct {
	Host string
	Port int
}

// HeaderPairs is the ordered name/value sequence used for scope
// headers. Aliased from internal/kv so callers never need to import
// an internal package directly.
type HeaderPairs = kv.Pairs

// State is the shared, lifespan-scoped mapping referenced by every
// scope produced by one server instance. It is a plain map because
// Go map values already have reference semantics: handing the same
// State to every scope is enough to satisfy the "identical mapping
// reference" invariant without a wrapper type.
type State map[string]any

// Extensions advertises opaque, named capability bags (e.g. "tls") a
// server instance supports, as configured on the Supervisor.
type Extensions map[string]map[string]any

// Scope is the per-interaction context handed to an application. It
// is built once per connection (or once per process, for lifespan) and
// is not mutated by the core after being passed to receive/send,
// except for the State field, which lifespan.Wrap injects into scopes
// produced by an inner, unwrapped application.
type Scope struct {
	Type ScopeType

	// HTTP only.
	Method string

	// HTTP, WebSocket, SSE.
	Path        string
	RawPath     string
	QueryString string
	HTTPVersion string
	Scheme      string
	Headers     HeaderPairs
	Client      Addr
	Server      Addr
	RootPath    string
	Extensions  Extensions

	// WebSocket only.
	Subprotocols []string

	// All scope types share one State reference per server instance.
	State State
}

// Event is the closed set of messages exchanged over receive (server
// to application) and send (application to server). Each concrete
// event type implements Kind, giving callers a tagged-variant sum type
// to switch over instead of a loosely-typed record.
type Event interface {
	Kind() Kind
}

// Kind names one of the closed set of recognized event variants.
type Kind string

const (
	KindLifespanStartup         Kind = "lifespan.startup"
	KindLifespanStartupComplete Kind = "lifespan.startup.complete"
	KindLifespanStartupFailed   Kind = "lifespan.startup.failed"
	KindLifespanShutdown        Kind = "lifespan.shutdown"
	KindLifespanShutdownOK      Kind = "lifespan.shutdown.complete"
	KindLifespanShutdownFailed  Kind = "lifespan.shutdown.failed"

	KindHTTPRequest          Kind = "http.request"
	KindHTTPDisconnect       Kind = "http.disconnect"
	KindHTTPResponseStart    Kind = "http.response.start"
	KindHTTPResponseBody     Kind = "http.response.body"
	KindHTTPResponseTrailers Kind = "http.response.trailers"

	KindWebSocketConnect    Kind = "websocket.connect"
	KindWebSocketReceive    Kind = "websocket.receive"
	KindWebSocketDisconnect Kind = "websocket.disconnect"
	KindWebSocketAccept     Kind = "websocket.accept"
	KindWebSocketSend       Kind = "websocket.send"
	KindWebSocketClose      Kind = "websocket.close"

	KindSSEConnect    Kind = "sse.connect"
	KindSSEDisconnect Kind = "sse.disconnect"
	KindSSEStart      Kind = "sse.start"
	KindSSESend       Kind = "sse.send"
	KindSSEComment    Kind = "sse.comment"
	KindSSEClose      Kind = "sse.close"
)

// Receive is the capability handed to an application to pull the next
// event. It blocks until an event is available, ctx is done, or the
// scope's interaction has ended.
type Receive func(ctx context.Context) (Event, error)

// Send is the capability handed to an application to push an event. It
// blocks only under output backpressure; sequencing violations are
// reported as an error rather than panicking the caller.
type Send func(ctx context.Context, event Event) error

// App is the application contract: given a scope and the receive/send
// capabilities for that scope's single interaction, drive the
// interaction to completion and return.
type App func(ctx context.Context, scope *Scope, receive Receive, send Send) error
