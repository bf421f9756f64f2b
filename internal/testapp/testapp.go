// Package testapp holds small, reusable application callables shared
// across package tests — an echo app and a lifespan-recording app —
// in place of a bare root-level tests/ directory.
package testapp

import (
	"context"
	"sync"

	"github.com/tangerg/lynxgate/gateway"
	"github.com/tangerg/lynxgate/internal/kv"
)

// Echo answers an HTTP request by mirroring its method and path back
// as a 200 plaintext body; a WebSocket connection is accepted and
// every received frame is echoed back verbatim until the peer
// disconnects. Any other scope type, lifespan and sse included, gets
// gateway.ErrUnsupportedScopeType; Echo never sends SSE events.
func Echo(ctx context.Context, scope *gateway.Scope, receive gateway.Receive, send gateway.Send) error {
	switch scope.Type {
	case gateway.ScopeTypeWebSocket:
		return echoWebSocket(ctx, receive, send)
	case gateway.ScopeTypeHTTP:
		return echoHTTP(ctx, scope, receive, send)
	default:
		return gateway.ErrUnsupportedScopeType
	}
}

func echoHTTP(ctx context.Context, scope *gateway.Scope, receive gateway.Receive, send gateway.Send) error {
	if _, err := receive(ctx); err != nil {
		return err
	}
	body := []byte(scope.Method + " " + scope.Path)
	headers := kv.NewPairs(2).
		Add("content-type", "text/plain; charset=utf-8").
		Add("content-length", itoa(len(body)))
	if err := send(ctx, &gateway.HTTPResponseStart{Status: 200, Headers: headers}); err != nil {
		return err
	}
	return send(ctx, &gateway.HTTPResponseBody{Body: body})
}

func echoWebSocket(ctx context.Context, receive gateway.Receive, send gateway.Send) error {
	if _, err := receive(ctx); err != nil {
		return err
	}
	if err := send(ctx, &gateway.WebSocketAccept{}); err != nil {
		return err
	}
	for {
		ev, err := receive(ctx)
		if err != nil {
			return err
		}
		switch e := ev.(type) {
		case *gateway.WebSocketReceive:
			if err := send(ctx, &gateway.WebSocketSend{Text: e.Text, Bytes: e.Bytes, IsText: e.IsText}); err != nil {
				return err
			}
		case *gateway.WebSocketDisconnect:
			return nil
		}
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// LifespanRecorder hands out startup and shutdown handlers (for
// registration with lifespan.Wrap) that append a label to Events every
// time they run, guarded by a mutex since tests may drive several
// handlers concurrently. It is not itself an app.
type LifespanRecorder struct {
	mu     sync.Mutex
	Events []string
}

// Startup returns a lifespan.HandlerFunc-compatible function that
// records label.
func (r *LifespanRecorder) Startup(label string) func(context.Context, gateway.State) error {
	return func(ctx context.Context, state gateway.State) error {
		r.record(label)
		return nil
	}
}

// Shutdown returns a lifespan.HandlerFunc-compatible function that
// records label.
func (r *LifespanRecorder) Shutdown(label string) func(context.Context, gateway.State) error {
	return func(ctx context.Context, state gateway.State) error {
		r.record(label)
		return nil
	}
}

func (r *LifespanRecorder) record(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, label)
}

// Snapshot returns a copy of the events recorded so far.
func (r *LifespanRecorder) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Events))
	copy(out, r.Events)
	return out
}
