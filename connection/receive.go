package connection

import (
	"context"

	"github.com/tangerg/lynxgate/gateway"
)

// Receive implements gateway.Receive for this connection, per §4.3:
// pop a queued event if any is waiting, else deliver the one-shot
// request body, else suspend until the peer disconnects or ctx ends.
func (c *Connection) Receive(ctx context.Context) (gateway.Event, error) {
	if c.terminal != nil {
		return c.terminal, nil
	}

	select {
	case ev := <-c.queue:
		return c.observe(ev), nil
	default:
	}

	if !c.bodyDelivered && c.scope.Type == gateway.ScopeTypeHTTP {
		c.bodyDelivered = true
		return &gateway.HTTPRequest{Body: c.requestBody, More: false}, nil
	}

	select {
	case ev := <-c.queue:
		return c.observe(ev), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// observe remembers a disconnect event so later Receive calls keep
// returning it instead of blocking forever, per §3: "Once
// http.disconnect / websocket.disconnect / sse.disconnect has been
// delivered to the app, no further receives yield anything else."
func (c *Connection) observe(ev gateway.Event) gateway.Event {
	switch ev.Kind() {
	case gateway.KindHTTPDisconnect, gateway.KindWebSocketDisconnect, gateway.KindSSEDisconnect:
		c.terminal = ev
	}
	return ev
}
