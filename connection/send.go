package connection

import (
	"context"

	"github.com/tangerg/lynxgate/gateway"
)

// Send implements gateway.Send for this connection: it dispatches on
// scope type and current upgrade state, enforcing the ordering rules
// §4.3 assigns to each response-event sequence and dropping or
// rejecting anything out of order.
func (c *Connection) Send(ctx context.Context, ev gateway.Event) error {
	if c.terminal != nil {
		return ErrConnectionClosed
	}
	switch c.scope.Type {
	case gateway.ScopeTypeWebSocket:
		return c.sendWebSocket(ev)
	default:
		if c.sseStream != nil {
			return c.sendSSE(ev)
		}
		if start, ok := ev.(*gateway.SSEStart); ok {
			return c.startSSE(start)
		}
		return c.sendHTTP(ev)
	}
}

func (c *Connection) sendHTTP(ev gateway.Event) error {
	switch e := ev.(type) {
	case *gateway.HTTPResponseStart:
		if c.resp.started {
			// Duplicate starts are dropped silently per §4.3.
			return nil
		}
		return c.writeResponseStart(e)
	case *gateway.HTTPResponseBody:
		if !c.resp.started {
			c.logError("http.response.body before http.response.start", gateway.ErrSequenceViolation)
			return gateway.ErrSequenceViolation
		}
		if c.resp.bodyComplete {
			return nil
		}
		return c.writeResponseBody(e)
	case *gateway.HTTPResponseTrailers:
		if !c.resp.chunked || !c.resp.expectsTrailers {
			c.logError("http.response.trailers without a declared chunked+trailers response", gateway.ErrSequenceViolation)
			return gateway.ErrSequenceViolation
		}
		return c.writeResponseTrailers(e)
	default:
		c.logError("unexpected event kind on http scope", gateway.ErrUnknownEventKind)
		return gateway.ErrUnknownEventKind
	}
}

func (c *Connection) sendWebSocket(ev gateway.Event) error {
	switch e := ev.(type) {
	case *gateway.WebSocketAccept:
		if c.resp.wsAccepted || c.resp.wsClosed {
			return nil
		}
		return c.acceptWebSocket(e)
	case *gateway.WebSocketClose:
		if c.resp.wsClosed {
			return nil
		}
		return c.closeWebSocket(e)
	case *gateway.WebSocketSend:
		if !c.resp.wsAccepted {
			c.logError("websocket.send before websocket.accept", gateway.ErrSequenceViolation)
			return gateway.ErrSequenceViolation
		}
		return c.writeWebSocketFrame(e)
	default:
		c.logError("unexpected event kind on websocket scope", gateway.ErrUnknownEventKind)
		return gateway.ErrUnknownEventKind
	}
}

func (c *Connection) sendSSE(ev gateway.Event) error {
	switch e := ev.(type) {
	case *gateway.SSESend:
		return c.writeSSEMessage(e)
	case *gateway.SSEComment:
		return c.sseStream.SendComment(e.Comment)
	case *gateway.SSEClose:
		c.resp.sseClosed = true
		return c.sseStream.Close()
	default:
		c.logError("unexpected event kind on sse stream", gateway.ErrUnknownEventKind)
		return gateway.ErrUnknownEventKind
	}
}
