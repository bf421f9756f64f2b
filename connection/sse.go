package connection

import (
	"github.com/tangerg/lynxgate/gateway"
	"github.com/tangerg/lynxgate/httpcodec"
	"github.com/tangerg/lynxgate/sse"
)

// startSSE switches an ordinary HTTP interaction to event-stream
// output on the application's first sse.start send, per §4.3. Chunked
// termination is disabled for SSE bodies — the stream ends when the
// connection closes, not with a 0-length chunk.
func (c *Connection) startSSE(e *gateway.SSEStart) error {
	headers := e.Headers
	if !headers.Has("content-type") {
		headers = headers.Set("content-type", "text/event-stream; charset=utf-8")
	}
	out := httpcodec.SerializeResponseStart(e.Status, headers, false)
	if _, err := c.conn.Write(out); err != nil {
		return err
	}
	c.resp.started = true

	stream, err := sse.NewStream(sse.StreamConfig{Context: c.ctx(), Sink: c.conn})
	if err != nil {
		return err
	}
	c.sseStream = stream
	if c.opts.SSEHeartbeat > 0 {
		go sse.Heartbeat(c.closing, stream, c.opts.SSEHeartbeat)
	}
	return nil
}

func (c *Connection) writeSSEMessage(e *gateway.SSESend) error {
	msg := sse.GetMessage()
	msg.ID = e.ID
	msg.Event = e.Event
	msg.Data = []byte(e.Data)
	msg.Retry = e.Retry
	err := c.sseStream.Send(msg)
	sse.ReleaseMessage(msg)
	return err
}
