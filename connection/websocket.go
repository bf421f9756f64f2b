package connection

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/tangerg/lynxgate/gateway"
	"github.com/tangerg/lynxgate/httpcodec"
	"github.com/tangerg/lynxgate/wsupgrade"
)

func (c *Connection) acceptWebSocket(e *gateway.WebSocketAccept) error {
	headers := wsupgrade.AcceptHeaders(c.wsHandshake.Accept, e.Subprotocol, e.Headers)
	out := httpcodec.SerializeResponseStart(101, headers, false)
	if _, err := c.conn.Write(out); err != nil {
		return err
	}
	c.resp.started = true
	c.resp.wsAccepted = true

	c.wsConn = wsupgrade.Upgrade(c.conn, c.leftoverBytes)
	c.leftoverBytes = nil
	c.wsReaderDone = make(chan struct{})
	go c.readWebSocketFrames()
	return nil
}

// closeWebSocket handles websocket.close both as a rejection (the app
// never accepted, so nothing has gone out yet and the connection just
// closes) and as a normal close handshake after accept.
func (c *Connection) closeWebSocket(e *gateway.WebSocketClose) error {
	c.resp.wsClosed = true
	if c.wsConn == nil {
		return nil
	}
	code := e.Code
	if code == 0 {
		code = websocket.CloseNormalClosure
	}
	msg := websocket.FormatCloseMessage(code, e.Reason)
	return c.wsConn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(5*time.Second))
}

func (c *Connection) writeWebSocketFrame(e *gateway.WebSocketSend) error {
	if e.IsText {
		return c.wsConn.WriteMessage(websocket.TextMessage, []byte(e.Text))
	}
	return c.wsConn.WriteMessage(websocket.BinaryMessage, e.Bytes)
}

// readWebSocketFrames is the connection's sole frame reader, started
// once after accept; gorilla/websocket requires at most one goroutine
// reading a Conn at a time, which this satisfies (the app goroutine
// only ever writes, via Send).
func (c *Connection) readWebSocketFrames() {
	defer close(c.wsReaderDone)
	for {
		mt, data, err := c.wsConn.ReadMessage()
		if err != nil {
			code := websocket.CloseNoStatusReceived
			if ce, ok := err.(*websocket.CloseError); ok {
				code = ce.Code
			}
			c.pushEvent(&gateway.WebSocketDisconnect{Code: code})
			return
		}
		switch mt {
		case websocket.TextMessage:
			c.pushEvent(&gateway.WebSocketReceive{Text: string(data), IsText: true})
		case websocket.BinaryMessage:
			c.pushEvent(&gateway.WebSocketReceive{Bytes: data, IsText: false})
		}
	}
}
