package connection

import (
	"github.com/tangerg/lynxgate/gateway"
	"github.com/tangerg/lynxgate/httpcodec"
)

func (c *Connection) writeResponseStart(e *gateway.HTTPResponseStart) error {
	chunked := !e.Headers.Has("content-length")
	out := httpcodec.SerializeResponseStart(e.Status, e.Headers, chunked)
	if _, err := c.conn.Write(out); err != nil {
		return err
	}
	c.resp.started = true
	c.resp.chunked = chunked
	c.resp.expectsTrailers = e.Trailers
	return nil
}

func (c *Connection) writeResponseBody(e *gateway.HTTPResponseBody) error {
	if c.resp.chunked {
		if len(e.Body) > 0 {
			if _, err := c.conn.Write(httpcodec.EncodeChunk(e.Body)); err != nil {
				return err
			}
		}
		if !e.More {
			c.resp.bodyComplete = true
			if !c.resp.expectsTrailers {
				_, err := c.conn.Write(httpcodec.FinalChunk())
				return err
			}
		}
		return nil
	}

	if len(e.Body) > 0 {
		if _, err := c.conn.Write(e.Body); err != nil {
			return err
		}
	}
	if !e.More {
		c.resp.bodyComplete = true
	}
	return nil
}

func (c *Connection) writeResponseTrailers(e *gateway.HTTPResponseTrailers) error {
	_, err := c.conn.Write(httpcodec.EncodeTrailers(e.Headers))
	c.resp.bodyComplete = true
	return err
}
