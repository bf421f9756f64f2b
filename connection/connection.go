// Package connection implements the per-TCP-connection orchestrator:
// it owns the byte stream, drives the HTTP/1.1 codec, assembles the
// scope, and builds the receive/send capabilities an application uses
// to conduct one interaction — including the upgrade paths to
// WebSocket and Server-Sent Events.
//
// One Connection handles exactly one request; the core specifies no
// keep-alive, so the connection closes once the interaction ends.
package connection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tangerg/lynxgate/gateway"
	"github.com/tangerg/lynxgate/httpcodec"
	"github.com/tangerg/lynxgate/internal/kv"
	"github.com/tangerg/lynxgate/internal/randid"
	"github.com/tangerg/lynxgate/internal/safe"
	"github.com/tangerg/lynxgate/sse"
	"github.com/tangerg/lynxgate/wsupgrade"
)

// maxHeaderBytes bounds how much a connection will buffer while
// looking for the terminating CRLFCRLF, so a client that never sends
// one cannot grow a connection's input buffer without limit.
const maxHeaderBytes = 64 * 1024

// Options configures behavior that is the same across every
// Connection a Supervisor creates.
type Options struct {
	// Extensions is advertised to the application via scope.Extensions.
	Extensions gateway.Extensions
	// Log receives a structured record for every error the connection
	// reports. A nil Log discards them.
	Log *slog.Logger
	// OnError, if set, is additionally invoked with every error this
	// connection logs — protocol violations, application panics,
	// transport errors.
	OnError func(err error)
	// SSEHeartbeat is the interval at which an established SSE stream
	// sends a comment-line ping. Zero disables heartbeats.
	SSEHeartbeat time.Duration
	// Scheme is advertised to the application via scope.Scheme ("http"
	// or "https" for a TLS listener, per §4.4). Empty defaults to
	// "http".
	Scheme string
	// BodyStreamThreshold is a reserved extension point: the core
	// contract delivers the request body as a single http.request
	// event (§4.3), and this field is not yet consulted anywhere. It
	// exists so a future streaming-body mode has a configuration slot
	// without changing the Options shape again.
	BodyStreamThreshold int64
}

// Connection drives one accepted net.Conn through exactly one
// interaction with app.
type Connection struct {
	id        string
	conn      net.Conn
	app       gateway.App
	state     gateway.State
	opts      Options
	runCtx    context.Context

	scope         *gateway.Scope
	queue         chan gateway.Event
	closing       chan struct{}
	bodyDelivered bool
	requestBody   []byte
	leftoverBytes []byte
	terminal      gateway.Event

	resp responseState

	wsHandshake  *wsupgrade.Handshake
	wsConn       *websocket.Conn
	wsReaderDone chan struct{}

	sseStream *sse.Stream
}

// New returns a Connection ready to Serve conn against app, sharing
// state across every connection a Supervisor produces.
func New(conn net.Conn, app gateway.App, state gateway.State, opts Options) *Connection {
	return &Connection{
		id:      randid.New(8),
		conn:    conn,
		app:     app,
		state:   state,
		opts:    opts,
		queue:   make(chan gateway.Event, 32),
		closing: make(chan struct{}),
	}
}

func (c *Connection) logger() *slog.Logger {
	if c.opts.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.opts.Log
}

func (c *Connection) logError(context string, err error) {
	if err == nil {
		return
	}
	c.logger().Error(context, "conn", c.id, "err", err)
	if c.opts.OnError != nil {
		c.opts.OnError(err)
	}
}

// Serve reads one request from conn, runs app against it, and closes
// conn once the interaction has ended. It never returns an error
// itself — every failure mode is either a logged, connection-local
// event or a synthesized HTTP response.
func (c *Connection) Serve(ctx context.Context) {
	c.runCtx = ctx
	defer close(c.closing)
	defer c.conn.Close()

	req, body, leftover, err := c.readRequest()
	if err != nil {
		if errors.Is(err, errBadRequest) {
			_ = c.writeSynthesizedResponse(400, "Bad Request")
		}
		return
	}
	c.requestBody = body

	c.scope = buildScope(req, c.conn, c.state, c.opts.Extensions, c.scheme())

	if hs, ok := c.tryWebSocketUpgrade(req.Headers); ok {
		c.wsHandshake = hs
		c.scope.Type = gateway.ScopeTypeWebSocket
		c.scope.Method = ""
		c.scope.Subprotocols = hs.Subprotocols
		c.queue <- &gateway.WebSocketConnect{}
	} else {
		go c.watchPeerClose()
	}

	// leftover carries bytes the client sent past the header block (and
	// declared body, if any) before the app had a chance to run — a
	// compliant client sends nothing until it has the 101 response, so
	// this is normally empty. Threaded into the websocket upgrade so
	// none of it is lost to gorilla/websocket's own buffering.
	c.leftoverBytes = leftover

	runErr := safe.Call(func() error {
		return c.app(ctx, c.scope, c.Receive, c.Send)
	})

	c.finish(runErr)
}

func (c *Connection) finish(appErr error) {
	if c.wsReaderDone != nil {
		// The reader goroutine is parked in ReadMessage; closing the
		// connection is what makes it return so this can join it
		// before Serve's own deferred Close runs.
		_ = c.conn.Close()
		<-c.wsReaderDone
	}
	if c.sseStream != nil && !c.resp.sseClosed {
		_ = c.sseStream.Close()
	}
	if appErr == nil {
		return
	}
	c.logError("application error", appErr)
	if !c.resp.started {
		_ = c.writeSynthesizedResponse(500, "Internal Server Error")
	}
}

// ctx returns the context Serve was started with, for subsystems
// (the SSE stream) that need their own cancellation signal tied to
// the server's lifetime rather than just this connection's.
func (c *Connection) ctx() context.Context {
	return c.runCtx
}

func (c *Connection) writeSynthesizedResponse(status int, message string) error {
	body := []byte(message)
	headers := kv.NewPairs(2).
		Add("content-type", "text/plain; charset=utf-8").
		Add("content-length", strconv.Itoa(len(body)))
	out := httpcodec.SerializeResponseStart(status, headers, false)
	out = append(out, body...)
	_, err := c.conn.Write(out)
	return err
}

// readRequest accumulates bytes from conn until a full request line
// and header block have been parsed, then reads any declared body.
// leftover is whatever the client already sent beyond that (normally
// empty; a pipelining client may have sent more).
func (c *Connection) readRequest() (req *httpcodec.Request, body []byte, leftover []byte, err error) {
	buf := make([]byte, 0, 4096)
	chunk := make([]byte, 4096)

	var consumed int
	for {
		n, rerr := c.conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		req, consumed, err = httpcodec.ParseRequest(buf)
		if err == nil {
			break
		}
		if !errors.Is(err, httpcodec.ErrIncomplete) {
			return nil, nil, nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		if len(buf) > maxHeaderBytes {
			return nil, nil, nil, fmt.Errorf("%w: request header too large", errBadRequest)
		}
		if rerr != nil {
			return nil, nil, nil, rerr
		}
	}

	rest := buf[consumed:]
	if req.ContentLength <= 0 {
		return req, []byte{}, rest, nil
	}

	need := req.ContentLength
	for int64(len(rest)) < need {
		n, rerr := c.conn.Read(chunk)
		if n > 0 {
			rest = append(rest, chunk[:n]...)
		}
		if rerr != nil {
			return nil, nil, nil, rerr
		}
	}
	return req, rest[:need], rest[need:], nil
}

func buildScope(req *httpcodec.Request, conn net.Conn, state gateway.State, ext gateway.Extensions, scheme string) *gateway.Scope {
	return &gateway.Scope{
		Type:        gateway.ScopeTypeHTTP,
		Method:      req.Method,
		Path:        req.Path,
		RawPath:     req.RawPath,
		QueryString: req.QueryString,
		HTTPVersion: req.HTTPVersion,
		Scheme:      scheme,
		Headers:     req.Headers,
		Client:      addrOf(conn.RemoteAddr()),
		Server:      addrOf(conn.LocalAddr()),
		Extensions:  ext,
		State:       state,
	}
}

// scheme returns opts.Scheme, defaulting to "http" when unset.
func (c *Connection) scheme() string {
	if c.opts.Scheme == "" {
		return "http"
	}
	return c.opts.Scheme
}

func addrOf(a net.Addr) gateway.Addr {
	if a == nil {
		return gateway.Addr{}
	}
	host, portStr, err := net.SplitHostPort(a.String())
	if err != nil {
		return gateway.Addr{Host: a.String()}
	}
	port, _ := strconv.Atoi(portStr)
	return gateway.Addr{Host: host, Port: port}
}

func (c *Connection) tryWebSocketUpgrade(headers kv.Pairs) (*wsupgrade.Handshake, bool) {
	if !wsupgrade.IsUpgradeRequest(headers) {
		return nil, false
	}
	hs, err := wsupgrade.Validate(headers)
	if err != nil {
		c.logError("websocket handshake rejected", err)
		return nil, false
	}
	return hs, true
}

// watchPeerClose detects the peer closing the connection while the
// app is still suspended in receive (§5: "Disconnection at the
// transport layer cancels any pending receive by resolving it with
// the appropriate *.disconnect event"). Not used on the websocket
// path, where the frame reader already serves this role.
func (c *Connection) watchPeerClose() {
	buf := make([]byte, 512)
	for {
		select {
		case <-c.closing:
			return
		default:
		}
		_, err := c.conn.Read(buf)
		if err != nil {
			c.pushDisconnect()
			return
		}
		// A non-pipelining client should send nothing more; stray bytes
		// are ignored rather than treated as a second request.
	}
}

func (c *Connection) pushDisconnect() {
	var ev gateway.Event = &gateway.HTTPDisconnect{}
	if c.sseStream != nil {
		ev = &gateway.SSEDisconnect{}
	}
	c.pushEvent(ev)
}

func (c *Connection) pushEvent(ev gateway.Event) {
	select {
	case c.queue <- ev:
	case <-c.closing:
	}
}
