// Package wsupgrade implements the RFC 6455 opening handshake: request
// validation, Sec-WebSocket-Accept computation, and handing the
// already-negotiated net.Conn to gorilla/websocket's low-level frame
// reader/writer. It does not implement framing itself — that is
// delegated entirely to gorilla/websocket.NewConn, which wraps a
// connection whose handshake has already happened rather than
// performing its own (the upgrader's usual job, skipped here because
// the gateway's HTTP/1.1 codec already parsed the request).
package wsupgrade

import (
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"net"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/tangerg/lynxgate/internal/kv"
)

// websocketGUID is the magic value RFC 6455 §1.3 defines for deriving
// Sec-WebSocket-Accept from Sec-WebSocket-Key.
const websocketGUID = "258EAFA5-E91E-3737-9245-4F47AE4296A2"

var (
	// ErrNotUpgrade is returned when the request does not carry the
	// Upgrade: websocket / Connection: Upgrade header pair.
	ErrNotUpgrade = errors.New("wsupgrade: not a websocket upgrade request")
	// ErrMissingKey is returned when Sec-WebSocket-Key is absent.
	ErrMissingKey = errors.New("wsupgrade: missing Sec-WebSocket-Key")
	// ErrUnsupportedVersion is returned for any Sec-WebSocket-Version
	// other than 13.
	ErrUnsupportedVersion = errors.New("wsupgrade: unsupported Sec-WebSocket-Version")
)

// IsUpgradeRequest reports whether headers carry the Connection:
// Upgrade and Upgrade: websocket tokens (case-insensitively, and
// tolerant of Connection listing multiple tokens).
func IsUpgradeRequest(headers kv.Pairs) bool {
	upgrade, _ := headers.Get("upgrade")
	if !strings.EqualFold(strings.TrimSpace(upgrade), "websocket") {
		return false
	}
	conn, _ := headers.Get("connection")
	for _, token := range strings.Split(conn, ",") {
		if strings.EqualFold(strings.TrimSpace(token), "upgrade") {
			return true
		}
	}
	return false
}

// Handshake holds the result of validating an upgrade request: the
// computed Accept value and the client's requested subprotocols, in
// order, for the application to choose from.
type Handshake struct {
	Accept       string
	Subprotocols []string
}

// Validate checks headers for a well-formed RFC 6455 opening
// handshake and computes the Sec-WebSocket-Accept value. It does not
// write any response; callers serialize the 101 response themselves
// (via httpcodec) after the application has chosen whether and with
// what subprotocol/extensions to accept.
func Validate(headers kv.Pairs) (*Handshake, error) {
	if !IsUpgradeRequest(headers) {
		return nil, ErrNotUpgrade
	}
	version, _ := headers.Get("sec-websocket-version")
	if strings.TrimSpace(version) != "13" {
		return nil, ErrUnsupportedVersion
	}
	key, ok := headers.Get("sec-websocket-key")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return nil, ErrMissingKey
	}

	var subprotocols []string
	if raw, ok := headers.Get("sec-websocket-protocol"); ok {
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				subprotocols = append(subprotocols, p)
			}
		}
	}

	return &Handshake{
		Accept:       acceptKey(key),
		Subprotocols: subprotocols,
	}, nil
}

func acceptKey(key string) string {
	h := sha1.New()
	h.Write([]byte(key))
	h.Write([]byte(websocketGUID))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Upgrade hands an already-handshaken connection to gorilla/websocket.
// leftover carries any bytes the caller's HTTP parser read past the
// request's terminating blank line (nil if none); a compliant client
// does not send frame bytes before receiving the 101 response, so this
// is normally empty, but is threaded through in case a pipelining
// client raced ahead. The caller is responsible for having written the
// 101 response before calling Upgrade.
func Upgrade(conn net.Conn, leftover []byte) *websocket.Conn {
	var wrapped net.Conn = conn
	if len(leftover) > 0 {
		wrapped = &prefixedConn{Conn: conn, prefix: leftover}
	}
	return websocket.NewConn(wrapped, true, 0, 0)
}

// prefixedConn replays buffered bytes before falling through to the
// underlying connection's own Read, the same trick net/http uses to
// hand a hijacked connection's unread bytes back to a new consumer.
type prefixedConn struct {
	net.Conn
	prefix []byte
}

func (c *prefixedConn) Read(p []byte) (int, error) {
	if len(c.prefix) > 0 {
		n := copy(p, c.prefix)
		c.prefix = c.prefix[n:]
		return n, nil
	}
	return c.Conn.Read(p)
}
