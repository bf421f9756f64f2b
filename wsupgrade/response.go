package wsupgrade

import "github.com/tangerg/lynxgate/internal/kv"

// AcceptHeaders builds the header set for a 101 Switching Protocols
// response: Upgrade, Connection, Sec-WebSocket-Accept, and, if
// subprotocol is non-empty, Sec-WebSocket-Protocol. Extra is appended
// after (e.g. application-chosen headers from a websocket.accept
// event); it may be nil.
func AcceptHeaders(accept string, subprotocol string, extra kv.Pairs) kv.Pairs {
	headers := kv.NewPairs(4 + len(extra))
	headers = headers.Add("Upgrade", "websocket")
	headers = headers.Add("Connection", "Upgrade")
	headers = headers.Add("Sec-WebSocket-Accept", accept)
	if subprotocol != "" {
		headers = headers.Add("Sec-WebSocket-Protocol", subprotocol)
	}
	headers = append(headers, extra...)
	return headers
}
