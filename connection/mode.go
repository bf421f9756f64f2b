package connection

// responseState tracks the per-interaction send-side bookkeeping §4.3
// describes: whether a response/accept/start has gone out yet, and
// what it committed the connection to (chunked framing, trailers, a
// websocket or SSE upgrade).
type responseState struct {
	// HTTP.
	started         bool
	chunked         bool
	expectsTrailers bool
	bodyComplete    bool

	// WebSocket.
	wsAccepted bool
	wsClosed   bool

	// SSE.
	sseClosed bool
}
