package gateway

// Lifespan events.

type LifespanStartup struct{}

func (LifespanStartup) Kind() Kind { return KindLifespanStartup }

type LifespanStartupComplete struct{}

func (LifespanStartupComplete) Kind() Kind { return KindLifespanStartupComplete }

type LifespanStartupFailed struct {
	Message string
}

func (LifespanStartupFailed) Kind() Kind { return KindLifespanStartupFailed }

type LifespanShutdown struct{}

func (LifespanShutdown) Kind() Kind { return KindLifespanShutdown }

type LifespanShutdownComplete struct{}

func (LifespanShutdownComplete) Kind() Kind { return KindLifespanShutdownOK }

type LifespanShutdownFailed struct {
	Message string
}

func (LifespanShutdownFailed) Kind() Kind { return KindLifespanShutdownFailed }

// HTTP events.

type HTTPRequest struct {
	Body []byte
	More bool
}

func (HTTPRequest) Kind() Kind { return KindHTTPRequest }

type HTTPDisconnect struct{}

func (HTTPDisconnect) Kind() Kind { return KindHTTPDisconnect }

type HTTPResponseStart struct {
	Status   int
	Headers  HeaderPairs
	Trailers bool
}

func (HTTPResponseStart) Kind() Kind { return KindHTTPResponseStart }

type HTTPResponseBody struct {
	Body []byte
	More bool
}

func (HTTPResponseBody) Kind() Kind { return KindHTTPResponseBody }

type HTTPResponseTrailers struct {
	Headers HeaderPairs
}

func (HTTPResponseTrailers) Kind() Kind { return KindHTTPResponseTrailers }

// WebSocket events.

type WebSocketConnect struct{}

func (WebSocketConnect) Kind() Kind { return KindWebSocketConnect }

// WebSocketReceive carries exactly one of Bytes or Text, selected by
// IsText, matching the "bytes|text" variant in the spec.
type WebSocketReceive struct {
	Bytes  []byte
	Text   string
	IsText bool
}

func (WebSocketReceive) Kind() Kind { return KindWebSocketReceive }

type WebSocketDisconnect struct {
	Code int
}

func (WebSocketDisconnect) Kind() Kind { return KindWebSocketDisconnect }

type WebSocketAccept struct {
	Subprotocol string
	Headers     HeaderPairs
}

func (WebSocketAccept) Kind() Kind { return KindWebSocketAccept }

type WebSocketSend struct {
	Bytes  []byte
	Text   string
	IsText bool
}

func (WebSocketSend) Kind() Kind { return KindWebSocketSend }

type WebSocketClose struct {
	Code   int
	Reason string
}

func (WebSocketClose) Kind() Kind { return KindWebSocketClose }

// SSE events.

type SSEConnect struct{}

func (SSEConnect) Kind() Kind { return KindSSEConnect }

type SSEDisconnect struct{}

func (SSEDisconnect) Kind() Kind { return KindSSEDisconnect }

type SSEStart struct {
	Status  int
	Headers HeaderPairs
}

func (SSEStart) Kind() Kind { return KindSSEStart }

type SSESend struct {
	Data  string
	Event string
	ID    string
	Retry int
}

func (SSESend) Kind() Kind { return KindSSESend }

type SSEComment struct {
	Comment string
}

func (SSEComment) Kind() Kind { return KindSSEComment }

type SSEClose struct{}

func (SSEClose) Kind() Kind { return KindSSEClose }
