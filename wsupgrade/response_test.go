package wsupgrade

import (
	"testing"

	"github.com/tangerg/lynxgate/internal/kv"
)

func TestAcceptHeaders(t *testing.T) {
	headers := AcceptHeaders("abc123", "chat", nil)
	if v, _ := headers.Get("Upgrade"); v != "websocket" {
		t.Fatalf("Upgrade = %q", v)
	}
	if v, _ := headers.Get("Sec-WebSocket-Accept"); v != "abc123" {
		t.Fatalf("Sec-WebSocket-Accept = %q", v)
	}
	if v, _ := headers.Get("Sec-WebSocket-Protocol"); v != "chat" {
		t.Fatalf("Sec-WebSocket-Protocol = %q", v)
	}
}

func TestAcceptHeadersOmitsProtocolWhenEmpty(t *testing.T) {
	headers := AcceptHeaders("abc123", "", nil)
	if headers.Has("Sec-WebSocket-Protocol") {
		t.Fatal("did not expect Sec-WebSocket-Protocol header")
	}
}

func TestAcceptHeadersAppendsExtra(t *testing.T) {
	extra := kv.NewPairs(0).Add("X-App", "1")
	headers := AcceptHeaders("abc123", "", extra)
	if v, _ := headers.Get("X-App"); v != "1" {
		t.Fatalf("X-App = %q", v)
	}
}
