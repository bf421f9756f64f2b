package testapp

import (
	"context"
	"testing"

	"github.com/tangerg/lynxgate/gateway"
)

func TestEchoHTTP(t *testing.T) {
	scope := &gateway.Scope{Type: gateway.ScopeTypeHTTP, Method: "GET", Path: "/foo"}
	queue := []gateway.Event{&gateway.HTTPRequest{}}
	receive := func(ctx context.Context) (gateway.Event, error) {
		ev := queue[0]
		queue = queue[1:]
		return ev, nil
	}
	var sent []gateway.Event
	send := func(ctx context.Context, ev gateway.Event) error {
		sent = append(sent, ev)
		return nil
	}

	if err := Echo(context.Background(), scope, receive, send); err != nil {
		t.Fatalf("Echo() error = %v", err)
	}
	if len(sent) != 2 {
		t.Fatalf("sent = %+v, want start+body", sent)
	}
	body, ok := sent[1].(*gateway.HTTPResponseBody)
	if !ok || string(body.Body) != "GET /foo" {
		t.Fatalf("sent[1] = %+v", sent[1])
	}
}

func TestEchoWebSocketEchoesAndStopsOnDisconnect(t *testing.T) {
	scope := &gateway.Scope{Type: gateway.ScopeTypeWebSocket}
	queue := []gateway.Event{
		&gateway.WebSocketConnect{},
		&gateway.WebSocketReceive{Text: "hi", IsText: true},
		&gateway.WebSocketDisconnect{Code: 1000},
	}
	receive := func(ctx context.Context) (gateway.Event, error) {
		ev := queue[0]
		queue = queue[1:]
		return ev, nil
	}
	var sent []gateway.Event
	send := func(ctx context.Context, ev gateway.Event) error {
		sent = append(sent, ev)
		return nil
	}

	if err := Echo(context.Background(), scope, receive, send); err != nil {
		t.Fatalf("Echo() error = %v", err)
	}
	if len(sent) != 2 {
		t.Fatalf("sent = %+v, want accept+echo", sent)
	}
	if _, ok := sent[0].(*gateway.WebSocketAccept); !ok {
		t.Fatalf("sent[0] = %T", sent[0])
	}
	echoed, ok := sent[1].(*gateway.WebSocketSend)
	if !ok || echoed.Text != "hi" {
		t.Fatalf("sent[1] = %+v", sent[1])
	}
}

func TestLifespanRecorderRecordsInCallOrder(t *testing.T) {
	r := &LifespanRecorder{}
	startup := r.Startup("A")
	if err := startup(context.Background(), gateway.State{}); err != nil {
		t.Fatalf("startup() error = %v", err)
	}
	shutdown := r.Shutdown("B")
	if err := shutdown(context.Background(), gateway.State{}); err != nil {
		t.Fatalf("shutdown() error = %v", err)
	}
	got := r.Snapshot()
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Fatalf("Snapshot() = %v", got)
	}
}
