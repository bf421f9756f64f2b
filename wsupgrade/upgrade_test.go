package wsupgrade

import (
	"net"
	"testing"
)

func TestUpgradeReturnsConn(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	wsConn := Upgrade(server, nil)
	if wsConn == nil {
		t.Fatal("Upgrade() returned nil")
	}
	_ = wsConn.Close()
}

func TestPrefixedConnReplaysLeftoverBeforeUnderlying(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	pc := &prefixedConn{Conn: server, prefix: []byte("abc")}
	buf := make([]byte, 3)
	n, err := pc.Read(buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if n != 3 || string(buf) != "abc" {
		t.Fatalf("Read() = %q, want %q", buf[:n], "abc")
	}
	if len(pc.prefix) != 0 {
		t.Fatalf("prefix not drained: %q", pc.prefix)
	}
}
