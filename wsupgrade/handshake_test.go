package wsupgrade

import (
	"testing"

	"github.com/tangerg/lynxgate/internal/kv"
)

func upgradeHeaders(key string) kv.Pairs {
	return kv.NewPairs(0).
		Add("upgrade", "websocket").
		Add("connection", "keep-alive, Upgrade").
		Add("sec-websocket-version", "13").
		Add("sec-websocket-key", key)
}

func TestIsUpgradeRequest(t *testing.T) {
	if !IsUpgradeRequest(upgradeHeaders("x")) {
		t.Fatal("expected upgrade request to be recognized")
	}
	if IsUpgradeRequest(kv.NewPairs(0).Add("upgrade", "h2c")) {
		t.Fatal("did not expect h2c upgrade to be recognized as websocket")
	}
}

func TestValidateComputesKnownAcceptValue(t *testing.T) {
	// RFC 6455 §1.3 worked example.
	h, err := Validate(upgradeHeaders("dGhlIHNhbXBsZSBub25jZQ=="))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	want := "s3pPLMBiTxaQ9kYGzzhZRbK+xOo="
	if h.Accept != want {
		t.Fatalf("Accept = %q, want %q", h.Accept, want)
	}
}

func TestValidateMissingKey(t *testing.T) {
	headers := kv.NewPairs(0).
		Add("upgrade", "websocket").
		Add("connection", "Upgrade").
		Add("sec-websocket-version", "13")
	if _, err := Validate(headers); err != ErrMissingKey {
		t.Fatalf("err = %v, want ErrMissingKey", err)
	}
}

func TestValidateUnsupportedVersion(t *testing.T) {
	headers := upgradeHeaders("x").Set("sec-websocket-version", "8")
	if _, err := Validate(headers); err != ErrUnsupportedVersion {
		t.Fatalf("err = %v, want ErrUnsupportedVersion", err)
	}
}

func TestValidateNotUpgrade(t *testing.T) {
	if _, err := Validate(kv.NewPairs(0)); err != ErrNotUpgrade {
		t.Fatalf("err = %v, want ErrNotUpgrade", err)
	}
}

func TestValidateParsesSubprotocols(t *testing.T) {
	headers := upgradeHeaders("x").Add("sec-websocket-protocol", "chat, superchat")
	h, err := Validate(headers)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	want := []string{"chat", "superchat"}
	if len(h.Subprotocols) != 2 || h.Subprotocols[0] != want[0] || h.Subprotocols[1] != want[1] {
		t.Fatalf("Subprotocols = %v, want %v", h.Subprotocols, want)
	}
}
