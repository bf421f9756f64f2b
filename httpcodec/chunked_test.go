package httpcodec

import (
	"testing"

	"github.com/tangerg/lynxgate/internal/kv"
)

func TestEncodeChunk(t *testing.T) {
	if got := string(EncodeChunk([]byte("hello"))); got != "5\r\nhello\r\n" {
		t.Fatalf("EncodeChunk() = %q", got)
	}
	if got := string(EncodeChunk([]byte("!"))); got != "1\r\n!\r\n" {
		t.Fatalf("EncodeChunk() = %q", got)
	}
}

func TestChunkedResponseScenario(t *testing.T) {
	// spec.md §8 scenario 3: start + two bodies should concatenate to
	// "5\r\nhello\r\n1\r\n!\r\n0\r\n\r\n".
	var out []byte
	out = append(out, EncodeChunk([]byte("hello"))...)
	out = append(out, EncodeChunk([]byte("!"))...)
	out = append(out, FinalChunk()...)

	want := "5\r\nhello\r\n1\r\n!\r\n0\r\n\r\n"
	if string(out) != want {
		t.Fatalf("chunked body = %q, want %q", out, want)
	}
}

func TestFinalChunk(t *testing.T) {
	if got := string(FinalChunk()); got != "0\r\n\r\n" {
		t.Fatalf("FinalChunk() = %q", got)
	}
}

func TestEncodeTrailers(t *testing.T) {
	headers := kv.NewPairs(0).Add("x-checksum", "abc123")
	got := string(EncodeTrailers(headers))
	want := "0\r\nx-checksum: abc123\r\n\r\n"
	if got != want {
		t.Fatalf("EncodeTrailers() = %q, want %q", got, want)
	}
}
