package httpcodec

import (
	"strings"
	"testing"
	"time"

	"github.com/tangerg/lynxgate/internal/kv"
)

func TestSerializeResponseStartBasic(t *testing.T) {
	headers := kv.NewPairs(0).Add("content-type", "text/plain").Add("date", "Mon, 01 Jan 2024 00:00:00 GMT")
	out := string(SerializeResponseStart(200, headers, false))

	if !strings.HasPrefix(out, "HTTP/1.1 200 OK\r\n") {
		t.Fatalf("status line wrong: %q", out)
	}
	if !strings.Contains(out, "content-type: text/plain\r\n") {
		t.Fatalf("missing content-type header: %q", out)
	}
	if strings.Count(strings.ToLower(out), "date:") != 1 {
		t.Fatalf("lowercased caller-provided date header should not be duplicated: %q", out)
	}
	if !strings.HasSuffix(out, "\r\n\r\n") {
		t.Fatalf("response start must end with a blank line: %q", out)
	}
}

func TestSerializeResponseStartAddsDateWhenAbsent(t *testing.T) {
	out := string(SerializeResponseStart(204, kv.NewPairs(0), false))
	if !strings.Contains(out, "Date: ") {
		t.Fatalf("expected an injected Date header: %q", out)
	}
}

func TestSerializeResponseStartChunked(t *testing.T) {
	out := string(SerializeResponseStart(200, kv.NewPairs(0), true))
	if !strings.Contains(out, "Transfer-Encoding: chunked\r\n") {
		t.Fatalf("expected chunked marker: %q", out)
	}
}

func TestSerializeResponseStartUnknownStatus(t *testing.T) {
	out := string(SerializeResponseStart(599, kv.NewPairs(0), false))
	if !strings.HasPrefix(out, "HTTP/1.1 599 Status\r\n") {
		t.Fatalf("unexpected reason phrase for unknown status: %q", out)
	}
}

func TestFormatDateIMFFixdate(t *testing.T) {
	ts := time.Date(2024, time.March, 4, 15, 30, 0, 0, time.UTC)
	got := string(FormatDate(ts))
	want := "Mon, 04 Mar 2024 15:30:00 GMT"
	if got != want {
		t.Fatalf("FormatDate() = %q, want %q", got, want)
	}
}

func TestFormatDateNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("TEST", 3600)
	ts := time.Date(2024, time.March, 4, 16, 30, 0, 0, loc)
	got := string(FormatDate(ts))
	want := "Mon, 04 Mar 2024 15:30:00 GMT"
	if got != want {
		t.Fatalf("FormatDate() = %q, want %q", got, want)
	}
}
