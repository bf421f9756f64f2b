package httpcodec

import (
	"errors"
	"testing"
)

func TestParseRequestSimpleGET(t *testing.T) {
	raw := "GET /foo?x=1 HTTP/1.1\r\nHost: example.com\r\n\r\n"
	req, consumed, err := ParseRequest([]byte(raw))
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if consumed != len(raw) {
		t.Fatalf("consumed = %d, want %d", consumed, len(raw))
	}
	if req.Method != "GET" || req.Path != "/foo" || req.QueryString != "x=1" {
		t.Fatalf("req = %+v", req)
	}
	if req.HTTPVersion != "1.1" {
		t.Fatalf("HTTPVersion = %q", req.HTTPVersion)
	}
	if host, ok := req.Headers.Get("host"); !ok || host != "example.com" {
		t.Fatalf("Host header = %q, %v", host, ok)
	}
	if req.ContentLength != -1 {
		t.Fatalf("ContentLength = %d, want -1 (absent)", req.ContentLength)
	}
}

func TestParseRequestIncompleteBuffer(t *testing.T) {
	_, _, err := ParseRequest([]byte("GET / HTTP/1.1\r\nHost: x\r\n"))
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("err = %v, want ErrIncomplete", err)
	}
}

func TestParseRequestMalformedLine(t *testing.T) {
	_, _, err := ParseRequest([]byte("NOT A REQUEST LINE AT ALL\r\n\r\n"))
	if !errors.Is(err, ErrMalformedRequestLine) {
		t.Fatalf("err = %v, want ErrMalformedRequestLine", err)
	}
}

func TestParseRequestMalformedHeader(t *testing.T) {
	_, _, err := ParseRequest([]byte("GET / HTTP/1.1\r\nBadHeaderNoColon\r\n\r\n"))
	if !errors.Is(err, ErrMalformedHeader) {
		t.Fatalf("err = %v, want ErrMalformedHeader", err)
	}
}

func TestParseRequestLowercasesHeaderNames(t *testing.T) {
	req, _, err := ParseRequest([]byte("GET / HTTP/1.1\r\nX-Custom-Header: Value\r\n\r\n"))
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if v, ok := req.Headers.Get("x-custom-header"); !ok || v != "Value" {
		t.Fatalf("Get(lowercased) = %q, %v", v, ok)
	}
	for _, p := range req.Headers {
		if p.Name != "x-custom-header" {
			t.Fatalf("stored header name not lowercased: %q", p.Name)
		}
	}
}

func TestParseRequestFoldsCookieHeaders(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nCookie: a=1\r\nCookie: b=2\r\nCookie: c=3\r\n\r\n"
	req, _, err := ParseRequest([]byte(raw))
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	values := req.Headers.Values("cookie")
	if len(values) != 1 {
		t.Fatalf("expected exactly one cookie header, got %d: %v", len(values), values)
	}
	if values[0] != "a=1; b=2; c=3" {
		t.Fatalf("folded cookie = %q", values[0])
	}
}

func TestParseRequestContentLength(t *testing.T) {
	req, _, err := ParseRequest([]byte("POST / HTTP/1.1\r\nContent-Length: 0\r\n\r\n"))
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if req.ContentLength != 0 {
		t.Fatalf("ContentLength = %d, want 0", req.ContentLength)
	}
}

func TestParseRequestZeroHeaders(t *testing.T) {
	req, consumed, err := ParseRequest([]byte("GET / HTTP/1.1\r\n\r\n"))
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if consumed != len("GET / HTTP/1.1\r\n\r\n") {
		t.Fatalf("consumed = %d", consumed)
	}
	if len(req.Headers) != 0 {
		t.Fatalf("Headers = %v, want empty", req.Headers)
	}
}

func TestParseRequestMultipleHeadersPreserveOrder(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nHost: x\r\nAccept: */*\r\nContent-Length: 3\r\n\r\nabc"
	req, consumed, err := ParseRequest([]byte(raw))
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if consumed != len(raw)-3 {
		t.Fatalf("consumed = %d, want %d (body untouched)", consumed, len(raw)-3)
	}
	var names []string
	req.Headers.ForEach(func(name, _ string) { names = append(names, name) })
	want := []string{"host", "accept", "content-length"}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("header order = %v, want %v", names, want)
		}
	}
}
