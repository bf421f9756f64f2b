// Package httpcodec implements the stateless HTTP/1.1 byte↔message
// functions the connection state machine drives: request-line/header
// parsing, response-start serialization, chunked-body framing helpers,
// and IMF-fixdate formatting. Nothing in this package performs I/O or
// keeps state across calls — every function takes a buffer (or
// request/response values) and returns a result.
package httpcodec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tangerg/lynxgate/internal/kv"
	"github.com/tangerg/lynxgate/internal/linebuf"
)

// ErrIncomplete is returned by ParseRequest when buffer does not yet
// contain a full request line and header block. The caller should
// keep reading from the connection and retry once more bytes arrive;
// ErrIncomplete is not a protocol error.
var ErrIncomplete = errors.New("httpcodec: incomplete request")

// ErrMalformedRequestLine is returned for a request line that is not
// "METHOD SP request-target SP HTTP-version CRLF".
var ErrMalformedRequestLine = errors.New("httpcodec: malformed request line")

// ErrMalformedHeader is returned for a header field that is not
// "name:value" (folded/obsolete header continuations are not
// supported, matching RFC 9112 §5.2's removal of line folding).
var ErrMalformedHeader = errors.New("httpcodec: malformed header field")

// Request is the result of successfully parsing one HTTP/1.1 request.
type Request struct {
	Method        string
	Path          string
	RawPath       string
	QueryString   string
	HTTPVersion   string
	Headers       kv.Pairs
	ContentLength int64 // -1 when absent
}

// ParseRequest attempts to parse one HTTP/1.1 request from the front
// of buffer. It returns the parsed request and the number of bytes
// consumed on success. On a not-yet-complete buffer it returns
// ErrIncomplete and zero consumed bytes; the caller should append more
// bytes and retry. Any other error is a malformed request.
func ParseRequest(buffer []byte) (*Request, int, error) {
	headerEnd := linebuf.IndexDoubleCRLF(buffer)
	if headerEnd == -1 {
		return nil, 0, ErrIncomplete
	}
	consumed := headerEnd + 4

	head := buffer[:headerEnd]
	lineEnd := linebuf.IndexCRLF(head)
	if lineEnd == -1 {
		// The whole head is one line with no header block at all; still
		// a request line, just with zero headers.
		lineEnd = len(head)
	}

	req, err := parseRequestLine(string(head[:lineEnd]))
	if err != nil {
		return nil, 0, err
	}

	headers, err := parseHeaders(head[lineEnd:])
	if err != nil {
		return nil, 0, err
	}
	req.Headers = headers
	req.ContentLength = contentLength(headers)

	return req, consumed, nil
}

func parseRequestLine(line string) (*Request, error) {
	parts := strings.Split(line, " ")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRequestLine, line)
	}
	method, target, version := parts[0], parts[1], parts[2]
	if method == "" || target == "" || !strings.HasPrefix(version, "HTTP/") {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRequestLine, line)
	}

	rawPath, query, _ := strings.Cut(target, "?")
	path := rawPath

	return &Request{
		Method:      method,
		Path:        path,
		RawPath:     rawPath,
		QueryString: query,
		HTTPVersion: strings.TrimPrefix(version, "HTTP/"),
	}, nil
}

func parseHeaders(block []byte) (kv.Pairs, error) {
	pairs := kv.NewPairs(8)
	if len(block) == 0 {
		return pairs, nil
	}
	// block begins with the CRLF that terminated the request line.
	block = block[2:]
	for len(block) > 0 {
		idx := linebuf.IndexCRLF(block)
		line := block
		rest := block[len(block):]
		if idx != -1 {
			line = block[:idx]
			rest = block[idx+2:]
		}
		if len(line) == 0 {
			block = rest
			continue
		}
		name, value, ok := strings.Cut(string(line), ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if name == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
		}
		pairs = pairs.Add(name, value)
		block = rest
	}
	return foldCookies(pairs), nil
}

// foldCookies concatenates repeated Cookie headers with "; ", matching
// the normalization HTTP/2 implementations perform so a downstream
// application sees one cookie header regardless of which protocol
// version produced the scope.
func foldCookies(pairs kv.Pairs) kv.Pairs {
	values := pairs.Values("cookie")
	if len(values) <= 1 {
		return pairs
	}
	out := pairs.Del("cookie")
	out = out.Add("cookie", strings.Join(values, "; "))
	return out
}

func contentLength(headers kv.Pairs) int64 {
	v, ok := headers.Get("content-length")
	if !ok {
		return -1
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || n < 0 {
		return -1
	}
	return n
}
