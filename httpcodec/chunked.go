package httpcodec

import (
	"fmt"

	"github.com/tangerg/lynxgate/internal/kv"
)

// EncodeChunk frames body as one chunked-transfer-encoding chunk:
// "<hexlen>\r\n<body>\r\n". An empty body still produces a valid
// (zero-length) chunk; callers that mean "end of body" should use
// FinalChunk instead, since a zero-length data chunk is not the
// terminator RFC 9112 §7.1 defines.
func EncodeChunk(body []byte) []byte {
	return fmt.Appendf(nil, "%x\r\n%s\r\n", len(body), body)
}

// FinalChunk returns the chunked-encoding terminator: a zero-size
// chunk with no trailer section ("0\r\n\r\n").
func FinalChunk() []byte {
	return []byte("0\r\n\r\n")
}

// EncodeTrailers renders a chunked-encoding trailer section:
// "0\r\n<headers>\r\n\r\n". Only valid when the response declared
// trailers in its http.response.start event.
func EncodeTrailers(headers kv.Pairs) []byte {
	out := []byte("0\r\n")
	headers.ForEach(func(name, value string) {
		out = fmt.Appendf(out, "%s: %s\r\n", name, value)
	})
	out = append(out, '\r', '\n')
	return out
}
