package httpcodec

import (
	"bytes"
	"fmt"
	"time"

	"github.com/tangerg/lynxgate/internal/kv"
)

// statusText covers the statuses this module itself ever synthesizes
// or is required to name on the status line; an application-chosen
// status outside this table still serializes correctly with a generic
// reason phrase.
var statusText = map[int]string{
	101: "Switching Protocols",
	200: "OK",
	204: "No Content",
	206: "Partial Content",
	301: "Moved Permanently",
	302: "Found",
	304: "Not Modified",
	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	408: "Request Timeout",
	413: "Payload Too Large",
	416: "Range Not Satisfiable",
	426: "Upgrade Required",
	429: "Too Many Requests",
	500: "Internal Server Error",
	501: "Not Implemented",
	503: "Service Unavailable",
}

func reasonPhrase(status int) string {
	if text, ok := statusText[status]; ok {
		return text
	}
	return "Status"
}

// SerializeResponseStart renders the status line and header block for
// an HTTP/1.1 response. When chunked is true it appends
// "Transfer-Encoding: chunked"; otherwise the caller is responsible
// for having already set a Content-Length header. A Date header is
// appended automatically if headers does not already carry one.
func SerializeResponseStart(status int, headers kv.Pairs, chunked bool) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "HTTP/1.1 %d %s\r\n", status, reasonPhrase(status))

	headers.ForEach(func(name, value string) {
		fmt.Fprintf(&buf, "%s: %s\r\n", name, value)
	})

	if chunked {
		buf.WriteString("Transfer-Encoding: chunked\r\n")
	}
	if !headers.Has("date") {
		buf.WriteString("Date: ")
		buf.Write(FormatDate(time.Now()))
		buf.WriteString("\r\n")
	}

	buf.WriteString("\r\n")
	return buf.Bytes()
}

// imfFixdateLayout is the IMF-fixdate format RFC 9110 §5.6.7 requires
// for the Date header: "Mon, 02 Jan 2006 15:04:05 GMT".
const imfFixdateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// FormatDate renders now as an IMF-fixdate byte string, always in UTC
// regardless of now's location.
func FormatDate(now time.Time) []byte {
	return []byte(now.UTC().Format(imfFixdateLayout))
}
