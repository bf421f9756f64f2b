package sse

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"github.com/tangerg/lynxgate/internal/linebuf"
)

// Decoder parses a stream of SSE wire-format bytes back into Messages
// and comment lines. It exists for round-trip testing of Encode and
// EncodeComment against the W3C EventSource parsing algorithm, not for
// production use (the gateway is a server, never an SSE client).
type Decoder struct {
	scanner *bufio.Scanner
	pending Message
	any     bool
}

// NewDecoder wraps r for line-oriented SSE decoding.
func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Split(linebuf.ScanLenient)
	return &Decoder{scanner: sc}
}

// Next returns the next dispatched Message, or io.EOF once the stream
// is exhausted with no further event pending.
func (d *Decoder) Next() (*Message, error) {
	for d.scanner.Scan() {
		line := d.scanner.Bytes()
		if len(line) == 0 {
			if !d.any {
				continue
			}
			msg := d.pending
			d.pending = Message{}
			d.any = false
			return &msg, nil
		}
		if line[0] == ':' {
			continue
		}
		d.any = true
		name, value := splitField(line)
		switch name {
		case fieldID:
			d.pending.ID = value
		case fieldEvent:
			d.pending.Event = value
		case fieldData:
			if d.pending.Data != nil {
				d.pending.Data = append(d.pending.Data, '\n')
			}
			d.pending.Data = append(d.pending.Data, value...)
		case fieldRetry:
			if n, err := strconv.Atoi(value); err == nil {
				d.pending.Retry = n
			}
		}
	}
	if err := d.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func splitField(line []byte) (name string, value string) {
	idx := bytes.IndexByte(line, ':')
	if idx < 0 {
		return string(line), ""
	}
	name = string(line[:idx])
	rest := line[idx+1:]
	if len(rest) > 0 && rest[0] == ' ' {
		rest = rest[1:]
	}
	return name, string(rest)
}
