// Package linebuf provides line-splitting helpers shared by the wire
// codecs in this module. HTTP/1.1 framing is strict about CRLF, while
// the SSE wire format tolerates CR, LF or CRLF line endings; both
// needs are covered here so neither codec re-implements its own
// scanner.
package linebuf

import "bytes"

// ScanLenient is a bufio.SplitFunc that returns each line stripped of
// its trailing end-of-line marker, accepting any of "\r\n", "\r" or
// "\n" as that marker. The returned line may be empty.
//
// This is the splitting behavior the SSE specification requires of a
// conforming stream parser, since event sources are not guaranteed to
// emit a single consistent line ending.
func ScanLenient(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			return i + 2, data[:i], nil
		}
		return i + 1, data[:i], nil
	}

	if atEOF {
		if len(data) > 0 && data[len(data)-1] == '\r' {
			return len(data), data[:len(data)-1], nil
		}
		return len(data), data, nil
	}

	return 0, nil, nil
}

// IndexCRLF returns the index of the first strict "\r\n" sequence in
// data, or -1 if none is present. HTTP/1.1 request lines and header
// fields are terminated by exactly this sequence (RFC 9112 §2.2); bare
// CR or LF are not line terminators at this layer.
func IndexCRLF(data []byte) int {
	return bytes.Index(data, crlf)
}

var crlf = []byte("\r\n")

// IndexDoubleCRLF returns the index of the first blank-line terminator
// ("\r\n\r\n") in data, or -1 if the header block is not yet complete.
func IndexDoubleCRLF(data []byte) int {
	return bytes.Index(data, doubleCRLF)
}

var doubleCRLF = []byte("\r\n\r\n")
