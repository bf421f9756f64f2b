// Package sse implements the Server-Sent Events wire format and the
// asynchronous delivery queue an sse-mode connection drives: message
// encoding (Encode, EncodeComment), a reference Decoder for tests, and
// Stream, the ordered background writer with heartbeat support.
package sse
