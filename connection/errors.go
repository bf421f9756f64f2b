package connection

import "errors"

// ErrConnectionClosed is returned by Send once a disconnect event has
// already been observed — the app attempting to send after the peer
// connection has been torn down.
var ErrConnectionClosed = errors.New("connection: closed")

// errBadRequest marks a parse failure that should still get a
// synthesized 400 response, as opposed to a transport-level read
// error where no response can be written at all.
var errBadRequest = errors.New("connection: malformed request")
